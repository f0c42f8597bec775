package repository

import (
	"context"
	"time"

	"team-collab/internal/apperror"
	"team-collab/internal/models"

	"github.com/jmoiron/sqlx"
)

const selectTasksQuery = `
SELECT
  t.id, t.title, t.description, t.status, t.created_at, t.updated_at,
  c.id AS creator_id, c.name AS creator_name, c.email AS creator_email,
  a.id AS assignee_id, a.name AS assignee_name, a.email AS assignee_email
FROM tasks t
JOIN users c ON c.id = t.created_by
JOIN users a ON a.id = t.assigned_to
`

type TaskRepository struct {
	db *sqlx.DB
}

type taskRow struct {
	ID            int64     `db:"id"`
	Title         string    `db:"title"`
	Description   string    `db:"description"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
	CreatorID     int64     `db:"creator_id"`
	CreatorName   string    `db:"creator_name"`
	CreatorEmail  string    `db:"creator_email"`
	AssigneeID    int64     `db:"assignee_id"`
	AssigneeName  string    `db:"assignee_name"`
	AssigneeEmail string    `db:"assignee_email"`
}

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts task and returns the new ID. Only the creator and assignee
// IDs of the embedded summaries are read.
func (r *TaskRepository) Create(ctx context.Context, task models.Task) (int64, error) {
	var id int64
	err := r.db.QueryRowxContext(ctx,
		r.db.Rebind(`INSERT INTO tasks (title, description, status, created_by, assigned_to, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		task.Title, task.Description, string(task.Status), task.CreatedBy.ID, task.AssignedTo.ID, task.CreatedAt, task.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, apperror.Internal("Error creating task", err)
	}
	return id, nil
}

// FindByID returns the task with creator and assignee expanded.
func (r *TaskRepository) FindByID(ctx context.Context, id int64) (models.Task, error) {
	var row taskRow
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(selectTasksQuery+"WHERE t.id = ?"), id); err != nil {
		return models.Task{}, notFoundOr(err, apperror.ErrTaskNotFound, "Error fetching task")
	}
	return mapTaskRowToTask(row), nil
}

// ListForUser returns the tasks userID created or is assigned to, newest
// first, optionally restricted to one status.
func (r *TaskRepository) ListForUser(ctx context.Context, userID int64, status *models.TaskStatus) ([]models.Task, error) {
	query := selectTasksQuery + "WHERE (t.created_by = ? OR t.assigned_to = ?)"
	args := []interface{}{userID, userID}
	if status != nil {
		query += " AND t.status = ?"
		args = append(args, string(*status))
	}
	query += " ORDER BY t.created_at DESC, t.id DESC"

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, apperror.Internal("Error fetching tasks", err)
	}

	tasks := make([]models.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToTask(row))
	}
	return tasks, nil
}

// Update overwrites the mutable columns of task. Concurrent writers follow
// last-write-wins.
func (r *TaskRepository) Update(ctx context.Context, task models.Task) error {
	result, err := r.db.ExecContext(ctx,
		r.db.Rebind(`UPDATE tasks SET title = ?, description = ?, status = ?, assigned_to = ?, updated_at = ?
WHERE id = ?`),
		task.Title, task.Description, string(task.Status), task.AssignedTo.ID, task.UpdatedAt, task.ID,
	)
	if err != nil {
		return apperror.Internal("Error updating task", err)
	}
	return expectAffected(result, apperror.ErrTaskNotFound, "Error updating task")
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM tasks WHERE id = ?"), id)
	if err != nil {
		return apperror.Internal("Error deleting task", err)
	}
	return expectAffected(result, apperror.ErrTaskNotFound, "Error deleting task")
}

func mapTaskRowToTask(row taskRow) models.Task {
	return models.Task{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Status:      models.TaskStatus(row.Status),
		CreatedBy: models.UserSummary{
			ID:    row.CreatorID,
			Name:  row.CreatorName,
			Email: row.CreatorEmail,
		},
		AssignedTo: models.UserSummary{
			ID:    row.AssigneeID,
			Name:  row.AssigneeName,
			Email: row.AssigneeEmail,
		},
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}
}
