package repository

import (
	"context"
	"time"

	"team-collab/internal/apperror"
	"team-collab/internal/models"

	"github.com/jmoiron/sqlx"
)

const selectCommentsQuery = `
SELECT
  cm.id, cm.text, cm.task_id, cm.created_at, cm.updated_at,
  u.id AS author_id, u.name AS author_name, u.email AS author_email
FROM comments cm
JOIN users u ON u.id = cm.user_id
`

type CommentRepository struct {
	db *sqlx.DB
}

type commentRow struct {
	ID          int64     `db:"id"`
	Text        string    `db:"text"`
	TaskID      int64     `db:"task_id"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
	AuthorID    int64     `db:"author_id"`
	AuthorName  string    `db:"author_name"`
	AuthorEmail string    `db:"author_email"`
}

func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment models.Comment) (int64, error) {
	var id int64
	err := r.db.QueryRowxContext(ctx,
		r.db.Rebind(`INSERT INTO comments (text, task_id, user_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?) RETURNING id`),
		comment.Text, comment.TaskID, comment.Author.ID, comment.CreatedAt, comment.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, apperror.Internal("Error creating comment", err)
	}
	return id, nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id int64) (models.Comment, error) {
	var row commentRow
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(selectCommentsQuery+"WHERE cm.id = ?"), id); err != nil {
		return models.Comment{}, notFoundOr(err, apperror.ErrCommentNotFound, "Error fetching comment")
	}
	return mapCommentRowToComment(row), nil
}

// ListByTask returns the task's comments oldest first.
func (r *CommentRepository) ListByTask(ctx context.Context, taskID int64) ([]models.Comment, error) {
	var rows []commentRow
	err := r.db.SelectContext(ctx, &rows,
		r.db.Rebind(selectCommentsQuery+"WHERE cm.task_id = ? ORDER BY cm.created_at ASC, cm.id ASC"), taskID)
	if err != nil {
		return nil, apperror.Internal("Error fetching comments", err)
	}

	comments := make([]models.Comment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, mapCommentRowToComment(row))
	}
	return comments, nil
}

func (r *CommentRepository) Update(ctx context.Context, comment models.Comment) error {
	result, err := r.db.ExecContext(ctx,
		r.db.Rebind("UPDATE comments SET text = ?, updated_at = ? WHERE id = ?"),
		comment.Text, comment.UpdatedAt, comment.ID,
	)
	if err != nil {
		return apperror.Internal("Error updating comment", err)
	}
	return expectAffected(result, apperror.ErrCommentNotFound, "Error updating comment")
}

func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM comments WHERE id = ?"), id)
	if err != nil {
		return apperror.Internal("Error deleting comment", err)
	}
	return expectAffected(result, apperror.ErrCommentNotFound, "Error deleting comment")
}

// DeleteByTask removes every comment of taskID and returns how many went.
func (r *CommentRepository) DeleteByTask(ctx context.Context, taskID int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM comments WHERE task_id = ?"), taskID)
	if err != nil {
		return 0, apperror.Internal("Error deleting task comments", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, apperror.Internal("Error deleting task comments", err)
	}
	return n, nil
}

func mapCommentRowToComment(row commentRow) models.Comment {
	return models.Comment{
		ID:     row.ID,
		Text:   row.Text,
		TaskID: row.TaskID,
		Author: models.UserSummary{
			ID:    row.AuthorID,
			Name:  row.AuthorName,
			Email: row.AuthorEmail,
		},
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}
}
