package repository_test

import (
	"context"
	"testing"
	"time"

	"team-collab/internal/models"
	"team-collab/internal/repository"
	"team-collab/pkg/database"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 2, 13, 10, 20, 30, 0, time.UTC)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, repository.CreateTableIfNotExists(context.Background(), db))
	return db
}

func seedUser(t *testing.T, repo *repository.UserRepository, name, email string) models.User {
	t.Helper()

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "hash-" + name,
		Role:         models.RoleUser,
		CreatedAt:    baseTime,
		UpdatedAt:    baseTime,
	}
	require.NoError(t, repo.Create(context.Background(), &user))
	return user
}

func seedTask(t *testing.T, repo *repository.TaskRepository, title string, creator, assignee models.User, createdAt time.Time) models.Task {
	t.Helper()

	task := models.Task{
		Title:       title,
		Description: title + " description",
		Status:      models.TaskStatusPending,
		CreatedBy:   creator.Summary(),
		AssignedTo:  assignee.Summary(),
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	id, err := repo.Create(context.Background(), task)
	require.NoError(t, err)
	task.ID = id
	return task
}
