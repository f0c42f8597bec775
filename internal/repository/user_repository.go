package repository

import (
	"context"

	"team-collab/internal/apperror"
	"team-collab/internal/models"

	"github.com/jmoiron/sqlx"
)

const userColumns = "id, name, email, password, role, created_at, updated_at"

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts user and sets its ID. A duplicate email yields ErrUserExists.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.QueryRowxContext(ctx,
		r.db.Rebind(`INSERT INTO users (name, email, password, role, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?) RETURNING id`),
		user.Name, user.Email, user.PasswordHash, string(user.Role), user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.ErrUserExists
		}
		return apperror.Internal("Error creating user", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, r.db.Rebind("SELECT "+userColumns+" FROM users WHERE id = ?"), id)
	if err != nil {
		return models.User{}, notFoundOr(err, apperror.ErrUserNotFound, "Error fetching user")
	}
	return normalizeUser(user), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, r.db.Rebind("SELECT "+userColumns+" FROM users WHERE email = ?"), email)
	if err != nil {
		return models.User{}, notFoundOr(err, apperror.ErrUserNotFound, "Error fetching user")
	}
	return normalizeUser(user), nil
}

// List returns every user ordered by name.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := r.db.SelectContext(ctx, &users, "SELECT "+userColumns+" FROM users ORDER BY name ASC, id ASC"); err != nil {
		return nil, apperror.Internal("Error fetching users", err)
	}
	for i := range users {
		users[i] = normalizeUser(users[i])
	}
	return users, nil
}

// Update writes name and email. A duplicate email yields ErrEmailTaken.
func (r *UserRepository) Update(ctx context.Context, user models.User) error {
	result, err := r.db.ExecContext(ctx,
		r.db.Rebind("UPDATE users SET name = ?, email = ?, updated_at = ? WHERE id = ?"),
		user.Name, user.Email, user.UpdatedAt, user.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.ErrEmailTaken
		}
		return apperror.Internal("Error updating user", err)
	}
	return expectAffected(result, apperror.ErrUserNotFound, "Error updating user")
}

func normalizeUser(user models.User) models.User {
	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()
	return user
}
