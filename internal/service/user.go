package service

import (
	"context"
	"errors"
	"strings"

	"team-collab/internal/apperror"
	"team-collab/internal/models"
	"team-collab/pkg/logger"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// UserService serves the user directory and the caller's own profile.
type UserService struct {
	users    UserRepository
	validate *validator.Validate
	opts     options
}

func NewUserService(users UserRepository, validate *validator.Validate, opts ...Option) *UserService {
	return &UserService{users: users, validate: validate, opts: buildOptions(opts)}
}

// ListUsers returns every user sorted by name, for assignment pickers.
func (s *UserService) ListUsers(ctx context.Context, requester models.Identity) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) GetProfile(ctx context.Context, requester models.Identity) (models.User, error) {
	return s.users.FindByID(ctx, requester.UserID)
}

// UpdateProfile changes name and/or email. An email held by another user
// is a conflict.
func (s *UserService) UpdateProfile(ctx context.Context, requester models.Identity, patch models.ProfilePatch) (models.User, error) {
	user, err := s.users.FindByID(ctx, requester.UserID)
	if err != nil {
		return models.User{}, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return models.User{}, errNameRequired
		}
		user.Name = name
	}

	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		if err := s.validate.Var(email, "required,email"); err != nil {
			return models.User{}, errInvalidEmail
		}
		if email != user.Email {
			existing, err := s.users.FindByEmail(ctx, email)
			switch {
			case err == nil && existing.ID != user.ID:
				return models.User{}, apperror.ErrEmailTaken
			case err != nil && !errors.Is(err, apperror.ErrUserNotFound):
				return models.User{}, err
			}
		}
		user.Email = email
	}

	user.UpdatedAt = s.opts.now()
	if err := s.users.Update(ctx, user); err != nil {
		return models.User{}, err
	}

	logger.AuditLogger.Info("Profile updated successfully", zap.Int64("user_id", user.ID))
	return user, nil
}
