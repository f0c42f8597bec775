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
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Name     string      `json:"name" validate:"required,max=100"`
	Email    string      `json:"email" validate:"required,email,max=255"`
	Password string      `json:"password" validate:"required,min=6"`
	Role     models.Role `json:"role" validate:"omitempty,oneof=user admin"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthService registers accounts and exchanges credentials for tokens.
type AuthService struct {
	users      UserRepository
	issuer     TokenIssuer
	validate   *validator.Validate
	bcryptCost int
	opts       options
}

func NewAuthService(users UserRepository, issuer TokenIssuer, validate *validator.Validate, bcryptCost int, opts ...Option) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		users:      users,
		issuer:     issuer,
		validate:   validate,
		bcryptCost: bcryptCost,
		opts:       buildOptions(opts),
	}
}

// Register stores a new user with a bcrypt hash of the password. The role
// defaults to user.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := s.validate.Struct(in); err != nil {
		logger.AuditLogger.Warn("Validation error during register", zap.Error(err))
		return models.User{}, validationError(err)
	}

	_, err := s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		logger.SecurityLogger.Warn("Duplicate email", zap.String("email", in.Email))
		return models.User{}, apperror.ErrUserExists
	case !errors.Is(err, apperror.ErrUserNotFound):
		return models.User{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return models.User{}, errPasswordTooLong
		}
		return models.User{}, apperror.Internal("Error hashing password", err)
	}

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}

	now := s.opts.now()
	user := models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return models.User{}, err
	}

	logger.AuditLogger.Info("User registered successfully", zap.Int64("user_id", user.ID))
	return user, nil
}

// Login checks the credentials and issues a session token. Unknown email
// and wrong password fail the same way.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (models.User, string, error) {
	in.Email = normalizeEmail(in.Email)
	if err := s.validate.Struct(in); err != nil {
		return models.User{}, "", validationError(err)
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, apperror.ErrUserNotFound) {
			logger.SecurityLogger.Warn("Login for unknown email", zap.String("email", in.Email))
			return models.User{}, "", apperror.ErrInvalidCredentials
		}
		return models.User{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		logger.SecurityLogger.Warn("Invalid password", zap.Int64("user_id", user.ID))
		return models.User{}, "", apperror.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(models.Identity{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return models.User{}, "", err
	}

	logger.AuditLogger.Info("Login success", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, token, nil
}
