package handlers

import (
	"context"

	"team-collab/internal/models"

	"github.com/gofiber/fiber/v2"
)

type UserService interface {
	ListUsers(ctx context.Context, requester models.Identity) ([]models.User, error)
	GetProfile(ctx context.Context, requester models.Identity) (models.User, error)
	UpdateProfile(ctx context.Context, requester models.Identity, patch models.ProfilePatch) (models.User, error)
}

type UserHandler struct {
	users UserService
}

func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

type updateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (h *UserHandler) GetAllUsers(c *fiber.Ctx) error {
	identity, err := requester(c)
	if err != nil {
		return err
	}

	users, err := h.users.ListUsers(c.UserContext(), identity)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Users retrieved successfully",
		"users":   users,
	})
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	identity, err := requester(c)
	if err != nil {
		return err
	}

	user, err := h.users.GetProfile(c.UserContext(), identity)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Profile retrieved successfully",
		"user":    user,
	})
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	identity, err := requester(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}

	user, err := h.users.UpdateProfile(c.UserContext(), identity, models.ProfilePatch{Name: req.Name, Email: req.Email})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    user,
	})
}
