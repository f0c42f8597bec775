package handlers

import (
	"team-collab/internal/apperror"
	"team-collab/internal/middleware"
	"team-collab/internal/models"
	"team-collab/pkg/apierrors"

	"github.com/gofiber/fiber/v2"
)

var (
	errInvalidBody = apperror.Validation(apierrors.MsgInvalidBody, "Invalid request body")
	errInvalidID   = apperror.Validation(apierrors.MsgInvalidID, "Invalid id")
)

// requester returns the caller stored by the bearer middleware.
func requester(c *fiber.Ctx) (models.Identity, error) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return models.Identity{}, fiber.ErrUnauthorized
	}
	return identity, nil
}

func paramID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return int64(id), nil
}
