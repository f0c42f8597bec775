package middleware

import (
	"errors"
	"strings"

	"team-collab/internal/apperror"
	"team-collab/internal/models"
	"team-collab/pkg/apierrors"
	"team-collab/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const identityKey = "identity"

// TokenVerifier decodes a bearer token into the caller's identity.
type TokenVerifier interface {
	Verify(token string) (models.Identity, error)
}

// UseToken rejects requests without a valid bearer token with 401 and
// stores the decoded identity for the handlers.
func UseToken(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, apierrors.MsgTokenMissing, "No token, authorization denied")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return unauthorized(c, apperror.ErrInvalidToken.Key, apperror.ErrInvalidToken.Message)
		}

		identity, err := verifier.Verify(parts[1])
		if err != nil {
			logger.SecurityLogger.Warn("Rejected bearer token", zap.String("path", c.Path()), zap.Error(err))
			appErr := apperror.ErrInvalidToken
			if errors.Is(err, apperror.ErrTokenExpired) {
				appErr = apperror.ErrTokenExpired
			}
			return unauthorized(c, appErr.Key, appErr.Message)
		}

		c.Locals(identityKey, identity)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, key, fallback string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(apierrors.JsonErr{
		Message: apierrors.GetTransErrorMsg(key, fallback, GetLang(c)),
	})
}

// CurrentIdentity returns the identity stored by UseToken.
func CurrentIdentity(c *fiber.Ctx) (models.Identity, bool) {
	identity, ok := c.Locals(identityKey).(models.Identity)
	return identity, ok
}
