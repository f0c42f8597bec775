// Package apierrors turns application errors into HTTP responses.
package apierrors

import (
	"errors"
	"fmt"

	"team-collab/internal/apperror"
	"team-collab/pkg/logger"
	"team-collab/pkg/translator"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// JsonErr is the body of every failed request.
type JsonErr struct {
	Message string `json:"message"`
	Detail  string `json:"error,omitempty"`
}

func (e JsonErr) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("Message: %s, Error: %s", e.Message, e.Detail)
	}
	return fmt.Sprintf("Message: %s", e.Message)
}

// StatusOf maps an error to its HTTP status. Auth failures outside the
// bearer middleware answer 400, matching the login endpoint.
func StatusOf(err error) int {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	switch apperror.KindOf(err) {
	case apperror.KindValidation, apperror.KindAuth, apperror.KindConflict:
		return fiber.StatusBadRequest
	case apperror.KindForbidden:
		return fiber.StatusForbidden
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// CreateError builds the translated body for err. Internal failures get a
// generic message; the cause is attached only outside production.
func CreateError(err error, lang string, production bool) JsonErr {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		if fiberErr.Code == fiber.StatusNotFound {
			return JsonErr{Message: GetTransErrorMsg(MsgEndpointNotFound, "", lang)}
		}
		return JsonErr{Message: fiberErr.Message}
	}

	appErr, ok := apperror.As(err)
	if !ok || appErr.Kind == apperror.KindInternal {
		body := JsonErr{Message: GetTransErrorMsg(MsgInternal, "", lang)}
		if !production {
			body.Detail = err.Error()
		}
		return body
	}
	if appErr.Key == "" {
		return JsonErr{Message: appErr.Message}
	}
	return JsonErr{Message: GetTransErrorMsg(appErr.Key, appErr.Message, lang)}
}

// GetTransErrorMsg retrieves the translated message for msgKey.
func GetTransErrorMsg(msgKey, fallback, lang string) string {
	return translator.Translate(msgKey, fallback, lang)
}

// NewErrorHandler is the fiber.Config ErrorHandler. langOf picks the
// response language for the request.
func NewErrorHandler(production bool, langOf func(*fiber.Ctx) string) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := StatusOf(err)
		if status >= fiber.StatusInternalServerError {
			logger.ErrorLogger.Error("Request failed",
				zap.String("method", c.Method()), zap.String("path", c.Path()), zap.Error(err))
		}
		return c.Status(status).JSON(CreateError(err, langOf(c), production))
	}
}
