package middleware

import (
	"fmt"
	"runtime/debug"
	"time"

	"team-collab/pkg/apierrors"
	"team-collab/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler recovers panics into a generic 500 and logs every request
// with its final status and latency.
func ErrorHandler() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		start := time.Now()

		defer func() {
			if r := recover(); r != nil {
				logger.ErrorLogger.Error(fmt.Sprintf("Recovered from panic: %v", r), zap.String("stack", string(debug.Stack())))
				err = c.Status(fiber.StatusInternalServerError).JSON(apierrors.JsonErr{
					Message: apierrors.GetTransErrorMsg(apierrors.MsgInternal, "", GetLang(c)),
				})
			}

			status := c.Response().StatusCode()
			if err != nil {
				status = apierrors.StatusOf(err)
			}
			fields := []zap.Field{
				zap.Int("status", status),
				zap.String("method", c.Method()),
				zap.String("url", c.OriginalURL()),
				zap.String("ip", c.IP()),
				zap.Duration("latency", time.Since(start)),
			}
			if status >= fiber.StatusInternalServerError {
				logger.RequestLogger.Error("Request", fields...)
				return
			}
			logger.RequestLogger.Info("Request", fields...)
		}()

		return c.Next()
	}
}
