package v1

import (
	"time"

	"team-collab/configs"
	"team-collab/internal/middleware"
	"team-collab/pkg/apierrors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// NewApp builds the Fiber application with the global middleware stack and
// every route mounted. A non-positive RateLimitMax disables the limiter.
func NewApp(cfg configs.Config, h Handlers, verifier middleware.TokenVerifier) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "team-collab",
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: apierrors.NewErrorHandler(cfg.IsProduction(), middleware.GetLang),
	})

	app.Use(middleware.ErrorHandler())
	app.Use(middleware.Language())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Accept-Language, Authorization",
	}))
	if cfg.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimitMax,
			Expiration: 1 * time.Minute,
		}))
	}

	RegisterRoutes(app, h, verifier)
	return app
}
