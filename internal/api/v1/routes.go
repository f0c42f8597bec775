package v1

import (
	"team-collab/internal/api/v1/handlers"
	"team-collab/internal/middleware"
	"team-collab/pkg/apierrors"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups everything RegisterRoutes mounts.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Users    *handlers.UserHandler
	Tasks    *handlers.TaskHandler
	Comments *handlers.CommentHandler
	Health   *handlers.HealthHandler
	WS       *handlers.WSHandler
}

func RegisterRoutes(app *fiber.App, h Handlers, verifier middleware.TokenVerifier) {
	auth := middleware.UseToken(verifier)

	app.Get("/health", h.Health.CheckHealth)

	// Auth
	authRoutes := app.Group("/auth")
	authRoutes.Post("/register", h.Auth.Register)
	authRoutes.Post("/login", h.Auth.Login)

	// User
	userRoutes := app.Group("/users", auth)
	userRoutes.Get("/", h.Users.GetAllUsers)
	userRoutes.Get("/profile", h.Users.GetProfile)
	userRoutes.Put("/profile", h.Users.UpdateProfile)

	// Task
	taskRoutes := app.Group("/tasks", auth)
	taskRoutes.Post("/", h.Tasks.CreateTask)
	taskRoutes.Get("/", h.Tasks.ListTasks)
	taskRoutes.Get("/:id", h.Tasks.GetTask)
	taskRoutes.Put("/:id", h.Tasks.UpdateTask)
	taskRoutes.Delete("/:id", h.Tasks.DeleteTask)
	taskRoutes.Post("/:id/comments", h.Comments.AddComment)
	taskRoutes.Get("/:id/comments", h.Comments.ListComments)

	// Comment
	commentRoutes := app.Group("/comments", auth)
	commentRoutes.Put("/:id", h.Comments.UpdateComment)
	commentRoutes.Delete("/:id", h.Comments.DeleteComment)

	// Live notifications
	if h.WS != nil {
		app.Get("/ws", h.WS.Upgrade, h.WS.Serve())
	}

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(apierrors.JsonErr{
			Message: apierrors.GetTransErrorMsg(apierrors.MsgEndpointNotFound, "", middleware.GetLang(c)),
		})
	})
}
