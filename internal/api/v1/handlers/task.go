package handlers

import (
	"context"

	"team-collab/internal/models"
	"team-collab/internal/service"

	"github.com/gofiber/fiber/v2"
)

type TaskService interface {
	CreateTask(ctx context.Context, requester models.Identity, in service.CreateTaskInput) (models.Task, error)
	ListTasks(ctx context.Context, requester models.Identity, status string) ([]models.Task, error)
	GetTask(ctx context.Context, requester models.Identity, taskID int64) (models.Task, error)
	UpdateTask(ctx context.Context, requester models.Identity, taskID int64, patch models.TaskPatch) (models.Task, error)
	DeleteTask(ctx context.Context, requester models.Identity, taskID int64) error
}

type TaskHandler struct {
	tasks TaskService
}

func NewTaskHandler(tasks TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// updateTaskRequest distinguishes an absent field (nil) from a zero value.
type updateTaskRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Status      *models.TaskStatus `json:"status"`
	AssignedTo  *int64             `json:"assignedTo"`
}

func (r updateTaskRequest) patch() models.TaskPatch {
	return models.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		AssignedTo:  r.AssignedTo,
	}
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	identity, err := requester(c)
	if err != nil {
		return err
	}

	var req service.CreateTaskInput
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}

	task, err := h.tasks.CreateTask(c.UserContext(), identity, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Task created successfully",
		"task":    task,
	})
}

// ListTasks returns the caller's tasks, optionally filtered by ?status=.
func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	identity, err := requester(c)
	if err != nil {
		return err
	}

	tasks, err := h.tasks.ListTasks(c.UserContext(), identity, c.Query("status"))
	if err != nil {
		return err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	return c.JSON(fiber.Map{
		"message": "Tasks retrieved successfully",
		"tasks":   tasks,
	})
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	identity, err := requester(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}

	task, err := h.tasks.GetTask(c.UserContext(), identity, id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Task retrieved successfully",
		"task":    task,
	})
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	identity, err := requester(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}

	task, err := h.tasks.UpdateTask(c.UserContext(), identity, id, req.patch())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Task updated successfully",
		"task":    task,
	})
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	identity, err := requester(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}

	if err := h.tasks.DeleteTask(c.UserContext(), identity, id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Task deleted successfully"})
}
