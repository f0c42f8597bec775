package handlers

import (
	"context"

	"team-collab/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CommentService interface {
	AddComment(ctx context.Context, requester models.Identity, taskID int64, text string) (models.Comment, error)
	ListComments(ctx context.Context, requester models.Identity, taskID int64) ([]models.Comment, error)
	UpdateComment(ctx context.Context, requester models.Identity, commentID int64, text string) (models.Comment, error)
	DeleteComment(ctx context.Context, requester models.Identity, commentID int64) error
}

type CommentHandler struct {
	comments CommentService
}

func NewCommentHandler(comments CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

type commentRequest struct {
	Text string `json:"text"`
}

// AddComment handles POST /tasks/:id/comments.
func (h *CommentHandler) AddComment(c *fiber.Ctx) error {
	identity, err := requester(c)
	if err != nil {
		return err
	}
	taskID, err := paramID(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}

	comment, err := h.comments.AddComment(c.UserContext(), identity, taskID, req.Text)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Comment added successfully",
		"comment": comment,
	})
}

// ListComments handles GET /tasks/:id/comments.
func (h *CommentHandler) ListComments(c *fiber.Ctx) error {
	identity, err := requester(c)
	if err != nil {
		return err
	}
	taskID, err := paramID(c)
	if err != nil {
		return err
	}

	comments, err := h.comments.ListComments(c.UserContext(), identity, taskID)
	if err != nil {
		return err
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	return c.JSON(fiber.Map{
		"message":  "Comments retrieved successfully",
		"comments": comments,
	})
}

func (h *CommentHandler) UpdateComment(c *fiber.Ctx) error {
	identity, err := requester(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}

	comment, err := h.comments.UpdateComment(c.UserContext(), identity, id, req.Text)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Comment updated successfully",
		"comment": comment,
	})
}

func (h *CommentHandler) DeleteComment(c *fiber.Ctx) error {
	identity, err := requester(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}

	if err := h.comments.DeleteComment(c.UserContext(), identity, id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Comment deleted successfully"})
}
