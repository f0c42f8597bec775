package service

import (
	"context"

	"team-collab/internal/access"
	"team-collab/internal/apperror"
	"team-collab/internal/models"
	"team-collab/pkg/logger"

	"go.uber.org/zap"
)

// CommentService runs the comment lifecycle. Creating and listing need
// access to the task; editing and deleting belong to the author alone.
type CommentService struct {
	comments CommentRepository
	tasks    TaskRepository
	users    UserRepository
	opts     options
}

func NewCommentService(comments CommentRepository, tasks TaskRepository, users UserRepository, opts ...Option) *CommentService {
	return &CommentService{comments: comments, tasks: tasks, users: users, opts: buildOptions(opts)}
}

func (s *CommentService) AddComment(ctx context.Context, requester models.Identity, taskID int64, text string) (models.Comment, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return models.Comment{}, err
	}
	if !access.CanAddComment(requester, task) {
		logSecurity("add comment", requester, taskID)
		return models.Comment{}, apperror.ErrAddCommentDenied
	}
	text, err = checkText(text, models.MaxCommentLength, errCommentRequired, errCommentTooLong)
	if err != nil {
		return models.Comment{}, err
	}

	author, err := s.users.FindByID(ctx, requester.UserID)
	if err != nil {
		return models.Comment{}, err
	}

	now := s.opts.now()
	comment := models.Comment{
		Text:      text,
		TaskID:    taskID,
		Author:    author.Summary(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	id, err := s.comments.Create(ctx, comment)
	if err != nil {
		return models.Comment{}, err
	}
	comment.ID = id

	logger.AuditLogger.Info("Comment added successfully", zap.Int64("comment_id", id), zap.Int64("task_id", taskID))
	s.notify(requester, models.EventCommentCreated, task, id)
	return comment, nil
}

// ListComments returns the task's comments oldest first.
func (s *CommentService) ListComments(ctx context.Context, requester models.Identity, taskID int64) ([]models.Comment, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !access.CanViewComments(requester, task) {
		logSecurity("view comments", requester, taskID)
		return nil, apperror.ErrViewCommentsDenied
	}
	return s.comments.ListByTask(ctx, taskID)
}

func (s *CommentService) UpdateComment(ctx context.Context, requester models.Identity, commentID int64, text string) (models.Comment, error) {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return models.Comment{}, err
	}
	if !access.CanEditComment(requester, comment) {
		logSecurity("update comment", requester, commentID)
		return models.Comment{}, apperror.ErrUpdateCommentDenied
	}
	if comment.Text, err = checkText(text, models.MaxCommentLength, errCommentRequired, errCommentTooLong); err != nil {
		return models.Comment{}, err
	}

	comment.UpdatedAt = s.opts.now()
	if err := s.comments.Update(ctx, comment); err != nil {
		return models.Comment{}, err
	}

	logger.AuditLogger.Info("Comment updated successfully", zap.Int64("comment_id", commentID))
	s.notifyForComment(ctx, requester, models.EventCommentUpdated, comment)
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, requester models.Identity, commentID int64) error {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if !access.CanDeleteComment(requester, comment) {
		logSecurity("delete comment", requester, commentID)
		return apperror.ErrDeleteCommentDenied
	}
	if err := s.comments.Delete(ctx, commentID); err != nil {
		return err
	}

	logger.AuditLogger.Info("Comment deleted successfully", zap.Int64("comment_id", commentID))
	s.notifyForComment(ctx, requester, models.EventCommentDeleted, comment)
	return nil
}

// notifyForComment looks the task up again for its participants. A missing
// task means nobody to tell.
func (s *CommentService) notifyForComment(ctx context.Context, requester models.Identity, eventType string, comment models.Comment) {
	task, err := s.tasks.FindByID(ctx, comment.TaskID)
	if err != nil {
		return
	}
	s.notify(requester, eventType, task, comment.ID)
}

func (s *CommentService) notify(requester models.Identity, eventType string, task models.Task, commentID int64) {
	s.opts.notifier.Notify(recipients(requester.UserID, task.CreatedBy.ID, task.AssignedTo.ID), models.Event{
		Type:      eventType,
		TaskID:    task.ID,
		CommentID: commentID,
		ActorID:   requester.UserID,
	})
}
