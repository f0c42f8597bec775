package service

import (
	"context"
	"errors"

	"team-collab/internal/access"
	"team-collab/internal/apperror"
	"team-collab/internal/models"
	"team-collab/pkg/logger"

	"go.uber.org/zap"
)

type CreateTaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AssignedTo  int64  `json:"assignedTo"`
}

// TaskService runs the task lifecycle on behalf of an authenticated user.
type TaskService struct {
	tasks    TaskRepository
	comments CommentRepository
	users    UserRepository
	opts     options
}

func NewTaskService(tasks TaskRepository, comments CommentRepository, users UserRepository, opts ...Option) *TaskService {
	return &TaskService{tasks: tasks, comments: comments, users: users, opts: buildOptions(opts)}
}

// CreateTask creates a pending task owned by requester and assigned to
// in.AssignedTo.
func (s *TaskService) CreateTask(ctx context.Context, requester models.Identity, in CreateTaskInput) (models.Task, error) {
	title, err := checkText(in.Title, models.MaxTitleLength, errTitleRequired, errTitleTooLong)
	if err != nil {
		return models.Task{}, err
	}
	description, err := checkText(in.Description, models.MaxDescriptionLength, errDescriptionRequired, errDescriptionTooLong)
	if err != nil {
		return models.Task{}, err
	}
	if in.AssignedTo <= 0 {
		return models.Task{}, errAssigneeRequired
	}

	creator, err := s.users.FindByID(ctx, requester.UserID)
	if err != nil {
		return models.Task{}, err
	}
	assignee, err := s.findAssignee(ctx, in.AssignedTo)
	if err != nil {
		return models.Task{}, err
	}

	now := s.opts.now()
	task := models.Task{
		Title:       title,
		Description: description,
		Status:      models.TaskStatusPending,
		CreatedBy:   creator.Summary(),
		AssignedTo:  assignee.Summary(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	id, err := s.tasks.Create(ctx, task)
	if err != nil {
		return models.Task{}, err
	}
	task.ID = id

	logger.AuditLogger.Info("Task created successfully", zap.Int64("task_id", id), zap.Int64("user_id", requester.UserID))
	s.notify(requester, models.EventTaskCreated, task)
	return task, nil
}

// ListTasks returns the tasks requester created or is assigned to, newest
// first. An empty status means no filter.
func (s *TaskService) ListTasks(ctx context.Context, requester models.Identity, status string) ([]models.Task, error) {
	var filter *models.TaskStatus
	if status != "" {
		st := models.TaskStatus(status)
		if !st.Valid() {
			return nil, errInvalidStatus
		}
		filter = &st
	}
	return s.tasks.ListForUser(ctx, requester.UserID, filter)
}

func (s *TaskService) GetTask(ctx context.Context, requester models.Identity, taskID int64) (models.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return models.Task{}, err
	}
	if !access.CanViewTask(requester, task) {
		logSecurity("view task", requester, taskID)
		return models.Task{}, apperror.ErrViewTaskDenied
	}
	return task, nil
}

// UpdateTask applies the fields present in patch. Creator and assignee may
// both edit, including reassignment.
func (s *TaskService) UpdateTask(ctx context.Context, requester models.Identity, taskID int64, patch models.TaskPatch) (models.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return models.Task{}, err
	}
	if !access.CanEditTask(requester, task) {
		logSecurity("update task", requester, taskID)
		return models.Task{}, apperror.ErrUpdateTaskDenied
	}
	if patch.Empty() {
		return task, nil
	}

	previousAssignee := task.AssignedTo.ID
	if patch.Title != nil {
		if task.Title, err = checkText(*patch.Title, models.MaxTitleLength, errTitleRequired, errTitleTooLong); err != nil {
			return models.Task{}, err
		}
	}
	if patch.Description != nil {
		if task.Description, err = checkText(*patch.Description, models.MaxDescriptionLength, errDescriptionRequired, errDescriptionTooLong); err != nil {
			return models.Task{}, err
		}
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return models.Task{}, errInvalidStatus
		}
		task.Status = *patch.Status
	}
	if patch.AssignedTo != nil && *patch.AssignedTo != task.AssignedTo.ID {
		if *patch.AssignedTo <= 0 {
			return models.Task{}, errAssigneeRequired
		}
		assignee, err := s.findAssignee(ctx, *patch.AssignedTo)
		if err != nil {
			return models.Task{}, err
		}
		task.AssignedTo = assignee.Summary()
	}

	task.UpdatedAt = s.opts.now()
	if err := s.tasks.Update(ctx, task); err != nil {
		return models.Task{}, err
	}

	logger.AuditLogger.Info("Task updated successfully", zap.Int64("task_id", taskID), zap.Int64("user_id", requester.UserID))
	s.notify(requester, models.EventTaskUpdated, task, previousAssignee)
	return task, nil
}

// DeleteTask removes the task and then its comments. Only the creator may
// delete. A failed comment purge is logged, not returned; comment reads go
// through the task and cannot reach the leftovers.
func (s *TaskService) DeleteTask(ctx context.Context, requester models.Identity, taskID int64) error {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	if !access.CanDeleteTask(requester, task) {
		logSecurity("delete task", requester, taskID)
		return apperror.ErrDeleteTaskDenied
	}

	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return err
	}
	removed, err := s.comments.DeleteByTask(ctx, taskID)
	if err != nil {
		logger.ErrorLogger.Error("Error deleting comments of deleted task", zap.Int64("task_id", taskID), zap.Error(err))
	}

	logger.AuditLogger.Info("Task deleted successfully",
		zap.Int64("task_id", taskID), zap.Int64("user_id", requester.UserID), zap.Int64("comments_removed", removed))
	s.notify(requester, models.EventTaskDeleted, task)
	return nil
}

func (s *TaskService) findAssignee(ctx context.Context, id int64) (models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrUserNotFound) {
			return models.User{}, apperror.ErrAssigneeNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *TaskService) notify(requester models.Identity, eventType string, task models.Task, extra ...int64) {
	ids := append([]int64{task.CreatedBy.ID, task.AssignedTo.ID}, extra...)
	s.opts.notifier.Notify(recipients(requester.UserID, ids...), models.Event{
		Type:    eventType,
		TaskID:  task.ID,
		ActorID: requester.UserID,
	})
}

func logSecurity(action string, requester models.Identity, resourceID int64) {
	logger.SecurityLogger.Warn("Forbidden",
		zap.String("action", action), zap.Int64("user_id", requester.UserID), zap.Int64("resource_id", resourceID))
}
