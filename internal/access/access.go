// Package access holds the ownership rules for tasks and comments. Every
// function is a pure predicate; callers turn a false result into a
// forbidden error.
package access

import "team-collab/internal/models"

// CanViewTask reports whether user is the task's creator or assignee.
func CanViewTask(user models.Identity, task models.Task) bool {
	return user.UserID == task.CreatedBy.ID || user.UserID == task.AssignedTo.ID
}

// CanEditTask allows the creator and the assignee to change title,
// description, status and assignee.
func CanEditTask(user models.Identity, task models.Task) bool {
	return CanViewTask(user, task)
}

// CanDeleteTask is creator only.
func CanDeleteTask(user models.Identity, task models.Task) bool {
	return user.UserID == task.CreatedBy.ID
}

func CanViewComments(user models.Identity, task models.Task) bool {
	return CanViewTask(user, task)
}

func CanAddComment(user models.Identity, task models.Task) bool {
	return CanViewTask(user, task)
}

// CanEditComment is author only, whatever the user's relation to the task.
func CanEditComment(user models.Identity, comment models.Comment) bool {
	return user.UserID == comment.Author.ID
}

func CanDeleteComment(user models.Identity, comment models.Comment) bool {
	return user.UserID == comment.Author.ID
}
