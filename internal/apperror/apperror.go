// Package apperror defines the error kinds returned by the services. The
// transport layer is the only place that turns a kind into a status code.
package apperror

import (
	"errors"
	"fmt"
)

// Kind is the category of an application error.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindForbidden
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is a categorized application error. Key is the translation message
// id, Message the English fallback shown when no translation exists.
type Error struct {
	Kind    Kind
	Key     string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on kind and key so wrapped copies still compare equal to the
// package sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Key == t.Key
}

func New(kind Kind, key, message string) *Error {
	return &Error{Kind: kind, Key: key, Message: message}
}

func Validation(key, message string) *Error {
	return New(KindValidation, key, message)
}

// Internal wraps an unexpected failure, usually from persistence.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Key: "internalError", Message: message, Err: err}
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

var (
	ErrInvalidCredentials = New(KindAuth, "invalidCredentials", "Invalid credentials")
	ErrInvalidToken       = New(KindAuth, "invalidToken", "Invalid token")
	ErrTokenExpired       = New(KindAuth, "tokenExpired", "Token expired")

	ErrUserNotFound     = New(KindNotFound, "userNotFound", "User not found")
	ErrAssigneeNotFound = New(KindNotFound, "assigneeNotFound", "Assigned user not found")
	ErrTaskNotFound     = New(KindNotFound, "taskNotFound", "Task not found")
	ErrCommentNotFound  = New(KindNotFound, "commentNotFound", "Comment not found")

	ErrUserExists = New(KindConflict, "userExists", "User already exists")
	ErrEmailTaken = New(KindConflict, "emailTaken", "Email already in use")

	ErrViewTaskDenied      = New(KindForbidden, "viewTaskDenied", "Access denied. You can only view tasks created by you or assigned to you.")
	ErrUpdateTaskDenied    = New(KindForbidden, "updateTaskDenied", "Access denied. You can only update tasks created by you or assigned to you.")
	ErrDeleteTaskDenied    = New(KindForbidden, "deleteTaskDenied", "Access denied. Only the task creator can delete this task.")
	ErrViewCommentsDenied  = New(KindForbidden, "viewCommentsDenied", "Access denied. You can only view comments on tasks you created or are assigned to.")
	ErrAddCommentDenied    = New(KindForbidden, "addCommentDenied", "Access denied. You can only comment on tasks you created or are assigned to.")
	ErrUpdateCommentDenied = New(KindForbidden, "updateCommentDenied", "Access denied. You can only update your own comments.")
	ErrDeleteCommentDenied = New(KindForbidden, "deleteCommentDenied", "Access denied. You can only delete your own comments.")
)
