package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role. The empty role is not valid;
// callers default it to RoleUser before persisting.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	return s == TaskStatusPending || s == TaskStatusCompleted
}

// Field bounds shared by validation in the services and the handlers.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
	MaxCommentLength     = 500
)

// User is the stored account. PasswordHash never leaves the service layer
// in a response body.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// UserSummary is the display projection embedded in tasks and comments.
type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

type Task struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Status      TaskStatus  `json:"status"`
	CreatedBy   UserSummary `json:"createdBy"`
	AssignedTo  UserSummary `json:"assignedTo"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// TaskPatch carries a partial task update. A nil field is left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	AssignedTo  *int64
}

func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && p.AssignedTo == nil
}

type Comment struct {
	ID        int64       `json:"id"`
	Text      string      `json:"text"`
	TaskID    int64       `json:"taskId"`
	Author    UserSummary `json:"userId"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// ProfilePatch carries a partial profile update. A nil field is left untouched.
type ProfilePatch struct {
	Name  *string
	Email *string
}

// Identity is the authenticated caller decoded from a bearer token. It is
// passed explicitly into every authenticated service call.
type Identity struct {
	UserID int64
	Name   string
	Email  string
	Role   Role
}

// Event is pushed to connected clients after a task or comment changes.
type Event struct {
	Type      string `json:"type"`
	TaskID    int64  `json:"taskId"`
	CommentID int64  `json:"commentId,omitempty"`
	ActorID   int64  `json:"actorId"`
}

const (
	EventTaskCreated    = "task.created"
	EventTaskUpdated    = "task.updated"
	EventTaskDeleted    = "task.deleted"
	EventCommentCreated = "comment.created"
	EventCommentUpdated = "comment.updated"
	EventCommentDeleted = "comment.deleted"
)
