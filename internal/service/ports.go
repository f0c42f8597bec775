package service

import (
	"context"
	"time"

	"team-collab/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id int64) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user models.User) error
}

type TaskRepository interface {
	Create(ctx context.Context, task models.Task) (int64, error)
	FindByID(ctx context.Context, id int64) (models.Task, error)
	ListForUser(ctx context.Context, userID int64, status *models.TaskStatus) ([]models.Task, error)
	Update(ctx context.Context, task models.Task) error
	Delete(ctx context.Context, id int64) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment models.Comment) (int64, error)
	FindByID(ctx context.Context, id int64) (models.Comment, error)
	ListByTask(ctx context.Context, taskID int64) ([]models.Comment, error)
	Update(ctx context.Context, comment models.Comment) error
	Delete(ctx context.Context, id int64) error
	DeleteByTask(ctx context.Context, taskID int64) (int64, error)
}

// TokenIssuer signs session tokens for a logged-in identity.
type TokenIssuer interface {
	Issue(identity models.Identity) (string, error)
}

// Notifier delivers change events to connected users. Implementations must
// not block the caller.
type Notifier interface {
	Notify(userIDs []int64, event models.Event)
}

type noopNotifier struct{}

func (noopNotifier) Notify([]int64, models.Event) {}

type Option func(*options)

type options struct {
	now      func() time.Time
	notifier Notifier
}

// WithClock overrides the time source used for created/updated timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithNotifier(n Notifier) Option {
	return func(o *options) {
		if n != nil {
			o.notifier = n
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		now:      func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
		notifier: noopNotifier{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// recipients lists the users involved in a task, without the actor and
// without duplicates.
func recipients(actorID int64, userIDs ...int64) []int64 {
	out := make([]int64, 0, len(userIDs))
	for _, id := range userIDs {
		if id == actorID || id == 0 {
			continue
		}
		seen := false
		for _, existing := range out {
			if existing == id {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, id)
		}
	}
	return out
}
