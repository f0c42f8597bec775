package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"team-collab/internal/apperror"
	"team-collab/internal/models"
	"team-collab/internal/service"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type fakeUsers struct {
	mu      sync.Mutex
	nextID  int64
	byID    map[int64]models.User
	creates int
}

func (f *fakeUsers) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID)
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[int64]models.User{}}
}

func (f *fakeUsers) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	for _, u := range f.byID {
		if u.Email == user.Email {
			return apperror.ErrUserExists
		}
	}
	f.nextID++
	user.ID = f.nextID
	f.byID[user.ID] = *user
	return nil
}

func (f *fakeUsers) FindByID(_ context.Context, id int64) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return models.User{}, apperror.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, apperror.ErrUserNotFound
}

func (f *fakeUsers) List(_ context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := make([]models.User, 0, len(f.byID))
	for _, u := range f.byID {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

func (f *fakeUsers) Update(_ context.Context, user models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[user.ID]; !ok {
		return apperror.ErrUserNotFound
	}
	for _, u := range f.byID {
		if u.ID != user.ID && u.Email == user.Email {
			return apperror.ErrEmailTaken
		}
	}
	f.byID[user.ID] = user
	return nil
}

type fakeTasks struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]models.Task
}

func newFakeTasks() *fakeTasks {
	return &fakeTasks{byID: map[int64]models.Task{}}
}

func (f *fakeTasks) Create(_ context.Context, task models.Task) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	task.ID = f.nextID
	f.byID[task.ID] = task
	return task.ID, nil
}

func (f *fakeTasks) FindByID(_ context.Context, id int64) (models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byID[id]
	if !ok {
		return models.Task{}, apperror.ErrTaskNotFound
	}
	return t, nil
}

func (f *fakeTasks) ListForUser(_ context.Context, userID int64, status *models.TaskStatus) ([]models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Task
	for _, t := range f.byID {
		if t.CreatedBy.ID != userID && t.AssignedTo.ID != userID {
			continue
		}
		if status != nil && t.Status != *status {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeTasks) Update(_ context.Context, task models.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[task.ID]; !ok {
		return apperror.ErrTaskNotFound
	}
	f.byID[task.ID] = task
	return nil
}

func (f *fakeTasks) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return apperror.ErrTaskNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeComments struct {
	mu        sync.Mutex
	nextID    int64
	byID      map[int64]models.Comment
	deleteErr error
}

func newFakeComments() *fakeComments {
	return &fakeComments{byID: map[int64]models.Comment{}}
}

func (f *fakeComments) Create(_ context.Context, comment models.Comment) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	comment.ID = f.nextID
	f.byID[comment.ID] = comment
	return comment.ID, nil
}

func (f *fakeComments) FindByID(_ context.Context, id int64) (models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[id]
	if !ok {
		return models.Comment{}, apperror.ErrCommentNotFound
	}
	return c, nil
}

func (f *fakeComments) ListByTask(_ context.Context, taskID int64) ([]models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Comment{}
	for _, c := range f.byID {
		if c.TaskID == taskID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeComments) Update(_ context.Context, comment models.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[comment.ID]; !ok {
		return apperror.ErrCommentNotFound
	}
	f.byID[comment.ID] = comment
	return nil
}

func (f *fakeComments) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return apperror.ErrCommentNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeComments) DeleteByTask(_ context.Context, taskID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	var n int64
	for id, c := range f.byID {
		if c.TaskID == taskID {
			delete(f.byID, id)
			n++
		}
	}
	return n, nil
}

type sentEvent struct {
	userIDs []int64
	event   models.Event
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentEvent
}

func (n *recordingNotifier) Notify(userIDs []int64, event models.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentEvent{userIDs: userIDs, event: event})
}

func (n *recordingNotifier) last() sentEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.sent) == 0 {
		return sentEvent{}
	}
	return n.sent[len(n.sent)-1]
}

type stubIssuer struct{}

func (stubIssuer) Issue(identity models.Identity) (string, error) {
	return "token-for-" + identity.Email, nil
}

// env wires every service over the same in-memory stores.
type env struct {
	users    *fakeUsers
	tasks    *fakeTasks
	comments *fakeComments
	notifier *recordingNotifier

	auth       *service.AuthService
	userSvc    *service.UserService
	taskSvc    *service.TaskService
	commentSvc *service.CommentService
}

func newEnv() *env {
	e := &env{
		users:    newFakeUsers(),
		tasks:    newFakeTasks(),
		comments: newFakeComments(),
		notifier: &recordingNotifier{},
	}
	validate := service.NewValidator()
	opts := []service.Option{service.WithClock(fixedClock), service.WithNotifier(e.notifier)}

	e.auth = service.NewAuthService(e.users, stubIssuer{}, validate, 4, opts...)
	e.userSvc = service.NewUserService(e.users, validate, opts...)
	e.taskSvc = service.NewTaskService(e.tasks, e.comments, e.users, opts...)
	e.commentSvc = service.NewCommentService(e.comments, e.tasks, e.users, opts...)
	return e
}

func (e *env) addUser(name, email string) models.Identity {
	u := models.User{Name: name, Email: email, PasswordHash: "x", Role: models.RoleUser}
	if err := e.users.Create(context.Background(), &u); err != nil {
		panic(err)
	}
	return models.Identity{UserID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
