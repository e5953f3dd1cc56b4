package task

import (
	"context"
	"fmt"
	"time"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/repository"
)

// fakeTaskRepo is an in-memory TaskRepository that mimics the optimistic
// version check of the Postgres implementation and counts mutations so
// tests can assert "nothing was persisted".
type fakeTaskRepo struct {
	tasks     map[string]*domain.Task
	mutations int
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(task), nil
}

func (r *fakeTaskRepo) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	var out []domain.Task
	for _, task := range r.tasks {
		if len(filter.IDs) > 0 && !contains(filter.IDs, task.ID) {
			continue
		}
		if filter.AssignedUser != "" && !task.IsAssigned(filter.AssignedUser) {
			continue
		}
		if filter.Status != "" && task.Status.Current != filter.Status {
			continue
		}
		out = append(out, *cloneTask(task))
	}
	return out, nil
}

func (r *fakeTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.tasks[task.ID] = cloneTask(task)
	r.mutations++
	return cloneTask(task), nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *domain.Task, expectedVersion int) error {
	stored, ok := r.tasks[task.ID]
	if !ok {
		return domain.ErrTaskNotFound
	}
	if stored.Versioning.Current != expectedVersion {
		return domain.ErrVersionConflict
	}
	r.tasks[task.ID] = cloneTask(task)
	r.mutations++
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	r.mutations++
	return nil
}

// seed stores a task directly, bypassing the engine.
func (r *fakeTaskRepo) seed(task *domain.Task) {
	if task.Versioning.Current == 0 {
		task.Versioning.Current = 1
	}
	if task.Status.Current == "" {
		task.Status.Current = domain.StatusToDo
	}
	r.tasks[task.ID] = cloneTask(task)
}

type fakeUserRepo struct {
	users     map[string]*domain.User
	mutations int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context, filter repository.UserFilter) ([]domain.User, error) {
	var out []domain.User
	for _, user := range r.users {
		if filter.Role != "" && user.Role != filter.Role {
			continue
		}
		out = append(out, *cloneUser(user))
	}
	return out, nil
}

func (r *fakeUserRepo) Upsert(_ context.Context, user *domain.User) error {
	r.users[user.ID] = cloneUser(user)
	r.mutations++
	return nil
}

func (r *fakeUserRepo) seed(user *domain.User) {
	r.users[user.ID] = cloneUser(user)
}

type fakeAudit struct {
	records []string
}

func (a *fakeAudit) Record(message string) {
	a.records = append(a.records, message)
}

func cloneTask(t *domain.Task) *domain.Task {
	clone := *t
	clone.Dependencies = append([]string(nil), t.Dependencies...)
	clone.AssignedUsers = append([]string(nil), t.AssignedUsers...)
	clone.Status.History = append([]domain.StatusChange(nil), t.Status.History...)
	clone.Versioning.History = append([]domain.Revision(nil), t.Versioning.History...)
	return &clone
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	clone.AssignedTasks = append([]string(nil), u.AssignedTasks...)
	return &clone
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

// newTestEngine wires an engine onto fresh fakes with a fixed clock and
// a deterministic id sequence.
func newTestEngine() (*Engine, *fakeTaskRepo, *fakeUserRepo, *fakeAudit) {
	tasks := newFakeTaskRepo()
	users := newFakeUserRepo()
	audit := &fakeAudit{}

	engine := NewEngine(tasks, users, audit, nil, nil)
	engine.now = func() time.Time { return testNow }

	var seq int
	engine.newID = func() string {
		seq++
		return fmt.Sprintf("task-%03d", seq)
	}
	return engine, tasks, users, audit
}

func manager() domain.Identity {
	return domain.Identity{ID: "mgr-1", Name: "Mara", Role: domain.RoleProjectManager}
}
