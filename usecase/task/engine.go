package task

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/repository"
	"github.com/taskdeck/backend/usecase"
)

const (
	minTextLen = 3
	maxTextLen = 255
)

// Sanitizer cleans free-text fields before validation. Markup stripping
// is an external concern; the engine only requires that the function is
// pure and never lengthens its input.
type Sanitizer func(string) string

// Engine orchestrates the task lifecycle: creation, field updates,
// deletion, visibility, status transitions, dependency edges and user
// assignment. It holds no state of its own; per-task write serialization
// relies on the repository's optimistic version check.
type Engine struct {
	tasks    repository.TaskRepository
	users    repository.UserRepository
	audit    usecase.AuditRecorder
	sanitize Sanitizer
	logger   *zap.Logger

	now   func() time.Time
	newID func() string
}

// NewEngine builds the lifecycle engine. A nil sanitizer falls back to
// whitespace trimming, a nil audit recorder to a no-op sink.
func NewEngine(tasks repository.TaskRepository, users repository.UserRepository, audit usecase.AuditRecorder, sanitize Sanitizer, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if audit == nil {
		audit = usecase.NopAudit{}
	}
	if sanitize == nil {
		sanitize = strings.TrimSpace
	}
	return &Engine{
		tasks:    tasks,
		users:    users,
		audit:    audit,
		sanitize: sanitize,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// CreateInput carries the fields accepted at task creation.
type CreateInput struct {
	Title         string
	Description   string
	DueDate       time.Time
	ParentTaskID  string
	Dependencies  []string
	AssignedUsers []string
}

// UpdatePatch carries the fields a task update may change. Nil fields
// are left untouched.
type UpdatePatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
}

// Tasks returns the tasks visible to the caller. Team members only see
// tasks they are assigned to and get ErrNoTasksAssigned when that set
// is empty; every other role sees everything.
func (e *Engine) Tasks(ctx context.Context, ident domain.Identity) ([]domain.Task, error) {
	filter := repository.TaskFilter{}
	if ident.Role == domain.RoleTeamMember {
		filter.AssignedUser = ident.ID
	}
	tasks, err := e.tasks.List(ctx, filter)
	if err != nil {
		return nil, asDomain(err)
	}
	if ident.Role == domain.RoleTeamMember && len(tasks) == 0 {
		return nil, domain.ErrNoTasksAssigned
	}
	e.audit.Record(fmt.Sprintf("Tag: Fetched Tasks || actor: %s (%s) || task_count: %d", ident.Name, ident.ID, len(tasks)))
	return tasks, nil
}

// Create validates the input, resolves every reference and persists a
// new task in "To Do" at version 1.
func (e *Engine) Create(ctx context.Context, ident domain.Identity, input CreateInput) (*domain.Task, error) {
	title, err := e.cleanText("title", input.Title)
	if err != nil {
		return nil, err
	}
	description, err := e.cleanText("description", input.Description)
	if err != nil {
		return nil, err
	}
	if err := e.validateDueDate(input.DueDate); err != nil {
		return nil, err
	}

	deps, err := e.resolveDependencies(ctx, input.Dependencies)
	if err != nil {
		return nil, err
	}
	if input.ParentTaskID != "" {
		if _, err := e.tasks.GetByID(ctx, input.ParentTaskID); err != nil {
			if errors.Is(err, domain.ErrTaskNotFound) {
				return nil, domain.InvalidInput(fmt.Sprintf("parent task %s does not exist", input.ParentTaskID))
			}
			return nil, asDomain(err)
		}
	}
	for _, userID := range input.AssignedUsers {
		if _, err := e.users.GetByID(ctx, userID); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return nil, domain.InvalidInput(fmt.Sprintf("assigned user %s does not exist", userID))
			}
			return nil, asDomain(err)
		}
	}

	now := e.now()
	created := &domain.Task{
		ID:            e.newID(),
		Title:         title,
		Description:   description,
		DueDate:       input.DueDate,
		ParentTaskID:  input.ParentTaskID,
		Dependencies:  deps,
		AssignedUsers: append([]string(nil), input.AssignedUsers...),
		Status:        domain.StatusLog{Current: domain.StatusToDo},
		Versioning:    domain.Versioning{Current: 1},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err = e.tasks.Create(ctx, created)
	if err != nil {
		return nil, asDomain(err)
	}
	e.auditTask("Task created", ident, created)
	return created, nil
}

// Update applies the present patch fields, revalidating each with the
// creation rules, and records a revision entry naming what changed.
func (e *Engine) Update(ctx context.Context, ident domain.Identity, id string, patch UpdatePatch) (*domain.Task, error) {
	task, err := e.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, asDomain(err)
	}
	loaded := task.Versioning.Current

	var changed []string
	if patch.Title != nil {
		title, err := e.cleanText("title", *patch.Title)
		if err != nil {
			return nil, err
		}
		task.Title = title
		changed = append(changed, "title")
	}
	if patch.Description != nil {
		description, err := e.cleanText("description", *patch.Description)
		if err != nil {
			return nil, err
		}
		task.Description = description
		changed = append(changed, "description")
	}
	if patch.DueDate != nil {
		if err := e.validateDueDate(*patch.DueDate); err != nil {
			return nil, err
		}
		task.DueDate = *patch.DueDate
		changed = append(changed, "due_date")
	}

	if len(changed) > 0 {
		task.RecordRevision(strings.Join(changed, ", "), ident.ID, e.now())
	}
	if err := e.saveTask(ctx, task, loaded); err != nil {
		return nil, err
	}
	e.auditTask("Task updated", ident, task)
	return task, nil
}

// Delete removes the task outright. References held by other tasks are
// left dangling on purpose; dependency checks tolerate unresolved ids.
func (e *Engine) Delete(ctx context.Context, ident domain.Identity, id string) error {
	task, err := e.tasks.GetByID(ctx, id)
	if err != nil {
		return asDomain(err)
	}
	if err := e.tasks.Delete(ctx, id); err != nil {
		return asDomain(err)
	}
	e.auditTask("Deleted Task", ident, task)
	return nil
}

// resolveDependencies verifies that every referenced task exists and
// drops duplicate ids while keeping first-seen order.
func (e *Engine) resolveDependencies(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	seen := make(map[string]struct{}, len(ids))
	deps := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if _, err := e.tasks.GetByID(ctx, id); err != nil {
			if errors.Is(err, domain.ErrTaskNotFound) {
				return nil, domain.InvalidInput(fmt.Sprintf("dependency task %s does not exist", id))
			}
			return nil, asDomain(err)
		}
		deps = append(deps, id)
	}
	return deps, nil
}

func (e *Engine) cleanText(field, value string) (string, error) {
	cleaned := e.sanitize(strings.TrimSpace(value))
	if cleaned == "" {
		return "", domain.InvalidInput(fmt.Sprintf("%s is required", field))
	}
	if n := utf8.RuneCountInString(cleaned); n < minTextLen || n > maxTextLen {
		return "", domain.InvalidInput(fmt.Sprintf("%s must be between %d and %d characters", field, minTextLen, maxTextLen))
	}
	return cleaned, nil
}

func (e *Engine) validateDueDate(due time.Time) error {
	if due.IsZero() {
		return domain.InvalidInput("due date is required")
	}
	if !due.After(e.now()) {
		return domain.InvalidInput("due date must be in the future")
	}
	return nil
}

// saveTask persists the task against the version it was loaded at, so
// concurrent writers of the same task lose deterministically instead of
// silently clobbering each other.
func (e *Engine) saveTask(ctx context.Context, task *domain.Task, loadedVersion int) error {
	task.UpdatedAt = e.now()
	if err := e.tasks.Update(ctx, task, loadedVersion); err != nil {
		return asDomain(err)
	}
	return nil
}

func (e *Engine) auditTask(tag string, ident domain.Identity, task *domain.Task) {
	e.audit.Record(fmt.Sprintf(
		"Tag: %s || actor: %s (%s) || task_id: %s || task_title: %s || task_description: %s || task_assignedUsers: [%s] || task_status: %s",
		tag, ident.Name, ident.ID, task.ID, task.Title, task.Description,
		strings.Join(task.AssignedUsers, ", "), task.Status.Current,
	))
}

// asDomain passes classified errors through and wraps everything else
// as an internal failure.
func asDomain(err error) error {
	if err == nil {
		return nil
	}
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		return err
	}
	return domain.Internal(err)
}
