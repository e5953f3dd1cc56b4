package task

import (
	"context"
	"fmt"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/repository"
)

// SetStatus moves the task into the requested state.
//
// A request for the state the task is already in is a strict no-op:
// nothing is persisted and no history entry is written. Entering
// "In Progress" or "Done" requires every dependency that still resolves
// to be done; dependency ids whose task was deleted no longer block.
func (e *Engine) SetStatus(ctx context.Context, ident domain.Identity, id string, status domain.Status) (*domain.Task, error) {
	if !status.Valid() {
		return nil, domain.WrapError(domain.ErrCodeInvalid, fmt.Sprintf("status %q is not recognized", status), domain.ErrInvalidStatus)
	}

	task, err := e.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, asDomain(err)
	}
	if task.Status.Current == status {
		return task, nil
	}
	loaded := task.Versioning.Current

	if status == domain.StatusInProgress || status == domain.StatusDone {
		if err := e.checkDependenciesDone(ctx, task); err != nil {
			return nil, err
		}
	}

	task.RecordStatus(status, ident.ID, e.now())
	task.Versioning.Current++
	if err := e.saveTask(ctx, task, loaded); err != nil {
		return nil, err
	}
	e.auditTask("Updated Task Status", ident, task)
	return task, nil
}

func (e *Engine) checkDependenciesDone(ctx context.Context, task *domain.Task) error {
	if len(task.Dependencies) == 0 {
		return nil
	}
	deps, err := e.tasks.List(ctx, repository.TaskFilter{IDs: task.Dependencies})
	if err != nil {
		return asDomain(err)
	}
	for i := range deps {
		if !deps[i].IsDone() {
			return domain.ErrDependenciesIncomplete
		}
	}
	return nil
}
