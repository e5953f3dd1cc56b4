package task

import (
	"context"
	"fmt"

	"github.com/taskdeck/backend/domain"
)

// AddDependency declares "task requires dependencyID done first".
//
// Validation is edge-local: the new edge is checked against the target
// task only. A direct self-reference is rejected, a longer indirect
// cycle (A -> B -> C -> A) is not detected.
func (e *Engine) AddDependency(ctx context.Context, ident domain.Identity, id, dependencyID string) (*domain.Task, error) {
	task, err := e.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, asDomain(err)
	}
	loaded := task.Versioning.Current

	if task.DependsOn(dependencyID) {
		return nil, domain.ErrDuplicateDependency
	}
	if dependencyID == task.ID {
		return nil, domain.ErrSelfDependency
	}
	if _, err := e.tasks.GetByID(ctx, dependencyID); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.WrapError(domain.ErrCodeNotFound, fmt.Sprintf("dependency task %s not found", dependencyID), domain.ErrTaskNotFound)
		}
		return nil, asDomain(err)
	}

	task.Dependencies = append(task.Dependencies, dependencyID)
	task.Versioning.Current++
	if err := e.saveTask(ctx, task, loaded); err != nil {
		return nil, err
	}
	e.auditTask("Added Dependency", ident, task)
	return task, nil
}
