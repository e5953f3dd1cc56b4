package repository

import (
	"context"

	"github.com/taskdeck/backend/domain"
)

// TaskFilter narrows List results. Zero values mean "no constraint".
type TaskFilter struct {
	IDs          []string
	AssignedUser string
	Status       domain.Status
	Limit        int
	Offset       int
}

// TaskRepository is the persistence collaborator of the task engine.
// Update performs an optimistic check against expectedVersion and
// returns domain.ErrVersionConflict when the stored row has moved on.
type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task, expectedVersion int) error
	Delete(ctx context.Context, id string) error
}
