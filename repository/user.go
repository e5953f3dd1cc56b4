package repository

import (
	"context"

	"github.com/taskdeck/backend/domain"
)

// UserFilter narrows List results.
type UserFilter struct {
	Role   domain.Role
	Limit  int
	Offset int
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]domain.User, error)
	Upsert(ctx context.Context, user *domain.User) error
}
