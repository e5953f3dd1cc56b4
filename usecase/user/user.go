package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/repository"
	"github.com/taskdeck/backend/usecase"
)

const minPasswordLen = 8

type UseCase struct {
	users  repository.UserRepository
	audit  usecase.AuditRecorder
	logger *zap.Logger

	now   func() time.Time
	newID func() string
}

func New(users repository.UserRepository, audit usecase.AuditRecorder, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if audit == nil {
		audit = usecase.NopAudit{}
	}
	return &UseCase{
		users:  users,
		audit:  audit,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// CreateInput carries the fields accepted at account creation.
type CreateInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
	Status   string
}

// Create registers a new account with a bcrypt-hashed password. Email
// addresses are unique across the platform.
func (uc *UseCase) Create(ctx context.Context, input CreateInput) (*domain.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if name == "" || email == "" || input.Password == "" {
		return nil, domain.InvalidInput("name, email and password are required")
	}
	if !strings.Contains(email, "@") {
		return nil, domain.InvalidInput("email is not valid")
	}
	if len(input.Password) < minPasswordLen {
		return nil, domain.InvalidInput(fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}
	if !input.Role.Valid() {
		return nil, domain.InvalidInput(fmt.Sprintf("role %q is not recognized", input.Role))
	}

	if _, err := uc.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.Internal(err)
	}

	status := input.Status
	if status == "" {
		status = "active"
	}
	now := uc.now()
	created := &domain.User{
		ID:           uc.newID(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         input.Role,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Upsert(ctx, created); err != nil {
		return nil, err
	}

	uc.audit.Record(fmt.Sprintf("Tag: User created || user_id: %s || user_name: %s || role: %s", created.ID, created.Name, created.Role))
	return created, nil
}

// Get returns a single account.
func (uc *UseCase) Get(ctx context.Context, id string) (*domain.User, error) {
	return uc.users.GetByID(ctx, id)
}

// List returns accounts, optionally narrowed by role.
func (uc *UseCase) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	return uc.users.List(ctx, filter)
}
