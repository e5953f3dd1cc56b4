package task

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/internal/authz"
)

// Guard is the authorization gate in front of the lifecycle engine.
// Transport handlers hold a *Guard, never the *Engine itself, so every
// operation is provably gated: missing identity fails with
// UNAUTHENTICATED, a role without the required action with FORBIDDEN,
// and only then does the call reach the engine.
type Guard struct {
	engine *Engine
	perms  *authz.Table
	logger *zap.Logger
}

// NewGuard wraps the engine with the injected permission table.
func NewGuard(engine *Engine, perms *authz.Table, logger *zap.Logger) *Guard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Guard{
		engine: engine,
		perms:  perms,
		logger: logger,
	}
}

func (g *Guard) authorize(ident *domain.Identity, action authz.Action) error {
	if ident == nil || ident.ID == "" {
		return domain.ErrUnauthenticated
	}
	if !g.perms.IsAllowed(ident.Role, action) {
		g.logger.Info("action denied",
			zap.String("user_id", ident.ID),
			zap.String("role", string(ident.Role)),
			zap.String("action", string(action)))
		return domain.ForbiddenAction(string(action))
	}
	return nil
}

// Tasks requires authentication only; visibility narrowing happens in
// the engine.
func (g *Guard) Tasks(ctx context.Context, ident *domain.Identity) ([]domain.Task, error) {
	if ident == nil || ident.ID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return g.engine.Tasks(ctx, *ident)
}

func (g *Guard) CreateTask(ctx context.Context, ident *domain.Identity, input CreateInput) (*domain.Task, error) {
	if err := g.authorize(ident, authz.ActionCreateTask); err != nil {
		return nil, err
	}
	return g.engine.Create(ctx, *ident, input)
}

func (g *Guard) UpdateTask(ctx context.Context, ident *domain.Identity, id string, patch UpdatePatch) (*domain.Task, error) {
	if err := g.authorize(ident, authz.ActionUpdateTask); err != nil {
		return nil, err
	}
	return g.engine.Update(ctx, *ident, id, patch)
}

func (g *Guard) UpdateTaskStatus(ctx context.Context, ident *domain.Identity, id string, status domain.Status) (*domain.Task, error) {
	if err := g.authorize(ident, authz.ActionUpdateTaskStatus); err != nil {
		return nil, err
	}
	return g.engine.SetStatus(ctx, *ident, id, status)
}

func (g *Guard) DeleteTask(ctx context.Context, ident *domain.Identity, id string) error {
	if err := g.authorize(ident, authz.ActionDeleteTask); err != nil {
		return err
	}
	return g.engine.Delete(ctx, *ident, id)
}

func (g *Guard) AssignTask(ctx context.Context, ident *domain.Identity, id string, userIDs []string) (*domain.Task, error) {
	if err := g.authorize(ident, authz.ActionAssignTask); err != nil {
		return nil, err
	}
	return g.engine.AssignUsers(ctx, *ident, id, userIDs)
}

func (g *Guard) AddDependency(ctx context.Context, ident *domain.Identity, id, dependencyID string) (*domain.Task, error) {
	if err := g.authorize(ident, authz.ActionAddDependency); err != nil {
		return nil, err
	}
	return g.engine.AddDependency(ctx, *ident, id, dependencyID)
}
