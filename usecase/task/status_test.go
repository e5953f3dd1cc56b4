package task

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/backend/domain"
)

func TestSetStatusRejectsUnknownValue(t *testing.T) {
	engine, tasks, _, _ := newTestEngine()
	tasks.seed(&domain.Task{ID: "t1", Title: "T", DueDate: futureDue()})

	for _, bad := range []domain.Status{"Blocked", "done", ""} {
		_, err := engine.SetStatus(context.Background(), manager(), "t1", bad)
		assert.ErrorIs(t, err, domain.ErrInvalidStatus, "status %q", bad)
	}
	assert.Zero(t, tasks.mutations)
}

func TestSetStatusNoOp(t *testing.T) {
	engine, tasks, _, audit := newTestEngine()
	tasks.seed(&domain.Task{ID: "t1", Title: "T", DueDate: futureDue()})

	task, err := engine.SetStatus(context.Background(), manager(), "t1", domain.StatusToDo)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusToDo, task.Status.Current)
	assert.Empty(t, task.Status.History)
	assert.Equal(t, 1, task.Versioning.Current)
	assert.Zero(t, tasks.mutations)
	assert.Empty(t, audit.records)
}

func TestSetStatusDependencyGuard(t *testing.T) {
	engine, tasks, _, _ := newTestEngine()
	tasks.seed(&domain.Task{ID: "b", Title: "B", DueDate: futureDue()})
	tasks.seed(&domain.Task{ID: "a", Title: "A", DueDate: futureDue(), Dependencies: []string{"b"}})

	for _, blocked := range []domain.Status{domain.StatusInProgress, domain.StatusDone} {
		_, err := engine.SetStatus(context.Background(), manager(), "a", blocked)
		assert.ErrorIs(t, err, domain.ErrDependenciesIncomplete, "status %q", blocked)
	}
	assert.Zero(t, tasks.mutations)

	// Finish the dependency, then the same call succeeds.
	_, err := engine.SetStatus(context.Background(), manager(), "b", domain.StatusDone)
	require.NoError(t, err)

	updated, err := engine.SetStatus(context.Background(), manager(), "a", domain.StatusDone)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, updated.Status.Current)
	require.Len(t, updated.Status.History, 1)
	assert.Equal(t, domain.StatusToDo, updated.Status.History[0].Status)
	assert.Equal(t, "mgr-1", updated.Status.History[0].ChangedBy)
}

func TestSetStatusHistoryIsNewestFirst(t *testing.T) {
	engine, tasks, _, _ := newTestEngine()
	tasks.seed(&domain.Task{ID: "t1", Title: "T", DueDate: futureDue()})

	ctx := context.Background()
	_, err := engine.SetStatus(ctx, manager(), "t1", domain.StatusInProgress)
	require.NoError(t, err)
	task, err := engine.SetStatus(ctx, manager(), "t1", domain.StatusDone)
	require.NoError(t, err)

	require.Len(t, task.Status.History, 2)
	assert.Equal(t, domain.StatusInProgress, task.Status.History[0].Status)
	assert.Equal(t, domain.StatusToDo, task.Status.History[1].Status)
}

func TestSetStatusBackwardsNeedsNoDependencies(t *testing.T) {
	engine, tasks, _, _ := newTestEngine()
	tasks.seed(&domain.Task{ID: "b", Title: "B", DueDate: futureDue()})
	tasks.seed(&domain.Task{
		ID:           "a",
		Title:        "A",
		DueDate:      futureDue(),
		Dependencies: []string{"b"},
		Status:       domain.StatusLog{Current: domain.StatusInProgress},
	})

	// Leaving a guarded state is always allowed.
	task, err := engine.SetStatus(context.Background(), manager(), "a", domain.StatusToDo)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusToDo, task.Status.Current)
	require.Len(t, task.Status.History, 1)
	assert.Equal(t, domain.StatusInProgress, task.Status.History[0].Status)
}

func TestSetStatusTaskNotFound(t *testing.T) {
	engine, _, _, _ := newTestEngine()
	_, err := engine.SetStatus(context.Background(), manager(), "ghost", domain.StatusDone)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestStatusUpdateScenario(t *testing.T) {
	// Task A depends on B; A cannot finish until B does, then A's
	// history gains exactly one entry recording the prior status.
	engine, tasks, _, audit := newTestEngine()
	tasks.seed(&domain.Task{ID: "b", Title: "B", DueDate: futureDue()})
	tasks.seed(&domain.Task{ID: "a", Title: "A", DueDate: futureDue(), Dependencies: []string{"b"}})

	ctx := context.Background()
	_, err := engine.SetStatus(ctx, manager(), "a", domain.StatusDone)
	require.ErrorIs(t, err, domain.ErrDependenciesIncomplete)

	_, err = engine.SetStatus(ctx, manager(), "b", domain.StatusDone)
	require.NoError(t, err)

	a, err := engine.SetStatus(ctx, manager(), "a", domain.StatusDone)
	require.NoError(t, err)
	require.Len(t, a.Status.History, 1)
	assert.Equal(t, domain.StatusToDo, a.Status.History[0].Status)
	assert.Len(t, audit.records, 2)
}
