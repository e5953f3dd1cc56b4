package task

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/backend/domain"
)

func TestAssignUsers(t *testing.T) {
	engine, tasks, users, audit := newTestEngine()
	tasks.seed(&domain.Task{ID: "t1", Title: "T", DueDate: futureDue()})
	users.seed(&domain.User{ID: "u1", Name: "Ada", Role: domain.RoleTeamMember})
	users.seed(&domain.User{ID: "u2", Name: "Grace", Role: domain.RoleTeamMember})

	task, err := engine.AssignUsers(context.Background(), manager(), "t1", []string{"u1", "u2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, task.AssignedUsers)

	// Both sides of the relation are persisted.
	u1, err := users.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"t1"}, u1.AssignedTasks)
	require.Len(t, audit.records, 1)
	assert.Contains(t, audit.records[0], "Assigned Task")
}

func TestAssignUsersDuplicateRejectedAtomically(t *testing.T) {
	engine, tasks, users, _ := newTestEngine()
	tasks.seed(&domain.Task{ID: "t1", Title: "T", DueDate: futureDue()})
	users.seed(&domain.User{ID: "u1", Name: "Ada", Role: domain.RoleTeamMember})
	users.seed(&domain.User{ID: "u2", Name: "Grace", Role: domain.RoleTeamMember})

	ctx := context.Background()
	_, err := engine.AssignUsers(ctx, manager(), "t1", []string{"u1"})
	require.NoError(t, err)
	userMutations := users.mutations
	taskMutations := tasks.mutations

	// Re-assigning u1 fails, and the batch partner u2 is not applied.
	_, err = engine.AssignUsers(ctx, manager(), "t1", []string{"u2", "u1"})
	assert.ErrorIs(t, err, domain.ErrAlreadyAssigned)

	stored, err := tasks.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, stored.AssignedUsers)
	assert.Equal(t, userMutations, users.mutations)
	assert.Equal(t, taskMutations, tasks.mutations)

	u2, err := users.GetByID(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, u2.AssignedTasks)
}

func TestAssignUsersRejectsDuplicateWithinBatch(t *testing.T) {
	engine, tasks, users, _ := newTestEngine()
	tasks.seed(&domain.Task{ID: "t1", Title: "T", DueDate: futureDue()})
	users.seed(&domain.User{ID: "u1", Name: "Ada", Role: domain.RoleTeamMember})

	_, err := engine.AssignUsers(context.Background(), manager(), "t1", []string{"u1", "u1"})
	assert.ErrorIs(t, err, domain.ErrAlreadyAssigned)
	assert.Zero(t, tasks.mutations)
}

func TestAssignUsersSkipsUnresolvedIDs(t *testing.T) {
	engine, tasks, users, _ := newTestEngine()
	tasks.seed(&domain.Task{ID: "t1", Title: "T", DueDate: futureDue()})
	users.seed(&domain.User{ID: "u1", Name: "Ada", Role: domain.RoleTeamMember})

	task, err := engine.AssignUsers(context.Background(), manager(), "t1", []string{"ghost", "u1"})
	require.NoError(t, err)
	// The unresolved id is dropped, not persisted and not an error.
	assert.Equal(t, []string{"u1"}, task.AssignedUsers)
}

func TestAssignUsersTaskNotFound(t *testing.T) {
	engine, _, _, _ := newTestEngine()
	_, err := engine.AssignUsers(context.Background(), manager(), "ghost", []string{"u1"})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}
