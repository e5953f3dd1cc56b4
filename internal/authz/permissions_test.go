package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskdeck/backend/domain"
)

func TestAdminAllowedEverything(t *testing.T) {
	table := NewTable()
	actions := []Action{
		ActionCreateTask,
		ActionUpdateTask,
		ActionUpdateTaskStatus,
		ActionDeleteTask,
		ActionAssignTask,
		ActionAddDependency,
	}
	for _, a := range actions {
		assert.True(t, table.IsAllowed(domain.RoleAdmin, a), "admin denied %s", a)
	}
}

func TestRoleAllowLists(t *testing.T) {
	table := NewTable()

	tests := []struct {
		role    domain.Role
		action  Action
		allowed bool
	}{
		{domain.RoleProjectManager, ActionCreateTask, true},
		{domain.RoleProjectManager, ActionUpdateTask, true},
		{domain.RoleProjectManager, ActionUpdateTaskStatus, true},
		{domain.RoleProjectManager, ActionAddDependency, true},
		{domain.RoleProjectManager, ActionAssignTask, true},
		{domain.RoleProjectManager, ActionDeleteTask, false},

		{domain.RoleTeamLead, ActionUpdateTaskStatus, true},
		{domain.RoleTeamLead, ActionAddDependency, true},
		{domain.RoleTeamLead, ActionAssignTask, true},
		{domain.RoleTeamLead, ActionCreateTask, false},
		{domain.RoleTeamLead, ActionUpdateTask, false},
		{domain.RoleTeamLead, ActionDeleteTask, false},

		{domain.RoleTeamMember, ActionUpdateTaskStatus, true},
		{domain.RoleTeamMember, ActionCreateTask, false},
		{domain.RoleTeamMember, ActionUpdateTask, false},
		{domain.RoleTeamMember, ActionDeleteTask, false},
		{domain.RoleTeamMember, ActionAssignTask, false},
		{domain.RoleTeamMember, ActionAddDependency, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, table.IsAllowed(tt.role, tt.action),
			"%s / %s", tt.role, tt.action)
	}
}

func TestUnknownRoleDeniedEverything(t *testing.T) {
	table := NewTable()
	for _, a := range []Action{ActionCreateTask, ActionUpdateTaskStatus, ActionDeleteTask} {
		assert.False(t, table.IsAllowed(domain.Role("contractor"), a))
		assert.False(t, table.IsAllowed(domain.Role(""), a))
	}
}
