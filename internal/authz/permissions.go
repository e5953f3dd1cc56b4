package authz

import "github.com/taskdeck/backend/domain"

// Action names a gated engine operation. The values match the mutation
// names exposed to the transport layer.
type Action string

const (
	ActionCreateTask       Action = "createTask"
	ActionUpdateTask       Action = "updateTask"
	ActionUpdateTaskStatus Action = "updateTaskStatus"
	ActionDeleteTask       Action = "deleteTask"
	ActionAssignTask       Action = "assignTask"
	ActionAddDependency    Action = "addDependency"
)

// Table is the immutable role to allowed-action mapping. It is built
// once at startup and injected into the authorization gate; admin is
// allowed everything, any pair absent from the map is denied.
type Table struct {
	allow map[domain.Role]map[Action]struct{}
}

// NewTable returns the default permission table.
func NewTable() *Table {
	return build(map[domain.Role][]Action{
		domain.RoleProjectManager: {
			ActionCreateTask,
			ActionUpdateTask,
			ActionUpdateTaskStatus,
			ActionAddDependency,
			ActionAssignTask,
		},
		domain.RoleTeamLead: {
			ActionUpdateTaskStatus,
			ActionAddDependency,
			ActionAssignTask,
		},
		domain.RoleTeamMember: {
			ActionUpdateTaskStatus,
		},
	})
}

func build(lists map[domain.Role][]Action) *Table {
	allow := make(map[domain.Role]map[Action]struct{}, len(lists))
	for role, actions := range lists {
		set := make(map[Action]struct{}, len(actions))
		for _, a := range actions {
			set[a] = struct{}{}
		}
		allow[role] = set
	}
	return &Table{allow: allow}
}

// IsAllowed reports whether the role may perform the action. Unknown
// roles are denied everything.
func (t *Table) IsAllowed(role domain.Role, action Action) bool {
	if role == domain.RoleAdmin {
		return true
	}
	set, ok := t.allow[role]
	if !ok {
		return false
	}
	_, ok = set[action]
	return ok
}
