package domain

import "time"

// Role is one of the four access levels recognized by the permission table.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleProjectManager Role = "project_manager"
	RoleTeamLead       Role = "team_lead"
	RoleTeamMember     Role = "team_member"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleProjectManager, RoleTeamLead, RoleTeamMember:
		return true
	}
	return false
}

// User represents an account in the platform. AssignedTasks is a
// derived back-reference maintained by the assignment flow; the
// authoritative relation lives on Task.AssignedUsers.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Role          Role      `json:"role"`
	Status        string    `json:"status"`
	AssignedTasks []string  `json:"assigned_tasks"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (u *User) IsActive() bool {
	return u != nil && u.Status == "active"
}

// Identity is the verified caller passed through the authorization
// gate into the engine. A nil Identity means unauthenticated.
type Identity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}
