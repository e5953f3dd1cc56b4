package transport

// CreateTaskRequest is the payload for POST /api/v1/tasks. DueDate is
// RFC3339.
type CreateTaskRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	DueDate       string   `json:"due_date"`
	ParentTaskID  string   `json:"parent_task_id"`
	Dependencies  []string `json:"dependencies"`
	AssignedUsers []string `json:"assigned_users"`
}

// UpdateTaskRequest is the payload for PUT /api/v1/tasks/{id}. Absent
// fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type AssignRequest struct {
	UserIDs []string `json:"user_ids"`
}

type DependencyRequest struct {
	DependencyID string `json:"dependency_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TTL      int    `json:"ttl_seconds"`
}

type RefreshRequest struct {
	TTL int `json:"ttl_seconds"`
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

// LoginResponse pairs the issued token with the session it references.
type LoginResponse struct {
	Token   string      `json:"token"`
	Session interface{} `json:"session"`
}
