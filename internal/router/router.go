package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskdeck/backend/api/handler"
)

type Handlers struct {
	Auth   *apiHandler.AuthHandler
	User   *apiHandler.UserHandler
	Task   *apiHandler.TaskHandler
	Report *apiHandler.ReportHandler
	Audit  *apiHandler.AuditHandler
	Health *apiHandler.HealthHandler
}

// New wires the route table. Routes behind authMiddleware require a
// valid bearer token; per-action permissions are enforced further down
// by the task usecase gate, not here.
func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)
	r.POST("/api/v1/auth/logout", authMiddleware(handlers.Auth.Logout))

	// Signup is public; reading accounts is not.
	r.POST("/api/v1/users", handlers.User.CreateUser)
	r.GET("/api/v1/users", authMiddleware(handlers.User.ListUsers))
	r.GET("/api/v1/users/{id}", authMiddleware(handlers.User.GetUser))

	// Task routes
	r.GET("/api/v1/tasks", authMiddleware(handlers.Task.GetTasks))
	r.POST("/api/v1/tasks", authMiddleware(handlers.Task.CreateTask))
	r.PUT("/api/v1/tasks/{id}", authMiddleware(handlers.Task.UpdateTask))
	r.DELETE("/api/v1/tasks/{id}", authMiddleware(handlers.Task.DeleteTask))
	r.PATCH("/api/v1/tasks/{id}/status", authMiddleware(handlers.Task.UpdateStatus))
	r.POST("/api/v1/tasks/{id}/assignees", authMiddleware(handlers.Task.AssignUsers))
	r.POST("/api/v1/tasks/{id}/dependencies", authMiddleware(handlers.Task.AddDependency))

	// Reports
	r.GET("/api/v1/reports/busiest-assignee", authMiddleware(handlers.Report.BusiestAssignee))
	r.GET("/api/v1/reports/peak-created", authMiddleware(handlers.Report.PeakCreated))
	r.GET("/api/v1/reports/peak-completed", authMiddleware(handlers.Report.PeakCompleted))

	// Audit trail
	r.GET("/api/v1/audit", authMiddleware(handlers.Audit.Recent))

	return r
}
