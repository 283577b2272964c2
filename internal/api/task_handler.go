// Package api provides the route handlers that bind the dispatcher's
// verbs to TaskStore operations. Handlers own request-shape
// validation (required fields present, id well-formed) and reject bad
// requests with an empty 400 before the store is ever touched; every
// other outcome is whatever Result the store produced, passed through
// verbatim.
package api

import (
	"log/slog"

	"taskapp/internal/domain"
	"taskapp/internal/router"
	"taskapp/internal/store"
)

// TaskHandler handles task-related HTTP requests.
// Handlers are stateless and reentrant; all per-request state lives
// in the dispatch context.
type TaskHandler struct {
	store  store.TaskStore
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
// If logger is nil, the process default is used.
func NewTaskHandler(taskStore store.TaskStore, logger *slog.Logger) *TaskHandler {
	if taskStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("task store cannot be nil for TaskHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskHandler{
		store:  taskStore,
		logger: logger.With(slog.String("component", "task_handler")),
	}
}

// RegisterRoutes registers the four task endpoints on r.
func (h *TaskHandler) RegisterRoutes(r *router.Router) {
	r.Get("/tasks", h.ListTasks)
	r.Post("/tasks", h.CreateTask)
	r.Put("/tasks/{id}", h.UpdateTask)
	r.Delete("/tasks/{id}", h.DeleteTask)
}

// ListTasks handles GET /tasks requests.
func (h *TaskHandler) ListTasks(c *router.Context) router.Response {
	return respond(h.store.GetAll(c.Context()))
}

// CreateTask handles POST /tasks requests. Both title and content
// must be present in the merged parameter context.
func (h *TaskHandler) CreateTask(c *router.Context) router.Response {
	title, err := c.GetRequired("title")
	if err != nil {
		h.logger.Debug("create task rejected", "error", err)
		return router.BadRequest()
	}
	content, err := c.GetRequired("content")
	if err != nil {
		h.logger.Debug("create task rejected", "error", err)
		return router.BadRequest()
	}

	return respond(h.store.Add(c.Context(), title, content))
}

// UpdateTask handles PUT /tasks/{id} requests. The path id must be a
// positive integer and both fields must be present.
func (h *TaskHandler) UpdateTask(c *router.Context) router.Response {
	id := c.PathParams["id"]
	if _, err := domain.ParseID(id); err != nil {
		h.logger.Debug("update task rejected", "task_id", id, "error", err)
		return router.BadRequest()
	}
	title, err := c.GetRequired("title")
	if err != nil {
		h.logger.Debug("update task rejected", "task_id", id, "error", err)
		return router.BadRequest()
	}
	content, err := c.GetRequired("content")
	if err != nil {
		h.logger.Debug("update task rejected", "task_id", id, "error", err)
		return router.BadRequest()
	}

	return respond(h.store.Update(c.Context(), id, title, content))
}

// DeleteTask handles DELETE /tasks/{id} requests.
func (h *TaskHandler) DeleteTask(c *router.Context) router.Response {
	id := c.PathParams["id"]
	if _, err := domain.ParseID(id); err != nil {
		h.logger.Debug("delete task rejected", "task_id", id, "error", err)
		return router.BadRequest()
	}

	return respond(h.store.Delete(c.Context(), id))
}

// respond converts a store Result into a dispatcher Response,
// preserving both the status hint and the JSON body.
func respond(res store.Result) router.Response {
	return router.Response{Status: res.Status(), Body: res.JSON()}
}
