package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"taskapp/internal/domain"
	"taskapp/internal/store"
)

// opTimeout bounds every database round trip. The driver's own
// timeouts still apply; this is the store-level ceiling so no request
// blocks indefinitely.
const opTimeout = 5 * time.Second

// createTableSQL is the idempotent bootstrap for the tasks table,
// kept in lockstep with the goose migration in migrations/. It runs
// at store construction so the table exists even when migrations are
// managed out of band.
const createTableSQL = `
CREATE TABLE IF NOT EXISTS tasks (
    id         BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
    title      VARCHAR(64)  NOT NULL DEFAULT 'No Title',
    content    VARCHAR(255) NOT NULL,
    created_at TIMESTAMPTZ  NOT NULL DEFAULT now()
)`

// disconnectedMessage is the uniform error payload for every
// operation while the store has no usable connection.
const disconnectedMessage = "unable to connect to the database."

// TaskStore implements store.TaskStore against PostgreSQL.
//
// A TaskStore constructed without a usable connection enters the
// disconnected state: it never faults, and every operation
// short-circuits to the uniform error Result until the process is
// restarted with working connection parameters.
type TaskStore struct {
	db     store.Querier
	logger *slog.Logger
}

var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore builds a TaskStore over db, verifies connectivity with
// a bounded ping, and ensures the tasks table exists.
//
// Connection failure is reported to the caller rather than swallowed,
// but the returned store is always usable: on error it is in the
// disconnected state and degrades every operation to an error Result,
// so the composition root may still choose to serve traffic.
func NewTaskStore(ctx context.Context, db *sql.DB, logger *slog.Logger) (*TaskStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &TaskStore{
		logger: logger.With(slog.String("component", "task_store")),
	}

	if db == nil {
		return s, store.ErrDisconnected
	}

	pingCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return s, fmt.Errorf("%w: %v", store.ErrDisconnected, err)
	}

	s.db = db
	if err := s.ensureSchema(ctx); err != nil {
		return s, err
	}
	return s, nil
}

// ensureSchema creates the tasks table if it is absent. Safe to run
// against a database that already carries the table with the same
// shape.
func (s *TaskStore) ensureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to ensure tasks table: %w", err)
	}
	return nil
}

// GetAll implements store.TaskStore.GetAll.
func (s *TaskStore) GetAll(ctx context.Context) store.Result {
	if s.db == nil {
		return store.Fail(http.StatusInternalServerError, disconnectedMessage)
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, content, created_at FROM tasks ORDER BY id`)
	if err != nil {
		s.logger.Error("failed to query tasks", "error", err)
		return store.Fail(http.StatusInternalServerError, "unable to get all tasks.")
	}
	defer func() { _ = rows.Close() }()

	// make, not var: an empty list must render as [] rather than null.
	tasks := make([]domain.Task, 0)
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Content, &t.CreatedAt); err != nil {
			s.logger.Error("failed to scan task row", "error", err)
			return store.Fail(http.StatusInternalServerError, "unable to get all tasks.")
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		s.logger.Error("failed to iterate task rows", "error", err)
		return store.Fail(http.StatusInternalServerError, "unable to get all tasks.")
	}

	return store.OK(tasks)
}

// GetByID implements store.TaskStore.GetByID.
func (s *TaskStore) GetByID(ctx context.Context, id string) store.Result {
	if s.db == nil {
		return store.Fail(http.StatusInternalServerError, disconnectedMessage)
	}

	parsed, err := domain.ParseID(id)
	if err != nil {
		return store.Failf(http.StatusBadRequest, "invalid task id %q", id)
	}

	return s.getByID(ctx, parsed)
}

// getByID is the shared single-row fetch used by GetByID and by the
// fetch-after-write paths of Add and Update.
func (s *TaskStore) getByID(ctx context.Context, id int64) store.Result {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var t domain.Task
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, content, created_at FROM tasks WHERE id = $1`, id).
		Scan(&t.ID, &t.Title, &t.Content, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Failf(http.StatusNotFound, "no task with id %d", id)
		}
		s.logger.Error("failed to fetch task", "task_id", id, "error", err)
		return store.Failf(http.StatusInternalServerError, "unable to find row with id %d", id)
	}

	return store.OK(t)
}

// Add implements store.TaskStore.Add. The created row is read back by
// its assigned id so the caller sees the stored state, not an echo of
// its own input.
func (s *TaskStore) Add(ctx context.Context, title, content string) store.Result {
	if s.db == nil {
		return store.Fail(http.StatusInternalServerError, disconnectedMessage)
	}

	task, err := domain.NewTask(title, content)
	if err != nil {
		return store.Fail(http.StatusBadRequest, err.Error())
	}

	execCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var id int64
	err = s.db.QueryRowContext(execCtx,
		`INSERT INTO tasks (title, content) VALUES ($1, $2) RETURNING id`,
		task.Title, task.Content).Scan(&id)
	if err != nil {
		mapped := MapError(err)
		s.logger.Error("failed to insert task", "title", task.Title, "error", mapped)
		if errors.Is(mapped, store.ErrInvalidEntity) {
			return store.Failf(http.StatusBadRequest, "unable to add task %q: value rejected by schema", task.Title)
		}
		return store.Failf(http.StatusInternalServerError, "unable to add task %q", task.Title)
	}

	return s.getByID(ctx, id)
}

// Update implements store.TaskStore.Update. A zero-row update means
// the id does not exist; it is reported through the not-found shape
// and never creates a row.
func (s *TaskStore) Update(ctx context.Context, id, title, content string) store.Result {
	if s.db == nil {
		return store.Fail(http.StatusInternalServerError, disconnectedMessage)
	}

	parsed, err := domain.ParseID(id)
	if err != nil {
		return store.Failf(http.StatusBadRequest, "invalid task id %q", id)
	}

	task, err := domain.NewTask(title, content)
	if err != nil {
		return store.Fail(http.StatusBadRequest, err.Error())
	}

	execCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := s.db.ExecContext(execCtx,
		`UPDATE tasks SET title = $1, content = $2 WHERE id = $3`,
		task.Title, task.Content, parsed)
	if err != nil {
		mapped := MapError(err)
		s.logger.Error("failed to update task", "task_id", parsed, "error", mapped)
		if errors.Is(mapped, store.ErrInvalidEntity) {
			return store.Failf(http.StatusBadRequest, "unable to update %d: value rejected by schema", parsed)
		}
		return store.Failf(http.StatusInternalServerError, "unable to update %d with values %q & %q", parsed, task.Title, task.Content)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		s.logger.Error("failed to read rows affected", "task_id", parsed, "error", err)
		return store.Failf(http.StatusInternalServerError, "unable to update %d with values %q & %q", parsed, task.Title, task.Content)
	}
	if affected == 0 {
		return store.Failf(http.StatusNotFound, "no task with id %d", parsed)
	}

	return s.getByID(ctx, parsed)
}

// deleteAck confirms which id a delete was issued for. The id echoes
// the caller's text form.
type deleteAck struct {
	ID string `json:"id"`
}

// Delete implements store.TaskStore.Delete. Deletion is unconditional:
// the ack always names the requested id, whether or not a row existed.
func (s *TaskStore) Delete(ctx context.Context, id string) store.Result {
	if s.db == nil {
		return store.Fail(http.StatusInternalServerError, disconnectedMessage)
	}

	parsed, err := domain.ParseID(id)
	if err != nil {
		return store.Failf(http.StatusBadRequest, "invalid task id %q", id)
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, parsed); err != nil {
		s.logger.Error("failed to delete task", "task_id", parsed, "error", err)
		return store.Failf(http.StatusInternalServerError, "unable to delete %d.", parsed)
	}

	return store.OK(deleteAck{ID: id})
}

// existsAck reports how many rows carry the given id (0 or 1, since
// id is the primary key).
type existsAck struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

// Exists implements store.TaskStore.Exists.
func (s *TaskStore) Exists(ctx context.Context, id string) store.Result {
	if s.db == nil {
		return store.Fail(http.StatusInternalServerError, disconnectedMessage)
	}

	parsed, err := domain.ParseID(id)
	if err != nil {
		return store.Failf(http.StatusBadRequest, "invalid task id %q", id)
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var count int
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE id = $1`, parsed).Scan(&count)
	if err != nil {
		s.logger.Error("failed to count tasks", "task_id", parsed, "error", err)
		return store.Failf(http.StatusInternalServerError, "unable to check if a task exists with id %d.", parsed)
	}

	return store.OK(existsAck{ID: id, Count: count})
}
