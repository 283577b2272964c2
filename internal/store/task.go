package store

import (
	"context"
	"database/sql"
)

// Querier is an interface that abstracts the database access layer.
// It is implemented by both *sql.DB and *sql.Tx, allowing store code
// to work with a pooled connection, a single connection, or a
// transaction without changing call sites.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TaskStore exposes intent-level operations over the tasks table.
//
// Every operation returns a Result rather than an error: the store is
// the last line of defense translating infrastructure failures into
// API-shaped responses, so no backend fault ever escapes this
// boundary. Ids arrive as the raw text the client sent; each
// operation validates them independently of any caller-side checks.
type TaskStore interface {
	// GetAll returns every task in id (insertion) order.
	GetAll(ctx context.Context) Result

	// GetByID returns the single task with the given id, or the
	// not-found shape if no row matches.
	GetByID(ctx context.Context, id string) Result

	// Add creates a task and returns it as re-read from the table,
	// so the response reflects what was actually stored.
	Add(ctx context.Context, title, content string) Result

	// Update rewrites a task's title and content, then returns the
	// re-read row. Updating a nonexistent id yields the not-found
	// shape and never creates a row.
	Update(ctx context.Context, id, title, content string) Result

	// Delete removes the task with the given id and acknowledges the
	// requested id as {"id": "<id>"}.
	Delete(ctx context.Context, id string) Result

	// Exists reports {"id": "<id>", "count": 0|1} for the given id.
	Exists(ctx context.Context, id string) Result
}
