package domain

import (
	"strconv"
	"strings"
	"time"
)

// Field length limits enforced by both the domain layer and the
// tasks table schema.
const (
	TitleMaxLen   = 64
	ContentMaxLen = 255
)

// DefaultTitle is the placeholder assigned when a task is created
// without a title. It mirrors the column default on the tasks table.
const DefaultTitle = "No Title"

// Task represents a single tracked work item.
// ID and CreatedAt are assigned by the store on creation and are
// immutable afterwards; only Title and Content may change.
type Task struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTask builds an unsaved Task from caller-supplied fields.
// An empty title falls back to DefaultTitle, matching the schema
// default. Returns a validation error if either field exceeds its
// length bound or the content is empty.
func NewTask(title, content string) (*Task, error) {
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}

	task := &Task{
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks the Task's field bounds.
// Over-length values are rejected outright rather than truncated so
// the caller always knows exactly what was stored.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Content) == "" {
		return ErrContentEmpty
	}

	if len(t.Title) > TitleMaxLen {
		return ErrTitleTooLong
	}

	if len(t.Content) > ContentMaxLen {
		return ErrContentTooLong
	}

	return nil
}

// ParseID parses a task id received as text. Ids are store-assigned
// positive integers; anything else is rejected with ErrInvalidID.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
