package postgres

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskapp/internal/store"
)

// TestDisconnectedStoreShortCircuits verifies the degraded mode: a
// store built without a connection reports its state through the
// uniform error payload on every operation instead of faulting.
func TestDisconnectedStoreShortCircuits(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, err := NewTaskStore(ctx, nil, nil)
	require.ErrorIs(t, err, store.ErrDisconnected)
	require.NotNil(t, s, "a disconnected store must still be usable")

	results := map[string]store.Result{
		"GetAll":  s.GetAll(ctx),
		"GetByID": s.GetByID(ctx, "1"),
		"Add":     s.Add(ctx, "title", "content"),
		"Update":  s.Update(ctx, "1", "title", "content"),
		"Delete":  s.Delete(ctx, "1"),
		"Exists":  s.Exists(ctx, "1"),
	}

	for op, res := range results {
		assert.True(t, res.IsError(), "%s must fail while disconnected", op)
		assert.Equal(t, http.StatusInternalServerError, res.Status(), "%s status", op)
		assert.JSONEq(t, `{"error":"unable to connect to the database."}`, res.JSON(), "%s payload", op)
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, MapError(nil))

	tests := []struct {
		name string
		code string
		want error
	}{
		{name: "unique violation", code: uniqueViolationCode, want: store.ErrDuplicate},
		{name: "not null violation", code: notNullViolationCode, want: store.ErrInvalidEntity},
		{name: "check violation", code: checkViolationCode, want: store.ErrInvalidEntity},
		{name: "value too long", code: stringTruncationCode, want: store.ErrInvalidEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := MapError(&pgconn.PgError{Code: tt.code})
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("unmapped errors pass through", func(t *testing.T) {
		t.Parallel()
		plain := errors.New("connection refused")
		assert.Equal(t, plain, MapError(plain))
	})
}
