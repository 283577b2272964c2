package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceAttachesUniqueID(t *testing.T) {
	t.Parallel()

	var seen []string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, TraceID(r.Context()))
		w.WriteHeader(http.StatusOK)
	})

	handler := Trace(nil)(inner)

	for range 2 {
		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	require.Len(t, seen, 2)
	for _, id := range seen {
		_, err := uuid.Parse(id)
		assert.NoError(t, err, "trace id should be a uuid, got %q", id)
	}
	assert.NotEqual(t, seen[0], seen[1], "each request gets its own trace id")
}

func TestTraceIDAbsentFromBareContext(t *testing.T) {
	t.Parallel()

	assert.Empty(t, TraceID(context.Background()))
}
