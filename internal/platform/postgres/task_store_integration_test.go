package postgres_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskapp/internal/domain"
	"taskapp/internal/platform/postgres"
	"taskapp/internal/store"
	"taskapp/internal/testdb"
)

// newIntegrationStore opens the env-gated test database and builds a
// connected store over a clean tasks table.
func newIntegrationStore(t *testing.T) *postgres.TaskStore {
	t.Helper()

	db := testdb.Open(t)
	testdb.Reset(t, db)

	s, err := postgres.NewTaskStore(context.Background(), db, nil)
	require.NoError(t, err, "store construction against a live database must succeed")
	return s
}

// mustDecodeTask unmarshals a success payload into a Task.
func mustDecodeTask(t *testing.T, res store.Result) domain.Task {
	t.Helper()

	require.False(t, res.IsError(), "expected success payload, got %s", res.JSON())
	var task domain.Task
	require.NoError(t, json.Unmarshal([]byte(res.JSON()), &task))
	return task
}

func TestAddGetRoundTrip(t *testing.T) {
	s := newIntegrationStore(t)
	ctx := context.Background()

	created := mustDecodeTask(t, s.Add(ctx, "Buy milk", "2%  reduced fat"))
	assert.Equal(t, int64(1), created.ID, "first id after a reset is 1")
	assert.Equal(t, "Buy milk", created.Title)
	assert.Equal(t, "2%  reduced fat", created.Content)
	assert.False(t, created.CreatedAt.IsZero())

	fetched := mustDecodeTask(t, s.GetByID(ctx, "1"))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Title, fetched.Title)
	assert.Equal(t, created.Content, fetched.Content)
}

func TestAddDefaultsBlankTitle(t *testing.T) {
	s := newIntegrationStore(t)

	created := mustDecodeTask(t, s.Add(context.Background(), "  ", "untitled work"))
	assert.Equal(t, domain.DefaultTitle, created.Title)
}

func TestDeleteThenGetReportsNotFound(t *testing.T) {
	s := newIntegrationStore(t)
	ctx := context.Background()

	mustDecodeTask(t, s.Add(ctx, "Buy milk", "2%  reduced fat"))

	del := s.Delete(ctx, "1")
	require.False(t, del.IsError())
	assert.JSONEq(t, `{"id":"1"}`, del.JSON())

	got := s.GetByID(ctx, "1")
	assert.True(t, got.IsError())
	assert.Equal(t, http.StatusNotFound, got.Status())
	assert.JSONEq(t, `{"error":"no task with id 1"}`, got.JSON())
}

func TestUpdateRewritesOnlyMutableFields(t *testing.T) {
	s := newIntegrationStore(t)
	ctx := context.Background()

	created := mustDecodeTask(t, s.Add(ctx, "old title", "old content"))

	updated := mustDecodeTask(t, s.Update(ctx, "1", "new title", "new content"))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "new title", updated.Title)
	assert.Equal(t, "new content", updated.Content)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt), "created_at is immutable")
}

func TestUpdateNonexistentIDDoesNotCreateRows(t *testing.T) {
	s := newIntegrationStore(t)
	ctx := context.Background()

	res := s.Update(ctx, "99", "ghost", "should not exist")
	assert.True(t, res.IsError())
	assert.Equal(t, http.StatusNotFound, res.Status())

	var all []domain.Task
	list := s.GetAll(ctx)
	require.False(t, list.IsError())
	require.NoError(t, json.Unmarshal([]byte(list.JSON()), &all))
	assert.Empty(t, all)
}

func TestGetAllMatchesExistsCounts(t *testing.T) {
	s := newIntegrationStore(t)
	ctx := context.Background()

	mustDecodeTask(t, s.Add(ctx, "one", "first"))
	mustDecodeTask(t, s.Add(ctx, "two", "second"))
	mustDecodeTask(t, s.Add(ctx, "three", "third"))
	require.False(t, s.Delete(ctx, "2").IsError())

	var all []domain.Task
	list := s.GetAll(ctx)
	require.False(t, list.IsError())
	require.NoError(t, json.Unmarshal([]byte(list.JSON()), &all))

	present := 0
	for _, id := range []string{"1", "2", "3"} {
		res := s.Exists(ctx, id)
		require.False(t, res.IsError())

		var ack struct {
			ID    string `json:"id"`
			Count int    `json:"count"`
		}
		require.NoError(t, json.Unmarshal([]byte(res.JSON()), &ack))
		assert.Equal(t, id, ack.ID)
		present += ack.Count
	}

	assert.Len(t, all, present)

	// Ids come back in insertion order.
	require.Len(t, all, 2)
	assert.Equal(t, int64(1), all[0].ID)
	assert.Equal(t, int64(3), all[1].ID)
}

func TestOverLengthValuesAreRejectedExplicitly(t *testing.T) {
	s := newIntegrationStore(t)
	ctx := context.Background()

	res := s.Add(ctx, strings.Repeat("t", domain.TitleMaxLen+1), "fine")
	assert.True(t, res.IsError())
	assert.Equal(t, http.StatusBadRequest, res.Status())

	res = s.Add(ctx, "fine", strings.Repeat("c", domain.ContentMaxLen+1))
	assert.True(t, res.IsError())
	assert.Equal(t, http.StatusBadRequest, res.Status())

	// Nothing was stored by either rejected call.
	var all []domain.Task
	list := s.GetAll(ctx)
	require.False(t, list.IsError())
	require.NoError(t, json.Unmarshal([]byte(list.JSON()), &all))
	assert.Empty(t, all)
}

func TestGetByIDMalformedID(t *testing.T) {
	s := newIntegrationStore(t)

	res := s.GetByID(context.Background(), "abc")
	assert.True(t, res.IsError())
	assert.Equal(t, http.StatusBadRequest, res.Status())
	assert.JSONEq(t, `{"error":"invalid task id \"abc\""}`, res.JSON())
}

func TestDeleteAcknowledgesRequestedID(t *testing.T) {
	s := newIntegrationStore(t)

	// Deleting an id that never existed still acknowledges the
	// requested id; deletion is unconditional.
	res := s.Delete(context.Background(), "41")
	require.False(t, res.IsError())
	assert.JSONEq(t, `{"id":"41"}`, res.JSON())
}
