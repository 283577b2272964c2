package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	t.Run("valid fields are kept verbatim", func(t *testing.T) {
		t.Parallel()
		task, err := NewTask("Buy milk", "2%  reduced fat")
		require.NoError(t, err)
		assert.Equal(t, "Buy milk", task.Title)
		assert.Equal(t, "2%  reduced fat", task.Content)
		assert.False(t, task.CreatedAt.IsZero())
	})

	t.Run("blank title falls back to the placeholder", func(t *testing.T) {
		t.Parallel()
		task, err := NewTask("   ", "something to do")
		require.NoError(t, err)
		assert.Equal(t, DefaultTitle, task.Title)
	})

	t.Run("length bounds are rejected, not truncated", func(t *testing.T) {
		t.Parallel()

		_, err := NewTask(strings.Repeat("t", TitleMaxLen+1), "ok")
		assert.ErrorIs(t, err, ErrTitleTooLong)

		_, err = NewTask("ok", strings.Repeat("c", ContentMaxLen+1))
		assert.ErrorIs(t, err, ErrContentTooLong)

		// Values exactly at the bound pass.
		_, err = NewTask(strings.Repeat("t", TitleMaxLen), strings.Repeat("c", ContentMaxLen))
		assert.NoError(t, err)
	})

	t.Run("empty content is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := NewTask("title", "   ")
		assert.ErrorIs(t, err, ErrContentEmpty)
	})
}

func TestParseID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    int64
		wantErr bool
	}{
		{name: "simple id", raw: "42", want: 42},
		{name: "surrounding whitespace", raw: " 7 ", want: 7},
		{name: "non-numeric", raw: "abc", wantErr: true},
		{name: "zero", raw: "0", wantErr: true},
		{name: "negative", raw: "-3", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
		{name: "trailing garbage", raw: "12x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseID(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
