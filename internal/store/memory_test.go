package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/cluefinder/internal/solver"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	sess := &solver.Session{ID: "abc", Mode: solver.ModeInteractive}

	_, err := st.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, st.Save(ctx, sess))
	got, err := st.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Same(t, sess, got)
	assert.Equal(t, 1, st.Len())

	require.NoError(t, st.Delete(ctx, "abc"))
	require.NoError(t, st.Delete(ctx, "missing"))
	assert.Equal(t, 0, st.Len())
}
