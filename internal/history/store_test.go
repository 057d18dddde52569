package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	// --- Arrange ---
	s := openStore(t)
	ctx := context.Background()
	sid := uuid.NewString()
	base := time.Unix(1700000000, 0)
	s.now = func() time.Time { return base }

	// --- Act ---
	for i, in := range []string{"1 + 1", "sqrt(4)", "div(j, 0)"} {
		_, err := s.Record(ctx, Entry{
			SessionID: sid,
			Input:     in,
			Output:    []string{"2", "2", "division by zero"}[i],
			Failed:    i == 2,
		})
		require.NoError(t, err)
	}

	// --- Assert ---
	recent, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "sqrt(4)", recent[0].Input)
	assert.Equal(t, "div(j, 0)", recent[1].Input)
	assert.True(t, recent[1].Failed)
	assert.False(t, recent[0].Failed)
	assert.True(t, recent[0].CreatedAt.Equal(base))

	all, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSessionFilter(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	a, b := uuid.NewString(), uuid.NewString()

	_, err := s.Record(ctx, Entry{SessionID: a, Input: "1", Output: "1"})
	require.NoError(t, err)
	_, err = s.Record(ctx, Entry{SessionID: b, Input: "2", Output: "2"})
	require.NoError(t, err)
	_, err = s.Record(ctx, Entry{SessionID: a, Input: "3", Output: "3"})
	require.NoError(t, err)

	entries, err := s.Session(ctx, a)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "1", entries[0].Input)
	assert.Equal(t, "3", entries[1].Input)
}

func TestRecord_RejectsBadSessionID(t *testing.T) {
	s := openStore(t)
	_, err := s.Record(context.Background(), Entry{SessionID: "not-a-uuid", Input: "1"})
	require.ErrorContains(t, err, "invalid session id")
}

func TestRecent_RejectsNonPositiveLimit(t *testing.T) {
	s := openStore(t)
	_, err := s.Recent(context.Background(), 0)
	require.Error(t, err)
}

func TestOpen_PersistsAcrossConnections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	sid := uuid.NewString()

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Record(context.Background(), Entry{SessionID: sid, Input: "pi", Output: "3.141592653589793"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	entries, err := s.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, sid, entries[0].SessionID)
}
