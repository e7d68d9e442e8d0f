package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentEmpty(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	u, err := s.Current()
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestRecordAndCurrent(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Record(7, "alice"))

	u, err := s.Current()
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, "alice", u.Name)
}

func TestRecordAccumulates(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Record(7, "alice"))
	require.NoError(t, s.Record(8, "bob"))

	// Every auth event inserts a row; Current keeps returning the first.
	assert.Len(t, s.users, 2)
	u, err := s.Current()
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "alice", u.Name)
}

func TestClear(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Record(7, "alice"))
	require.NoError(t, s.Clear())

	u, err := s.Current()
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestReopenKeepsRecords(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Record(7, "alice"))

	s2, err := Open(dir)
	require.NoError(t, err)
	u, err := s2.Current()
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, int64(7), u.ID)
}
