package credstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	aead, err := NewAEADFromSecret([]byte("test secret"))
	require.NoError(t, err)
	s, err := Open(dir, "TestService", aead)
	require.NoError(t, err)
	return s, dir
}

func TestSetGet(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.Set("authToken", []byte("abc")))

	value, ok, err := s.Get("authToken")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("abc"), value)
}

func TestSetOverwrites(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.Set("authToken", []byte("v1")))
	require.NoError(t, s.Set("authToken", []byte("v2")))

	value, ok, err := s.Get("authToken")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v2"), value)

	// Exactly one entry survives the double write.
	assert.Len(t, s.entries, 1)
}

func TestGetAbsent(t *testing.T) {
	s, _ := newTestStore(t)

	value, ok, err := s.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, value)
}

func TestRemove(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.Set("authToken", []byte("abc")))
	require.NoError(t, s.Remove("authToken"))

	_, ok, err := s.Get("authToken")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.Remove("missing"))

	_, ok, err := s.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClearAll(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.Set("a", []byte("1")))
	require.NoError(t, s.Set("b", []byte("2")))
	require.NoError(t, s.ClearAll())

	for _, key := range []string{"a", "b"} {
		_, ok, err := s.Get(key)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	dir := t.TempDir()
	aead, err := NewAEADFromSecret([]byte("test secret"))
	require.NoError(t, err)

	s, err := Open(dir, "TestService", aead)
	require.NoError(t, err)
	require.NoError(t, s.Set("authToken", []byte("abc")))

	s2, err := Open(dir, "TestService", aead)
	require.NoError(t, err)
	value, ok, err := s2.Get("authToken")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("abc"), value)
}

func TestNamespaceScopesFile(t *testing.T) {
	s, dir := newTestStore(t)

	require.NoError(t, s.Set("authToken", []byte("abc")))
	assert.FileExists(t, filepath.Join(dir, "TestService.json"))
}

func TestGetWrongKeyFails(t *testing.T) {
	dir := t.TempDir()
	aead, err := NewAEADFromSecret([]byte("key one"))
	require.NoError(t, err)
	s, err := Open(dir, "TestService", aead)
	require.NoError(t, err)
	require.NoError(t, s.Set("authToken", []byte("abc")))

	other, err := NewAEADFromSecret([]byte("key two"))
	require.NoError(t, err)
	s2, err := Open(dir, "TestService", other)
	require.NoError(t, err)

	_, _, err = s2.Get("authToken")
	assert.Error(t, err)
}
