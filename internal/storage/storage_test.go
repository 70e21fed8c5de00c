package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) (*Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "session.json")
	s, err := Open(path)
	require.NoError(t, err)
	return s, path
}

func TestSetGetDelete(t *testing.T) {
	s, _ := tempStore(t)

	require.NoError(t, s.Set(KeyToken, "abc.def.ghi"))

	value, ok := s.Get(KeyToken)
	assert.True(t, ok)
	assert.Equal(t, "abc.def.ghi", value)

	require.NoError(t, s.Delete(KeyToken))
	_, ok = s.Get(KeyToken)
	assert.False(t, ok)
}

func TestWriteThroughSurvivesReopen(t *testing.T) {
	s, path := tempStore(t)

	require.NoError(t, s.Set(KeyToken, "tok"))
	require.NoError(t, s.Set(KeyActiveTenant, "7"))
	require.NoError(t, s.Set(KeyActiveRole, "resident"))

	reopened, err := Open(path)
	require.NoError(t, err)

	value, ok := reopened.Get(KeyActiveTenant)
	assert.True(t, ok)
	assert.Equal(t, "7", value)
	assert.Equal(t, 3, reopened.Len())
}

func TestApplyBatch(t *testing.T) {
	s, path := tempStore(t)

	require.NoError(t, s.Set(KeyUser, `{"id":1}`))

	tok := "new-token"
	tenant := "3"
	require.NoError(t, s.Apply(map[string]*string{
		KeyToken:        &tok,
		KeyActiveTenant: &tenant,
		KeyUser:         nil,
	}))

	_, ok := s.Get(KeyUser)
	assert.False(t, ok)
	value, _ := s.Get(KeyToken)
	assert.Equal(t, "new-token", value)

	// The batch must already be on disk.
	reopened, err := Open(path)
	require.NoError(t, err)
	_, ok = reopened.Get(KeyUser)
	assert.False(t, ok)
	value, _ = reopened.Get(KeyActiveTenant)
	assert.Equal(t, "3", value)
}

func TestClear(t *testing.T) {
	s, path := tempStore(t)

	require.NoError(t, s.Set(KeyToken, "tok"))
	require.NoError(t, s.Set(KeyUser, `{"id":1}`))
	require.NoError(t, s.Clear())

	assert.Equal(t, 0, s.Len())

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 0, reopened.Len())
}

func TestOpenCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())

	// The corrupt file was rewritten, so a reopen is clean too.
	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 0, reopened.Len())
}

func TestFilePermissions(t *testing.T) {
	s, path := tempStore(t)
	require.NoError(t, s.Set(KeyToken, "tok"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
