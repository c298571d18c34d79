package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "tasks.db"))
	require.NoError(t, err)
	bdg, err := OpenBadger("")
	require.NoError(t, err)

	stores := map[string]Store{
		BackendSQLite: sqlite,
		BackendBadger: bdg,
		BackendMemory: NewMemory(),
	}
	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

func TestGetMissingKey(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			v, ok, err := s.Get("tasks")
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Empty(t, v)
		})
	}
}

func TestSetThenGetOverwrites(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set("viewMode", "list"))
			require.NoError(t, s.Set("viewMode", "calendar"))

			v, ok, err := s.Get("viewMode")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "calendar", v)
		})
	}
}

func TestKeysAreIndependent(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set("tasks", `[{"id":"a"}]`))
			require.NoError(t, s.Set("viewMode", "list"))

			v, _, err := s.Get("tasks")
			require.NoError(t, err)
			assert.Equal(t, `[{"id":"a"}]`, v)
		})
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("tasks", "[]"))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	v, ok, err := s.Get("tasks")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestBadgerPersistsAcrossReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "badger")

	b, err := OpenBadger(dir)
	require.NoError(t, err)
	require.NoError(t, b.Set("viewMode", "calendar"))
	require.NoError(t, b.Close())

	b, err = OpenBadger(dir)
	require.NoError(t, err)
	defer b.Close()
	v, ok, err := b.Get("viewMode")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "calendar", v)
}

func TestOpenSQLiteEmptyPath(t *testing.T) {
	_, err := OpenSQLite("")
	assert.Error(t, err)
}

func TestOpenSelectsBackend(t *testing.T) {
	s, err := Open(Options{Backend: "MEMORY"})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = Open(Options{Path: filepath.Join(t.TempDir(), "x.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, s)
	s.Close()

	_, err = Open(Options{Backend: "redis"})
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "file:already.db", sqliteDSN("file:already.db"))

	dsn := sqliteDSN("/tmp/x.db")
	assert.Contains(t, dsn, "file:///tmp/x.db")
	assert.Contains(t, dsn, "mode=rwc")
}
