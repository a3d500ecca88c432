package filelock

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockUnlock(t *testing.T) {
	lock := New(filepath.Join(t.TempDir(), "run.lock"))

	require.NoError(t, lock.Lock())
	require.NoError(t, lock.Unlock())
}

func TestTryLockHeldByOther(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.lock")

	first := New(path)
	acquired, err := first.TryLock()
	require.NoError(t, err)
	require.True(t, acquired)
	defer first.Unlock()

	second := New(path)
	acquired, err = second.TryLock()
	require.NoError(t, err)
	assert.False(t, acquired, "second lock should not be acquired while first is held")
}

func TestTryLockAfterRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.lock")

	first := New(path)
	acquired, err := first.TryLock()
	require.NoError(t, err)
	require.True(t, acquired)
	require.NoError(t, first.Unlock())

	second := New(path)
	acquired, err = second.TryLock()
	require.NoError(t, err)
	assert.True(t, acquired)
	second.Unlock()
}

func TestAtomicWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "ligands.txt")

	require.NoError(t, AtomicWrite(path, []byte("NAG_A_201\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "NAG_A_201\n", string(data))

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestAtomicWriteOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ligands.txt")

	require.NoError(t, AtomicWrite(path, []byte("old\n")))
	require.NoError(t, AtomicWrite(path, []byte("new\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(data))
}
