package filestore

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var storageNamePattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")

	fs, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, fs.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSave(t *testing.T) {
	fs, err := New(t.TempDir())
	require.NoError(t, err)

	content := []byte("name,score\nada,10\n")
	result, err := fs.Save(bytes.NewReader(content))
	require.NoError(t, err)

	assert.Regexp(t, storageNamePattern, result.StorageName)
	assert.Equal(t, int64(len(content)), result.Size)
	assert.Equal(t, filepath.Join(fs.Dir(), result.StorageName), result.FullPath)

	data, err := fs.Read(result.StorageName)
	require.NoError(t, err)
	assert.Equal(t, content, data)

	_, err = os.Stat(result.FullPath + tmpSuffix)
	assert.True(t, os.IsNotExist(err))
}

func TestSave_UniqueNames(t *testing.T) {
	fs, err := New(t.TempDir())
	require.NoError(t, err)

	a, err := fs.Save(bytes.NewReader([]byte("same")))
	require.NoError(t, err)
	b, err := fs.Save(bytes.NewReader([]byte("same")))
	require.NoError(t, err)

	assert.NotEqual(t, a.StorageName, b.StorageName)
}

func TestRead_Missing(t *testing.T) {
	fs, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = fs.Read("0123456789abcdef0123456789abcdef")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	fs, err := New(t.TempDir())
	require.NoError(t, err)

	result, err := fs.Save(bytes.NewReader([]byte("bye")))
	require.NoError(t, err)
	require.True(t, fs.Exists(result.StorageName))

	require.NoError(t, fs.Delete(result.StorageName))
	assert.False(t, fs.Exists(result.StorageName))

	// already gone
	assert.NoError(t, fs.Delete(result.StorageName))
}

func TestRejectsPathTraversal(t *testing.T) {
	fs, err := New(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "..", "../etc/passwd", `a\b`, "a/b"} {
		_, err := fs.Read(name)
		assert.ErrorIs(t, err, ErrInvalidName, name)
		assert.ErrorIs(t, fs.Delete(name), ErrInvalidName, name)
		assert.False(t, fs.Exists(name), name)
	}
}

func TestList(t *testing.T) {
	fs, err := New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(filepath.Join(fs.Dir(), "nested"), 0o750))

	result, err := fs.Save(bytes.NewReader([]byte("12345")))
	require.NoError(t, err)

	entries, err := fs.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, result.StorageName, entries[0].Name)
	assert.Equal(t, int64(5), entries[0].Size)
	assert.False(t, entries[0].ModTime.IsZero())
}

func TestIsTemp(t *testing.T) {
	assert.True(t, IsTemp("abc.tmp"))
	assert.False(t, IsTemp("abc"))
}
