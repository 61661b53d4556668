package filestorage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFileStorage_SaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalFileStorage(dir)
	require.NoError(t, err)
	storage.now = func() time.Time { return time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC) }

	path, err := storage.Save(strings.NewReader("receipt"), "Receipt.PDF", "documents")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, "documents/2024/03/09/2024-03-09-"))
	assert.True(t, strings.HasSuffix(path, ".pdf"))

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(path)))
	require.NoError(t, err)
	assert.Equal(t, "receipt", string(data))

	require.NoError(t, storage.Delete("/uploads/"+path))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(path)))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, storage.Delete(path), "deleting twice is fine")
}

func TestLocalFileStorage_PrefixCannotEscape(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalFileStorage(dir)
	require.NoError(t, err)

	path, err := storage.Save(strings.NewReader("x"), "a.png", "../../etc")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, "etc/"))
}

func TestLocalFileStorage_DeleteOutsideBase(t *testing.T) {
	storage, err := NewLocalFileStorage(t.TempDir())
	require.NoError(t, err)

	assert.ErrorIs(t, storage.Delete("/uploads/../../secret.txt"), ErrOutsideBasePath)
}
