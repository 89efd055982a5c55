package output_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/sheetgen/internal/log"
	"github.com/Alia5/sheetgen/internal/output"
)

func TestWriter(t *testing.T) {
	dir := t.TempDir()
	w := output.NewWriter(log.Discard(), filepath.Join(dir, "gen"), false)

	res, err := w.Write("can.c", []byte("a\r\n"))
	require.NoError(t, err)
	assert.True(t, res.Written)
	assert.False(t, res.Unchanged)
	assert.Equal(t, filepath.Join(dir, "gen", "can.c"), res.Path)

	info, err := os.Stat(res.Path)
	require.NoError(t, err)
	before := info.ModTime()

	res, err = w.Write("can.c", []byte("a\r\n"))
	require.NoError(t, err)
	assert.True(t, res.Unchanged)
	assert.False(t, res.Written)
	info, err = os.Stat(res.Path)
	require.NoError(t, err)
	assert.Equal(t, before, info.ModTime())

	res, err = w.Write("can.c", []byte("b\r\n"))
	require.NoError(t, err)
	assert.True(t, res.Written)
	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "b\r\n", string(data))
	_, err = os.Stat(res.Path + ".tmp")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriterDryRun(t *testing.T) {
	dir := t.TempDir()
	w := output.NewWriter(log.Discard(), dir, true)
	res, err := w.Write("can.h", []byte("x"))
	require.NoError(t, err)
	assert.False(t, res.Written)
	assert.False(t, res.Unchanged)
	_, err = os.Stat(filepath.Join(dir, "can.h"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriterAbsolutePath(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "abs.h")
	w := output.NewWriter(log.Discard(), "ignored", false)
	res, err := w.Write(abs, []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, abs, res.Path)
	assert.FileExists(t, abs)
}
