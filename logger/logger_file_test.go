package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestFileLogging_RoundTrip(t *testing.T) {
	captureOutput(t)
	dir := t.TempDir()

	l, err := New(channelName(t), WithFilename("app"), WithDir(dir), WithConsole(false))
	require.NoError(t, err)
	require.NoError(t, l.Info("persisted"))

	path := filepath.Join(dir, "app.log")
	assert.Equal(t, path, l.Path())

	got := lines(readFile(t, path))
	require.Len(t, got, 1)
	m := linePattern.FindStringSubmatch(got[0])
	require.NotNil(t, m, "line %q", got[0])
	assert.Equal(t, "INFO", m[1])
	assert.Equal(t, "persisted", m[2])
}

func TestFileLogging_DefaultFilenameIsName(t *testing.T) {
	captureOutput(t)
	dir := t.TempDir()
	name := channelName(t)

	l, err := New(name, WithDir(dir), WithConsole(false))
	require.NoError(t, err)
	require.NoError(t, l.Warning("named after the logger"))

	assert.Contains(t, readFile(t, filepath.Join(dir, name+".log")), "WARNING : named after the logger")
}

func TestFileLogging_NotCreatedWhenDetached(t *testing.T) {
	captureOutput(t)
	dir := t.TempDir()

	l, err := New(channelName(t), WithDir(dir), WithFile(false))
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		require.NoError(t, l.Critical("no file %d", i))
	}

	assert.NoFileExists(t, l.Path())
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileLogging_IndependentThresholds(t *testing.T) {
	_, stderr := captureOutput(t)
	dir := t.TempDir()

	l, err := New(channelName(t), WithLevel("warning"), WithFileLevel("debug"), WithDir(dir))
	require.NoError(t, err)

	require.NoError(t, l.Debug("file only"))
	require.NoError(t, l.Error("both"))

	file := readFile(t, l.Path())
	assert.Contains(t, file, "DEBUG : file only")
	assert.Contains(t, file, "ERROR : both")

	assert.NotContains(t, stderr.String(), "file only")
	assert.Contains(t, stderr.String(), "ERROR : both")
}

func TestFileLogging_StricterFileThreshold(t *testing.T) {
	_, stderr := captureOutput(t)
	dir := t.TempDir()

	l, err := New(channelName(t), WithLevel("debug"), WithFileLevel("ERROR"), WithDir(dir))
	require.NoError(t, err)

	require.NoError(t, l.Info("console only"))

	assert.Contains(t, stderr.String(), "INFO : console only")
	assert.Empty(t, readFile(t, l.Path()))
}

func TestFileLogging_Append(t *testing.T) {
	captureOutput(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "append.log")
	require.NoError(t, os.WriteFile(path, []byte("existing line\n"), 0644))

	l, err := New(channelName(t), WithFilename("append"), WithDir(dir), WithConsole(false))
	require.NoError(t, err)
	require.NoError(t, l.Info("new line"))

	got := lines(readFile(t, path))
	require.Len(t, got, 2)
	assert.Equal(t, "existing line", got[0])
	assert.True(t, strings.HasSuffix(got[1], "INFO : new line"))
}

func TestFileLogging_InvalidDirFails(t *testing.T) {
	captureOutput(t)

	_, err := New(channelName(t), WithDir("/nonexistent/directory"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/nonexistent/directory")
}

func TestFileLogging_WriteErrorReturned(t *testing.T) {
	captureOutput(t)
	dir := t.TempDir()

	l, err := New(channelName(t), WithDir(dir), WithConsole(false))
	require.NoError(t, err)

	for _, s := range l.ch.snapshot() {
		if s.file != nil {
			require.NoError(t, s.file.Close())
		}
	}

	assert.Error(t, l.Info("lost"))
}

func TestFileLogging_SharedNameSharesFile(t *testing.T) {
	captureOutput(t)
	dir := t.TempDir()
	name := channelName(t)

	a, err := New(name, WithDir(dir), WithConsole(false))
	require.NoError(t, err)
	b, err := New(name, WithDir(dir), WithConsole(false))
	require.NoError(t, err)

	require.NoError(t, a.Info("from a"))
	require.NoError(t, b.Info("from b"))

	got := lines(readFile(t, a.Path()))
	assert.Len(t, got, 2, "file destination must not be attached twice")
}

func TestFileLogging_Rotation(t *testing.T) {
	captureOutput(t)
	dir := t.TempDir()

	l, err := New(channelName(t), WithDir(dir), WithConsole(false),
		WithRotation(Rotation{MaxSizeMB: 1, MaxBackups: 2}))
	require.NoError(t, err)

	require.NoError(t, l.Info("rotating writer"))
	require.NoError(t, l.Sync())

	assert.Contains(t, readFile(t, l.Path()), "INFO : rotating writer")
}

func TestFileLogging_Sync(t *testing.T) {
	captureOutput(t)
	dir := t.TempDir()

	l, err := New(channelName(t), WithDir(dir))
	require.NoError(t, err)
	require.NoError(t, l.Info("flushed"))
	assert.NoError(t, l.Sync())
}
