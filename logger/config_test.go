package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_YAML(t *testing.T) {
	path := writeConfig(t, "logger.yaml", `
name: svc
level: warning
file_level: 10
filename: service
console: false
dir: /var/log/svc
extra_fields: true
rotation:
  max_size_mb: 5
  compress: true
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "svc", cfg.Name)
	assert.Equal(t, WarningLevel, cfg.Level)
	assert.Equal(t, DebugLevel, cfg.FileLevel)
	assert.Equal(t, "service", cfg.Filename)
	require.NotNil(t, cfg.Console)
	assert.False(t, *cfg.Console)
	assert.Nil(t, cfg.File)
	assert.True(t, cfg.ExtraFields)
	assert.Equal(t, Rotation{MaxSizeMB: 5, Compress: true}, cfg.Rotation)

	s := newSettings(cfg.Name, cfg.Options())
	assert.Equal(t, WarningLevel, s.level)
	assert.Equal(t, DebugLevel, s.fileLevel)
	assert.False(t, s.consoleAttach)
	assert.True(t, s.fileAttach)
	assert.Equal(t, "/var/log/svc/service.log", s.path())
}

func TestLoadConfig_TOML(t *testing.T) {
	path := writeConfig(t, "logger.toml", `
name = "svc"
level = 40
file_level = "Critical"
file = false
caller = true
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ErrorLevel, cfg.Level)
	assert.Equal(t, CriticalLevel, cfg.FileLevel)
	require.NotNil(t, cfg.File)
	assert.False(t, *cfg.File)
	assert.True(t, cfg.Caller)

	s := newSettings(cfg.Name, cfg.Options())
	assert.True(t, s.callerTag)
	assert.Equal(t, "svc.log", s.path())
}

func TestLoadConfig_UnknownLevelFallsBack(t *testing.T) {
	path := writeConfig(t, "logger.yml", "name: svc\nlevel: chatty\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, InfoLevel, cfg.Level)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "broken.yaml", "name: [unterminated"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "broken.toml", "name = "))
	assert.Error(t, err)
}

func TestFileConfig_New(t *testing.T) {
	_, stderr := captureOutput(t)
	dir := t.TempDir()
	path := writeConfig(t, "logger.yaml", "name: "+channelName(t)+"\nlevel: error\nfile: false\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	l, err := cfg.New(WithDir(dir))
	require.NoError(t, err)

	require.NoError(t, l.Warning("filtered"))
	require.NoError(t, l.Error("kept"))
	assert.NotContains(t, stderr.String(), "filtered")
	assert.Contains(t, stderr.String(), "ERROR : kept")
	assert.NoFileExists(t, l.Path())
}
