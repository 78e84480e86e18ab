package logger

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Dependency injection points for testing outputs.
var (
	outStdout io.Writer = os.Stdout
	outStderr io.Writer = os.Stderr
)

const consoleKey = "console"

// sink is one attached destination: a backend core plus whatever must be
// flushed on Sync.
type sink struct {
	key  string
	core zapcore.Core
	file io.WriteCloser
}

func (s *sink) write(ent zapcore.Entry, fields []zapcore.Field) error {
	return s.core.Write(ent, fields)
}

func (s *sink) sync() error {
	if f, ok := s.file.(interface{ Sync() error }); ok {
		return f.Sync()
	}
	return nil
}

// writerOnly hides Sync from zapcore so records above zap's error level do
// not force an fsync on every write.
type writerOnly struct {
	io.Writer
}

func newCaptureSink(buf *bytes.Buffer, s settings) *sink {
	all := zap.LevelEnablerFunc(func(zapcore.Level) bool { return true })
	return &sink{
		key:  "capture",
		core: zapcore.NewCore(newLineEncoder(s), zapcore.AddSync(buf), all),
	}
}

func newConsoleSink(s settings) *sink {
	ws := zapcore.Lock(zapcore.AddSync(writerOnly{outStderr}))
	return &sink{
		key:  consoleKey,
		core: zapcore.NewCore(newLineEncoder(s), ws, s.level.enabler()),
	}
}

func fileKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return "file:" + path
}

func newFileSink(path string, s settings) (*sink, error) {
	f, err := openLogFile(path, s.rotation)
	if err != nil {
		return nil, err
	}
	ws := zapcore.Lock(zapcore.AddSync(writerOnly{f}))
	return &sink{
		key:  fileKey(path),
		core: zapcore.NewCore(newLineEncoder(s), ws, s.fileLevel.enabler()),
		file: f,
	}, nil
}

// openLogFile opens path for appending, or hands it to lumberjack when
// rotation is configured.
func openLogFile(path string, r Rotation) (io.WriteCloser, error) {
	if r.Enabled() {
		return &lumberjack.Logger{
			Filename:   path,
			MaxSize:    r.MaxSizeMB,
			MaxBackups: r.MaxBackups,
			MaxAge:     r.MaxAgeDays,
			Compress:   r.Compress,
			LocalTime:  true,
		}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "open log file %s", path)
	}
	return f, nil
}
