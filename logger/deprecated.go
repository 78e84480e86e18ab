package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var warnings = struct {
	sync.Mutex
	out io.Writer
}{out: os.Stderr}

// SetWarningOutput sets where deprecation warnings are written. The default
// is standard error; nil silences them.
func SetWarningOutput(w io.Writer) {
	warnings.Lock()
	defer warnings.Unlock()
	warnings.out = w
}

func warnDeprecated(old, replacement string) {
	warnings.Lock()
	defer warnings.Unlock()
	if warnings.out == nil {
		return
	}
	fmt.Fprintf(warnings.out, "DeprecationWarning: %s is deprecated, use %s instead.\n", old, replacement)
}

// LoggerHandler builds a bare *zap.Logger named name with the same console
// and file destinations New would attach. It has no capture buffer and no
// Console override.
//
// Every call writes a deprecation warning to the warning output.
//
// Deprecated: use New.
func LoggerHandler(name string, opts ...Option) (*zap.Logger, error) {
	warnDeprecated("LoggerHandler", "New")

	if name == "" {
		return nil, errors.New("logger name must not be empty")
	}
	s := newSettings(name, opts)
	ch := lookupChannel(name)
	if err := attachDestinations(ch, s); err != nil {
		return nil, errors.Wrapf(err, "logger %q", name)
	}
	return zap.New(&zapLevelCore{Core: ch.core()}).Named(name), nil
}

// zapLevelCore lets the bare logger's zap levels reach destinations gated on
// Level values. Levels already at or above DebugLevel pass through.
type zapLevelCore struct {
	zapcore.Core
}

func toLevel(l zapcore.Level) zapcore.Level {
	switch l {
	case zapcore.DebugLevel:
		return DebugLevel.zapLevel()
	case zapcore.InfoLevel:
		return InfoLevel.zapLevel()
	case zapcore.WarnLevel:
		return WarningLevel.zapLevel()
	case zapcore.ErrorLevel:
		return ErrorLevel.zapLevel()
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return CriticalLevel.zapLevel()
	default:
		return l
	}
}

func (c *zapLevelCore) Enabled(lvl zapcore.Level) bool {
	return c.Core.Enabled(toLevel(lvl))
}

func (c *zapLevelCore) With(fields []zapcore.Field) zapcore.Core {
	return &zapLevelCore{Core: c.Core.With(fields)}
}

func (c *zapLevelCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *zapLevelCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	ent.Level = toLevel(ent.Level)
	return c.Core.Write(ent, fields)
}

var _ zapcore.Core = (*zapLevelCore)(nil)
