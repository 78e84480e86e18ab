package logger

import (
	"bytes"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// emitDepth is the number of frames between emit and the code calling a
// public emit method.
const emitDepth = 2

// onCapture, when set, receives the capture buffer of every emit before it
// is cleared. Injection point for tests.
var onCapture func(record []byte)

// Logger is a named log channel with an optional console destination, an
// optional file destination and a private capture buffer used for the
// per-call Console override.
//
// A Logger is safe for concurrent use: each emit call holds the Logger's
// lock while it clears, fills, echoes and clears the capture buffer.
type Logger struct {
	name     string
	settings settings
	path     string
	ch       *channel

	mu      sync.Mutex
	buf     bytes.Buffer
	capture *sink
}

// New builds the Logger named name.
//
// The console destination is gated at the overall level and the file
// destination (dir/filename.log, opened for appending) at the file level.
// Invalid level input falls back to INFO and is never an error. Loggers that
// share a name share their console and file destinations; a destination is
// attached once per process, so constructing the same name twice does not
// duplicate output.
func New(name string, opts ...Option) (*Logger, error) {
	if name == "" {
		return nil, errors.New("logger name must not be empty")
	}
	s := newSettings(name, opts)
	l := &Logger{
		name:     name,
		settings: s,
		path:     s.path(),
		ch:       lookupChannel(name),
	}
	l.capture = newCaptureSink(&l.buf, s)
	if err := attachDestinations(l.ch, s); err != nil {
		return nil, errors.Wrapf(err, "logger %q", name)
	}
	return l, nil
}

func attachDestinations(ch *channel, s settings) error {
	if s.consoleAttach {
		if err := ch.attach(consoleKey, func() (*sink, error) {
			return newConsoleSink(s), nil
		}); err != nil {
			return err
		}
	}
	if s.fileAttach {
		path := s.path()
		if err := ch.attach(fileKey(path), func() (*sink, error) {
			return newFileSink(path, s)
		}); err != nil {
			return err
		}
	}
	return nil
}

// Name returns the logger name.
func (l *Logger) Name() string { return l.name }

// Level returns the console threshold.
func (l *Logger) Level() Level { return l.settings.level }

// FileLevel returns the file threshold.
func (l *Logger) FileLevel() Level { return l.settings.fileLevel }

// Path returns the resolved log file path, whether or not a file is attached.
func (l *Logger) Path() string { return l.path }

// ConsoleAttached reports whether the Logger was built with a console destination.
func (l *Logger) ConsoleAttached() bool { return l.settings.consoleAttach }

// FileAttached reports whether the Logger was built with a file destination.
func (l *Logger) FileAttached() bool { return l.settings.fileAttach }

// Debug logs at DebugLevel. args holds template arguments for msg and any
// CallOption overrides.
func (l *Logger) Debug(msg string, args ...any) error {
	return l.emit(DebugLevel, msg, args, true)
}

// Info logs at InfoLevel.
func (l *Logger) Info(msg string, args ...any) error {
	return l.emit(InfoLevel, msg, args, true)
}

// Warning logs at WarningLevel.
func (l *Logger) Warning(msg string, args ...any) error {
	return l.emit(WarningLevel, msg, args, true)
}

// Error logs at ErrorLevel.
func (l *Logger) Error(msg string, args ...any) error {
	return l.emit(ErrorLevel, msg, args, true)
}

// Critical logs at CriticalLevel.
func (l *Logger) Critical(msg string, args ...any) error {
	return l.emit(CriticalLevel, msg, args, true)
}

// Exception logs at ErrorLevel with err attached, as if ExcInfo(err) had
// been passed. Call it while handling err; an ExcInfo among args replaces
// err. The Console override is ignored.
func (l *Logger) Exception(err error, msg string, args ...any) error {
	withExc := make([]any, 0, len(args)+1)
	if err != nil {
		withExc = append(withExc, ExcInfo(err))
	}
	withExc = append(withExc, args...)
	return l.emit(ErrorLevel, msg, withExc, false)
}

// Log logs at an explicit severity: a level name, a Level or any integer.
// Integers are kept as-is and compared numerically with each destination
// threshold; records below DebugLevel are dropped. The Console override is
// ignored.
func (l *Logger) Log(level any, msg string, args ...any) error {
	return l.emit(severity(level), msg, args, false)
}

// Sync flushes the file destinations of this Logger's channel.
func (l *Logger) Sync() error {
	return l.ch.core().Sync()
}

// emit writes one record to the capture buffer and every channel
// destination admitting lvl, then performs the Console echo if requested.
// Destination write errors are returned, not retried.
func (l *Logger) emit(lvl Level, msg string, args []any, echoAllowed bool) error {
	tmpl, c := splitArgs(args)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.buf.Reset()
	defer l.buf.Reset()

	if lvl < DebugLevel {
		return nil
	}

	skip := emitDepth + c.stackLevel - 1
	ent := zapcore.Entry{
		LoggerName: l.name,
		Time:       time.Now(),
		Level:      lvl.zapLevel(),
		Message:    formatMessage(msg, tmpl),
	}
	if l.settings.callerTag {
		ent.Caller = callerAt(skip)
	}
	if c.stack {
		ent.Stack = zap.StackSkip("", skip).String
	}

	fields := append(c.fields(), recordField(lvl, l.settings.format()))
	err := l.capture.write(ent, fields)
	err = multierr.Append(err, l.ch.core().Write(ent, fields))

	if onCapture != nil {
		onCapture(l.buf.Bytes())
	}
	if echoAllowed && c.echo() && !l.settings.consoleAttach {
		_, werr := io.WriteString(outStdout, l.buf.String())
		err = multierr.Append(err, werr)
	}
	return err
}

// callerAt returns the frame skip levels above the function calling callerAt.
func callerAt(skip int) zapcore.EntryCaller {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return zapcore.EntryCaller{}
	}
	caller := zapcore.EntryCaller{Defined: true, PC: pc, File: file, Line: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		caller.Function = fn.Name()
	}
	return caller
}
