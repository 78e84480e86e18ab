package logger

import (
	"math"
	"reflect"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

// Level is a record severity. Values are the standard numeric codes, so
// arbitrary severities in between compare naturally.
type Level int

const (
	// DebugLevel is detailed diagnostic output.
	DebugLevel Level = 10
	// InfoLevel is normal operational output.
	InfoLevel Level = 20
	// WarningLevel flags something unexpected that did not stop the program.
	WarningLevel Level = 30
	// ErrorLevel reports a failure of some operation.
	ErrorLevel Level = 40
	// CriticalLevel reports a failure the program may not recover from.
	CriticalLevel Level = 50
)

// Severities passed to Log are kept within int32; the backend gate only
// carries int8, see zapLevel.
const (
	minLevel = Level(math.MinInt32)
	maxLevel = Level(math.MaxInt32)
)

// AllLevels returns the five standard levels in ascending order.
func AllLevels() []Level {
	return []Level{DebugLevel, InfoLevel, WarningLevel, ErrorLevel, CriticalLevel}
}

// String returns the uppercase level name, or "Level N" for non-standard values.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarningLevel:
		return "WARNING"
	case ErrorLevel:
		return "ERROR"
	case CriticalLevel:
		return "CRITICAL"
	default:
		return "Level " + strconv.Itoa(int(l))
	}
}

// IsStandard reports whether l is one of the five standard codes.
func (l Level) IsStandard() bool {
	switch l {
	case DebugLevel, InfoLevel, WarningLevel, ErrorLevel, CriticalLevel:
		return true
	}
	return false
}

// ResolveLevel turns a severity name or numeric code into a Level.
//
// Names are matched case-insensitively against DEBUG, INFO, WARNING, ERROR
// and CRITICAL. Numbers are accepted only if they equal one of the standard
// codes. Everything else, including other types, resolves to InfoLevel.
// ResolveLevel never fails.
func ResolveLevel(v any) Level {
	switch t := v.(type) {
	case Level:
		if t.IsStandard() {
			return t
		}
		return InfoLevel
	case string:
		return levelFromName(t)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return levelFromCode(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if rv.Uint() > math.MaxInt64 {
			return InfoLevel
		}
		return levelFromCode(int64(rv.Uint()))
	default:
		return InfoLevel
	}
}

func levelFromName(name string) Level {
	// A Caser carries state, so each lookup gets its own.
	switch cases.Fold().String(name) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warning":
		return WarningLevel
	case "error":
		return ErrorLevel
	case "critical":
		return CriticalLevel
	default:
		return InfoLevel
	}
}

func levelFromCode(code int64) Level {
	if code < int64(DebugLevel) || code > int64(CriticalLevel) {
		return InfoLevel
	}
	if l := Level(code); l.IsStandard() {
		return l
	}
	return InfoLevel
}

// severity resolves the explicit level passed to Logger.Log. Unlike
// ResolveLevel, any integer is kept as-is so custom severities in between
// the standard ones still route by numeric comparison.
func severity(v any) Level {
	var n int64
	switch t := v.(type) {
	case Level:
		n = int64(t)
	case string:
		return levelFromName(t)
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n = rv.Int()
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if rv.Uint() > uint64(maxLevel) {
				return maxLevel
			}
			n = int64(rv.Uint())
		default:
			return InfoLevel
		}
	}
	switch {
	case n > int64(maxLevel):
		return maxLevel
	case n < int64(minLevel):
		return minLevel
	}
	return Level(n)
}

// zapLevel maps a Level onto the backend level space. Values beyond int8
// are clamped for gating only; the encoder renders the real Level carried
// in the record field. Levels never collide with zap's panic/fatal levels
// because records below DebugLevel are dropped before reaching a core.
func (l Level) zapLevel() zapcore.Level {
	switch {
	case l > math.MaxInt8:
		return zapcore.Level(math.MaxInt8)
	case l < math.MinInt8:
		return zapcore.Level(math.MinInt8)
	}
	return zapcore.Level(int8(l))
}

func fromZapLevel(l zapcore.Level) Level {
	return Level(l)
}

// enabler gates a destination at a minimum Level.
func (l Level) enabler() zapcore.LevelEnabler {
	floor := l.zapLevel()
	return zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= floor
	})
}

// UnmarshalText resolves a level name or decimal code.
func (l *Level) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*l = ResolveLevel(n)
		return nil
	}
	*l = ResolveLevel(s)
	return nil
}

// MarshalText returns the level name.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalYAML accepts either a scalar name or a number.
func (l *Level) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		*l = InfoLevel
		return nil
	}
	return l.UnmarshalText([]byte(node.Value))
}

// UnmarshalTOML accepts either a string or an integer value.
func (l *Level) UnmarshalTOML(v any) error {
	*l = ResolveLevel(v)
	return nil
}
