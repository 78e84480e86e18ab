package logger

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CallOption overrides how a single emit call is recorded. CallOptions are
// passed among the template arguments of an emit method and are removed
// before the message is formatted.
type CallOption interface {
	apply(*call)
}

type callOptionFunc func(*call)

func (f callOptionFunc) apply(c *call) { f(c) }

// call is the resolved set of per-call overrides.
type call struct {
	exc        error
	stack      bool
	stackLevel int
	extra      map[string]any
	console    *bool
}

// ExcInfo attaches err to the record. It is rendered after the message
// with %+v, so errors carrying a stack trace print it.
func ExcInfo(err error) CallOption {
	return callOptionFunc(func(c *call) {
		c.exc = err
	})
}

// StackInfo appends a dump of the current call stack to the record.
func StackInfo() CallOption {
	return callOptionFunc(func(c *call) {
		c.stack = true
	})
}

// StackLevel sets how many frames to skip when reporting where the record
// came from. 1, the default, is the caller of the emit method.
func StackLevel(n int) CallOption {
	return callOptionFunc(func(c *call) {
		if n < 1 {
			n = 1
		}
		c.stackLevel = n
	})
}

// Extra merges structured fields into the record.
func Extra(fields map[string]any) CallOption {
	return callOptionFunc(func(c *call) {
		if c.extra == nil {
			c.extra = make(map[string]any, len(fields))
		}
		for k, v := range fields {
			c.extra[k] = v
		}
	})
}

// Console forces (true) or explicitly declines (false) echoing the record
// to standard output when the Logger has no console destination. Leaving it
// out is the same as Console(false).
func Console(echo bool) CallOption {
	return callOptionFunc(func(c *call) {
		c.console = &echo
	})
}

// splitArgs separates per-call overrides from template arguments.
func splitArgs(args []any) ([]any, call) {
	c := call{stackLevel: 1}
	if len(args) == 0 {
		return nil, c
	}
	tmpl := make([]any, 0, len(args))
	for _, a := range args {
		if opt, ok := a.(CallOption); ok {
			opt.apply(&c)
			continue
		}
		tmpl = append(tmpl, a)
	}
	return tmpl, c
}

// echo reports whether the caller asked for a forced console echo.
func (c call) echo() bool {
	return c.console != nil && *c.console
}

// fields converts the overrides into backend fields, extras sorted by key.
func (c call) fields() []zapcore.Field {
	fields := make([]zapcore.Field, 0, len(c.extra)+1)
	if len(c.extra) > 0 {
		keys := make([]string, 0, len(c.extra))
		for k := range c.extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fields = append(fields, zap.Any(k, c.extra[k]))
		}
	}
	if c.exc != nil {
		fields = append(fields, zap.NamedError(excInfoKey, c.exc))
	}
	return fields
}

// formatMessage applies fmt.Sprintf only when template arguments are present.
func formatMessage(msg string, args []any) string {
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
