package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// TimeLayout is the timestamp layout of every line.
const TimeLayout = "2006/01/02 15:04:05"

// excInfoKey names the field carrying the error attached with ExcInfo.
const excInfoKey = "exc_info"

var linePool = buffer.NewPool()

// recordKey names the field through which a Logger hands its own line
// format and unclamped severity to shared destinations. It is never printed.
const recordKey = "lkklog_record"

// lineFormat holds the per-Logger rendering switches.
type lineFormat struct {
	callerTag   bool
	extraFields bool
}

func recordField(lvl Level, f lineFormat) zapcore.Field {
	return zapcore.Field{Key: recordKey, Type: zapcore.SkipType, Integer: int64(lvl), Interface: f}
}

// lineEncoder renders entries as "<timestamp> <LEVEL> : <message>", followed
// by the attached error and stack dump on their own lines. Context fields
// are collected in the embedded map encoder and only printed when
// extraFields is set. A record field overrides the encoder's own format.
type lineEncoder struct {
	*zapcore.MapObjectEncoder
	format lineFormat
}

func newLineEncoder(s settings) *lineEncoder {
	return &lineEncoder{
		MapObjectEncoder: zapcore.NewMapObjectEncoder(),
		format:           s.format(),
	}
}

func (e *lineEncoder) Clone() zapcore.Encoder {
	clone := zapcore.NewMapObjectEncoder()
	for k, v := range e.Fields {
		clone.Fields[k] = v
	}
	return &lineEncoder{
		MapObjectEncoder: clone,
		format:           e.format,
	}
}

func (e *lineEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	lvl := fromZapLevel(ent.Level)
	format := e.format
	var exc error
	extra := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		switch {
		case f.Key == recordKey && f.Type == zapcore.SkipType:
			if rf, ok := f.Interface.(lineFormat); ok {
				lvl = Level(f.Integer)
				format = rf
			}
			continue
		case f.Key == excInfoKey && f.Type == zapcore.ErrorType:
			if err, ok := f.Interface.(error); ok {
				exc = err
				continue
			}
		}
		extra = append(extra, f)
	}

	line := linePool.Get()
	line.AppendTime(ent.Time, TimeLayout)
	line.AppendByte(' ')
	line.AppendString(lvl.String())
	line.AppendString(" : ")
	if format.callerTag && ent.Caller.Defined {
		line.AppendByte('[')
		line.AppendString(callerTag(ent.Caller))
		line.AppendString("] ")
	}
	line.AppendString(ent.Message)

	if format.extraFields {
		e.appendContext(line)
		appendFields(line, extra)
	}
	if exc != nil {
		line.AppendByte('\n')
		line.AppendString(strings.TrimRight(fmt.Sprintf("%+v", exc), "\n"))
	}
	if ent.Stack != "" {
		line.AppendString("\nStack (most recent call last):\n")
		line.AppendString(strings.TrimRight(ent.Stack, "\n"))
	}
	line.AppendString(zapcore.DefaultLineEnding)
	return line, nil
}

// appendContext writes fields added through With, sorted by key.
func (e *lineEncoder) appendContext(line *buffer.Buffer) {
	if len(e.Fields) == 0 {
		return
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		appendPair(line, k, e.Fields[k])
	}
}

// appendFields writes per-record fields in the order given.
func appendFields(line *buffer.Buffer, fields []zapcore.Field) {
	for _, f := range fields {
		enc := zapcore.NewMapObjectEncoder()
		f.AddTo(enc)
		v, ok := enc.Fields[f.Key]
		if !ok {
			continue
		}
		appendPair(line, f.Key, v)
	}
}

func appendPair(line *buffer.Buffer, key string, value any) {
	line.AppendByte(' ')
	line.AppendString(key)
	line.AppendByte('=')
	fmt.Fprint(line, value)
}

// callerTag formats the caller as "package.Function:line".
func callerTag(c zapcore.EntryCaller) string {
	fn := c.Function
	if fn == "" {
		return c.TrimmedPath()
	}
	if i := strings.LastIndex(fn, "/"); i >= 0 && i+1 < len(fn) {
		fn = fn[i+1:]
	}
	return fmt.Sprintf("%s:%d", fn, c.Line)
}

var _ zapcore.Encoder = (*lineEncoder)(nil)
