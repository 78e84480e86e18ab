package logger

import (
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
)

// channels maps a logger name to the destinations shared by every Logger
// constructed with that name. Entries live for the whole process.
var channels = struct {
	sync.Mutex
	byName map[string]*channel
}{byName: make(map[string]*channel)}

// channel holds the console and file destinations of one name. Each
// destination is attached at most once; the first construction that asks
// for it decides its threshold.
type channel struct {
	name  string
	mu    sync.RWMutex
	sinks []*sink
}

func lookupChannel(name string) *channel {
	channels.Lock()
	defer channels.Unlock()

	ch, ok := channels.byName[name]
	if !ok {
		ch = &channel{name: name}
		channels.byName[name] = ch
	}
	return ch
}

// attach adds the destination built by open unless one with the same key is
// already attached.
func (c *channel) attach(key string, open func() (*sink, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, s := range c.sinks {
		if s.key == key {
			return nil
		}
	}
	s, err := open()
	if err != nil {
		return err
	}
	c.sinks = append(c.sinks, s)
	return nil
}

func (c *channel) attached(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, s := range c.sinks {
		if s.key == key {
			return true
		}
	}
	return false
}

func (c *channel) snapshot() []*sink {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]*sink(nil), c.sinks...)
}

// core exposes the channel as a zapcore.Core that fans each entry out to
// every destination whose threshold admits it.
func (c *channel) core() zapcore.Core {
	return &channelCore{ch: c}
}

type channelCore struct {
	ch     *channel
	fields []zapcore.Field
}

func (cc *channelCore) Enabled(lvl zapcore.Level) bool {
	for _, s := range cc.ch.snapshot() {
		if s.core.Enabled(lvl) {
			return true
		}
	}
	return false
}

func (cc *channelCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(cc.fields)+len(fields))
	merged = append(merged, cc.fields...)
	merged = append(merged, fields...)
	return &channelCore{ch: cc.ch, fields: merged}
}

func (cc *channelCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if cc.Enabled(ent.Level) {
		return ce.AddCore(ent, cc)
	}
	return ce
}

// Write returns every destination failure; a failing destination does not
// stop the others from being written.
func (cc *channelCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	if len(cc.fields) > 0 {
		fields = append(append([]zapcore.Field(nil), cc.fields...), fields...)
	}
	var err error
	for _, s := range cc.ch.snapshot() {
		if s.core.Enabled(ent.Level) {
			err = multierr.Append(err, s.write(ent, fields))
		}
	}
	return err
}

func (cc *channelCore) Sync() error {
	var err error
	for _, s := range cc.ch.snapshot() {
		err = multierr.Append(err, s.sync())
	}
	return err
}

var _ zapcore.Core = (*channelCore)(nil)
