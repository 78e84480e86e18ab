package logger

import "path/filepath"

// logFileExt is appended to every log file name.
const logFileExt = ".log"

// Option configures a Logger at construction time.
type Option func(*settings)

// Rotation hands the log file to a size-based rotating writer. The zero value
// disables rotation: the file grows without limit.
type Rotation struct {
	// MaxSizeMB is the size in megabytes at which the file is rotated.
	MaxSizeMB int `yaml:"max_size_mb" toml:"max_size_mb"`
	// MaxBackups is the number of rotated files kept; 0 keeps all.
	MaxBackups int `yaml:"max_backups" toml:"max_backups"`
	// MaxAgeDays removes rotated files older than this many days; 0 keeps them.
	MaxAgeDays int `yaml:"max_age_days" toml:"max_age_days"`
	// Compress gzips rotated files.
	Compress bool `yaml:"compress" toml:"compress"`
}

// Enabled reports whether any rotation was requested.
func (r Rotation) Enabled() bool {
	return r.MaxSizeMB > 0
}

type settings struct {
	level         Level
	fileLevel     Level
	fileLevelSet  bool
	filename      string
	consoleAttach bool
	fileAttach    bool
	dir           string
	rotation      Rotation
	callerTag     bool
	extraFields   bool
}

func defaultSettings() settings {
	return settings{
		level:         InfoLevel,
		consoleAttach: true,
		fileAttach:    true,
		dir:           ".",
	}
}

func newSettings(name string, opts []Option) settings {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	if !s.fileLevelSet {
		s.fileLevel = s.level
	}
	if s.filename == "" {
		s.filename = name
	}
	if s.dir == "" {
		s.dir = "."
	}
	return s
}

func (s settings) format() lineFormat {
	return lineFormat{callerTag: s.callerTag, extraFields: s.extraFields}
}

// path returns dir/filename.log.
func (s settings) path() string {
	return filepath.Join(s.dir, s.filename) + logFileExt
}

// WithLevel sets the overall level, also used for the console destination.
// v is a level name or numeric code, resolved with ResolveLevel.
// Default: INFO.
func WithLevel(v any) Option {
	return func(s *settings) {
		s.level = ResolveLevel(v)
	}
}

// WithFileLevel sets the file destination threshold.
// Default: the overall level.
func WithFileLevel(v any) Option {
	return func(s *settings) {
		s.fileLevel = ResolveLevel(v)
		s.fileLevelSet = true
	}
}

// WithFilename sets the log file base name, without extension.
// Default: the logger name.
func WithFilename(name string) Option {
	return func(s *settings) {
		s.filename = name
	}
}

// WithConsole controls whether a console destination is attached.
// Default: true.
func WithConsole(attach bool) Option {
	return func(s *settings) {
		s.consoleAttach = attach
	}
}

// WithFile controls whether a file destination is attached.
// Default: true.
func WithFile(attach bool) Option {
	return func(s *settings) {
		s.fileAttach = attach
	}
}

// WithDir sets the directory the log file is created in.
// Default: ".".
func WithDir(dir string) Option {
	return func(s *settings) {
		s.dir = dir
	}
}

// WithRotation enables size-based rotation of the log file.
func WithRotation(r Rotation) Option {
	return func(s *settings) {
		s.rotation = r
	}
}

// WithCaller prefixes each message with [package.Function:line].
func WithCaller(enabled bool) Option {
	return func(s *settings) {
		s.callerTag = enabled
	}
}

// WithExtraFields appends Extra fields to each line as key=value pairs.
func WithExtraFields(enabled bool) Option {
	return func(s *settings) {
		s.extraFields = enabled
	}
}
