package logger

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk form of a Logger's construction options.
// Unset fields keep the defaults of New; a zero Level means unset. Levels
// may be written as a name ("warning") or a numeric code (30).
//
// YAML example:
//
//	name: svc
//	level: WARNING
//	file_level: debug
//	dir: /var/log/svc
//	console: false
type FileConfig struct {
	Name        string   `yaml:"name" toml:"name"`
	Level       Level    `yaml:"level" toml:"level"`
	FileLevel   Level    `yaml:"file_level" toml:"file_level"`
	Filename    string   `yaml:"filename" toml:"filename"`
	Console     *bool    `yaml:"console" toml:"console"`
	File        *bool    `yaml:"file" toml:"file"`
	Dir         string   `yaml:"dir" toml:"dir"`
	Caller      bool     `yaml:"caller" toml:"caller"`
	ExtraFields bool     `yaml:"extra_fields" toml:"extra_fields"`
	Rotation    Rotation `yaml:"rotation" toml:"rotation"`
}

// LoadConfig reads a FileConfig from path. Files ending in .yaml or .yml
// are parsed as YAML, anything else as TOML.
func LoadConfig(path string) (*FileConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read logger config")
	}

	var cfg FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return nil, errors.Wrapf(err, "parse YAML logger config %s", path)
		}
	default:
		if err := toml.Unmarshal(content, &cfg); err != nil {
			return nil, errors.Wrapf(err, "parse TOML logger config %s", path)
		}
	}
	return &cfg, nil
}

// Options converts the config into construction options.
func (c *FileConfig) Options() []Option {
	var opts []Option
	if c.Level != 0 {
		opts = append(opts, WithLevel(c.Level))
	}
	if c.FileLevel != 0 {
		opts = append(opts, WithFileLevel(c.FileLevel))
	}
	if c.Filename != "" {
		opts = append(opts, WithFilename(c.Filename))
	}
	if c.Console != nil {
		opts = append(opts, WithConsole(*c.Console))
	}
	if c.File != nil {
		opts = append(opts, WithFile(*c.File))
	}
	if c.Dir != "" {
		opts = append(opts, WithDir(c.Dir))
	}
	if c.Caller {
		opts = append(opts, WithCaller(true))
	}
	if c.ExtraFields {
		opts = append(opts, WithExtraFields(true))
	}
	if c.Rotation.Enabled() {
		opts = append(opts, WithRotation(c.Rotation))
	}
	return opts
}

// New builds the Logger described by the config. extra options are applied
// after the config's own, so they win.
func (c *FileConfig) New(extra ...Option) (*Logger, error) {
	return New(c.Name, append(c.Options(), extra...)...)
}
