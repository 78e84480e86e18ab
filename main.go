package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/lkk9898969/lkk-log/logger"
)

var (
	cfgFile    string
	name       string
	level      string
	fileLevel  string
	filename   string
	dir        string
	noConsole  bool
	noFile     bool
	callerTag  bool
	echo       bool
	stackTrace bool
)

var rootCmd = &cobra.Command{
	Use:   "lkklog",
	Short: "Write records through a named console/file logger",
	Long: `lkklog builds a named logger with independent console and file
thresholds and writes records through it.

Lines look like:
  2024/05/01 13:04:05 WARNING : disk almost full

Settings come from --config (YAML or TOML) and are overridden by flags.`,
	SilenceUsage: true,
}

var emitCmd = &cobra.Command{
	Use:   "emit <level> <message...>",
	Short: "Write one record",
	Long: `Write one record at the given level. The level is a name
(debug, info, warning, error, critical) or a numeric code. Unknown
names are written as INFO. A numeric code other than 10, 20, 30, 40
or 50 is kept as-is: below 10 the record is dropped, otherwise it is
written as "Level N".`,
	Args: cobra.MinimumNArgs(2),
	RunE: runEmit,
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Write one record per level and show the echo override",
	RunE:  runDemo,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "logger config file (.yaml, .yml or .toml)")
	flags.StringVar(&name, "name", "", "logger name (default: from config, else \"lkklog\")")
	flags.StringVar(&level, "level", "", "console level (default INFO)")
	flags.StringVar(&fileLevel, "file-level", "", "file level (default: --level)")
	flags.StringVar(&filename, "filename", "", "log file base name (default: logger name)")
	flags.StringVar(&dir, "dir", "", "directory for the log file (default \".\")")
	flags.BoolVar(&noConsole, "no-console", false, "do not attach the console destination")
	flags.BoolVar(&noFile, "no-file", false, "do not attach the file destination")
	flags.BoolVar(&callerTag, "caller", false, "prefix messages with the caller")

	emitCmd.Flags().BoolVar(&echo, "echo", false, "print the record to stdout even with --no-console")
	emitCmd.Flags().BoolVar(&stackTrace, "stack", false, "append the call stack")

	rootCmd.AddCommand(emitCmd, demoCmd)
}

// buildLogger merges the config file with the command-line flags.
func buildLogger(cmd *cobra.Command) (*logger.Logger, error) {
	cfg := &logger.FileConfig{}
	if cfgFile != "" {
		loaded, err := logger.LoadConfig(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if name != "" {
		cfg.Name = name
	}
	if cfg.Name == "" {
		cfg.Name = "lkklog"
	}

	var opts []logger.Option
	flags := cmd.Flags()
	if flags.Changed("level") {
		opts = append(opts, logger.WithLevel(level))
	}
	if flags.Changed("file-level") {
		opts = append(opts, logger.WithFileLevel(fileLevel))
	}
	if filename != "" {
		opts = append(opts, logger.WithFilename(filename))
	}
	if dir != "" {
		opts = append(opts, logger.WithDir(dir))
	}
	if noConsole {
		opts = append(opts, logger.WithConsole(false))
	}
	if noFile {
		opts = append(opts, logger.WithFile(false))
	}
	if callerTag {
		opts = append(opts, logger.WithCaller(true))
	}
	return cfg.New(opts...)
}

func runEmit(cmd *cobra.Command, args []string) error {
	log, err := buildLogger(cmd)
	if err != nil {
		return err
	}

	msg := strings.Join(args[1:], " ")
	var overrides []any
	if echo {
		overrides = append(overrides, logger.Console(true))
	}
	if stackTrace {
		overrides = append(overrides, logger.StackInfo())
	}

	if err := emit(log, args[0], msg, overrides); err != nil {
		return errors.Wrap(err, "write record")
	}
	return log.Sync()
}

// emit routes standard levels to their methods so the Console override
// applies; other numeric codes go through Log.
func emit(log *logger.Logger, lvl, msg string, overrides []any) error {
	// msg is passed as an argument so '%' in user text is printed verbatim.
	args := append([]any{msg}, overrides...)

	target := logger.ResolveLevel(lvl)
	if code, err := strconv.Atoi(lvl); err == nil {
		if !logger.Level(code).IsStandard() {
			return log.Log(code, "%s", args...)
		}
		target = logger.Level(code)
	}

	switch target {
	case logger.DebugLevel:
		return log.Debug("%s", args...)
	case logger.WarningLevel:
		return log.Warning("%s", args...)
	case logger.ErrorLevel:
		return log.Error("%s", args...)
	case logger.CriticalLevel:
		return log.Critical("%s", args...)
	default:
		return log.Info("%s", args...)
	}
}

func runDemo(cmd *cobra.Command, _ []string) error {
	log, err := buildLogger(cmd)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "logger %q: console=%v (%s) file=%v (%s) path=%s\n",
		log.Name(), log.ConsoleAttached(), log.Level(), log.FileAttached(), log.FileLevel(), log.Path())

	steps := []func() error{
		func() error { return log.Debug("starting at level %s", log.Level()) },
		func() error { return log.Info("hello %s", "world") },
		func() error { return log.Warning("be careful") },
		func() error { return log.Error("oops: %v", "something happened") },
		func() error { return log.Critical("system failure") },
		func() error { return log.Log(25, "custom severity between INFO and WARNING") },
		func() error { return log.Info("forced to stdout", logger.Console(true)) },
		func() error {
			cause := errors.New("connection timeout")
			return log.Exception(cause, "database connection failed")
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return log.Sync()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
