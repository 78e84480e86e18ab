// Package logger provides a named leveled logger that writes to the console
// and to a log file, each with its own threshold.
//
// # Output
//
// Every destination receives the same line format:
//
//	2024/05/01 13:04:05 WARNING : disk almost full
//
// The console destination writes to standard error. The file destination
// appends to dir/filename.log (filename defaults to the logger name).
//
// # Features
//
//   - Independent console and file thresholds (WithLevel, WithFileLevel)
//   - Lenient level input: names in any case or numeric codes, unknown input means INFO
//   - Per-call overrides: ExcInfo, StackInfo, StackLevel, Extra, Console
//   - Console echo to standard output for loggers built without a console destination
//   - Optional caller tag [package.Function:line] (WithCaller)
//   - Optional size-based rotation of the log file (WithRotation)
//   - YAML and TOML config files (LoadConfig)
//
// # Usage
//
// Build a logger once per channel:
//
//	log, err := logger.New("svc",
//	    logger.WithLevel("warning"),
//	    logger.WithFileLevel("debug"),
//	    logger.WithDir("/var/log/svc"),
//	)
//
// Emit records; arguments are fmt.Sprintf style and may be mixed with
// per-call overrides:
//
//	log.Info("listening on %s", addr)
//	log.Error("request %d failed", id, logger.Extra(map[string]any{"path": p}))
//	log.Exception(err, "reload failed")
//
// A logger built with WithConsole(false) stays quiet on the console, but a
// single record can still be shown:
//
//	log.Info("migration finished", logger.Console(true))
//
// # Shared names
//
// Loggers with the same name share their console and file destinations for
// the life of the process. A destination is attached once, so building the
// same name twice does not print every record twice.
package logger
