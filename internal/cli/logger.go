// Package cli provides the command-line interface for wslkit.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/wslkit/wslkit/internal/constants"
	"github.com/wslkit/wslkit/internal/logging"
)

// logFileWriter holds the log file writer for cleanup purposes.
// This is package-level to enable cleanup during shutdown.
var logFileWriter io.WriteCloser //nolint:gochecknoglobals // Needed for cleanup

// InitLogger creates and configures a zerolog.Logger based on verbosity flags.
//
// Log levels are set as follows:
//   - verbose=true: Debug level (most detailed)
//   - quiet=true: Warn level (errors and warnings only)
//   - default: Info level (normal operation)
//
// Output format is determined by the terminal:
//   - TTY with colors enabled: console writer with timestamps
//   - Non-TTY or NO_COLOR set: JSON output to stderr
//
// The logger also writes to ~/.wslkit/logs/wslkit.log with rotation enabled.
// If the log file cannot be created, the logger continues console-only.
// Every event is tagged with the side of the restart boundary it was
// emitted from.
func InitLogger(verbose, quiet, isWSL bool) zerolog.Logger {
	level := selectLevel(verbose, quiet)
	console := selectConsoleWriter()

	var writer io.Writer = console
	if fileWriter, err := createLogFileWriter(); err == nil {
		logFileWriter = fileWriter
		writer = zerolog.MultiLevelWriter(console, fileWriter)
	}

	return zerolog.New(writer).
		Level(level).
		Hook(logging.NewEnvironmentHook(isWSL)).
		With().Timestamp().Logger()
}

// InitLoggerWithWriter creates a logger with a custom writer.
// This is primarily intended for testing purposes.
func InitLoggerWithWriter(verbose, quiet, isWSL bool, w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		Level(selectLevel(verbose, quiet)).
		Hook(logging.NewEnvironmentHook(isWSL)).
		With().Timestamp().Logger()
}

// CloseLogFile closes the log file writer if one was opened.
func CloseLogFile() {
	if logFileWriter != nil {
		_ = logFileWriter.Close()
		logFileWriter = nil
	}
}

// selectLevel maps verbosity flags to a zerolog level.
func selectLevel(verbose, quiet bool) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// selectConsoleWriter returns a human-friendly console writer on a TTY and
// raw JSON to stderr otherwise.
func selectConsoleWriter() io.Writer {
	if term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	}
	return os.Stderr
}

// createLogFileWriter opens the rotating log file under ~/.wslkit/logs.
func createLogFileWriter() (io.WriteCloser, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	logDir := filepath.Join(home, constants.Home, constants.LogsDir)
	if err := os.MkdirAll(logDir, 0o750); err != nil {
		return nil, err
	}

	return &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "wslkit.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}, nil
}
