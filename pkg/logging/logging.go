package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lodestone-mc/lodestone/pkg/errors"
	"github.com/lodestone-mc/lodestone/pkg/paths"
)

// Options controls where log lines go.
type Options struct {
	Verbosity int
	// File receives JSON lines at the same level as the console. Empty
	// disables file logging.
	File string
	// Console receives human-readable lines. Defaults to stderr.
	Console io.Writer
}

// SetupLogger logs to stderr and to the default log file in the state
// directory.
func SetupLogger(verbosity int) {
	Setup(Options{Verbosity: verbosity, File: paths.DefaultLogFile()})
}

// Setup replaces the global logger. A log file that cannot be opened is
// reported and skipped.
func Setup(opts Options) {
	zerolog.SetGlobalLevel(LevelForVerbosity(opts.Verbosity))

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	sinks := []io.Writer{zerolog.ConsoleWriter{Out: console, TimeFormat: time.Kitchen}}

	var fileErr error
	if opts.File != "" {
		f, err := openLogFile(opts.File)
		if err == nil {
			sinks = append(sinks, f)
		}
		fileErr = err
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(sinks...)).With().Timestamp()
	if opts.Verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", opts.File).Msg("Logging to console only")
	}
	log.Debug().Int("verbosity", opts.Verbosity).Str("logFile", opts.File).Msg("Logger initialized")
}

// LevelForVerbosity maps the -v count to a level: warn, info, debug,
// then trace for anything above.
func LevelForVerbosity(verbosity int) zerolog.Level {
	levels := []zerolog.Level{zerolog.WarnLevel, zerolog.InfoLevel, zerolog.DebugLevel}
	if verbosity < 0 {
		return zerolog.WarnLevel
	}
	if verbosity < len(levels) {
		return levels[verbosity]
	}
	return zerolog.TraceLevel
}

// GetLogger returns the global logger tagged with component.
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, errors.ErrDirCreate, "cannot create log directory").
			WithDetail("path", filepath.Dir(path))
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileCreate, "cannot open log file").
			WithDetail("path", path)
	}
	return f, nil
}

// LogOperationStart logs at debug that operation began and returns a func
// that logs its completion with the elapsed time.
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("Operation started")
	return func() {
		logger.Debug().Str("operation", operation).Dur("duration", time.Since(start)).Msg("Operation completed")
	}
}
