// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/pluqqy/docpick/pkg/models"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

type Sink string

const (
	SinkStderr Sink = "stderr"
	SinkFile   Sink = "file"
	SinkNone   Sink = "none"
)

const (
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 3
	defaultMaxAgeDays = 14
)

// Options carries the values stamped on every record
type Options struct {
	App     string
	Version string
	// DefaultFile is used for the file sink when settings name no file
	DefaultFile string
}

// Init builds a logger from settings, installs it as the slog default and
// returns it along with a function that releases the sink.
func Init(cfg models.LogSettings, opts Options) (*slog.Logger, func() error, error) {
	if opts.App == "" {
		opts.App = "docpick"
	}

	writer, closeFn, err := resolveWriter(cfg, opts)
	if err != nil {
		return nil, nil, err
	}

	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	var handler slog.Handler
	switch Format(strings.ToLower(cfg.Format)) {
	case FormatJSON:
		handler = slog.NewJSONHandler(writer, handlerOpts)
	case FormatText, "":
		handler = slog.NewTextHandler(writer, handlerOpts)
	default:
		closeFn()
		return nil, nil, fmt.Errorf("logging: unknown format %q", cfg.Format)
	}

	logger := slog.New(handler).With(
		slog.String("app", opts.App),
		slog.String("version", opts.Version),
	)
	slog.SetDefault(logger)
	return logger, closeFn, nil
}

// ParseLevel maps a level name to a slog level, defaulting to info
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func resolveWriter(cfg models.LogSettings, opts Options) (io.Writer, func() error, error) {
	noop := func() error { return nil }

	switch Sink(strings.ToLower(cfg.Sink)) {
	case SinkNone:
		return io.Discard, noop, nil
	case SinkStderr, "":
		return os.Stderr, noop, nil
	case SinkFile:
		path := strings.TrimSpace(cfg.File)
		if path == "" {
			path = opts.DefaultFile
		}
		if path == "" {
			return nil, nil, fmt.Errorf("logging: file sink needs a file path")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, nil, fmt.Errorf("logging: create log dir: %w", err)
		}

		rot := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    defaultMaxSizeMB,
			MaxBackups: defaultMaxBackups,
			MaxAge:     defaultMaxAgeDays,
			Compress:   true,
		}
		return rot, rot.Close, nil
	default:
		return nil, nil, fmt.Errorf("logging: unknown sink %q", cfg.Sink)
	}
}
