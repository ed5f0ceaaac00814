// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// Prefix is printed before every log record.
	Prefix = "pylaunch"

	fileTimeLayout = "20060102_150405"
)

type (
	// Options configures a Sink.
	Options struct {
		// Stdout and Stderr are the launcher's own streams.
		Stdout io.Writer
		Stderr io.Writer
		// Verbose lowers the level to Debug.
		Verbose bool
		// Dir enables the log file when non-empty.
		Dir string
		// FilePrefix is the log file name prefix.
		FilePrefix string
		// Now is the clock used to name the log file. Defaults to time.Now.
		Now func() time.Time
	}

	// Sink bundles the logger with the streams child processes write to.
	// When a log file is open, every stream is mirrored into it.
	Sink struct {
		Logger *log.Logger
		Stdout io.Writer
		Stderr io.Writer
		// Path is the log file path, or "" when file logging is off.
		Path string

		file *os.File
	}
)

// New creates a terminal logger writing to w.
func New(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: Prefix,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// FileName returns the log file name for prefix at t, for example
// "pylaunch_20240131_154500.log".
func FileName(prefix string, t time.Time) string {
	return fmt.Sprintf("%s_%s.log", prefix, t.Format(fileTimeLayout))
}

// Open creates a Sink. With an empty Dir it writes to the given streams only.
func Open(opts Options) (*Sink, error) {
	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	if opts.Dir == "" {
		return &Sink{
			Logger: New(stderr, opts.Verbose),
			Stdout: stdout,
			Stderr: stderr,
		}, nil
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	prefix := opts.FilePrefix
	if prefix == "" {
		prefix = Prefix
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	path := filepath.Join(opts.Dir, FileName(prefix, now()))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	logger := log.NewWithOptions(io.MultiWriter(stderr, f), log.Options{
		Prefix:          Prefix,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	if opts.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	return &Sink{
		Logger: logger,
		Stdout: io.MultiWriter(stdout, f),
		Stderr: io.MultiWriter(stderr, f),
		Path:   path,
		file:   f,
	}, nil
}

// Close flushes and closes the log file, if any.
func (s *Sink) Close() error {
	if s.file == nil {
		return nil
	}
	err := errors.Join(s.file.Sync(), s.file.Close())
	s.file = nil
	return err
}
