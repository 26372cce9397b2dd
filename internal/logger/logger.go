package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LogFilePath is the default log file, relative to the working directory.
const LogFilePath = "logs/viewer.txt"

// DefaultKeep is how many recent lines Lines returns.
const DefaultKeep = 200

const sessionField = "session"

// Logger is a zerolog logger that also writes to a file on disk and keeps the most recent
// lines in memory for the on-screen overlay.
type Logger struct {
	zerolog.Logger
	// Session identifies this run. It is stamped on every file line only, so runs appended
	// to the same file can be told apart.
	Session string

	mu    sync.Mutex
	lines []string
	keep  int
	file  *os.File
}

// Options configures New. Zero values use LogFilePath, DefaultKeep and stdout.
type Options struct {
	Level   string
	File    string
	Keep    int
	Console io.Writer
	// NoFile skips the log file, for tests and the profile subcommand.
	NoFile bool
}

// New builds the logger and ensures the log directory exists.
func New(opts Options) (*Logger, error) {
	if opts.File == "" {
		opts.File = LogFilePath
	}
	if opts.Keep <= 0 {
		opts.Keep = DefaultKeep
	}
	if opts.Console == nil {
		opts.Console = os.Stdout
	}

	l := &Logger{keep: opts.Keep, Session: uuid.NewString()}
	hide := []string{sessionField}
	writers := []io.Writer{
		zerolog.ConsoleWriter{Out: opts.Console, TimeFormat: time.TimeOnly, FieldsExclude: hide},
		zerolog.ConsoleWriter{Out: (*memory)(l), TimeFormat: time.TimeOnly, NoColor: true, FieldsExclude: hide},
	}

	if !opts.NoFile {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		l.file = f
		writers = append(writers, zerolog.ConsoleWriter{Out: f, TimeFormat: time.DateTime, NoColor: true})
	}

	l.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(ParseLevel(opts.Level)).
		With().Timestamp().Str(sessionField, l.Session).Logger()
	return l, nil
}

// ParseLevel maps debug, info, warn, error and trace to zerolog levels. Anything else is info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Lines returns a copy of the most recent lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// memory is the in-memory sink behind Lines.
type memory Logger

func (m *memory) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		m.lines = append(m.lines, line)
	}
	if over := len(m.lines) - m.keep; over > 0 {
		m.lines = append(m.lines[:0], m.lines[over:]...)
	}
	return len(p), nil
}
