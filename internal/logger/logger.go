package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Custom levels sit between info and warn so that they are visible at the
// default verbosity and filtered together with info when quieter.
const (
	NoticeLevel  = log.InfoLevel + 1
	SuccessLevel = log.InfoLevel + 2
)

// Logger is a leveled log sink. The embedded *log.Logger provides Warn,
// Error, Info and the structured key/value handling.
type Logger struct {
	*log.Logger
}

// New creates a Logger writing to w at info level.
func New(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		Level: log.InfoLevel,
	})
	l.SetStyles(styles())
	return &Logger{Logger: l}
}

// Default returns a Logger writing to stderr.
func Default() *Logger {
	return New(os.Stderr)
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return New(io.Discard)
}

// SetVerbose toggles verbose (debug) output.
func (l *Logger) SetVerbose(on bool) {
	if on {
		l.SetLevel(log.DebugLevel)
		return
	}
	l.SetLevel(log.InfoLevel)
}

// IsVerbose reports whether verbose output is enabled.
func (l *Logger) IsVerbose() bool {
	return l.GetLevel() <= log.DebugLevel
}

// Verbose logs diagnostic detail only shown with --debug.
func (l *Logger) Verbose(msg string, keyvals ...any) {
	l.Log(log.DebugLevel, msg, keyvals...)
}

// Notice logs a progress step the user should see.
func (l *Logger) Notice(msg string, keyvals ...any) {
	l.Log(NoticeLevel, msg, keyvals...)
}

// Success logs a completed step.
func (l *Logger) Success(msg string, keyvals ...any) {
	l.Log(SuccessLevel, msg, keyvals...)
}

func styles() *log.Styles {
	s := log.DefaultStyles()
	s.Levels[log.DebugLevel] = lipgloss.NewStyle().
		SetString("VERB").
		Bold(true).
		Foreground(lipgloss.Color("245"))
	s.Levels[NoticeLevel] = lipgloss.NewStyle().
		SetString("NOTI").
		Bold(true).
		Foreground(lipgloss.Color("39"))
	s.Levels[SuccessLevel] = lipgloss.NewStyle().
		SetString("SUCC").
		Bold(true).
		Foreground(lipgloss.Color("42"))
	return s
}
