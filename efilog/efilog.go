// Package efilog implements the driver shell's leveled logging (spec §4.1
// Install, §7): five gated levels (error, warning, info, debug, extra)
// sinking to a console writer at or below a process-wide level set once at
// image entry, discarded above.
//
// The original C driver keeps a table of five function pointers, one per
// level, each either Print (the firmware console routine) or a no-op,
// re-pointed whenever the level changes. This rewrite keeps the same
// "pick the sink once, not on every call" shape but expresses it with a
// logrus.Logger whose level is derived from the driver's five-level scale,
// since logrus only has its own seven-level scale (Panic/Fatal/Error/Warn/
// Info/Debug/Trace) which doesn't line up one-to-one with FS_LOGLEVEL.
package efilog

import (
	"io"
	"os"
	"strconv"

	"github.com/efifs/corefs"
	"github.com/sirupsen/logrus"
)

// Logger wraps a logrus.Logger, translating the five-level FS_LOGLEVEL
// scale onto logrus's own levels; "extra", the finest level, maps to
// logrus's Trace.
type Logger struct {
	entry *logrus.Logger
}

// New creates a Logger writing to w at the given level.
func New(w io.Writer, level efifs.LogLevel) *Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})
	l.SetLevel(logrusLevel(level))
	return &Logger{entry: l}
}

// NewFromEnv mirrors the original driver's SetLogging(): it reads the
// variable's textual value (as the firmware's FS_LOGGING shell variable
// would be read via RT->GetVariable), parses it as an integer 0..5, and
// falls back to LogLevelNone for anything else (unset, unparsable, or out of
// range), exactly like the original's bare Atoi() call, which returns 0 on
// failure.
func NewFromEnv(w io.Writer, value string, ok bool) *Logger {
	level := efifs.LogLevelNone
	if ok {
		if parsed, err := strconv.Atoi(value); err == nil && parsed >= int(efifs.LogLevelNone) && parsed <= int(efifs.LogLevelExtra) {
			level = efifs.LogLevel(parsed)
		}
	}
	return New(w, level)
}

func logrusLevel(level efifs.LogLevel) logrus.Level {
	switch level {
	case efifs.LogLevelNone:
		return logrus.PanicLevel // we never emit at Panic, so this silences everything
	case efifs.LogLevelError:
		return logrus.ErrorLevel
	case efifs.LogLevelWarning:
		return logrus.WarnLevel
	case efifs.LogLevelInfo:
		return logrus.InfoLevel
	case efifs.LogLevelDebug:
		return logrus.DebugLevel
	case efifs.LogLevelExtra:
		return logrus.TraceLevel
	default:
		return logrus.PanicLevel
	}
}

func (l *Logger) Error(format string, args ...any)   { l.entry.Errorf(format, args...) }
func (l *Logger) Warning(format string, args ...any) { l.entry.Warnf(format, args...) }
func (l *Logger) Info(format string, args ...any)    { l.entry.Infof(format, args...) }
func (l *Logger) Debug(format string, args ...any)   { l.entry.Debugf(format, args...) }
func (l *Logger) Extra(format string, args ...any)   { l.entry.Tracef(format, args...) }

// Discard is a Logger that never writes anything, used as the default
// before an Install call configures real logging.
var Discard = New(io.Discard, efifs.LogLevelNone)

// Stderr is a convenience constructor matching the original driver's use of
// the firmware console as its only sink.
func Stderr(level efifs.LogLevel) *Logger {
	return New(os.Stderr, level)
}
