// Package logging emits leveled log and progress lines in the framing the
// host parses out of the plugin's output stream. Each line is
// SOH + level byte + STX + message, so the host can separate log traffic
// from the terminal result envelope.
package logging

import (
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	startByte = '\x01'
	endByte   = '\x02'

	levelTrace    = 't'
	levelDebug    = 'd'
	levelInfo     = 'i'
	levelWarning  = 'w'
	levelError    = 'e'
	levelProgress = 'p'
)

// progressKey marks an entry as a progress report rather than a log line.
const progressKey = "progress"

// Logger is the host-facing logging sink.
type Logger struct {
	l *logrus.Logger
}

// New returns a Logger writing host-framed lines to out. All levels are
// enabled; the host applies its own filtering.
func New(out io.Writer) *Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.TraceLevel)
	l.SetFormatter(&hostFormatter{})
	return &Logger{l: l}
}

func (g *Logger) Trace(args ...any)                 { g.l.Trace(args...) }
func (g *Logger) Debug(args ...any)                 { g.l.Debug(args...) }
func (g *Logger) Debugf(format string, args ...any) { g.l.Debugf(format, args...) }
func (g *Logger) Info(args ...any)                  { g.l.Info(args...) }
func (g *Logger) Infof(format string, args ...any)  { g.l.Infof(format, args...) }
func (g *Logger) Warn(args ...any)                  { g.l.Warn(args...) }
func (g *Logger) Error(args ...any)                 { g.l.Error(args...) }
func (g *Logger) Errorf(format string, args ...any) { g.l.Errorf(format, args...) }

// Progress reports a completion fraction. Values outside [0, 1] are clamped.
// The host treats the value as a hint; monotonicity is not enforced here.
func (g *Logger) Progress(v float64) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	g.l.WithField(progressKey, v).Info()
}

// hostFormatter renders entries in the host's control-character framing.
// Progress entries carry the fraction in place of a message.
type hostFormatter struct{}

func (hostFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	level := levelByte(entry.Level)
	msg := entry.Message

	if v, ok := entry.Data[progressKey]; ok {
		if f, ok := v.(float64); ok {
			level = levelProgress
			msg = strconv.FormatFloat(f, 'f', -1, 64)
		}
	}

	// One log call is always one line on the wire.
	msg = strings.ReplaceAll(msg, "\n", `\n`)

	buf := make([]byte, 0, len(msg)+4)
	buf = append(buf, startByte, level, endByte)
	buf = append(buf, msg...)
	buf = append(buf, '\n')
	return buf, nil
}

func levelByte(level logrus.Level) byte {
	switch level {
	case logrus.TraceLevel:
		return levelTrace
	case logrus.DebugLevel:
		return levelDebug
	case logrus.InfoLevel:
		return levelInfo
	case logrus.WarnLevel:
		return levelWarning
	default:
		return levelError
	}
}
