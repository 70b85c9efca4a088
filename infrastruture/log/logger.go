// Package log provides prefixed, colored loggers backed by log15.
package log

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/beka-birhanu/vinom-explorer/config"
	"github.com/beka-birhanu/vinom-explorer/service/i"
	"github.com/inconshreveable/log15"
)

// ErrNilWriter is returned when a logger is created without a writer.
var ErrNilWriter = errors.New("log writer is nil")

var _ i.Logger = &Logger{}

// Logger writes lines of the form "[PREFIX] [LEVEL] message key=value".
type Logger struct {
	prefix string
	color  string
	log    log15.Logger
}

// New creates a logger that writes to w with the given prefix and color.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	return NewWithLevel(prefix, color, w, log15.LvlDebug)
}

// NewWithLevel is New with records above lvl filtered out.
func NewWithLevel(prefix, color string, w io.Writer, lvl log15.Lvl) (*Logger, error) {
	if w == nil {
		return nil, ErrNilWriter
	}

	l := &Logger{prefix: prefix, color: color, log: log15.New()}
	l.log.SetHandler(log15.LvlFilterHandler(lvl, log15.StreamHandler(w, log15.FormatFunc(l.format))))
	return l, nil
}


// Info implements i.Logger.
func (l *Logger) Info(msg string) {
	l.log.Info(msg)
}

// Warning implements i.Logger.
func (l *Logger) Warning(msg string) {
	l.log.Warn(msg)
}

// Error implements i.Logger.
func (l *Logger) Error(msg string) {
	l.log.Error(msg)
}

// Debug implements i.Logger.
func (l *Logger) Debug(msg string) {
	l.log.Debug(msg)
}

func (l *Logger) format(r *log15.Record) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s %s[%s]%s %s[%s]%s %s",
		r.Time.Format("2006/01/02 15:04:05"),
		l.color, l.prefix, config.ColorReset,
		levelColor(r.Lvl), levelName(r.Lvl), config.LogColorReset,
		r.Msg,
	)
	for k := 0; k+1 < len(r.Ctx); k += 2 {
		fmt.Fprintf(&b, " %v=%v", r.Ctx[k], r.Ctx[k+1])
	}
	b.WriteByte('\n')
	return b.Bytes()
}

func levelName(lvl log15.Lvl) string {
	switch lvl {
	case log15.LvlCrit:
		return "FATAL"
	case log15.LvlError:
		return "ERROR"
	case log15.LvlWarn:
		return "WARNING"
	case log15.LvlInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

func levelColor(lvl log15.Lvl) string {
	switch lvl {
	case log15.LvlCrit, log15.LvlError:
		return config.LogErrorColor
	case log15.LvlWarn:
		return config.LogWarnColor
	case log15.LvlInfo:
		return config.LogInfoColor
	default:
		return config.ColorReset
	}
}
