package logger

import (
	"io"
	"log"
)

// Logger is a line-oriented console writer with one prefix per level.
type Logger struct {
	info  *log.Logger
	warn  *log.Logger
	error *log.Logger
}

// New returns a Logger writing every level to w. With quiet set, INFO lines
// are dropped.
func New(w io.Writer, quiet bool) *Logger {
	flags := log.Ldate | log.Ltime
	infoOut := w
	if quiet {
		infoOut = io.Discard
	}
	return &Logger{
		info:  log.New(infoOut, "INFO  ", flags),
		warn:  log.New(w, "WARN  ", flags),
		error: log.New(w, "ERROR ", flags),
	}
}

func (l *Logger) Infof(format string, v ...interface{}) {
	l.info.Printf(format, v...)
}

func (l *Logger) Warnf(format string, v ...interface{}) {
	l.warn.Printf(format, v...)
}

func (l *Logger) Errorf(format string, v ...interface{}) {
	l.error.Printf(format, v...)
}
