package logging

import (
	"fmt"
	"io"
)

// ToWriter returns a Factory whose loggers write plain lines to w, for use
// in tests that assert on captured log output (mirroring the teacher's own
// `logging.ToWriter(&buf)` test helper).
func ToWriter(w io.Writer) Factory {
	return func(module string) Logger {
		return writerLogger{w: w, module: module}
	}
}

type writerLogger struct {
	w      io.Writer
	module string
}

func (l writerLogger) line(level, msg string) {
	fmt.Fprintf(l.w, "%s\t%s\t%s\n", level, l.module, msg)
}

func (l writerLogger) Debug(msg string, kv ...interface{}) {
	l.line("DEBUG", fmt.Sprint(append([]interface{}{msg}, kv...)...))
}

func (l writerLogger) Debugf(format string, args ...interface{}) {
	l.line("DEBUG", fmt.Sprintf(format, args...))
}

func (l writerLogger) Infof(format string, args ...interface{}) {
	l.line("INFO", fmt.Sprintf(format, args...))
}

func (l writerLogger) Warnf(format string, args ...interface{}) {
	l.line("WARN", fmt.Sprintf(format, args...))
}

func (l writerLogger) Errorf(format string, args ...interface{}) {
	l.line("ERROR", fmt.Sprintf(format, args...))
}
