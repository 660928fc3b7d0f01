// Package logging provides the structured, context-carried logger used
// throughout this module, mirroring the teacher's own repo/logging
// package: a small interface, context wiring, and a null default so
// library use never forces output.
package logging

import (
	"context"

	"go.uber.org/zap"
)

// Logger is the logging surface every package in this module writes
// through. It never panics and never blocks on I/O beyond the backing
// writer's own behavior.
type Logger interface {
	Debug(msg string, kv ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type loggerKey struct{}

// nullLogger discards everything; it is the default when no logger has
// been installed into a context.
type nullLogger struct{}

func (nullLogger) Debug(string, ...interface{})   {}
func (nullLogger) Debugf(string, ...interface{})  {}
func (nullLogger) Infof(string, ...interface{})   {}
func (nullLogger) Warnf(string, ...interface{})   {}
func (nullLogger) Errorf(string, ...interface{})  {}

var null Logger = nullLogger{}

// Factory builds a Logger for a named module. Most factories ignore the
// module name or bake it into structured fields.
type Factory func(module string) Logger

// zapLogger adapts *zap.SugaredLogger to the Logger interface.
type zapLogger struct {
	s *zap.SugaredLogger
}

func (l zapLogger) Debug(msg string, kv ...interface{}) { l.s.Debugw(msg, kv...) }
func (l zapLogger) Debugf(format string, args ...interface{}) { l.s.Debugf(format, args...) }
func (l zapLogger) Infof(format string, args ...interface{})  { l.s.Infof(format, args...) }
func (l zapLogger) Warnf(format string, args ...interface{})  { l.s.Warnf(format, args...) }
func (l zapLogger) Errorf(format string, args ...interface{}) { l.s.Errorf(format, args...) }

// FromZap wraps an existing zap logger as a Factory, tagging every derived
// Logger with a "module" field.
func FromZap(z *zap.Logger) Factory {
	return func(module string) Logger {
		return zapLogger{s: z.Sugar().With("module", module)}
	}
}

// WithLogger installs factory into ctx, replacing any previously installed
// factory.
func WithLogger(ctx context.Context, factory Factory) context.Context {
	return context.WithValue(ctx, loggerKey{}, factory)
}

// WithAdditionalLogger installs factory into ctx such that modules log to
// both the existing installed factory (if any) and the new one.
func WithAdditionalLogger(ctx context.Context, factory Factory) context.Context {
	existing, ok := ctx.Value(loggerKey{}).(Factory)
	if !ok {
		return WithLogger(ctx, factory)
	}
	return WithLogger(ctx, Broadcast(existing, factory))
}

// Broadcast returns a Factory whose loggers fan every call out to each of
// the given factories' loggers for the same module.
func Broadcast(factories ...Factory) Factory {
	return func(module string) Logger {
		loggers := make([]Logger, 0, len(factories))
		for _, f := range factories {
			if f != nil {
				loggers = append(loggers, f(module))
			}
		}
		return broadcastLogger(loggers)
	}
}

type broadcastLogger []Logger

func (b broadcastLogger) Debug(msg string, kv ...interface{}) {
	for _, l := range b {
		l.Debug(msg, kv...)
	}
}

func (b broadcastLogger) Debugf(format string, args ...interface{}) {
	for _, l := range b {
		l.Debugf(format, args...)
	}
}

func (b broadcastLogger) Infof(format string, args ...interface{}) {
	for _, l := range b {
		l.Infof(format, args...)
	}
}

func (b broadcastLogger) Warnf(format string, args ...interface{}) {
	for _, l := range b {
		l.Warnf(format, args...)
	}
}

func (b broadcastLogger) Errorf(format string, args ...interface{}) {
	for _, l := range b {
		l.Errorf(format, args...)
	}
}

// Module returns a function that, given a context, retrieves the Logger
// for the named module, falling back to the null logger if none is
// installed.
func Module(name string) func(ctx context.Context) Logger {
	return GetContextLoggerFunc(name)
}

// GetContextLoggerFunc returns a function that resolves the Logger for
// module name from a context, matching the teacher's own accessor
// pattern (`var log = logging.GetContextLoggerFunc("client")`).
func GetContextLoggerFunc(name string) func(ctx context.Context) Logger {
	return func(ctx context.Context) Logger {
		if ctx == nil {
			return null
		}
		if f, ok := ctx.Value(loggerKey{}).(Factory); ok {
			return f(name)
		}
		return null
	}
}
