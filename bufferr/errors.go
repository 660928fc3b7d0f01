// Package bufferr defines the sentinel error kinds and context tags shared
// by every package in this module, wrapped at each call site with
// github.com/pkg/errors so the original kind survives errors.Is/errors.As.
package bufferr

import "github.com/pkg/errors"

// Sentinel error kinds, per the error model: each core operation returns
// one of these, wrapped with a Context via Wrap.
var (
	ErrStreamClosed    = errors.New("stream closed")
	ErrEndOfStream     = errors.New("end of stream")
	ErrUTF8            = errors.New("invalid utf-8 sequence")
	ErrPoolBusy        = errors.New("pool busy")
	ErrIO              = errors.New("i/o error")
	ErrOutOfBounds     = errors.New("position out of bounds")
	ErrShared          = errors.New("segment is shared; fork before writing")
	ErrNotImplemented  = errors.New("not implemented")
	// ErrPoolExhausted is returned when AllocationNever forbids ad-hoc
	// allocation and the pool does not hold enough cached capacity to
	// satisfy a claim.
	ErrPoolExhausted = errors.New("pool exhausted; allocation forbidden")
)

// Context tags the operation under which an error kind occurred.
type Context string

// Known contexts, matching every site in the core that can fail.
const (
	Read    Context = "read"
	Write   Context = "write"
	Copy    Context = "copy"
	Fill    Context = "fill"
	Drain   Context = "drain"
	Clear   Context = "clear"
	Reserve Context = "reserve"
	Resize  Context = "resize"
	Compact Context = "compact"
)

// Wrap annotates err with ctx, preserving err as the cause for errors.Is
// and errors.Cause.
func Wrap(err error, ctx Context) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, "%s", string(ctx))
}

// Is reports whether err (or any error it wraps) is kind.
func Is(err, kind error) bool {
	return errors.Is(err, kind)
}
