package orio

import "github.com/NightEule5/orio-sub000/bufferr"

func outOfBounds() error {
	return bufferr.Wrap(bufferr.ErrOutOfBounds, bufferr.Write)
}

func sharedSegment() error {
	return bufferr.Wrap(bufferr.ErrShared, bufferr.Write)
}

func endOfStream() error {
	return bufferr.Wrap(bufferr.ErrEndOfStream, bufferr.Read)
}
