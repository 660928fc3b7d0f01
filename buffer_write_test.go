package orio

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteIntAtFamilyOverwritesInPlace(t *testing.T) {
	ctx := context.Background()
	b := Lean()
	_, err := b.WriteSlice(ctx, make([]byte, 32))
	require.NoError(t, err)

	require.NoError(t, b.WriteUint8At(0, 0xAB))
	v, ok := b.At(0)
	require.True(t, ok)
	require.Equal(t, byte(0xAB), v)

	require.NoError(t, b.WriteInt8At(1, -1))
	v, ok = b.At(1)
	require.True(t, ok)
	require.Equal(t, byte(0xFF), v)

	require.NoError(t, b.WriteUint16AtBE(2, 0xBEEF))
	hi, _ := b.At(2)
	lo, _ := b.At(3)
	require.Equal(t, byte(0xBE), hi)
	require.Equal(t, byte(0xEF), lo)

	require.NoError(t, b.WriteUint16AtLE(4, 0xBEEF))
	lo, _ = b.At(4)
	hi, _ = b.At(5)
	require.Equal(t, byte(0xEF), lo)
	require.Equal(t, byte(0xBE), hi)

	require.NoError(t, b.WriteInt32AtBE(6, -1))
	for i := 6; i < 10; i++ {
		v, _ := b.At(i)
		require.Equal(t, byte(0xFF), v)
	}

	require.NoError(t, b.WriteUint64AtLE(10, 0x0102030405060708))
	first, _ := b.At(10)
	last, _ := b.At(17)
	require.Equal(t, byte(0x08), first)
	require.Equal(t, byte(0x01), last)
}

func TestWriteIntAtOutOfBoundsFails(t *testing.T) {
	ctx := context.Background()
	b := Lean()
	_, err := b.WriteSlice(ctx, make([]byte, 4))
	require.NoError(t, err)

	require.Error(t, b.WriteUint32AtBE(1, 0xDEADC0DE))
}
