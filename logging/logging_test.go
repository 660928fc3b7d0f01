package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNullLoggerIsDefaultWhenNoneInstalled(t *testing.T) {
	get := GetContextLoggerFunc("test")
	log := get(context.Background())
	require.NotNil(t, log)
	// Should not panic even though nothing is installed.
	log.Infof("hello %s", "world")
}

func TestGetContextLoggerFuncWithNilContext(t *testing.T) {
	get := GetContextLoggerFunc("test")
	require.NotNil(t, get(nil))
}

func TestWithLoggerRoutesToWriter(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), ToWriter(&buf))

	get := GetContextLoggerFunc("buffer")
	get(ctx).Infof("count=%d", 42)

	out := buf.String()
	require.Contains(t, out, "INFO")
	require.Contains(t, out, "buffer")
	require.Contains(t, out, "count=42")
}

func TestWithAdditionalLoggerBroadcasts(t *testing.T) {
	var first, second bytes.Buffer
	ctx := WithLogger(context.Background(), ToWriter(&first))
	ctx = WithAdditionalLogger(ctx, ToWriter(&second))

	get := GetContextLoggerFunc("pool")
	get(ctx).Warnf("busy")

	require.True(t, strings.Contains(first.String(), "busy"))
	require.True(t, strings.Contains(second.String(), "busy"))
}

func TestBroadcastFansOutToEachFactory(t *testing.T) {
	var a, b bytes.Buffer
	factory := Broadcast(ToWriter(&a), ToWriter(&b))
	log := factory("mod")

	log.Errorf("boom")

	require.Contains(t, a.String(), "boom")
	require.Contains(t, b.String(), "boom")
}

func TestModuleIsEquivalentToGetContextLoggerFunc(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), ToWriter(&buf))

	get := Module("mymod")
	get(ctx).Debugf("detail")

	require.Contains(t, buf.String(), "mymod")
}
