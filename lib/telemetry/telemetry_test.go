package telemetry

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type failingProcessor struct{}

func (failingProcessor) OnStart(ctx context.Context, s sdktrace.ReadWriteSpan) {}
func (failingProcessor) OnEnd(s sdktrace.ReadOnlySpan)                         {}
func (failingProcessor) ForceFlush(ctx context.Context) error                  { return nil }

func (failingProcessor) Shutdown(ctx context.Context) error {
	return errors.New("exporter unreachable")
}

func captureLogs(t *testing.T) *bytes.Buffer {
	var buffer bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buffer, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })
	return &buffer
}

func TestShutdownAndLogReportsFailure(t *testing.T) {
	logs := captureLogs(t)

	tel := Telemetry{
		TracerProvider: sdktrace.NewTracerProvider(
			sdktrace.WithSpanProcessor(failingProcessor{}),
		),
	}
	tel.ShutdownAndLog(context.Background())

	require.Contains(t, logs.String(), "shutdown telemetry")
	require.Contains(t, logs.String(), "exporter unreachable")
}

func TestShutdownAndLogQuietOnSuccess(t *testing.T) {
	logs := captureLogs(t)

	Telemetry{}.ShutdownAndLog(context.Background())

	require.Empty(t, logs.String())
}
