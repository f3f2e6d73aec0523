package geodesic

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger returned nil")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should be disabled at every level")
	}
}

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	Logger().Info("hello", "k", "v")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("log output missing message: %q", buf.String())
	}

	SetLogger(nil)
	buf.Reset()
	Logger().Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("nil logger should silence output, got %q", buf.String())
	}
}

func TestVerboseShorteningLogs(t *testing.T) {
	defer SetLogger(nil)
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	m, err := Icosphere(1)
	if err != nil {
		t.Fatalf("Icosphere: %v", err)
	}
	net, err := NewFlipNetworkFromDijkstraPath(m, 0, antipode(m, 0), WithVerbose(true))
	if err != nil {
		t.Fatalf("NewFlipNetworkFromDijkstraPath: %v", err)
	}
	net.IterativeShorten()

	if !strings.Contains(buf.String(), "flexible joint") {
		t.Errorf("verbose run produced no progress lines")
	}
}
