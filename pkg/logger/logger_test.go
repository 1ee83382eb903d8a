package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}

	// Re-init is allowed; last call wins.
	if err := Init(WithFormat("json")); err != nil {
		t.Fatalf("failed to re-initialize logger: %v", err)
	}
	if Get() == nil {
		t.Fatal("logger is nil after re-initialization")
	}
}

func TestLoggerInitBadFormat(t *testing.T) {
	if err := Init(WithFormat("xml")); err == nil {
		t.Fatal("expected error for unknown format")
	}
	// Leave a working global behind for other tests.
	if err := Init(); err != nil {
		t.Fatalf("failed to restore logger: %v", err)
	}
}

func TestLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithFormat("json"), WithOutput(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	ctx := context.Background()
	Get().Info(ctx, "test message", String("k", "v"), Int("n", 3))

	out := buf.String()
	if !strings.Contains(out, `"msg":"test message"`) {
		t.Errorf("missing message in output: %s", out)
	}
	if !strings.Contains(out, `"k":"v"`) {
		t.Errorf("missing field in output: %s", out)
	}
	if !strings.Contains(out, `"source"`) {
		t.Errorf("missing caller source in output: %s", out)
	}

	if err := Init(); err != nil {
		t.Fatalf("failed to restore logger: %v", err)
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithOutput(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	if err := SetLevelString("warn"); err != nil {
		t.Fatalf("failed to set level: %v", err)
	}

	ctx := context.Background()
	Get().Info(ctx, "hidden")
	Get().Warn(ctx, "visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info entry leaked past warn level: %s", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn entry missing: %s", out)
	}

	if err := SetLevelString("nope"); err == nil {
		t.Error("expected error for unknown level")
	}

	if err := Init(); err != nil {
		t.Fatalf("failed to restore logger: %v", err)
	}
}

func TestLoggerNamed(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	named := Named("test")
	if named == nil {
		t.Fatal("named logger is nil")
	}

	ctx := context.Background()
	named.Info(ctx, "test message")
}
