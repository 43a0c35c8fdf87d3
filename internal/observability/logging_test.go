package observability

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestWithLoadID(t *testing.T) {
	ctx := WithLoadID(context.Background(), "load-123")

	lc := GetContext(ctx)
	if lc.LoadID != "load-123" {
		t.Errorf("expected load-123, got %s", lc.LoadID)
	}
}

func TestNewLoadIDIsUUID(t *testing.T) {
	id := NewLoadID()
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected a UUID, got %q: %v", id, err)
	}
	if id == NewLoadID() {
		t.Error("expected distinct load IDs")
	}
}

func TestContextChaining(t *testing.T) {
	ctx := context.Background()
	ctx = WithLoadID(ctx, "load-1")
	ctx = WithRootDir(ctx, "docs")
	ctx = WithTransformer(ctx, "slugs")
	ctx = WithStage(ctx, "enrich")

	lc := GetContext(ctx)
	if lc.LoadID != "load-1" {
		t.Error("LoadID was lost in chaining")
	}
	if lc.RootDir != "docs" {
		t.Error("RootDir was lost in chaining")
	}
	if lc.Transformer != "slugs" {
		t.Error("Transformer was lost in chaining")
	}
	if lc.Stage != "enrich" {
		t.Error("Stage was lost in chaining")
	}
}

func TestOverwriteContextValue(t *testing.T) {
	ctx := WithTransformer(context.Background(), "t1")
	ctx = WithTransformer(ctx, "t2")

	if lc := GetContext(ctx); lc.Transformer != "t2" {
		t.Errorf("expected t2, got %s", lc.Transformer)
	}
}

func TestEmptyContext(t *testing.T) {
	lc := GetContext(context.Background())
	if lc != (LogContext{}) {
		t.Error("expected empty context")
	}
	if attrs := Attrs(context.Background()); len(attrs) != 0 {
		t.Errorf("expected no attrs, got %v", attrs)
	}
}

func TestLogIncludesContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx := WithLoadID(context.Background(), "load-9")
	ctx = WithTransformer(ctx, "page_tree")

	Log(ctx, logger, slog.LevelDebug, "transformer finished", slog.String("extra", "value"))

	output := buf.String()
	for _, want := range []string{"load-9", "page_tree", "transformer finished", "extra"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in log output: %s", want, output)
		}
	}
}

func TestInfoContextUsesDefaultLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	InfoContext(WithRootDir(context.Background(), "content"), "loaded")

	if !strings.Contains(buf.String(), "content") || !strings.Contains(buf.String(), "loaded") {
		t.Errorf("unexpected log output: %s", buf.String())
	}
}
