package observability

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"sales-dashboard/internal/config"
)

func TestNewLoggerTo(t *testing.T) {
	tests := []struct {
		name   string
		cfg    config.LoggerConfig
		isJSON bool
		debug  bool
	}{
		{"json info", config.LoggerConfig{Level: "info", Format: "json"}, true, false},
		{"text debug", config.LoggerConfig{Level: "debug", Format: "text"}, false, true},
		{"unknown format falls back to json", config.LoggerConfig{Level: "warn", Format: "xml"}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLoggerTo(&buf, tt.cfg)

			logger.Debug("debug line")
			logger.Warn("warn line", "rows", 3)

			out := buf.String()
			if got := strings.Contains(out, "debug line"); got != tt.debug {
				t.Errorf("debug emitted = %v, want %v", got, tt.debug)
			}
			if !strings.Contains(out, ServiceName) {
				t.Error("every line should carry the service name")
			}

			last := strings.TrimSpace(out[strings.LastIndex(strings.TrimSpace(out), "\n")+1:])
			var decoded map[string]any
			isJSON := json.Unmarshal([]byte(last), &decoded) == nil
			if isJSON != tt.isJSON {
				t.Errorf("json output = %v, want %v: %s", isJSON, tt.isJSON, last)
			}
		})
	}
}

func TestContextAttrs(t *testing.T) {
	if attrs := ContextAttrs(context.Background()); len(attrs) != 0 {
		t.Errorf("empty context should yield no attrs, got %v", attrs)
	}

	tp, err := NewTracerProvider(config.TracingConfig{}, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	defer tp.Shutdown(context.Background())

	ctx := WithRequestID(context.Background(), "req-42")
	ctx, span := StartSpan(ctx, "test")
	defer span.End()

	attrs := ContextAttrs(ctx)
	joined := fmtAttrs(attrs)
	for _, want := range []string{"request_id", "req-42", "trace_id", "span_id"} {
		if !strings.Contains(joined, want) {
			t.Errorf("attrs %v missing %q", attrs, want)
		}
	}
}

func TestTracerProviderExportsWhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	tp, err := NewTracerProvider(config.TracingConfig{Enabled: true}, &buf)
	if err != nil {
		t.Fatal(err)
	}

	_, span := StartSpan(context.Background(), "dashboard.render")
	EndSpan(span, nil)

	if err := tp.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}
	if !strings.Contains(buf.String(), "dashboard.render") {
		t.Errorf("exported spans should include dashboard.render, got %q", buf.String())
	}
}

func fmtAttrs(attrs []any) string {
	var sb strings.Builder
	for _, a := range attrs {
		if s, ok := a.(string); ok {
			sb.WriteString(s)
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
