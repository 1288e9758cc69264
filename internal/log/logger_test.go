package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func captureLogger(buf *bytes.Buffer, component string) *Logger {
	return New(Config{
		Handler:   slog.NewJSONHandler(buf, nil),
		Component: component,
	})
}

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var record map[string]any
	if err := json.Unmarshal(lines[len(lines)-1], &record); err != nil {
		t.Fatalf("decode log record: %v", err)
	}
	return record
}

func TestLogger_StampsComponentOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := captureLogger(&buf, ComponentApp).WithComponent(ComponentLedger)

	logger.Info("Transaction added", FieldOwnerID, "u-1")

	record := lastRecord(t, &buf)
	if record[FieldComponent] != ComponentLedger {
		t.Errorf("component = %v, want %q", record[FieldComponent], ComponentLedger)
	}
	if record[FieldOwnerID] != "u-1" {
		t.Errorf("owner_id = %v, want u-1", record[FieldOwnerID])
	}
	// One component attribute, not one per WithComponent plus one per record.
	if n := bytes.Count(buf.Bytes(), []byte(`"`+FieldComponent+`"`)); n != 1 {
		t.Errorf("component appears %d times in %s, want 1", n, buf.String())
	}
}

func TestLogger_RequestFields(t *testing.T) {
	var buf bytes.Buffer
	logger := captureLogger(&buf, ComponentHTTP)

	logger.Info("Request handled",
		FieldMethod, "GET",
		FieldPath, "/api/analytics",
		FieldStatusCode, 200,
		FieldDuration, int64(3))

	record := lastRecord(t, &buf)
	want := map[string]any{
		FieldMethod:     "GET",
		FieldPath:       "/api/analytics",
		FieldStatusCode: float64(200),
		FieldDuration:   float64(3),
	}
	for key, value := range want {
		if record[key] != value {
			t.Errorf("%s = %v, want %v", key, record[key], value)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
