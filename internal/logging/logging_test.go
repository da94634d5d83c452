package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/tidwall/gjson"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"info", LevelInfo, false},
		{"", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"error", LevelError, false},
		{"trace", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("json"); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(json) = %v, %v", f, err)
	}
	if f, err := ParseFormat("text"); err != nil || f != FormatText {
		t.Errorf("ParseFormat(text) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) succeeded")
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelInfo, FormatJSON)
	log.Debug("hidden")
	log.Info("flushed", "ops", 2)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}
	rec := gjson.Parse(lines[0])
	if got := rec.Get("msg").String(); got != "flushed" {
		t.Errorf("msg = %q, want %q", got, "flushed")
	}
	if got := rec.Get("ops").Int(); got != 2 {
		t.Errorf("ops = %d, want 2", got)
	}
	if _, err := time.Parse(time.RFC3339, rec.Get("time").String()); err != nil {
		t.Errorf("time %q is not RFC3339: %v", rec.Get("time").String(), err)
	}
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelWarn, FormatText)
	log.Info("hidden")
	log.Warn("rejected", "path", "[0 1]")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record written at warn level: %q", out)
	}
	if !strings.Contains(out, "msg=rejected") {
		t.Errorf("missing warn record: %q", out)
	}
}

func TestDiscard(t *testing.T) {
	if Discard().Enabled(context.Background(), 12) {
		t.Error("Discard logger enabled at level 12")
	}
}
