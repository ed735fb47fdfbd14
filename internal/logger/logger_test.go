package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestTextOutput(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "DEBUG", "text", false)
	defer InitWithWriter(&buf, "INFO", "text", false)

	Info("content uploaded", "tenant_id", "t-1", "size", 1024)

	out := buf.String()
	if !strings.Contains(out, "content uploaded") {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "tenant_id=t-1") {
		t.Errorf("output missing attribute: %q", out)
	}
	if !strings.Contains(out, "size=1024") {
		t.Errorf("output missing attribute: %q", out)
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "json", false)
	defer InitWithWriter(&buf, "INFO", "text", false)

	Warn("quota exceeded", "tenant_id", "t-2")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if record["msg"] != "quota exceeded" {
		t.Errorf("msg = %v, want %q", record["msg"], "quota exceeded")
	}
	if record["tenant_id"] != "t-2" {
		t.Errorf("tenant_id = %v, want %q", record["tenant_id"], "t-2")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "WARN", "text", false)
	defer InitWithWriter(&buf, "INFO", "text", false)

	Debug("should not appear")
	Info("should not appear either")
	Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "not appear") {
		t.Errorf("low-level messages were not filtered: %q", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestSetLevelIgnoresInvalid(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "text", false)
	defer InitWithWriter(&buf, "INFO", "text", false)

	SetLevel("VERBOSE")

	Info("still info")
	if !strings.Contains(buf.String(), "still info") {
		t.Error("invalid SetLevel changed the configured level")
	}
}
