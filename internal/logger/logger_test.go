package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewWithWriter_JSONAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "warn", "json")

	l.Info("hidden")
	l.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"key":"value"`) {
		t.Fatalf("unexpected json output: %s", out)
	}
}

func TestNewWithWriter_TextDefault(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "bogus", "bogus")
	l.Info("hello", "n", 1)
	if !strings.Contains(buf.String(), "msg=hello") {
		t.Fatalf("unexpected text output: %s", buf.String())
	}
}
