package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{JSON: true})

	logger.Debug("hidden")
	logger.Info("tool failed", Tool("docs_get_document"), Category("not_found"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line at INFO level, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry[KeyTool] != "docs_get_document" {
		t.Errorf("tool = %v, want docs_get_document", entry[KeyTool])
	}
	if entry[KeyCategory] != "not_found" {
		t.Errorf("error_category = %v, want not_found", entry[KeyCategory])
	}
}

func TestNew_Debug(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Debug: true})

	logger.Debug("visible", Operation("gmail.list"))
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("expected debug line in output, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "operation=gmail.list") {
		t.Errorf("expected text handler attribute, got %q", buf.String())
	}
}

func TestWithHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{})

	WithService(WithTool(WithOperation(logger, "list"), "drive_list_files"), "drive").Info("done")

	out := buf.String()
	for _, want := range []string{"operation=list", "tool=drive_list_files", "service=drive"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestAttrs(t *testing.T) {
	tests := []struct {
		name    string
		attr    slog.Attr
		wantKey string
		wantVal string
	}{
		{"operation", Operation("test_op"), KeyOperation, "test_op"},
		{"service", Service("gmail"), KeyService, "gmail"},
		{"tool", Tool("gmail_get_message"), KeyTool, "gmail_get_message"},
		{"status", Status(StatusSuccess), KeyStatus, StatusSuccess},
		{"category", Category("rate_limited"), KeyCategory, "rate_limited"},
		{"transport", Transport("stdio"), KeyTransport, "stdio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.attr.Key != tt.wantKey {
				t.Errorf("key = %q, want %q", tt.attr.Key, tt.wantKey)
			}
			if tt.attr.Value.String() != tt.wantVal {
				t.Errorf("value = %q, want %q", tt.attr.Value.String(), tt.wantVal)
			}
		})
	}
}

func TestDuration(t *testing.T) {
	attr := Duration(1500 * time.Millisecond)
	if attr.Key != KeyDuration {
		t.Errorf("Duration key = %q, want %q", attr.Key, KeyDuration)
	}
	if attr.Value.Duration() != 1500*time.Millisecond {
		t.Errorf("Duration value = %v", attr.Value.Duration())
	}
}

func TestErr(t *testing.T) {
	err := errors.New("test error")
	attr := Err(err)
	if attr.Key != KeyError {
		t.Errorf("Err key = %q, want %q", attr.Key, KeyError)
	}
	if attr.Value.String() != "test error" {
		t.Errorf("Err value = %q, want %q", attr.Value.String(), "test error")
	}

	// Empty Group has empty key
	attr = Err(nil)
	if attr.Key != "" {
		t.Errorf("Err(nil) key = %q, want empty string (empty group)", attr.Key)
	}
}

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		token    string
		expected string
	}{
		{"", "<empty>"},
		{"abc123", "[token:6 chars]"},
		{"1//0a_very_long_refresh_token", "[token:29 chars]"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := SanitizeToken(tt.token)
			if result != tt.expected {
				t.Errorf("SanitizeToken(%q) = %q, want %q", tt.token, result, tt.expected)
			}
		})
	}
}
