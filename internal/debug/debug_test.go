package debug

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestWithVerbose(t *testing.T) {
	ctx := WithVerbose(context.Background(), true)
	if !IsVerbose(ctx) {
		t.Error("IsVerbose should return true when verbose is enabled")
	}
}

func TestIsVerbose_DefaultFalse(t *testing.T) {
	if IsVerbose(context.Background()) {
		t.Error("IsVerbose should return false by default")
	}
}

func TestNewLogger_Levels(t *testing.T) {
	var buf bytes.Buffer

	quiet := NewLogger(&buf, false)
	quiet.Info("sending request")
	if buf.Len() != 0 {
		t.Errorf("quiet logger wrote %q", buf.String())
	}
	quiet.Warn("careful")
	if !strings.Contains(buf.String(), "careful") {
		t.Errorf("quiet logger dropped a warning: %q", buf.String())
	}

	buf.Reset()
	loud := NewLogger(&buf, true)
	loud.Info("sending request", "url", "https://x")
	if !strings.Contains(buf.String(), "sending request") || !strings.Contains(buf.String(), "url=https://x") {
		t.Errorf("verbose logger output = %q", buf.String())
	}
}

func TestSetupLogger_SetsDefault(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	logger := SetupLogger(true)
	if slog.Default() != logger {
		t.Error("SetupLogger should install the returned logger")
	}
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("SetupLogger(true) should enable debug level logging")
	}
}
