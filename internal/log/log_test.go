package log

import (
	"os"
	"strings"
	"testing"
)

func TestWithAttachesAttributes(t *testing.T) {
	t.Parallel()

	lg := New(t.TempDir(), "info")
	lg.With("tile", "+40+010").Infof("processed")

	raw, err := os.ReadFile(lg.LogFile)
	if err != nil {
		t.Fatalf("log file: %v", err)
	}
	if !strings.Contains(string(raw), `"tile":"+40+010"`) {
		t.Errorf("attribute missing from log output:\n%s", raw)
	}
	if !strings.Contains(string(raw), "processed") {
		t.Errorf("message missing from log output:\n%s", raw)
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	t.Parallel()

	var lg *Logger
	lg = lg.With("tile", "+40+010")
	if lg != nil {
		t.Fatal("With on a nil logger must stay nil")
	}

	// None of these may panic.
	lg.Debug("dropped")
	lg.Debugf("dropped %d", 1)
	lg.Info("dropped")
	lg.Infof("dropped %d", 1)
}
