package monitoring

import (
	"fmt"
	"testing"
)

// capture redirects Logf for the duration of a test and returns the
// formatted lines.
func capture(t *testing.T) *[]string {
	t.Helper()
	original := Logf
	t.Cleanup(func() { Logf = original })

	lines := &[]string{}
	SetLogger(func(format string, v ...interface{}) {
		*lines = append(*lines, fmt.Sprintf(format, v...))
	})
	return lines
}

func TestSetLogger(t *testing.T) {
	lines := capture(t)

	Logf("stream %s ready", "accel")
	if len(*lines) != 1 || (*lines)[0] != "stream accel ready" {
		t.Fatalf("Logf output = %v", *lines)
	}

	// nil installs a no-op logger
	SetLogger(nil)
	Logf("dropped")
	if len(*lines) != 1 {
		t.Errorf("no-op logger forwarded output: %v", *lines)
	}
}

func TestLogf_Default(t *testing.T) {
	if Logf == nil {
		t.Fatal("Logf should not be nil by default")
	}
}

func TestDebugf(t *testing.T) {
	lines := capture(t)
	t.Cleanup(func() { SetDebug(false) })

	SetDebug(false)
	Debugf("hidden %d", 1)
	if len(*lines) != 0 {
		t.Fatalf("Debugf logged while disabled: %v", *lines)
	}
	if DebugEnabled() {
		t.Error("DebugEnabled() = true, want false")
	}

	SetDebug(true)
	Debugf("shown %d", 2)
	if len(*lines) != 1 || (*lines)[0] != "debug: shown 2" {
		t.Errorf("Debugf output = %v, want [debug: shown 2]", *lines)
	}
}
