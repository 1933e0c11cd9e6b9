package utils

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func captureLog(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)
	fn()
	return buf.String()
}

func TestLogEventFormat(t *testing.T) {
	line := captureLog(t, func() {
		LogEvent("req-1", "booking", "commit", "booking_id=11")
	})
	for _, want := range []string{"[BOOKING]", "commit", "request_id=req-1", "booking_id=11"} {
		if !strings.Contains(line, want) {
			t.Fatalf("line %q missing %q", line, want)
		}
	}
}

func TestLogEventBackgroundWork(t *testing.T) {
	line := captureLog(t, func() {
		LogEvent("", "expiry", "sweep", "bookings_expired=3")
	})
	if !strings.Contains(line, "request_id=-") {
		t.Fatalf("line %q should mark missing request id with -", line)
	}
	if !strings.Contains(line, "[EXPIRY]") {
		t.Fatalf("line %q missing module tag", line)
	}
}
