package gtest

import (
	"testing"
	"time"
)

// ScheduleTimeout is how long ReceiveSoon waits before failing the test.
const ScheduleTimeout = 100 * time.Millisecond

// ReceiveSoon returns the next value from ch,
// failing the test if none arrives within [ScheduleTimeout].
func ReceiveSoon[T any](t testing.TB, ch <-chan T) T {
	t.Helper()

	timer := time.NewTimer(ScheduleTimeout)
	defer timer.Stop()

	select {
	case v := <-ch:
		return v
	case <-timer.C:
		t.Fatalf("no value received within %s", ScheduleTimeout)
		var zero T
		return zero
	}
}

// IsSending fails the test if ch does not have a value ready immediately.
func IsSending[T any](t testing.TB, ch <-chan T) {
	t.Helper()

	select {
	case <-ch:
	default:
		t.Fatal("channel was not ready to receive")
	}
}

// NotSending fails the test if ch has a value ready immediately.
func NotSending[T any](t testing.TB, ch <-chan T) {
	t.Helper()

	select {
	case <-ch:
		t.Fatal("channel was unexpectedly ready to receive")
	default:
	}
}
