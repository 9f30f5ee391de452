package internal

import (
	"fmt"
	"testing"
	"time"
)

// FailureMessage reports a got/want mismatch
func FailureMessage(t *testing.T, got, want interface{}) {
	t.Helper()
	t.Errorf("\nGot: %+v\nWant: %+v", got, want)
}

// AssertNoError stops the test on an unexpected error
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
}

// AssertErrored stops the test if err is nil
func AssertErrored(t *testing.T, err error) {
	t.Helper()

	if err == nil {
		t.Fatal("Expected an error, but got nil")
	}
}

// AssertEqual checks that comparable values are equal
func AssertEqual(t *testing.T, got, want interface{}) {
	t.Helper()

	if got != want {
		FailureMessage(t, got, want)
	}
}

// AssertTrue checks that the value is true
func AssertTrue(t *testing.T, got bool, msgAndArgs ...interface{}) {
	t.Helper()

	if !got {
		t.Error("Expected to be true, but it wasn't. " + fmt.Sprint(msgAndArgs...))
	}
}

// Within fails the test if assert does not return within d
func Within(t *testing.T, d time.Duration, assert func()) {
	t.Helper()

	done := make(chan struct{}, 1)

	go func() {
		assert()
		done <- struct{}{}
	}()

	select {
	case <-time.After(d):
		t.Error("timed out")
	case <-done:
	}
}
