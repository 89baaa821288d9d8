package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerBasic(t *testing.T) {
	var buf syncBuffer
	s := newSpinner(context.Background(), &buf, "Rendering...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Rendering...") {
		t.Errorf("spinner output %q should contain message", buf.String())
	}
	if !s.Cancelled() {
		t.Error("Stop() should cancel the spinner context")
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinner(ctx, &syncBuffer{}, "Testing with context...")
	s.Start()
	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner(context.Background(), &syncBuffer{}, "Testing idempotent stop...")
	s.Start()
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s := newSpinner(context.Background(), &syncBuffer{}, "never started")
	s.Stop()
}

func TestSpinnerSilent(t *testing.T) {
	s := newSpinner(context.Background(), nil, "silent")
	s.Start()
	s.Stop()
}

func TestSpin(t *testing.T) {
	var buf syncBuffer
	got, err := spin(context.Background(), &buf, "working", func() (int, error) {
		return 42, nil
	})
	if err != nil || got != 42 {
		t.Errorf("spin() = %d, %v; want 42, nil", got, err)
	}

	want := errors.New("boom")
	_, err = spin(context.Background(), nil, "failing", func() (string, error) {
		return "", want
	})
	if !errors.Is(err, want) {
		t.Errorf("spin() error = %v, want %v", err, want)
	}
}
