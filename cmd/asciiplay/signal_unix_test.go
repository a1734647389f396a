//go:build unix

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"testing"
	"time"

	"github.com/user/asciiplay/pkg/adapters/logger"
)

func TestWatchSignals_ReleasesHandlerAfterFirstSignal(t *testing.T) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGUSR1)
	defer signal.Stop(sigCh)

	// Keeps the test process alive once sigCh is released.
	keep := make(chan os.Signal, 2)
	signal.Notify(keep, syscall.SIGUSR1)
	defer signal.Stop(keep)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		watchSignals(ctx, sigCh, cancel, logger.NewNoop())
		close(done)
	}()

	if err := syscall.Kill(os.Getpid(), syscall.SIGUSR1); err != nil {
		t.Fatalf("kill: %v", err)
	}

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("first signal did not cancel playback")
	}
	<-done
	waitSignal(t, keep)

	if err := syscall.Kill(os.Getpid(), syscall.SIGUSR1); err != nil {
		t.Fatalf("kill: %v", err)
	}
	waitSignal(t, keep)

	select {
	case sig := <-sigCh:
		t.Errorf("handler still installed after first signal, got %v", sig)
	default:
	}
}

func waitSignal(t *testing.T, ch <-chan os.Signal) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("signal not delivered")
	}
}
