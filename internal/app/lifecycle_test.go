package app

import (
	"errors"
	"testing"
	"time"

	"github.com/solstream/walletsink/internal/domain"
	"github.com/solstream/walletsink/pkg/log"
)

func TestLifecycle_Transitions(t *testing.T) {
	l := NewLifecycle(log.NewNoopLogger())

	if l.State() != StateStopped {
		t.Fatalf("initial state = %v, want Stopped", l.State())
	}
	if !l.CanStart() {
		t.Error("CanStart() = false for a stopped lifecycle")
	}

	steps := []State{StateStarting, StateRunning, StateStopping, StateStopped}
	for _, s := range steps {
		if err := l.TransitionTo(s, "test"); err != nil {
			t.Fatalf("TransitionTo(%v) = %v", s, err)
		}
	}
}

func TestLifecycle_InvalidTransition(t *testing.T) {
	l := NewLifecycle(log.NewNoopLogger())

	if err := l.TransitionTo(StateRunning, "skip starting"); err == nil {
		t.Error("Stopped -> Running accepted, want error")
	}

	if err := l.TransitionTo(StateStarting, "test"); err != nil {
		t.Fatal(err)
	}
	if err := l.TransitionTo(StateStopped, "skip running"); !errors.Is(err, domain.ErrAlreadyRunning) {
		t.Errorf("Starting -> Stopped = %v, want ErrAlreadyRunning", err)
	}
}

func TestLifecycle_CrashedCanRestart(t *testing.T) {
	l := NewLifecycle(log.NewNoopLogger())

	_ = l.TransitionTo(StateStarting, "test")
	_ = l.TransitionTo(StateCrashed, "boom")

	if !l.CanStart() {
		t.Error("CanStart() = false for a crashed lifecycle")
	}
	if err := l.TransitionTo(StateStarting, "restart"); err != nil {
		t.Errorf("Crashed -> Starting = %v", err)
	}
}

func TestLifecycle_WaitWithTimeout(t *testing.T) {
	l := NewLifecycle(log.NewNoopLogger())

	l.AddWorker()
	go func() {
		time.Sleep(10 * time.Millisecond)
		l.WorkerDone()
	}()

	if err := l.WaitWithTimeout(time.Second); err != nil {
		t.Errorf("WaitWithTimeout() = %v, want nil", err)
	}
}

func TestLifecycle_WaitWithTimeout_Expires(t *testing.T) {
	l := NewLifecycle(log.NewNoopLogger())

	l.AddWorker()
	defer l.WorkerDone()

	if err := l.WaitWithTimeout(20 * time.Millisecond); !errors.Is(err, domain.ErrShutdownTimeout) {
		t.Errorf("WaitWithTimeout() = %v, want ErrShutdownTimeout", err)
	}
}
