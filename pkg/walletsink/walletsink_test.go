package walletsink_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/solstream/walletsink/internal/domain"
	"github.com/solstream/walletsink/pkg/walletsink"
)

type chanSource struct {
	ch   chan []byte
	once sync.Once
}

func newChanSource() *chanSource {
	return &chanSource{ch: make(chan []byte, 16)}
}

func (s *chanSource) Messages() <-chan []byte { return s.ch }

func (s *chanSource) Close() error {
	s.once.Do(func() { close(s.ch) })
	return nil
}

type captureSender struct {
	mu      sync.Mutex
	batches [][]string
}

func (c *captureSender) Send(_ context.Context, b *domain.Batch) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batches = append(c.batches, append([]string(nil), b.Rows...))
	return nil
}

func (c *captureSender) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.batches)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestStartStop(t *testing.T) {
	source := newChanSource()
	sender := &captureSender{}

	sink, err := walletsink.New(walletsink.Config{
		BatchSize:     2,
		FlushInterval: time.Hour,
	}, walletsink.WithSource(source), walletsink.WithSender(sender))
	if err != nil {
		t.Fatal(err)
	}

	if err := sink.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	waitFor(t, time.Second, func() bool { return sink.Status() == walletsink.StateRunning })

	source.ch <- []byte(`{"a":1}`)
	source.ch <- []byte(`{"a":2}`)
	waitFor(t, time.Second, func() bool { return sender.count() == 1 })

	if err := sink.Stop(); err != nil {
		t.Fatalf("Stop() = %v", err)
	}
	if got := sink.Status(); got != walletsink.StateStopped {
		t.Errorf("Status() = %v, want Stopped", got)
	}
}

func TestStart_AlreadyRunning(t *testing.T) {
	source := newChanSource()
	sink, err := walletsink.New(walletsink.Config{},
		walletsink.WithSource(source), walletsink.WithSender(&captureSender{}))
	if err != nil {
		t.Fatal(err)
	}

	if err := sink.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = sink.Stop() }()
	waitFor(t, time.Second, func() bool { return sink.Status() == walletsink.StateRunning })

	if err := sink.Start(context.Background()); !errors.Is(err, domain.ErrAlreadyRunning) {
		t.Errorf("second Start() = %v, want ErrAlreadyRunning", err)
	}
}

func TestStop_NotRunning(t *testing.T) {
	sink, err := walletsink.New(walletsink.Config{},
		walletsink.WithSource(newChanSource()), walletsink.WithSender(&captureSender{}))
	if err != nil {
		t.Fatal(err)
	}

	if err := sink.Stop(); !errors.Is(err, domain.ErrNotRunning) {
		t.Errorf("Stop() = %v, want ErrNotRunning", err)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := walletsink.New(walletsink.Config{
		FilterAddresses: []string{"not-base58-0OIl"},
	})
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Errorf("New() = %v, want ErrInvalidConfig", err)
	}
}

func TestSourceClosureCrashes(t *testing.T) {
	source := newChanSource()
	sink, err := walletsink.New(walletsink.Config{},
		walletsink.WithSource(source), walletsink.WithSender(&captureSender{}))
	if err != nil {
		t.Fatal(err)
	}

	if err := sink.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	waitFor(t, time.Second, func() bool { return sink.Status() == walletsink.StateRunning })

	_ = source.Close()

	waitFor(t, time.Second, func() bool { return sink.Status() == walletsink.StateCrashed })
}

func TestFilterAddresses(t *testing.T) {
	source := newChanSource()
	sender := &captureSender{}

	sink, err := walletsink.New(walletsink.Config{
		BatchSize:       10,
		FlushInterval:   50 * time.Millisecond,
		FilterAddresses: []string{"11111111111111111111111111111111"},
	}, walletsink.WithSource(source), walletsink.WithSender(sender))
	if err != nil {
		t.Fatal(err)
	}

	if err := sink.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = sink.Stop() }()

	source.ch <- []byte(`{"address":"11111111111111111111111111111111","balance":1}`)
	source.ch <- []byte(`{"address":"other","balance":2}`)

	waitFor(t, time.Second, func() bool { return sender.count() == 1 })

	sender.mu.Lock()
	got := sender.batches[0]
	sender.mu.Unlock()
	if len(got) != 1 {
		t.Fatalf("flush size = %d, want only the matching record", len(got))
	}
}
