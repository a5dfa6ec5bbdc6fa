package walletsink

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/solstream/walletsink/internal/adapters/clickhouse"
	natsAdapter "github.com/solstream/walletsink/internal/adapters/nats"
	"github.com/solstream/walletsink/internal/app"
	"github.com/solstream/walletsink/internal/domain"
	"github.com/solstream/walletsink/internal/metrics"
	"github.com/solstream/walletsink/internal/ports"
)

// State represents the lifecycle state of a Walletsink instance.
type State = app.State

// Lifecycle states.
const (
	StateStopped  = app.StateStopped
	StateStarting = app.StateStarting
	StateRunning  = app.StateRunning
	StateStopping = app.StateStopping
	StateCrashed  = app.StateCrashed
)

// Walletsink is a NATS-to-ClickHouse forwarder that can be embedded in other
// applications. Use New() to create an instance, then Start() to begin
// forwarding.
type Walletsink struct {
	config    Config
	opts      options
	lifecycle *app.Lifecycle
	logger    ports.Logger
	metrics   *metrics.Metrics
	filter    app.FilterFunc

	metricsSrv *http.Server

	mu     sync.Mutex
	source ports.MessageSource
	cancel context.CancelFunc
}

// New creates a new Walletsink instance with the given configuration.
// The instance is created in StateStopped; call Start() to begin forwarding.
// Returns an error if configuration is invalid.
func New(cfg Config, opts ...Option) (*Walletsink, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	w := &Walletsink{
		config:    cfg,
		opts:      o,
		lifecycle: app.NewLifecycle(o.logger),
		logger:    o.logger,
		metrics:   metrics.New(o.registry),
		filter:    buildFilter(cfg.FilterAddresses),
	}

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{}))
		w.metricsSrv = &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
	}

	return w, nil
}

// buildFilter turns the configured address set into a pure predicate.
// Returns nil when no addresses are configured so the hot path skips the
// probe entirely.
func buildFilter(addresses []string) app.FilterFunc {
	if len(addresses) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(addresses))
	for _, a := range addresses {
		set[a] = struct{}{}
	}
	return func(address string) bool {
		_, ok := set[address]
		return ok
	}
}

// Start connects to the message bus and begins forwarding in the background.
// Returns immediately after starting the ingest goroutine.
// Returns an error if already running or if the bus connection fails;
// connection failure leaves the instance in StateCrashed.
func (w *Walletsink) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}

	if err := w.lifecycle.TransitionTo(app.StateStarting, "Start() called"); err != nil {
		return err
	}

	source := w.opts.source
	if source == nil {
		s, err := natsAdapter.Connect(w.config.NATSURL, w.config.Subject, w.logger)
		if err != nil {
			_ = w.lifecycle.TransitionTo(app.StateCrashed, "bus connection failed")
			return err
		}
		source = s
	}
	w.source = source

	sender := w.opts.sender
	if sender == nil {
		client := w.opts.httpClient
		if client == nil {
			client = &http.Client{Timeout: w.config.HTTPTimeout}
		}
		sender = clickhouse.NewSender(client, clickhouse.SenderConfig{
			BaseURL:  w.config.ClickHouseURL,
			Username: w.config.Username,
			Password: w.config.Password,
			Database: w.config.Database,
			Table:    w.config.Table,
		})
	}

	ingestor := app.NewIngestor(app.IngestorConfig{
		BatchSize:     w.config.BatchSize,
		FlushInterval: w.config.FlushInterval,
	}, source, sender, w.logger, w.filter, w.metrics)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.lifecycle.SetCancel(cancel)

	if w.metricsSrv != nil {
		go func() {
			if err := w.metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				w.logger.Error("metrics listener failed", ports.Err(err))
			}
		}()
	}

	w.lifecycle.AddWorker()
	go func() {
		defer w.lifecycle.WorkerDone()

		if err := w.lifecycle.TransitionTo(app.StateRunning, "ingestor starting"); err != nil {
			w.logger.Error("failed to transition to running", ports.Err(err))
			return
		}

		err := ingestor.Run(runCtx)

		if err != nil && !errors.Is(err, context.Canceled) {
			w.logger.Error("ingestor error", ports.Err(err))
			_ = w.lifecycle.TransitionTo(app.StateCrashed, err.Error())
		}
	}()

	return nil
}

// Stop gracefully shuts down the forwarder. The pending batch gets one final
// flush attempt before the loop exits. Waits up to app.ShutdownTimeout
// before forcing shutdown; returns domain.ErrShutdownTimeout if forced.
func (w *Walletsink) Stop() error {
	w.mu.Lock()

	if !w.lifecycle.CanStop() {
		w.mu.Unlock()
		return domain.ErrNotRunning
	}

	if err := w.lifecycle.TransitionTo(app.StateStopping, "Stop() called"); err != nil {
		w.mu.Unlock()
		return err
	}

	if w.cancel != nil {
		w.cancel()
	}
	source := w.source
	w.mu.Unlock()

	err := w.lifecycle.WaitWithTimeout(app.ShutdownTimeout)

	if source != nil {
		if cerr := source.Close(); cerr != nil {
			w.logger.Warn("source close failed", ports.Err(cerr))
		}
	}

	if w.metricsSrv != nil {
		if serr := w.metricsSrv.Shutdown(context.Background()); serr != nil {
			w.logger.Warn("metrics listener shutdown failed", ports.Err(serr))
		}
	}

	if err != nil {
		_ = w.lifecycle.TransitionTo(app.StateCrashed, "shutdown timeout")
	} else {
		_ = w.lifecycle.TransitionTo(app.StateStopped, "graceful shutdown")
	}

	return err
}

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (w *Walletsink) Status() State {
	return w.lifecycle.State()
}
