package application

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/bnema/chaos-recipe-cli/internal/domain"
	"github.com/bnema/chaos-recipe-cli/internal/ports"
)

const instrumentationName = "github.com/bnema/chaos-recipe-cli/internal/application"

var ErrCoordinatorClosed = errors.New("coordinator closed")

type requestKind int

const (
	requestBundle requestKind = iota
	requestStatus
)

type request struct {
	kind  requestKind
	ctx   context.Context
	reply chan response
}

type response struct {
	bundle BundleResult
	status Status
	err    error
}

// Coordinator owns the cached inventory and bundle queue. A single loop goroutine serves
// requests in arrival order while a fetch worker refreshes the stash in the background, so
// status requests always answer from cache and never wait on the network.
type Coordinator struct {
	fetcher ports.StashFetcher
	session *SessionState
	clock   ports.Clock
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics coordinatorMetrics

	requests chan request
	refresh  chan struct{}
	results  chan fetchResult

	done        chan struct{}
	closeOnce   sync.Once
	cancelFetch context.CancelFunc

	// Owned by the loop goroutine.
	inventory    domain.Inventory
	queue        []domain.Bundle
	totalBundles int
	refreshes    uint64
	updatedAt    time.Time
}

type CoordinatorOption func(*Coordinator)

func WithLogger(logger *slog.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithClock(clock ports.Clock) CoordinatorOption {
	return func(c *Coordinator) {
		if clock != nil {
			c.clock = clock
		}
	}
}

func WithMeterProvider(provider metric.MeterProvider) CoordinatorOption {
	return func(c *Coordinator) {
		if provider != nil {
			c.metrics = newCoordinatorMetrics(provider.Meter(instrumentationName))
		}
	}
}

func WithTracerProvider(provider trace.TracerProvider) CoordinatorOption {
	return func(c *Coordinator) {
		if provider != nil {
			c.tracer = provider.Tracer(instrumentationName)
		}
	}
}

// NewCoordinator starts the request loop and the fetch worker. Call Close to stop both.
func NewCoordinator(fetcher ports.StashFetcher, session *SessionState, opts ...CoordinatorOption) *Coordinator {
	if session == nil {
		session = NewSessionState(domain.Session{})
	}

	c := &Coordinator{
		fetcher:   fetcher,
		session:   session,
		clock:     ports.SystemClock{},
		logger:    slog.Default(),
		tracer:    otel.Tracer(instrumentationName),
		metrics:   newCoordinatorMetrics(otel.Meter(instrumentationName)),
		requests:  make(chan request),
		refresh:   make(chan struct{}, 1),
		results:   make(chan fetchResult, 1),
		done:      make(chan struct{}),
		inventory: domain.Inventory{},
		queue:     []domain.Bundle{},
	}
	for _, opt := range opts {
		opt(c)
	}

	fetchCtx, cancel := context.WithCancel(context.Background())
	c.cancelFetch = cancel

	go c.fetchLoop(fetchCtx)
	go c.run()

	return c
}

// RequestBundle pops the next queued bundle. An exhausted queue yields an empty bundle, not an error.
func (c *Coordinator) RequestBundle(ctx context.Context) (BundleResult, error) {
	resp, err := c.do(ctx, requestBundle)
	if err != nil {
		return BundleResult{}, err
	}
	return resp.bundle, nil
}

// RequestStatus signals a refresh and answers from the cache, folding in the latest fetch result
// if one has arrived since the previous status request.
func (c *Coordinator) RequestStatus(ctx context.Context) (Status, error) {
	resp, err := c.do(ctx, requestStatus)
	if err != nil {
		return Status{}, err
	}
	return resp.status, nil
}

// Close stops the loop and cancels any in-flight fetch. It does not wait for the worker to exit.
func (c *Coordinator) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.cancelFetch()
	})
}

func (c *Coordinator) do(ctx context.Context, kind requestKind) (response, error) {
	select {
	case <-c.done:
		return response{}, ErrCoordinatorClosed
	default:
	}

	req := request{kind: kind, ctx: ctx, reply: make(chan response, 1)}

	select {
	case c.requests <- req:
	case <-c.done:
		return response{}, ErrCoordinatorClosed
	case <-ctx.Done():
		return response{}, ctx.Err()
	}

	select {
	case resp := <-req.reply:
		return resp, resp.err
	case <-c.done:
		select {
		case resp := <-req.reply:
			return resp, resp.err
		default:
			return response{}, ErrCoordinatorClosed
		}
	case <-ctx.Done():
		return response{}, ctx.Err()
	}
}

func (c *Coordinator) run() {
	for {
		select {
		case <-c.done:
			return
		case req := <-c.requests:
			switch req.kind {
			case requestBundle:
				req.reply <- c.handleBundle(req.ctx)
			case requestStatus:
				req.reply <- c.handleStatus(req.ctx)
			}
		}
	}
}

func (c *Coordinator) handleBundle(ctx context.Context) response {
	result := BundleResult{
		Bundle:      domain.Bundle{},
		DoubleStash: c.session.IsDoubleStash(),
	}
	if len(c.queue) == 0 {
		return response{bundle: result}
	}

	result.Bundle = c.queue[0]
	c.queue[0] = nil
	c.queue = c.queue[1:]
	c.metrics.bundlesServed.Add(ctx, 1)

	return response{bundle: result}
}

func (c *Coordinator) handleStatus(ctx context.Context) response {
	ctx, span := c.tracer.Start(ctx, "coordinator.status")
	defer span.End()

	c.signalRefresh(ctx)

	result, ok := c.latestResult()
	if !ok {
		span.SetAttributes(attribute.Bool("crh.fetch_result", false))
		return response{status: c.snapshot()}
	}

	c.refreshes++
	span.SetAttributes(attribute.Bool("crh.fetch_result", true))

	if result.err != nil {
		span.RecordError(result.err)
		span.SetStatus(codes.Error, result.err.Error())
		return response{err: result.err}
	}

	if result.inventory.Equal(c.inventory) {
		c.logger.Debug("stash inventory unchanged")
		return response{status: c.snapshot()}
	}

	c.rebuild(ctx, result.inventory)
	span.SetAttributes(attribute.Int("crh.total_bundles", c.totalBundles))

	return response{status: c.snapshot()}
}

func (c *Coordinator) signalRefresh(ctx context.Context) {
	select {
	case c.refresh <- struct{}{}:
	default:
		c.metrics.signalsDropped.Add(ctx, 1)
	}
}

// latestResult drains every pending fetch result and keeps only the newest.
func (c *Coordinator) latestResult() (fetchResult, bool) {
	var latest fetchResult
	found := false
	for {
		select {
		case result := <-c.results:
			latest, found = result, true
		default:
			return latest, found
		}
	}
}

func (c *Coordinator) rebuild(ctx context.Context, inventory domain.Inventory) {
	c.inventory = inventory
	c.queue = domain.CollectBundles(inventory)
	c.totalBundles = len(c.queue)
	c.updatedAt = c.clock.Now()

	c.metrics.rebuilds.Add(ctx, 1)
	c.logger.Info("recipe queue rebuilt", "bundles", c.totalBundles, "item_types", len(inventory))
}

func (c *Coordinator) snapshot() Status {
	return Status{
		Inventory:    c.inventory.Clone(),
		TotalBundles: c.totalBundles,
		Refreshes:    c.refreshes,
		UpdatedAt:    c.updatedAt,
	}
}
