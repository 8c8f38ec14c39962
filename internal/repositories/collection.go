package repositories

import (
	"context"
	"github.com/myrjola/mattepaint/internal/broker"
	"github.com/myrjola/mattepaint/internal/errors"
	"log/slog"
	"sync"
	"time"
)

var ErrNotFound = errors.NewSentinel("not found")

// Record is an entity identified by a numeric id within its repository.
type Record interface {
	RecordID() int64
}

// Latency is the artificial delay applied before each fetch.
type Latency struct {
	// List is waited by FetchList before loading from the database.
	List time.Duration
	// Lookup is waited by FetchByID before searching the list.
	Lookup time.Duration
}

// DefaultLatency mirrors the response times of the gallery's backend.
var DefaultLatency = Latency{
	List:   800 * time.Millisecond, //nolint:mnd // 800ms
	Lookup: 500 * time.Millisecond, //nolint:mnd // 500ms
}

// Snapshot is the observable state of a repository at one point in time.
type Snapshot[T Record] struct {
	Items []T   `json:"items"`
	State State `json:"state"`
	// Err is the failure of the last list fetch when State is StateFailed.
	Err error `json:"-"`
}

// loader reads the complete list from the data source.
type loader[T Record] func(ctx context.Context) ([]T, error)

// cloner deep-copies a record so that callers never share slices with the stored list.
type cloner[T Record] func(T) T

// collection is an in-memory list of records with a loading indicator and fetch operations.
//
// Overlapping fetches are not sequenced. Every completed FetchList replaces the list so the last one to complete
// wins. The loading indicator stays on while any call is in flight.
type collection[T Record] struct {
	mu       sync.Mutex
	items    []T
	inFlight int
	err      error

	load     loader[T]
	clone    cloner[T]
	latency  Latency
	logger   *slog.Logger
	notifier *broker.Notifier[Snapshot[T]]
}

func newCollection[T Record](load loader[T], clone cloner[T], latency Latency, logger *slog.Logger) *collection[T] {
	c := &collection[T]{
		mu:       sync.Mutex{},
		items:    nil,
		inFlight: 0,
		err:      nil,
		load:     load,
		clone:    clone,
		latency:  latency,
		logger:   logger,
		notifier: broker.NewNotifier[Snapshot[T]](),
	}
	go c.notifier.Start()
	c.notifier.Publish(c.snapshot())
	return c
}

// List returns a deep copy of the current list.
func (c *collection[T]) List() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cloneItems()
}

// Loading reports whether a fetch is in flight.
func (c *collection[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight > 0
}

// State returns the current loading state.
func (c *collection[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state()
}

// Err returns the failure of the last completed list fetch or nil.
func (c *collection[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Snapshot returns the current list and state.
func (c *collection[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Subscribe returns a channel receiving the current snapshot followed by a snapshot after every change, and a
// function to cancel the subscription. Slow subscribers skip intermediate snapshots.
func (c *collection[T]) Subscribe() (<-chan Snapshot[T], func()) {
	return c.notifier.Subscribe()
}

// Close stops notifying subscribers and closes their channels.
func (c *collection[T]) Close() {
	c.notifier.Stop()
}

// FetchList waits the list latency and replaces the list with the records read from the data source.
//
// A failure keeps the previous list and puts the repository in StateFailed until the next successful fetch.
// Cancellation returns the context error and leaves both the list and the state untouched.
func (c *collection[T]) FetchList(ctx context.Context) error {
	c.begin()
	defer c.end()

	if err := sleep(ctx, c.latency.List); err != nil {
		return errors.Wrap(err, "wait list latency")
	}

	start := time.Now()
	items, err := c.load(ctx)
	if err != nil {
		err = errors.Wrap(err, "load list")
		if !isCancellation(err) {
			c.fail(ctx, err)
		}
		return err
	}

	c.mu.Lock()
	c.items = items
	c.err = nil
	c.mu.Unlock()
	c.logger.LogAttrs(ctx, slog.LevelDebug, "fetched list",
		slog.Int("count", len(items)), slog.Duration("duration", time.Since(start)))
	return nil
}

// FetchByID waits the lookup latency, populates the list with FetchList if it is empty and returns the first record
// with the given id. Returns an error wrapping ErrNotFound when no record matches.
func (c *collection[T]) FetchByID(ctx context.Context, id int64) (*T, error) {
	c.begin()
	defer c.end()

	if err := sleep(ctx, c.latency.Lookup); err != nil {
		return nil, errors.Wrap(err, "wait lookup latency")
	}

	c.mu.Lock()
	empty := len(c.items) == 0
	c.mu.Unlock()
	if empty {
		if err := c.FetchList(ctx); err != nil {
			return nil, errors.Wrap(err, "populate list", slog.Int64("id", id))
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if item.RecordID() == id {
			clone := c.clone(item)
			return &clone, nil
		}
	}
	return nil, errors.Wrap(ErrNotFound, "find record", slog.Int64("id", id))
}

func (c *collection[T]) begin() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight++
	c.notifier.Publish(c.snapshot())
}

// end must run on every exit path of a fetch, so callers defer it right after begin.
func (c *collection[T]) end() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight--
	c.notifier.Publish(c.snapshot())
}

func (c *collection[T]) fail(ctx context.Context, err error) {
	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
	c.logger.LogAttrs(ctx, slog.LevelError, "fetch list failed", errors.SlogError(err))
}

func (c *collection[T]) state() State {
	switch {
	case c.inFlight > 0:
		return StateLoading
	case c.err != nil:
		return StateFailed
	default:
		return StateIdle
	}
}

func (c *collection[T]) snapshot() Snapshot[T] {
	return Snapshot[T]{
		Items: c.cloneItems(),
		State: c.state(),
		Err:   c.err,
	}
}

func (c *collection[T]) cloneItems() []T {
	if c.items == nil {
		return nil
	}
	items := make([]T, len(c.items))
	for i, item := range c.items {
		items[i] = c.clone(item)
	}
	return items
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
