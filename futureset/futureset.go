package futureset

import (
	"log/slog"
	"sync"

	"github.com/pkg/errors"

	"github.com/saltfishpr/async/routine"
)

// ErrNoHistory is reported when history is read or replayed on a Set that
// was built without WithHistory.
var ErrNoHistory = errors.New("event history not maintained")

// Future is the one capability the Set needs from a tracked future: deliver
// the result to a callback exactly once, synchronously on the resolving
// goroutine, immediately if already resolved. *future.Future[T] satisfies it.
type Future[T any] interface {
	Subscribe(fn func(val T, err error))
}

// Event describes the resolution of one tracked future.
type Event[T any] struct {
	// Index is the position Append assigned to the future.
	Index int
	// Value is the resolution value. It is the zero value when Err is set.
	Value T
	// Err is the resolution error, nil when the future succeeded.
	Err error
}

// Success reports whether the future resolved without error.
func (e Event[T]) Success() bool {
	return e.Err == nil
}

// Observer receives resolution events, one call per event.
type Observer[T any] func(e Event[T])

// Set watches a growing collection of futures. See the package documentation
// for the dispatch, ordering, and reentrancy guarantees.
//
// A Set must be created with New.
type Set[T any] struct {
	mu        sync.Mutex
	pending   int
	succeeded int
	failed    int
	history   []Event[T]
	observers []Observer[T]

	// fixed at construction
	recording bool
	onPanic   func(err error)
}

// Option configures a Set.
type Option[T any] func(s *Set[T])

// WithHistory makes the Set record every resolution event, in resolution
// order. Recording cannot be turned on later; without it History fails and
// Observe rejects WithReplay.
func WithHistory[T any]() Option[T] {
	return func(s *Set[T]) {
		s.recording = true
	}
}

// WithPanicHandler sets the function that receives errors recovered from
// panicking observers. The default logs them through slog.
func WithPanicHandler[T any](fn func(err error)) Option[T] {
	return func(s *Set[T]) {
		s.onPanic = fn
	}
}

// New creates an empty Set.
func New[T any](opts ...Option[T]) *Set[T] {
	s := &Set[T]{
		onPanic: func(err error) {
			slog.Error("futureset: observer panicked", slog.Any("error", err))
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append adds f to the Set and returns the index it was assigned. Indices
// are sequential in append order and never reused.
//
// Append never fails and may be called at any time. Appending an already
// resolved future is valid: its resolution is then handled, and dispatched
// to current observers, before Append returns.
func (s *Set[T]) Append(f Future[T]) int {
	s.mu.Lock()
	index := s.pending + s.succeeded + s.failed
	s.pending++
	s.mu.Unlock()

	f.Subscribe(func(val T, err error) {
		s.resolved(Event[T]{Index: index, Value: val, Err: err})
	})
	return index
}

// Observe registers fn to receive every subsequent resolution event.
//
// With WithReplay, fn first receives every event already recorded, in
// resolution order, before Observe returns; between replayed and live events
// fn misses nothing and receives nothing twice. If the Set was built without
// WithHistory, Observe instead fails with ErrNoHistory and fn is not
// registered.
//
// Observers cannot be removed.
func (s *Set[T]) Observe(fn Observer[T], opts ...ObserveOption) error {
	var cfg observeConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.replay && !s.recording {
		return errors.WithStack(ErrNoHistory)
	}

	var replay []Event[T]
	s.mu.Lock()
	if cfg.replay {
		replay = snapshot(s.history)
	}
	s.observers = append(s.observers, fn)
	s.mu.Unlock()

	for _, e := range replay {
		s.notify(fn, e)
	}
	return nil
}

// ObserveOption configures a single Observe call.
type ObserveOption func(c *observeConfig)

type observeConfig struct {
	replay bool
}

// WithReplay makes Observe deliver the Set's recorded history to the new
// observer before any live event. The Set must record history; see
// WithHistory.
func WithReplay() ObserveOption {
	return func(c *observeConfig) {
		c.replay = true
	}
}

// Pending returns the number of tracked futures that have not resolved.
func (s *Set[T]) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Succeeded returns the number of tracked futures that resolved without
// error.
func (s *Set[T]) Succeeded() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.succeeded
}

// Failed returns the number of tracked futures that resolved with an error.
func (s *Set[T]) Failed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed
}

// Len returns the total number of futures ever appended.
func (s *Set[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending + s.succeeded + s.failed
}

// History returns a copy of the recorded events, in resolution order. It
// fails with ErrNoHistory if the Set was built without WithHistory.
func (s *Set[T]) History() ([]Event[T], error) {
	if !s.recording {
		return nil, errors.WithStack(ErrNoHistory)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.history), nil
}

// resolved is the completion hook Append attaches. It runs on the resolving
// goroutine, at most once per tracked future.
func (s *Set[T]) resolved(e Event[T]) {
	s.mu.Lock()
	s.pending--
	if e.Err != nil {
		s.failed++
	} else {
		s.succeeded++
	}
	if s.recording {
		s.history = append(s.history, e)
	}
	observers := snapshot(s.observers)
	s.mu.Unlock()

	for _, fn := range observers {
		s.notify(fn, e)
	}
}

// notify runs one observer outside the mutex, containing any panic so the
// rest of the dispatch pass and the resolving goroutine are unaffected.
func (s *Set[T]) notify(fn Observer[T], e Event[T]) {
	routine.RunSafe(func() {
		fn(e)
	}, func(r interface{}) {
		s.onPanic(routine.NewRecovered(2, r).AsError())
	})
}

func snapshot[E any](src []E) []E {
	if len(src) == 0 {
		return nil
	}
	dst := make([]E, len(src))
	copy(dst, src)
	return dst
}
