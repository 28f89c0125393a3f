// Package join builds aggregate futures on top of futureset: wait for all
// inputs, for the first resolution, for the first n successes, or for the
// first success with failures held back until none can succeed.
//
// Every combinator follows the same recipe: feed the inputs to a private
// futureset.Set, register one observer that watches the counters, and
// resolve a downstream promise when its condition is met.
package join

import (
	"github.com/pkg/errors"

	"github.com/saltfishpr/async/future"
	"github.com/saltfishpr/async/futureset"
)

var (
	// ErrNoFutures is reported by combinators that need at least one input.
	ErrNoFutures = errors.New("no futures provided")
	// ErrBadCount is reported by FirstN when n is negative or larger than
	// the number of inputs.
	ErrBadCount = errors.New("bad success count")
)

// Result is one input future's outcome, in input order.
type Result[T any] struct {
	Value T
	Err   error
}

// All returns a future that resolves once every input has resolved, with one
// Result per input, in input order. All itself never fails: input failures
// are reported in their Result slot. An empty input resolves immediately.
func All[T any](fs ...*future.Future[T]) *future.Future[[]Result[T]] {
	if len(fs) == 0 {
		return future.Done[[]Result[T]](nil)
	}

	p := future.NewPromise[[]Result[T]]()
	set := futureset.New[T](futureset.WithHistory[T]())
	total := len(fs)

	_ = set.Observe(func(futureset.Event[T]) {
		if set.Succeeded()+set.Failed() != total {
			return
		}
		events, err := set.History()
		if err != nil {
			p.SetSafety(nil, err)
			return
		}
		results := make([]Result[T], total)
		for _, e := range events {
			results[e.Index] = Result[T]{Value: e.Value, Err: e.Err}
		}
		p.SetSafety(results, nil)
	})
	for _, f := range fs {
		set.Append(f)
	}
	return p.Future()
}

// First returns a future that resolves with the earliest resolution event
// among the inputs, successful or not. The event, with the index of the
// winning input, is the value either way; on a failure the returned future
// also fails with that event's error.
func First[T any](fs ...*future.Future[T]) *future.Future[futureset.Event[T]] {
	p := future.NewPromise[futureset.Event[T]]()
	if len(fs) == 0 {
		var zero futureset.Event[T]
		p.Set(zero, errors.WithStack(ErrNoFutures))
		return p.Future()
	}

	set := futureset.New[T]()
	_ = set.Observe(func(e futureset.Event[T]) {
		p.SetSafety(e, e.Err)
	})
	for _, f := range fs {
		set.Append(f)
	}
	return p.Future()
}

// FirstN returns a future that resolves with the first n successful events,
// in resolution order, and fails fast with the error of the first failure.
// n == 0 resolves immediately. FirstN fails with ErrNoFutures on an empty
// input and with ErrBadCount when n is negative or larger than the input
// count.
func FirstN[T any](n int, fs ...*future.Future[T]) *future.Future[[]futureset.Event[T]] {
	p := future.NewPromise[[]futureset.Event[T]]()
	switch {
	case n == 0:
		p.Set(nil, nil)
		return p.Future()
	case len(fs) == 0:
		p.Set(nil, errors.WithStack(ErrNoFutures))
		return p.Future()
	case n < 0 || n > len(fs):
		p.Set(nil, errors.WithStack(ErrBadCount))
		return p.Future()
	}

	set := futureset.New[T](futureset.WithHistory[T]())
	_ = set.Observe(func(e futureset.Event[T]) {
		if !e.Success() {
			p.SetSafety(nil, e.Err)
			return
		}
		if set.Succeeded() < n {
			return
		}
		events, err := set.History()
		if err != nil {
			p.SetSafety(nil, err)
			return
		}
		wins := make([]futureset.Event[T], 0, n)
		for _, ev := range events {
			if ev.Success() {
				wins = append(wins, ev)
				if len(wins) == n {
					break
				}
			}
		}
		p.SetSafety(wins, nil)
	})
	for _, f := range fs {
		set.Append(f)
	}
	return p.Future()
}

// FirstSuccess returns a future that resolves with the first successful
// event. Failures are held back while a success is still possible: only
// after every input has failed does the future fail, with the error of the
// failure that happened first.
func FirstSuccess[T any](fs ...*future.Future[T]) *future.Future[futureset.Event[T]] {
	p := future.NewPromise[futureset.Event[T]]()
	if len(fs) == 0 {
		var zero futureset.Event[T]
		p.Set(zero, errors.WithStack(ErrNoFutures))
		return p.Future()
	}

	set := futureset.New[T](futureset.WithHistory[T]())
	total := len(fs)
	_ = set.Observe(func(e futureset.Event[T]) {
		if e.Success() {
			p.SetSafety(e, nil)
			return
		}
		if set.Failed() != total {
			return
		}
		events, err := set.History()
		if err != nil {
			var zero futureset.Event[T]
			p.SetSafety(zero, err)
			return
		}
		first := events[0]
		p.SetSafety(first, first.Err)
	})
	for _, f := range fs {
		set.Append(f)
	}
	return p.Future()
}
