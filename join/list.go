package join

import (
	"github.com/saltfishpr/async/future"
	"github.com/saltfishpr/async/futureset"
)

// List aggregates an open-ended sequence of futures. Unlike All, inputs may
// keep arriving after construction; the aggregate future resolves the first
// time the set drains, that is when every input appended so far has
// resolved and at least one input was appended.
//
// Appending after the aggregate has resolved is allowed and tracked by the
// underlying set, but the aggregate future keeps its first resolution.
type List[T any] struct {
	set *futureset.Set[T]
	p   *future.Promise[[]Result[T]]
}

// NewList returns an empty List. Its aggregate future resolves only after
// at least one input has been appended and all inputs have resolved.
func NewList[T any]() *List[T] {
	l := &List[T]{
		set: futureset.New[T](futureset.WithHistory[T]()),
		p:   future.NewPromise[[]Result[T]](),
	}
	_ = l.set.Observe(func(futureset.Event[T]) {
		if l.set.Pending() != 0 {
			return
		}
		events, err := l.set.History()
		if err != nil {
			l.p.SetSafety(nil, err)
			return
		}
		results := make([]Result[T], len(events))
		for _, e := range events {
			results[e.Index] = Result[T]{Value: e.Value, Err: e.Err}
		}
		l.p.SetSafety(results, nil)
	})
	return l
}

// Append adds an input and reports its position. Positions index into the
// aggregate's results.
func (l *List[T]) Append(f futureset.Future[T]) int {
	return l.set.Append(f)
}

// Future returns the aggregate future. It resolves with one Result per
// input, in append order, and never fails.
func (l *List[T]) Future() *future.Future[[]Result[T]] {
	return l.p.Future()
}
