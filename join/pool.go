package join

import (
	"sync"

	"github.com/saltfishpr/async/future"
	"github.com/saltfishpr/async/futureset"
)

// Pool tracks a churning population of futures and tells waiters when it
// drains. Inputs may be appended at any time; every future obtained from
// NotifyEmpty resolves, with the number of resolutions seen so far, the
// next time the pool has no pending inputs.
//
// A pool drains repeatedly: waiters registered after a drain are held until
// the next one.
type Pool[T any] struct {
	set *futureset.Set[T]

	mu      sync.Mutex
	waiters []*future.Promise[int]
}

// NewPool returns an empty Pool.
func NewPool[T any]() *Pool[T] {
	p := &Pool[T]{set: futureset.New[T]()}
	_ = p.set.Observe(func(futureset.Event[T]) {
		if p.set.Pending() != 0 {
			return
		}
		resolved := p.set.Len()

		p.mu.Lock()
		waiters := p.waiters
		p.waiters = nil
		p.mu.Unlock()

		for _, w := range waiters {
			w.SetSafety(resolved, nil)
		}
	})
	return p
}

// Append adds an input and reports its position.
func (p *Pool[T]) Append(f futureset.Future[T]) int {
	return p.set.Append(f)
}

// NotifyEmpty returns a future that resolves the next time the pool has no
// pending inputs. An already-empty pool resolves it immediately. The value
// is the number of inputs resolved so far.
func (p *Pool[T]) NotifyEmpty() *future.Future[int] {
	w := future.NewPromise[int]()

	p.mu.Lock()
	if p.set.Pending() == 0 {
		p.mu.Unlock()
		w.Set(p.set.Len(), nil)
		return w.Future()
	}
	p.waiters = append(p.waiters, w)
	p.mu.Unlock()

	return w.Future()
}

// Pending reports how many inputs have not resolved yet.
func (p *Pool[T]) Pending() int {
	return p.set.Pending()
}

// Len reports how many inputs have ever been appended.
func (p *Pool[T]) Len() int {
	return p.set.Len()
}
