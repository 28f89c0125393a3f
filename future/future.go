// Package future provides a promise/future pair for handing the result of an
// asynchronous operation between goroutines.
// Inspired by https://github.com/jizhuozhi/go-future
package future

// Promise is the write end of the pair: it stores a value or an error in the
// shared state exactly once. Storing the result synchronizes-with (as defined
// in Go's memory model) the return of every read on the associated Future,
// such as Future.Get.
//
// A Promise must not be copied after first use.
type Promise[T any] struct {
	state *state[T]
}

// NewPromise creates a new Promise object.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{
		state: newState[T](),
	}
}

// Set resolves the Promise with val and err.
// It panics if the Promise is already satisfied.
func (p *Promise[T]) Set(val T, err error) {
	if !p.state.set(val, err) {
		panic("promise already satisfied")
	}
}

// SetSafety resolves the Promise like Set, but reports false instead of
// panicking when the Promise is already satisfied.
func (p *Promise[T]) SetSafety(val T, err error) bool {
	return p.state.set(val, err)
}

// Future returns the Future associated with the Promise.
func (p *Promise[T]) Future() *Future[T] {
	return &Future[T]{state: p.state}
}

// IsFree returns true if the Promise is not set.
func (p *Promise[T]) IsFree() bool {
	return p.state.isFree()
}

// Future is the read end of the pair: it gives the creator of an
// asynchronous operation (Async, Submit, or a bare Promise) access to the
// operation's result. Reads may block until the result is stored; any number
// of goroutines may read the same Future.
//
// A Future can also notify: Subscribe registers a callback that runs as soon
// as the result is stored.
type Future[T any] struct {
	state *state[T]
}

// Get blocks until the Future is resolved and returns its value and error.
func (f *Future[T]) Get() (T, error) {
	return f.state.get()
}

// Done returns a channel that is closed when the Future is resolved. It
// never receives a value; use it in select statements and read the result
// with Get afterwards.
func (f *Future[T]) Done() <-chan struct{} {
	return f.state.done
}

// Subscribe registers a callback to run exactly once with the result. If the
// Future is already resolved the callback runs before Subscribe returns.
//
// Callbacks run synchronously on the goroutine that resolves the Future, in
// subscription order, so they must not block.
func (f *Future[T]) Subscribe(cb func(val T, err error)) {
	f.state.subscribe(cb)
}

// IsDone returns true if the Future is resolved.
func (f *Future[T]) IsDone() bool {
	return f.state.isDone()
}
