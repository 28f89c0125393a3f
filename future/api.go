package future

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync/atomic"
	"time"
)

var (
	ErrPanic   = errors.New("async panic")
	ErrTimeout = errors.New("future timeout")
)

// Async runs f on the default executor and returns a Future for its result.
func Async[T any](f func() (T, error)) *Future[T] {
	return Submit(executor, f)
}

// CtxAsync runs f with ctx on the default executor and returns a Future for
// its result. The context is passed through; f decides what to do with it.
func CtxAsync[T any](ctx context.Context, f func(ctx context.Context) (T, error)) *Future[T] {
	return CtxSubmit(ctx, executor, f)
}

// Submit runs f on e and returns a Future for its result. A panic in f is
// recovered and reported as an error wrapping ErrPanic.
func Submit[T any](e Executor, f func() (T, error)) *Future[T] {
	s := newState[T]()
	e.Submit(func() {
		var val T
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w, err=%s, stack=%s", ErrPanic, r, debug.Stack())
			}
			s.set(val, err)
		}()
		val, err = f()
	})
	return &Future[T]{state: s}
}

// CtxSubmit runs f with ctx on e and returns a Future for its result. A panic
// in f is recovered and reported as an error wrapping ErrPanic.
func CtxSubmit[T any](ctx context.Context, e Executor, f func(ctx context.Context) (T, error)) *Future[T] {
	s := newState[T]()
	e.Submit(func() {
		var val T
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w, err=%s, stack=%s", ErrPanic, r, debug.Stack())
			}
			s.set(val, err)
		}()
		val, err = f(ctx)
	})
	return &Future[T]{state: s}
}

// Done returns a Future already resolved with val.
func Done[T any](val T) *Future[T] {
	return Done2(val, nil)
}

// Done2 returns a Future already resolved with val and err.
func Done2[T any](val T, err error) *Future[T] {
	s := newState[T]()
	s.set(val, err)
	return &Future[T]{state: s}
}

// Await blocks until f is resolved and returns its result. It is equivalent
// to f.Get.
func Await[T any](f *Future[T]) (T, error) {
	return f.Get()
}

// Then returns a Future resolved with cb applied to f's result. cb runs on
// the goroutine that resolves f, immediately if f is already resolved.
func Then[T any, R any](f *Future[T], cb func(T, error) (R, error)) *Future[R] {
	s := newState[R]()
	f.state.subscribe(func(val T, err error) {
		rval, rerr := cb(val, err)
		s.set(rval, rerr)
	})
	return &Future[R]{state: s}
}

// Timeout returns a Future that resolves with f's result, or fails with
// ErrTimeout if f is not resolved within d. f itself keeps running either
// way.
func Timeout[T any](f *Future[T], d time.Duration) *Future[T] {
	s := newState[T]()
	t := time.AfterFunc(d, func() {
		var zero T
		s.set(zero, ErrTimeout)
	})
	f.state.subscribe(func(val T, err error) {
		t.Stop()
		s.set(val, err)
	})
	return &Future[T]{state: s}
}

// Until is Timeout with an absolute deadline.
func Until[T any](f *Future[T], deadline time.Time) *Future[T] {
	return Timeout(f, time.Until(deadline))
}

// WithContext returns a Future that resolves with f's result, or fails with
// ctx.Err() if ctx is canceled first. f itself keeps running either way.
func WithContext[T any](ctx context.Context, f *Future[T]) *Future[T] {
	s := newState[T]()
	f.state.subscribe(func(val T, err error) {
		s.set(val, err)
	})
	if ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				var zero T
				s.set(zero, ctx.Err())
			case <-s.done:
			}
		}()
	}
	return &Future[T]{state: s}
}

// AllOf returns a Future that resolves with every value once all fs succeed,
// in input order, or fails with the first error as soon as any f fails.
func AllOf[T any](fs ...*Future[T]) *Future[[]T] {
	if len(fs) == 0 {
		return Done[[]T](nil)
	}

	var failed atomic.Bool
	var remaining atomic.Int32
	remaining.Store(int32(len(fs)))

	s := newState[[]T]()
	results := make([]T, len(fs))
	for i, f := range fs {
		i := i
		f.state.subscribe(func(val T, err error) {
			if err != nil {
				if failed.CompareAndSwap(false, true) {
					s.set(nil, err)
				}
				return
			}
			results[i] = val
			if remaining.Add(-1) == 0 {
				s.set(results, nil)
			}
		})
	}
	return &Future[[]T]{state: s}
}
