package future

import "sync"

// state is the shared state behind a Promise/Future pair: the result slot,
// a channel waiters block on, and the callbacks to run on resolution.
type state[T any] struct {
	mu   sync.Mutex
	done chan struct{}

	resolved bool
	val      T
	err      error

	cbs []func(T, error)
}

func newState[T any]() *state[T] {
	return &state[T]{done: make(chan struct{})}
}

// set stores the result. The first call wins and returns true; later calls
// change nothing and return false. Waiters are released before the callbacks
// run; callbacks run on the calling goroutine, in subscription order.
func (s *state[T]) set(val T, err error) bool {
	s.mu.Lock()
	if s.resolved {
		s.mu.Unlock()
		return false
	}
	s.resolved = true
	s.val = val
	s.err = err
	cbs := s.cbs
	s.cbs = nil
	s.mu.Unlock()

	close(s.done)
	for _, cb := range cbs {
		cb(val, err)
	}
	return true
}

func (s *state[T]) get() (T, error) {
	<-s.done
	return s.val, s.err
}

// subscribe registers cb to run exactly once with the result. If the state
// is already resolved, cb runs immediately on the calling goroutine.
func (s *state[T]) subscribe(cb func(T, error)) {
	s.mu.Lock()
	if !s.resolved {
		s.cbs = append(s.cbs, cb)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	cb(s.val, s.err)
}

func (s *state[T]) isFree() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.resolved
}

func (s *state[T]) isDone() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}
