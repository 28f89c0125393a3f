package future

import "github.com/saltfishpr/async/future/executors"

// Executor abstracts how asynchronous tasks are scheduled.
//
// By default tasks run on plain goroutines (executors.GoExecutor), which is
// lightweight and unbounded. Override it with SetExecutor to limit
// concurrency, reuse goroutines, or reduce GC pressure; a common pattern is
// wrapping a goroutine pool in an ExecutorFunc:
//
//	pool := executors.NewPoolExecutor(100)
//	future.SetExecutor(future.ExecutorFunc(func(f func()) {
//	    pool.Submit(f)
//	}))
//
// Pooled executors can queue tasks behind slow or blocking work (RPC calls
// and the like), so only override the default after measuring the workload.
type Executor interface {
	Submit(func())
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(func())

func (e ExecutorFunc) Submit(f func()) {
	e(f)
}

var executor Executor = executors.GoExecutor{}

// SetExecutor replaces the default executor used by Async and CtxAsync.
// It panics if e is nil.
func SetExecutor(e Executor) {
	if e == nil {
		panic("executor is nil")
	}
	executor = e
}
