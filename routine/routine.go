package routine

// RunSafe runs fn on the calling goroutine and recovers any panic. When fn
// panics, the cleanup functions run in order with the panic value; the panic
// does not propagate to the caller.
func RunSafe(fn func(), cleanup ...func(r interface{})) {
	defer Recover(cleanup...)

	fn()
}

// GoSafe runs fn on a new goroutine and recovers any panic, so a panicking
// fn cannot crash the program. When fn panics, the cleanup functions run in
// order with the panic value.
func GoSafe(fn func(), cleanup ...func(r interface{})) {
	go RunSafe(fn, cleanup...)
}
