// Package futureset tracks a growing collection of futures and reports, as
// events, how they resolve.
//
// A Set assigns every appended future a permanent index (0, 1, 2, ...) and
// counts futures as pending, succeeded, or failed. When a tracked future
// resolves, the Set dispatches the resolution event synchronously, on the
// resolving goroutine, to every registered observer in registration order. A
// Set built with WithHistory also records each event, in resolution order —
// not append order — and replays that history to observers registered with
// WithReplay.
//
// The Set spawns no goroutines and never blocks beyond its own short mutex
// sections: Append, Observe, and the accessors run to completion on the
// calling goroutine, and dispatch runs on whatever goroutine resolves the
// future. State is mutex-guarded, so futures may be appended, observed, and
// resolved from any number of goroutines. Observer callbacks run outside
// that mutex and may therefore call back into the Set — append futures,
// register observers, read counts or history — without deadlocking. A
// dispatch pass invokes the observers present when it started; an observer
// registered mid-pass sees only later events.
//
// Observing is transparent to the futures themselves. The hook Append
// attaches is a side-observer: it cannot change the future's result, and it
// cannot disturb other hooks on the same future. To keep that guarantee a
// panic in an observer callback is not allowed to unwind into the resolving
// goroutine: the Set recovers it, converts it to an error carrying the
// observer's stack, and hands it to the Set's panic handler — the remaining
// observers of the pass still run, and counters, history, and the future's
// own result are unaffected. The default handler logs through slog; see
// WithPanicHandler.
package futureset
