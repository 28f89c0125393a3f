package routine

import (
	"fmt"
	"runtime"

	"github.com/pkg/errors"
)

// Recover is meant to be deferred. When the surrounding function panics, it
// recovers and hands the panic value to the cleanup functions in order.
func Recover(cleanups ...func(r interface{})) {
	if r := recover(); r != nil {
		for _, cleanup := range cleanups {
			cleanup(r)
		}
	}
}

// Recovered is a panic value plus the call stack captured where the panic
// was recovered.
type Recovered struct {
	Value   interface{}
	Callers []uintptr
}

// NewRecovered captures the current call stack and pairs it with the panic
// value. skip counts stack frames to drop, as in runtime.Callers: pass 1 to
// start the trace at the caller of NewRecovered.
func NewRecovered(skip int, value any) *Recovered {
	var callers [32]uintptr
	n := runtime.Callers(skip+1, callers[:])
	return &Recovered{
		Value:   value,
		Callers: callers[:n],
	}
}

// AsError converts the Recovered to an error. A nil Recovered yields nil.
func (rec *Recovered) AsError() error {
	if rec == nil {
		return nil
	}
	return &RecoveredError{rec}
}

// RecoveredError is an error wrapping a Recovered. Its stack trace prints in
// the github.com/pkg/errors format.
type RecoveredError struct {
	*Recovered
}

func (e *RecoveredError) Error() string {
	return fmt.Sprintf("panic: %v\nstacktrace:%+v", e.Value, e.StackTrace())
}

func (e *RecoveredError) StackTrace() errors.StackTrace {
	if e == nil {
		return nil
	}
	frames := make([]errors.Frame, len(e.Callers))
	for i, pc := range e.Callers {
		frames[i] = errors.Frame(pc)
	}
	return frames
}
