// Package routine provides helpers for running functions that may panic:
// RunSafe and GoSafe recover the panic instead of letting it unwind the
// caller or crash the program, and Recovered turns a recovered panic value
// into an error that carries the panicking stack.
package routine
