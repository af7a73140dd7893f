package solver

import "fmt"

// assert panics with msg if truth is false. NewSolver uses it to reject an
// unsupported lane width; body and contact-point indices are not asserted,
// and the hot per-iteration loops never call it.
func assert(truth bool, msg ...interface{}) {
	if !truth {
		panic(fmt.Sprint("solver: assertion failed: ", fmt.Sprint(msg...)))
	}
}
