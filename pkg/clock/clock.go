// Package clock abstracts time readings so components that derive decisions
// from the clock (candidate picking, timestamps) can be tested
// deterministically.
package clock

import "time"

// Clock abstracts time-related functions for easier testing.
type Clock interface {
	Now() time.Time
}

// Real implements Clock using the standard library.
type Real struct{}

// Now returns the current UTC time.
func (Real) Now() time.Time {
	return time.Now().UTC()
}
