// Package delay implements the delay multiplier: the batching structure
// that amortizes per-site forward-probability updates from O(H) to
// O(M_avg) by recording one affine map per site/span into a shared
// history and only composing it into an individual row's effective map
// when that row is actually consulted.
//
// See DESIGN.md for the full grounding; the short version is that this
// package is a Go-native port of delay_multiplier.hpp's delayedEvalMap.
package delay

import "errors"

// ErrOutOfRange is returned when a row or eqclass index is outside its
// valid domain.
var ErrOutOfRange = errors.New("delay: index out of range")
