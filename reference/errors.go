// Package reference holds the linear reference site grid (Structure) and
// the underlying reference base sequence (Sequence) that the forward
// engine and the read/reference reconciler consult.
package reference

import "errors"

// ErrOutOfRange is returned when a site index is outside [0, NumSites()).
var ErrOutOfRange = errors.New("reference: site index out of range")

// ErrUnsortedPositions is returned by New when positions are not strictly
// increasing; the binary searches backing FindSiteAbove/FindSiteBelow
// require a sorted, duplicate-free site grid.
var ErrUnsortedPositions = errors.New("reference: site positions must be strictly increasing")
