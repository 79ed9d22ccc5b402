// Package forward drives the Li-Stephens forward-probability recurrence
// over a reference site grid, using the delay multiplier to amortize
// per-site row updates and the stable log arithmetic in logmath for every
// accumulation.
//
// Grounded on lh_probability.cpp's haplotypeMatrix, reworked so that only
// the rare side of each site's match/non-match partition is written
// directly; the majority side is left to the delay multiplier's lazy
// composition.
package forward

import "errors"

// ErrCohortSizeMismatch is returned by New when the cohort's haplotype
// count disagrees with the penalty set it was built from.
var ErrCohortSizeMismatch = errors.New("forward: cohort size does not match penalty set")
