// Package reconcile folds a read's internal site positions onto a
// reference site grid, producing the index streams (shared/read-only
// classification, span lengths, augmentation counts) the forward engine
// consumes through the Query contract.
//
// Grounded on haplotype_manager.cpp, with its documented typographical
// bugs (reaturn, conatins_shared_sites, the unbalanced parenthesis in
// check_for_ref_sites, the minus-for-arrow typo in
// reference_sequence-matches) fixed to their evident intent; see
// DESIGN.md.
package reconcile

import "errors"

// ErrReadOutOfReference is returned when a read-internal site position
// falls outside the read's own length, or a physical position is queried
// outside [start, end] of the read's span.
var ErrReadOutOfReference = errors.New("reconcile: position outside read span")
