// Package cohort defines the Cohort contract — per-site allele calls for
// every haplotype in a reference panel — and a dense in-memory
// implementation suitable for cohorts the forward engine holds entirely
// resident.
package cohort

import (
	"errors"

	"github.com/katalvlaran/sublinearls/allele"
)

// ErrOutOfRange is returned when a site or row index is outside its
// valid domain.
var ErrOutOfRange = errors.New("cohort: index out of range")

// Cohort is the read-only contract the forward engine consumes: for each
// reference site, the allele carried by every cohort haplotype, plus the
// match/non-match row partitions the recurrence needs at each site.
type Cohort interface {
	// NumHaplotypes returns H, the number of rows.
	NumHaplotypes() int
	// Matches returns the row indices carrying allele a at site.
	Matches(site int, a allele.Value) ([]int, error)
	// NonMatches returns the row indices not carrying allele a at site.
	NonMatches(site int, a allele.Value) ([]int, error)
	// CountMatching returns len(Matches(site, a)) without materializing it.
	CountMatching(site int, a allele.Value) (int, error)
	// IsRare reports whether matches is the smaller of matches/non-matches
	// at (site, a). Ties favor "matches is rare" (deterministic tie-break).
	IsRare(site int, a allele.Value) (bool, error)
	// AlleleAt returns the allele carried by row at site.
	AlleleAt(site, row int) (allele.Value, error)
}
