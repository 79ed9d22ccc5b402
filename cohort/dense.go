package cohort

import (
	"errors"
	"sort"

	"github.com/katalvlaran/sublinearls/allele"
)

// ErrRaggedCohort is returned by NewDense when sites carry differing
// numbers of haplotype calls.
var ErrRaggedCohort = errors.New("cohort: ragged allele matrix")

// Dense is an in-memory Cohort backed by a dense site-major allele
// matrix. NewDense builds the per-site allele-to-rows partitions for every
// site up front, so queries only read and a Dense value can be shared by
// concurrent forward.Engine instances.
type Dense struct {
	alleles [][]allele.Value // alleles[site][row]
	h       int
	buckets []map[allele.Value][]int // lazily populated per site
}

// NewDense builds a Dense cohort from a site-major allele matrix. It
// returns ErrRaggedCohort if rows carry differing haplotype counts.
func NewDense(alleles [][]allele.Value) (*Dense, error) {
	h := 0
	if len(alleles) > 0 {
		h = len(alleles[0])
	}
	for _, row := range alleles {
		if len(row) != h {
			return nil, ErrRaggedCohort
		}
	}
	d := &Dense{
		alleles: alleles,
		h:       h,
		buckets: make([]map[allele.Value][]int, len(alleles)),
	}
	for site := range alleles {
		_, _ = d.bucketsAt(site)
	}
	return d, nil
}

// NumHaplotypes returns H.
func (d *Dense) NumHaplotypes() int {
	return d.h
}

// Matches returns the rows carrying allele a at site, in ascending order.
func (d *Dense) Matches(site int, a allele.Value) ([]int, error) {
	b, err := d.bucketsAt(site)
	if err != nil {
		return nil, err
	}
	return b[a], nil
}

// NonMatches returns the rows not carrying allele a at site, in ascending
// order.
func (d *Dense) NonMatches(site int, a allele.Value) ([]int, error) {
	b, err := d.bucketsAt(site)
	if err != nil {
		return nil, err
	}
	non := make([]int, 0, d.h-len(b[a]))
	for v, rows := range b {
		if v == a {
			continue
		}
		non = append(non, rows...)
	}
	sort.Ints(non)
	return non, nil
}

// CountMatching returns the number of rows carrying allele a at site,
// without materializing the row list.
func (d *Dense) CountMatching(site int, a allele.Value) (int, error) {
	b, err := d.bucketsAt(site)
	if err != nil {
		return 0, err
	}
	return len(b[a]), nil
}

// IsRare reports whether matches is the smaller side at (site, a). Ties
// are broken deterministically in favor of "matches is rare".
func (d *Dense) IsRare(site int, a allele.Value) (bool, error) {
	nMatch, err := d.CountMatching(site, a)
	if err != nil {
		return false, err
	}
	nMismatch := d.h - nMatch
	return nMatch <= nMismatch, nil
}

// AlleleAt returns the allele carried by row at site.
func (d *Dense) AlleleAt(site, row int) (allele.Value, error) {
	if site < 0 || site >= len(d.alleles) {
		return allele.Unknown, ErrOutOfRange
	}
	if row < 0 || row >= d.h {
		return allele.Unknown, ErrOutOfRange
	}
	return d.alleles[site][row], nil
}

func (d *Dense) bucketsAt(site int) (map[allele.Value][]int, error) {
	if site < 0 || site >= len(d.alleles) {
		return nil, ErrOutOfRange
	}
	if d.buckets[site] == nil {
		m := make(map[allele.Value][]int, 4)
		for row, a := range d.alleles[site] {
			m[a] = append(m[a], row)
		}
		d.buckets[site] = m
	}
	return d.buckets[site], nil
}
