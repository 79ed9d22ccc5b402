package forward

import "github.com/katalvlaran/sublinearls/allele"

// Query is the read/query-haplotype contract the engine consumes. Site
// indices j run over [0, NumberOfSites()) and name positions in the
// query's own coordinate space, already reconciled onto the reference
// grid. The reconcile package computes the per-read site classification
// and span data from a read's raw positions; it does not itself implement
// Query.
type Query interface {
	// NumberOfSites returns the number of query sites (reconciled
	// positions that align to a reference site).
	NumberOfSites() int
	// HasLeftTail reports whether the query has positions before its
	// first site.
	HasLeftTail() bool
	// GetLeftTail returns the length of the left tail. Only meaningful
	// if HasLeftTail is true.
	GetLeftTail() int
	// HasSpanAfter reports whether there are positions between site j
	// and site j+1 (or after the last site, for j == NumberOfSites()-1).
	HasSpanAfter(j int) bool
	// GetSpanAfter returns the length of the span after site j. Only
	// meaningful if HasSpanAfter(j) is true.
	GetSpanAfter(j int) int
	// GetAllele returns the query's allele call at site j.
	GetAllele(j int) allele.Value
	// GetAugmentations returns the number of positions within a span
	// where the read's reference disagrees with the global reference.
	// j == -1 denotes the initial left tail.
	GetAugmentations(j int) int
	// GetRelIndex maps query site j to its reference site index.
	GetRelIndex(j int) int
}
