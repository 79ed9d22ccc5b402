package forward

import "github.com/katalvlaran/sublinearls/allele"

// LiteralQuery is a Query built from plain literal values rather than a
// reconciled read. Useful for scripted scenarios and tests that specify
// sites and spans directly instead of deriving them from a read and a
// reference grid.
type LiteralQuery struct {
	LeftTailLength        int
	LeftTailAugmentations int

	Alleles     []allele.Value
	RelIndices  []int
	SpanLengths []int // SpanLengths[j] is the length of the span after site j; read only when HasSpans[j] is true
	HasSpans    []bool
	Augs        []int // augmentation count for the span after site j
}

var _ Query = (*LiteralQuery)(nil)

// NumberOfSites returns len(Alleles).
func (q *LiteralQuery) NumberOfSites() int {
	return len(q.Alleles)
}

// HasLeftTail reports LeftTailLength > 0.
func (q *LiteralQuery) HasLeftTail() bool {
	return q.LeftTailLength > 0
}

// GetLeftTail returns LeftTailLength.
func (q *LiteralQuery) GetLeftTail() int {
	return q.LeftTailLength
}

// HasSpanAfter reports whether HasSpans[j] was set true.
func (q *LiteralQuery) HasSpanAfter(j int) bool {
	return j < len(q.HasSpans) && q.HasSpans[j]
}

// GetSpanAfter returns SpanLengths[j].
func (q *LiteralQuery) GetSpanAfter(j int) int {
	return q.SpanLengths[j]
}

// GetAllele returns Alleles[j].
func (q *LiteralQuery) GetAllele(j int) allele.Value {
	return q.Alleles[j]
}

// GetAugmentations returns Augs[j] for j >= 0, and LeftTailAugmentations
// for j == -1.
func (q *LiteralQuery) GetAugmentations(j int) int {
	if j == -1 {
		return q.LeftTailAugmentations
	}
	return q.Augs[j]
}

// GetRelIndex returns RelIndices[j], or j itself if RelIndices is unset
// (the common case of a query sited one-to-one with the reference grid).
func (q *LiteralQuery) GetRelIndex(j int) int {
	if q.RelIndices == nil {
		return j
	}
	return q.RelIndices[j]
}
