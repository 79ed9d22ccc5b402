package reference

import "github.com/katalvlaran/sublinearls/allele"

// Sequence is the reference's own base sequence, addressed by physical
// position. It backs the reconciler's invariant-penalty counting: a read
// position is "invariant" with respect to the reference when the read's
// own reference slice disagrees with Sequence at that position.
//
// This collaborator is named but not detailed in the distilled
// specification; its shape and use are recovered from
// haplotype_manager.cpp's reference_sequence->matches(...) calls (see
// DESIGN.md).
type Sequence struct {
	start uint64
	bases []allele.Value
}

// NewSequence builds a Sequence of bases starting at the given physical
// position.
func NewSequence(start uint64, bases []allele.Value) *Sequence {
	cloned := make([]allele.Value, len(bases))
	copy(cloned, bases)
	return &Sequence{start: start, bases: cloned}
}

// NewSequenceFromString is a convenience constructor parsing a FASTA-style
// base string.
func NewSequenceFromString(start uint64, bases string) *Sequence {
	values := make([]allele.Value, len(bases))
	for i := 0; i < len(bases); i++ {
		values[i] = allele.FromByte(bases[i])
	}
	return &Sequence{start: start, bases: values}
}

// Matches reports whether the reference sequence carries allele a at
// physical position pos. Positions outside the sequence's span never
// match.
func (s *Sequence) Matches(pos uint64, a allele.Value) bool {
	v, ok := s.alleleAt(pos)
	return ok && v == a
}

// AlleleAt returns the base at physical position pos, and false if pos
// falls outside the sequence's span.
func (s *Sequence) AlleleAt(pos uint64) (allele.Value, bool) {
	return s.alleleAt(pos)
}

func (s *Sequence) alleleAt(pos uint64) (allele.Value, bool) {
	if pos < s.start {
		return allele.Unknown, false
	}
	offset := pos - s.start
	if offset >= uint64(len(s.bases)) {
		return allele.Unknown, false
	}
	return s.bases[offset], true
}
