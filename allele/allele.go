// Package allele defines the small, opaque-equality allele tag used
// throughout the forward-probability engine. Nothing in this module
// inspects an allele's identity beyond equality and membership in the
// ref/cohort/query data, so the representation is kept deliberately thin.
package allele

// Value is a tagged allele call. The engine never interprets a Value
// beyond equality comparison; the concrete A/C/G/T/Unknown set is a
// convenience for callers feeding in VCF/FASTA-derived data upstream of
// this module.
type Value uint8

const (
	A Value = iota
	C
	G
	T
	Unknown
)

// String renders a Value as a single character, "?" for anything outside
// the known set.
func (v Value) String() string {
	switch v {
	case A:
		return "A"
	case C:
		return "C"
	case G:
		return "G"
	case T:
		return "T"
	case Unknown:
		return "N"
	default:
		return "?"
	}
}

// FromByte maps a FASTA/VCF base character to a Value. Anything not in
// {A,C,G,T,a,c,g,t} maps to Unknown.
func FromByte(b byte) Value {
	switch b {
	case 'A', 'a':
		return A
	case 'C', 'c':
		return C
	case 'G', 'g':
		return G
	case 'T', 't':
		return T
	default:
		return Unknown
	}
}
