// Package penalty holds the immutable, pre-derived log-space constants
// the forward engine's recurrence pulls from at every site: recombination
// and mutation rates, cohort size, and every constant derived from them.
//
// A Set is constructed once per query cohort and shared read-only across
// every forward.Engine that runs against it; see Set's doc comment for the
// validity preconditions enforced at construction.
package penalty

import (
	"errors"
	"math"

	"github.com/katalvlaran/sublinearls/logmath"
)

// ErrInvalidParameters is returned by New when the supplied recombination
// or mutation rate is not a valid log-probability below one half.
var ErrInvalidParameters = errors.New("penalty: invalid parameters")

// Set is an immutable bundle of log-space constants derived from a
// recombination rate, a mutation rate, and a cohort size. All fields are
// unexported; construct with New and read through the accessor methods.
type Set struct {
	logRho float64
	logMu  float64
	h      int

	logH             float64
	logRhoComplement float64
	logMuComplement  float64
	log2MuComplement float64
	logFtBase        float64
	logFsBase        float64
}

// New validates (logRho, logMu, h) and computes every derived constant
// once. It returns ErrInvalidParameters if exp(logMu) >= 0.5 or
// exp(logRho) >= 0.5 — both rates must strictly favor "no event" at a
// single site for the recurrence's log-space identities to hold.
func New(logRho, logMu float64, h int) (*Set, error) {
	if math.Exp(logMu) >= 0.5 || math.Exp(logRho) >= 0.5 {
		return nil, ErrInvalidParameters
	}
	if h <= 0 {
		return nil, ErrInvalidParameters
	}

	logH := math.Log(float64(h))
	logRhoComplement := math.Log1p(-math.Exp(logRho))
	logMuComplement := math.Log1p(-math.Exp(logMu))
	log2MuComplement := math.Log1p(-2 * math.Exp(logMu))
	logFtBase := math.Log1p(-2 * math.Exp(logRho))
	logFsBase := logmath.Sum(logFtBase, logRho+logH)

	return &Set{
		logRho:           logRho,
		logMu:            logMu,
		h:                h,
		logH:             logH,
		logRhoComplement: logRhoComplement,
		logMuComplement:  logMuComplement,
		log2MuComplement: log2MuComplement,
		logFtBase:        logFtBase,
		logFsBase:        logFsBase,
	}, nil
}

// LogRho returns the configured log-space recombination rate.
func (s *Set) LogRho() float64 { return s.logRho }

// LogMu returns the configured log-space mutation rate.
func (s *Set) LogMu() float64 { return s.logMu }

// H returns the cohort size.
func (s *Set) H() int { return s.h }

// LogH returns log(H).
func (s *Set) LogH() float64 { return s.logH }

// LogRhoComplement returns log(1 - exp(LogRho)).
func (s *Set) LogRhoComplement() float64 { return s.logRhoComplement }

// LogMuComplement returns log(1 - exp(LogMu)).
func (s *Set) LogMuComplement() float64 { return s.logMuComplement }

// Log2MuComplement returns log(1 - 2*exp(LogMu)).
func (s *Set) Log2MuComplement() float64 { return s.log2MuComplement }

// LogFtBase returns log(1 - 2*exp(LogRho)), the per-site "no transition"
// base term.
func (s *Set) LogFtBase() float64 { return s.logFtBase }

// LogFsBase returns logsum(LogFtBase, LogRho + LogH), the per-site "stay
// or uniformly switch" base term used in column-sum updates and spans.
func (s *Set) LogFsBase() float64 { return s.logFsBase }
