package forward

import (
	"math"

	"github.com/katalvlaran/sublinearls/allele"
	"github.com/katalvlaran/sublinearls/cohort"
	"github.com/katalvlaran/sublinearls/delay"
	"github.com/katalvlaran/sublinearls/dpmap"
	"github.com/katalvlaran/sublinearls/logmath"
	"github.com/katalvlaran/sublinearls/penalty"
	"github.com/katalvlaran/sublinearls/reference"
)

// Engine drives the forward recurrence for one query haplotype against a
// reference cohort. It owns the delay multiplier and the row-value
// buffer; reference, cohort, and penalties are read-only shared
// collaborators that may be used by other concurrent Engines.
type Engine struct {
	ref       *reference.Structure
	cohort    cohort.Cohort
	penalties *penalty.Set
	query     Query

	mult             *delay.Multiplier
	rowValues        []float64
	sPrev            float64
	pendingFirstSite bool
}

// New builds an Engine over ref/cohort/penalties for the given query. It
// returns ErrCohortSizeMismatch if the cohort's haplotype count disagrees
// with penalties.H().
func New(ref *reference.Structure, coh cohort.Cohort, penalties *penalty.Set, query Query) (*Engine, error) {
	if coh.NumHaplotypes() != penalties.H() {
		return nil, ErrCohortSizeMismatch
	}
	return &Engine{
		ref:       ref,
		cohort:    coh,
		penalties: penalties,
		query:     query,
		mult:      delay.New(coh.NumHaplotypes()),
		rowValues: make([]float64, coh.NumHaplotypes()),
	}, nil
}

// CalculateProbability runs the full recurrence and returns the final
// column's log-likelihood.
func (e *Engine) CalculateProbability() (float64, error) {
	e.initialize()

	n := e.query.NumberOfSites()
	for j := 0; j < n; j++ {
		a := e.query.GetAllele(j)
		refIdx := e.query.GetRelIndex(j)
		if err := e.extendAtSite(j, refIdx, a); err != nil {
			return 0, err
		}
		if e.query.HasSpanAfter(j) {
			if err := e.extendSpan(e.query.GetSpanAfter(j), e.query.GetAugmentations(j)); err != nil {
				return 0, err
			}
		}
	}
	return e.sPrev, nil
}

// Snapshot brings every row fully up to date, discards the deferred
// history, and returns the full R column alongside S. After Snapshot, the
// engine's internal history is empty; subsequent evaluation work starts
// fresh from the returned state.
func (e *Engine) Snapshot() ([]float64, float64, error) {
	if err := e.mult.HardUpdateAll(); err != nil {
		return nil, 0, err
	}
	out := make([]float64, len(e.rowValues))
	for row := range out {
		v, err := e.mult.Evaluate(row, e.rowValues[row])
		if err != nil {
			return nil, 0, err
		}
		out[row] = v
	}
	copy(e.rowValues, out)
	e.mult.HardClearAll()
	return out, e.sPrev, nil
}

func (e *Engine) initialize() {
	if e.query.HasLeftTail() {
		length := e.query.GetLeftTail()
		aug := e.query.GetAugmentations(-1)
		lfsl := float64(length-1) * e.penalties.LogFsBase()
		mut := float64(length-aug)*e.penalties.LogMuComplement() + float64(aug)*e.penalties.LogMu()
		initVal := mut + lfsl - e.penalties.LogH()
		for r := range e.rowValues {
			e.rowValues[r] = initVal
		}
		e.sPrev = mut + lfsl
		e.pendingFirstSite = false
		return
	}
	e.pendingFirstSite = true
}

// extendAtSite applies the update for reference site refIdx given query
// site j's allele. j == 0 with no left tail is the initial-site special
// case: every row gets one of exactly two possible values directly,
// since there is no meaningful "previous column" to extend from.
func (e *Engine) extendAtSite(j, refIdx int, a allele.Value) error {
	if j == 0 && e.pendingFirstSite {
		e.pendingFirstSite = false
		return e.initializeNoLeftTail(refIdx, a)
	}

	lft := e.penalties.LogFtBase()
	lpS := e.penalties.LogRho() + e.sPrev
	mm := e.penalties.LogMu()
	mc := e.penalties.LogMuComplement()

	nMatch, err := e.cohort.CountMatching(refIdx, a)
	if err != nil {
		return err
	}
	nMis := e.cohort.NumHaplotypes() - nMatch

	matchIsRare, err := e.cohort.IsRare(refIdx, a)
	if err != nil {
		return err
	}

	matchMap := dpmap.UpdateMap{Const: mc + lpS, Coeff: mc + lft}
	nonMatchMap := dpmap.UpdateMap{Const: mm + lpS, Coeff: mm + lft}

	var rareRows []int
	var rareMap, majorityMap dpmap.UpdateMap
	if matchIsRare {
		rareRows, err = e.cohort.Matches(refIdx, a)
		rareMap, majorityMap = matchMap, nonMatchMap
	} else {
		rareRows, err = e.cohort.NonMatches(refIdx, a)
		rareMap, majorityMap = nonMatchMap, matchMap
	}
	if err != nil {
		return err
	}

	// Catch the rare rows up to their pre-site value before staging this
	// site's majority map, since that map must never apply to them.
	prevVals := make([]float64, len(rareRows))
	for i, row := range rareRows {
		v, err := e.mult.Evaluate(row, e.rowValues[row])
		if err != nil {
			return err
		}
		prevVals[i] = v
	}

	e.mult.StageMapForSite(majorityMap)

	for i, row := range rareRows {
		e.rowValues[row] = rareMap.Apply(prevVals[i])
		if err := e.mult.AssignRowToNewestEqclass(row); err != nil {
			return err
		}
	}

	sNew, err := e.columnSumAtSite(matchIsRare, nMatch, nMis, prevVals, lft)
	if err != nil {
		return err
	}
	e.sPrev = sNew
	return nil
}

func (e *Engine) columnSumAtSite(matchIsRare bool, nMatch, nMis int, rarePrevVals []float64, lft float64) (float64, error) {
	lfsBase := e.penalties.LogFsBase()
	log2muc := e.penalties.Log2MuComplement()
	mm := e.penalties.LogMu()
	mc := e.penalties.LogMuComplement()
	rho := e.penalties.LogRho()

	if matchIsRare {
		if nMatch == 0 {
			return mm + e.sPrev + lfsBase, nil
		}
		mismatchInvariant := e.sPrev + lfsBase + mm
		matchInvariant := math.Log(float64(nMatch)) + rho + e.sPrev
		bs, err := logmath.BigSum(rarePrevVals)
		if err != nil {
			return 0, err
		}
		matchVariant := lft + bs
		corr := logmath.Sum(matchInvariant, matchVariant) + log2muc
		return logmath.Sum(mismatchInvariant, corr), nil
	}

	if nMis == 0 {
		return mc + e.sPrev + lfsBase, nil
	}
	matchInvariantAll := e.sPrev + lfsBase + mc
	mismatchInvariant := math.Log(float64(nMis)) + rho + e.sPrev
	bs, err := logmath.BigSum(rarePrevVals)
	if err != nil {
		return 0, err
	}
	mismatchVariant := lft + bs
	corr := logmath.Sum(mismatchInvariant, mismatchVariant) + log2muc
	s, err := logmath.Diff(matchInvariantAll, corr)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 0, logmath.ErrNumericDomain
	}
	return s, nil
}

func (e *Engine) initializeNoLeftTail(refIdx int, a allele.Value) error {
	logH := e.penalties.LogH()
	mc := e.penalties.LogMuComplement()
	mm := e.penalties.LogMu()

	nMatch, err := e.cohort.CountMatching(refIdx, a)
	if err != nil {
		return err
	}
	nMis := e.cohort.NumHaplotypes() - nMatch

	matches, err := e.cohort.Matches(refIdx, a)
	if err != nil {
		return err
	}
	isMatch := make([]bool, len(e.rowValues))
	for _, row := range matches {
		isMatch[row] = true
	}
	for row := range e.rowValues {
		if isMatch[row] {
			e.rowValues[row] = -logH + mc
		} else {
			e.rowValues[row] = -logH + mm
		}
	}

	e.sPrev = -logH + logmath.Sum(math.Log(float64(nMatch))+mc, math.Log(float64(nMis))+mm)
	return nil
}

func (e *Engine) extendSpan(length, aug int) error {
	lfsBase := e.penalties.LogFsBase()
	lftBase := e.penalties.LogFtBase()
	mc := e.penalties.LogMuComplement()
	mm := e.penalties.LogMu()
	logH := e.penalties.LogH()

	lfsl := float64(length) * lfsBase
	lftl := float64(length) * lftBase
	mutPen := float64(length-aug)*mc + float64(aug)*mm

	diff, err := logmath.Diff(lfsl, lftl)
	if err != nil {
		return err
	}
	rInvariant := e.sPrev - logH + diff

	spanMap := dpmap.UpdateMap{Const: mutPen + rInvariant, Coeff: mutPen + lftl}
	e.mult.StageMapForSpan(spanMap)
	e.sPrev = mutPen + e.sPrev + lfsl
	return nil
}
