package delay

import (
	"github.com/katalvlaran/sublinearls/dpmap"
	"github.com/katalvlaran/sublinearls/history"
)

const noClass = -1

// Multiplier is the delay multiplier over H rows. Zero value is not
// usable; construct with New.
type Multiplier struct {
	hist        *history.Log
	currentSite int // index of the most recently staged site map, -1 before the first one
	currentStep int // index of the most recently pushed history entry (site or span), -1 before the first one

	rowToEqclass []int

	eqclassToMap        []dpmap.UpdateMap
	eqclassSize         []int
	eqclassLastUpdated  []history.Step
	classAbove          []int // per-eqclass: neighbor closer to the list's representative
	classBelow          []int // per-eqclass: neighbor farther from the representative
	classSite           []int // per-eqclass: which site's list it is currently spliced into, -1 if none
	emptyEqclassIndices []int // freelist of recycled eqclass slots

	siteNClasses     []int // per site: number of eqclasses whose last_updated == that site
	repEqclassOfSite []int // per site: representative (head) eqclass of that site's list, -1 if empty

	newestEqclass     int // eqclass created for this step's individually-touched rows
	newestEqclassStep int // the currentStep value newestEqclass was created for; -1 means stale
}

// New returns a Multiplier over h rows, all sharing a single identity
// eqclass.
func New(h int) *Multiplier {
	m := &Multiplier{
		hist:              history.New(),
		currentSite:       -1,
		currentStep:       -1,
		rowToEqclass:      make([]int, h),
		newestEqclassStep: -1,
	}
	e := m.allocateEqclass(dpmap.Identity(), history.PastFirst)
	for r := range m.rowToEqclass {
		m.rowToEqclass[r] = e
	}
	m.eqclassSize[e] = h
	return m
}

// CurrentSite returns the index of the most recently staged site map.
func (m *Multiplier) CurrentSite() int {
	return m.currentSite
}

// NumberOfEqclasses returns the number of live (non-empty) eqclasses.
func (m *Multiplier) NumberOfEqclasses() int {
	n := 0
	for _, sz := range m.eqclassSize {
		if sz > 0 {
			n++
		}
	}
	return n
}

// RowEqclass returns the eqclass row currently belongs to.
func (m *Multiplier) RowEqclass(row int) (int, error) {
	if row < 0 || row >= len(m.rowToEqclass) {
		return 0, ErrOutOfRange
	}
	return m.rowToEqclass[row], nil
}

// EqclassSize returns the population of eqclass e. An index that names no
// allocated eqclass slot has population 0.
func (m *Multiplier) EqclassSize(e int) int {
	if e < 0 || e >= len(m.eqclassSize) {
		return 0
	}
	return m.eqclassSize[e]
}

// TotalRows returns H.
func (m *Multiplier) TotalRows() int {
	return len(m.rowToEqclass)
}

// StageMapForSite appends m to the history as a site step and advances
// both the step and site counters. It does not touch any row or eqclass.
func (m *Multiplier) StageMapForSite(mp dpmap.UpdateMap) {
	m.hist.PushBack(mp)
	m.currentStep++
	m.currentSite++
	m.newestEqclassStep = -1
}

// StageMapForSpan appends m to the history as a span step, advancing only
// the step counter (spans apply uniformly to every row and carry no
// per-site identity).
func (m *Multiplier) StageMapForSpan(mp dpmap.UpdateMap) {
	m.hist.PushBack(mp)
	m.currentStep++
	m.newestEqclassStep = -1
}

// AssignRowToNewestEqclass removes row from its current eqclass and
// places it in the eqclass representing "already caught up as of the
// current step" — created fresh on the first call at a given step and
// shared by every row individually realized at that step.
func (m *Multiplier) AssignRowToNewestEqclass(row int) error {
	if row < 0 || row >= len(m.rowToEqclass) {
		return ErrOutOfRange
	}
	if m.newestEqclassStep != m.currentStep {
		e := m.allocateEqclass(dpmap.Identity(), history.Step(m.currentStep))
		m.newestEqclass = e
		m.newestEqclassStep = m.currentStep
		m.addToSite(m.currentSite, e)
	}
	m.moveRowToEqclass(row, m.newestEqclass)
	return nil
}

// UpdateEqclass composes the suffix history[last_updated(e)+1 ..
// current_step] into eqclass e's stored map, sets its last_updated to the
// current step, and splices it into the current site's class list.
func (m *Multiplier) UpdateEqclass(e int) error {
	from := int(m.eqclassLastUpdated[e]) + 1
	if from <= m.currentStep {
		suf, err := m.hist.Suffix(from)
		if err != nil {
			return err
		}
		m.eqclassToMap[e] = dpmap.Compose(suf, m.eqclassToMap[e])
	}
	m.eqclassLastUpdated[e] = history.Step(m.currentStep)
	m.spliceToCurrentSite(e)
	return nil
}

// UpdateActiveRows calls UpdateEqclass once for each distinct eqclass
// touched by rows. Callers must pass the rare side of a (site, allele)
// partition for the amortization bound to hold.
func (m *Multiplier) UpdateActiveRows(rows []int) error {
	seen := make(map[int]bool, len(rows))
	for _, r := range rows {
		if r < 0 || r >= len(m.rowToEqclass) {
			return ErrOutOfRange
		}
		e := m.rowToEqclass[r]
		if seen[e] {
			continue
		}
		seen[e] = true
		if err := m.UpdateEqclass(e); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate returns row's eqclass map, caught up to the current step,
// applied to value.
func (m *Multiplier) Evaluate(row int, value float64) (float64, error) {
	if row < 0 || row >= len(m.rowToEqclass) {
		return 0, ErrOutOfRange
	}
	e := m.rowToEqclass[row]
	if err := m.UpdateEqclass(e); err != nil {
		return 0, err
	}
	return m.eqclassToMap[e].Apply(value), nil
}

// HardUpdateAll brings every live eqclass up to the current step. After
// this call, the underlying history can be discarded (e.g. by the caller
// replacing this Multiplier's state at a snapshot boundary) without
// losing any row's true value.
func (m *Multiplier) HardUpdateAll() error {
	for e, sz := range m.eqclassSize {
		if sz == 0 {
			continue
		}
		if err := m.UpdateEqclass(e); err != nil {
			return err
		}
	}
	return nil
}

// HardClearAll collapses every row into a single fresh identity eqclass
// and discards the history entirely, resetting step/site counters.
func (m *Multiplier) HardClearAll() {
	h := len(m.rowToEqclass)
	m.hist = history.New()
	m.currentStep = -1
	m.currentSite = -1
	m.eqclassToMap = nil
	m.eqclassSize = nil
	m.eqclassLastUpdated = nil
	m.classAbove = nil
	m.classBelow = nil
	m.classSite = nil
	m.emptyEqclassIndices = nil
	m.siteNClasses = nil
	m.repEqclassOfSite = nil
	m.newestEqclassStep = -1

	e := m.allocateEqclass(dpmap.Identity(), history.PastFirst)
	for r := 0; r < h; r++ {
		m.rowToEqclass[r] = e
	}
	m.eqclassSize[e] = h
}

// ResetRows removes rows from their current eqclasses and places them,
// as a group, into a fresh identity eqclass caught up to the current
// step.
func (m *Multiplier) ResetRows(rows []int) error {
	if len(rows) == 0 {
		return nil
	}
	for _, r := range rows {
		if r < 0 || r >= len(m.rowToEqclass) {
			return ErrOutOfRange
		}
	}
	e := m.allocateEqclass(dpmap.Identity(), history.Step(m.currentStep))
	m.addToSite(m.currentSite, e)
	for _, r := range rows {
		m.moveRowToEqclass(r, e)
	}
	return nil
}

func (m *Multiplier) allocateEqclass(initMap dpmap.UpdateMap, lastUpdated history.Step) int {
	var e int
	if n := len(m.emptyEqclassIndices); n > 0 {
		e = m.emptyEqclassIndices[n-1]
		m.emptyEqclassIndices = m.emptyEqclassIndices[:n-1]
		m.eqclassToMap[e] = initMap
		m.eqclassSize[e] = 0
		m.eqclassLastUpdated[e] = lastUpdated
		m.classAbove[e] = noClass
		m.classBelow[e] = noClass
		m.classSite[e] = noClass
	} else {
		e = len(m.eqclassToMap)
		m.eqclassToMap = append(m.eqclassToMap, initMap)
		m.eqclassSize = append(m.eqclassSize, 0)
		m.eqclassLastUpdated = append(m.eqclassLastUpdated, lastUpdated)
		m.classAbove = append(m.classAbove, noClass)
		m.classBelow = append(m.classBelow, noClass)
		m.classSite = append(m.classSite, noClass)
	}
	return e
}

func (m *Multiplier) moveRowToEqclass(row, e int) {
	old := m.rowToEqclass[row]
	if old == e {
		return
	}
	m.decrementEqclass(old)
	m.rowToEqclass[row] = e
	m.eqclassSize[e]++
}

func (m *Multiplier) decrementEqclass(e int) {
	m.eqclassSize[e]--
	if m.eqclassSize[e] == 0 {
		m.deleteEqclass(e)
	}
}

func (m *Multiplier) deleteEqclass(e int) {
	m.removeFromSiteList(e)
	m.emptyEqclassIndices = append(m.emptyEqclassIndices, e)
	if m.newestEqclassStep == m.currentStep && m.newestEqclass == e {
		m.newestEqclassStep = -1
	}
}

func (m *Multiplier) ensureSiteSlots(siteCount int) {
	for len(m.siteNClasses) < siteCount {
		m.siteNClasses = append(m.siteNClasses, 0)
		m.repEqclassOfSite = append(m.repEqclassOfSite, noClass)
	}
}

func (m *Multiplier) addToSite(site, e int) {
	if site < 0 {
		m.classSite[e] = noClass
		return
	}
	m.ensureSiteSlots(site + 1)
	rep := m.repEqclassOfSite[site]
	m.classAbove[e] = noClass
	m.classBelow[e] = rep
	if rep != noClass {
		m.classAbove[rep] = e
	}
	m.repEqclassOfSite[site] = e
	m.siteNClasses[site]++
	m.classSite[e] = site
}

func (m *Multiplier) removeFromSiteList(e int) {
	site := m.classSite[e]
	if site < 0 {
		return
	}
	above := m.classAbove[e]
	below := m.classBelow[e]
	if above != noClass {
		m.classBelow[above] = below
	} else {
		m.repEqclassOfSite[site] = below
	}
	if below != noClass {
		m.classAbove[below] = above
	}
	m.siteNClasses[site]--
	m.classAbove[e] = noClass
	m.classBelow[e] = noClass
	m.classSite[e] = noClass
}

func (m *Multiplier) spliceToCurrentSite(e int) {
	if m.classSite[e] == m.currentSite {
		return
	}
	m.removeFromSiteList(e)
	m.addToSite(m.currentSite, e)
}
