package history

import "github.com/katalvlaran/sublinearls/dpmap"

// Step names a position in the log. PastFirst is the sentinel "one before
// the first real entry": an eqclass that has never been updated records
// its last-updated step as PastFirst, so Suffix(PastFirst+1) == Suffix(0)
// naturally covers "the whole history so far" with no special case.
type Step int

// PastFirst marks the root: a logical predecessor of step 0.
const PastFirst Step = -1

// Log is a time-indexed, append-only sequence of dpmap.UpdateMap values.
// Steps are addressed by a plain integer index ("step_t" in the source
// design); a cleared step's UpdateMap has been folded into its nearest
// live predecessor and can no longer be read directly, only recovered as
// part of a still-live neighbor's composed value.
//
// Log is not safe for concurrent use; each forward.Engine owns one.
type Log struct {
	elements []dpmap.UpdateMap
	cleared  []bool
	prevLive []int // prevLive[k]: nearest live index < k once resolved, else a raw k-1 link pending resolution.
	nextLive []int // nextLive[k]: nearest live index > k once resolved, else -1 meaning "none yet known".

	// cache memoizes Suffix results. A slot is valid only while
	// cacheGenAt[i] == gen; any mutation (PushBack, FusePrev,
	// CondenseHistory) bumps gen, invalidating the entire cache. This is
	// a conservative but always-correct implementation of "on-demand
	// suffix-composition caching": repeated Suffix queries between
	// mutations are O(1) after the first O(distance) pass, and the whole
	// cache cost is O(total) per generation, matching the structure's
	// complexity budget.
	cache      []dpmap.UpdateMap
	cacheGenAt []uint64
	gen        uint64
}

// New returns an empty Log.
func New() *Log {
	return &Log{}
}

// Reserve pre-allocates capacity for length additional steps; a pure
// performance hint with no observable effect beyond avoiding reallocation.
func (l *Log) Reserve(length int) {
	if cap(l.elements)-len(l.elements) >= length {
		return
	}
	grown := make([]dpmap.UpdateMap, len(l.elements), len(l.elements)+length)
	copy(grown, l.elements)
	l.elements = grown
}

// Len returns the number of steps ever pushed, including cleared ones.
func (l *Log) Len() int {
	return len(l.elements)
}

// PushBack appends a new live step. O(1) amortized.
func (l *Log) PushBack(m dpmap.UpdateMap) {
	idx := len(l.elements)
	l.elements = append(l.elements, m)
	l.cleared = append(l.cleared, false)
	l.prevLive = append(l.prevLive, idx-1)
	l.nextLive = append(l.nextLive, -1)
	l.cache = append(l.cache, dpmap.UpdateMap{})
	l.cacheGenAt = append(l.cacheGenAt, 0)
	if idx > 0 {
		l.nextLive[idx-1] = idx
	}
	l.gen++
}

// Back returns the most recently pushed step's map, regardless of whether
// it has since been cleared by a fuse (fusing only ever targets an
// interior predecessor, never the tail itself, in normal use, but Back is
// a raw accessor and does not check clearedness).
func (l *Log) Back() dpmap.UpdateMap {
	return l.elements[len(l.elements)-1]
}

// At returns the raw map stored at step i. It returns ErrErasedHistory if
// i has been cleared, and ErrOutOfRange if i is outside [0, Len()).
func (l *Log) At(i int) (dpmap.UpdateMap, error) {
	if i < 0 || i >= len(l.elements) {
		return dpmap.UpdateMap{}, ErrOutOfRange
	}
	if l.cleared[i] {
		return dpmap.UpdateMap{}, ErrErasedHistory
	}
	return l.elements[i], nil
}

// Suffix returns the composition history[end] ∘ history[end-1] ∘ ... ∘
// history[i], where end is the current live tail (the largest live
// index), skipping any cleared steps folded into their neighbors along
// the way. It returns ErrErasedHistory if i itself is cleared, and
// ErrOutOfRange if i is outside bounds.
func (l *Log) Suffix(i int) (dpmap.UpdateMap, error) {
	if i < 0 || i >= len(l.elements) {
		return dpmap.UpdateMap{}, ErrOutOfRange
	}
	if l.cleared[i] {
		return dpmap.UpdateMap{}, ErrErasedHistory
	}
	if l.cacheGenAt[i] == l.gen {
		return l.cache[i], nil
	}

	// Walk forward from i to the live tail, recording the path, then fold
	// backward so every visited node's Suffix gets cached for this
	// generation.
	path := []int{i}
	cur := i
	for {
		nxt := l.resolveNext(cur)
		if nxt == -1 {
			break
		}
		cur = nxt
		path = append(path, cur)
	}

	var acc dpmap.UpdateMap
	for k := len(path) - 1; k >= 0; k-- {
		node := path[k]
		if k == len(path)-1 {
			acc = l.elements[node]
		} else {
			acc = dpmap.Compose(acc, l.elements[node])
		}
		l.cache[node] = acc
		l.cacheGenAt[node] = l.gen
	}
	return l.cache[i], nil
}

// FusePrev composes history[i] into its nearest live predecessor and
// marks i as cleared. The predecessor's map becomes Compose(history[i],
// predecessor's old map) — "apply the predecessor's effect first, then
// i's" — preserving the time order the two steps originally represented.
//
// FusePrev returns ErrOutOfRange if i is out of bounds or has no live
// predecessor (i.e. resolves to PastFirst), and ErrErasedHistory if i is
// already cleared.
func (l *Log) FusePrev(i int) error {
	if i < 0 || i >= len(l.elements) {
		return ErrOutOfRange
	}
	if l.cleared[i] {
		return ErrErasedHistory
	}
	p := l.resolvePrev(i)
	if p < 0 {
		return ErrOutOfRange
	}
	l.elements[p] = dpmap.Compose(l.elements[i], l.elements[p])
	l.cleared[i] = true
	l.gen++
	return nil
}

// CondenseHistory collapses every live step in (top, bottom] into top,
// intended for use when an eqclass leaves or joins a site and its
// history since its last update can be permanently folded down to a
// single representative step.
func (l *Log) CondenseHistory(top, bottom Step) error {
	if top < 0 || int(bottom) >= len(l.elements) || top > bottom {
		return ErrOutOfRange
	}
	for i := int(bottom); i > int(top); i-- {
		if l.cleared[i] {
			continue
		}
		if err := l.FusePrev(i); err != nil {
			return err
		}
	}
	return nil
}

func (l *Log) resolveNext(k int) int {
	p := l.nextLive[k]
	for p != -1 && l.cleared[p] {
		p = l.nextLive[p]
	}
	if p != -1 {
		l.nextLive[k] = p
	}
	return p
}

func (l *Log) resolvePrev(k int) int {
	p := l.prevLive[k]
	for p >= 0 && l.cleared[p] {
		p = l.prevLive[p]
	}
	l.prevLive[k] = p
	return p
}
