package history_test

import (
	"testing"

	"github.com/katalvlaran/sublinearls/dpmap"
	"github.com/katalvlaran/sublinearls/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_SuffixSingleStep(t *testing.T) {
	l := history.New()
	m := dpmap.UpdateMap{Const: -1.0, Coeff: 0.5}
	l.PushBack(m)

	got, err := l.Suffix(0)
	require.NoError(t, err)
	assert.InDelta(t, m.Apply(2.0), got.Apply(2.0), 1e-9)
}

func TestLog_SuffixMatchesSequentialApplication(t *testing.T) {
	l := history.New()
	maps := []dpmap.UpdateMap{
		{Const: -1.0, Coeff: 0.9},
		{Const: -2.0, Coeff: 0.8},
		{Const: -0.5, Coeff: 0.95},
	}
	for _, m := range maps {
		l.PushBack(m)
	}

	composed, err := l.Suffix(0)
	require.NoError(t, err)

	x := 3.0
	sequential := x
	for _, m := range maps {
		sequential = m.Apply(sequential)
	}
	assert.InDelta(t, sequential, composed.Apply(x), 1e-9)
}

func TestLog_SuffixPartialRange(t *testing.T) {
	l := history.New()
	maps := []dpmap.UpdateMap{
		{Const: -1.0, Coeff: 0.9},
		{Const: -2.0, Coeff: 0.8},
		{Const: -0.5, Coeff: 0.95},
		{Const: -1.5, Coeff: 0.7},
	}
	for _, m := range maps {
		l.PushBack(m)
	}

	composed, err := l.Suffix(1)
	require.NoError(t, err)

	x := 1.2
	sequential := x
	for _, m := range maps[1:] {
		sequential = m.Apply(sequential)
	}
	assert.InDelta(t, sequential, composed.Apply(x), 1e-9)
}

func TestLog_FusePrevPreservesComposedEffect(t *testing.T) {
	l := history.New()
	maps := []dpmap.UpdateMap{
		{Const: -1.0, Coeff: 0.9},
		{Const: -2.0, Coeff: 0.8},
		{Const: -0.5, Coeff: 0.95},
	}
	for _, m := range maps {
		l.PushBack(m)
	}

	x := 0.4
	sequential := x
	for _, m := range maps {
		sequential = m.Apply(sequential)
	}

	require.NoError(t, l.FusePrev(1))

	_, err := l.At(1)
	assert.ErrorIs(t, err, history.ErrErasedHistory)

	composed, err := l.Suffix(0)
	require.NoError(t, err)
	assert.InDelta(t, sequential, composed.Apply(x), 1e-9)
}

func TestLog_CondenseHistoryCollapsesRange(t *testing.T) {
	l := history.New()
	maps := []dpmap.UpdateMap{
		{Const: -1.0, Coeff: 0.9},
		{Const: -2.0, Coeff: 0.8},
		{Const: -0.5, Coeff: 0.95},
		{Const: -1.5, Coeff: 0.7},
	}
	for _, m := range maps {
		l.PushBack(m)
	}

	x := 0.1
	sequential := x
	for _, m := range maps {
		sequential = m.Apply(sequential)
	}

	require.NoError(t, l.CondenseHistory(0, 3))

	for i := 1; i <= 3; i++ {
		_, err := l.At(i)
		assert.ErrorIs(t, err, history.ErrErasedHistory)
	}

	composed, err := l.Suffix(0)
	require.NoError(t, err)
	assert.InDelta(t, sequential, composed.Apply(x), 1e-9)
}

func TestLog_OutOfRange(t *testing.T) {
	l := history.New()
	l.PushBack(dpmap.Identity())

	_, err := l.At(5)
	assert.ErrorIs(t, err, history.ErrOutOfRange)

	_, err = l.Suffix(-1)
	assert.ErrorIs(t, err, history.ErrOutOfRange)

	assert.ErrorIs(t, l.FusePrev(0), history.ErrOutOfRange)
}
