package penalty_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/sublinearls/penalty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsHighMutationRate(t *testing.T) {
	_, err := penalty.New(math.Log(0.01), math.Log(0.5), 10)
	assert.ErrorIs(t, err, penalty.ErrInvalidParameters)
}

func TestNew_RejectsHighRecombinationRate(t *testing.T) {
	_, err := penalty.New(math.Log(0.5), math.Log(0.01), 10)
	assert.ErrorIs(t, err, penalty.ErrInvalidParameters)
}

func TestNew_RejectsNonPositiveCohort(t *testing.T) {
	_, err := penalty.New(math.Log(0.01), math.Log(0.01), 0)
	assert.ErrorIs(t, err, penalty.ErrInvalidParameters)
}

func TestNew_DerivedConstants(t *testing.T) {
	logRho := math.Log(0.01)
	logMu := math.Log(0.01)
	set, err := penalty.New(logRho, logMu, 4)
	require.NoError(t, err)

	assert.InDelta(t, math.Log(4), set.LogH(), 1e-12)
	assert.InDelta(t, math.Log1p(-0.01), set.LogMuComplement(), 1e-9)
	assert.InDelta(t, math.Log1p(-0.02), set.Log2MuComplement(), 1e-9)
	assert.InDelta(t, math.Log1p(-0.02), set.LogFtBase(), 1e-9)

	expectedFsBase := math.Log(math.Exp(set.LogFtBase()) + 4*math.Exp(logRho))
	assert.InDelta(t, expectedFsBase, set.LogFsBase(), 1e-9)
}
