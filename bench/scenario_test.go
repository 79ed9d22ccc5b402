package bench_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/sublinearls/bench"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSuiteYAML = `
scenarios:
  - name: trivial-single-haplotype
    log_rho: -4.605170185988091
    log_mu: -4.605170185988091
    cohort_alleles:
      - ["A"]
    query_alleles: ["A"]
    expected_log_likelihood: -0.01005033585350145
    tolerance: 1e-9
  - name: two-haplotype-match-mismatch
    log_rho: -4.605170185988091
    log_mu: -4.605170185988091
    cohort_alleles:
      - ["A", "C"]
    query_alleles: ["A"]
    expected_log_likelihood: -0.6931471805599453
    tolerance: 1e-9
`

func TestLoadSuiteFromBytes_ParsesScenarios(t *testing.T) {
	suite, err := bench.LoadSuiteFromBytes([]byte(sampleSuiteYAML))
	require.NoError(t, err)
	require.Len(t, suite.Scenarios, 2)
	assert.Equal(t, "trivial-single-haplotype", suite.Scenarios[0].Name)
	assert.Equal(t, [][]string{{"A"}}, suite.Scenarios[0].CohortAlleles)
}

func TestLoadSuiteFromBytes_RejectsUnknownFields(t *testing.T) {
	_, err := bench.LoadSuiteFromBytes([]byte(`
scenarios:
  - name: bad
    not_a_real_field: 1
`))
	assert.Error(t, err)
}

func TestScenario_Run_MatchesExpectedLogLikelihood(t *testing.T) {
	logMu := math.Log(0.01)
	sc := bench.Scenario{
		Name:                  "single-site",
		LogRho:                logMu,
		LogMu:                 logMu,
		CohortAlleles:         [][]string{{"A"}},
		QueryAlleles:          []string{"A"},
		ExpectedLogLikelihood: math.Log(0.99),
		Tolerance:             1e-9,
	}
	got, err := sc.Run()
	require.NoError(t, err)
	assert.InDelta(t, math.Log(0.99), got, 1e-9)
}

func TestScenario_Build_RejectsEmptyCohort(t *testing.T) {
	sc := bench.Scenario{Name: "empty"}
	_, err := sc.Build()
	assert.ErrorIs(t, err, bench.ErrEmptyCohort)
}

func TestRunSuite_ReportsPassAndFail(t *testing.T) {
	logMu := math.Log(0.01)
	suite := &bench.Suite{
		Scenarios: []bench.Scenario{
			{
				Name:                  "passes",
				LogRho:                logMu,
				LogMu:                 logMu,
				CohortAlleles:         [][]string{{"A"}},
				QueryAlleles:          []string{"A"},
				ExpectedLogLikelihood: math.Log(0.99),
				Tolerance:             1e-9,
			},
			{
				Name:                  "fails",
				LogRho:                logMu,
				LogMu:                 logMu,
				CohortAlleles:         [][]string{{"A"}},
				QueryAlleles:          []string{"A"},
				ExpectedLogLikelihood: 0,
				Tolerance:             1e-9,
			},
		},
	}
	results, err := bench.RunSuite(suite)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Passed)
	assert.False(t, results[1].Passed)
}

func TestScenario_Run_WithSpans(t *testing.T) {
	logMu := math.Log(0.02)
	logRho := math.Log(0.03)
	sc := bench.Scenario{
		Name:              "with-span",
		LogRho:            logRho,
		LogMu:             logMu,
		CohortAlleles:     [][]string{{"A", "A"}, {"A", "C"}},
		QueryAlleles:      []string{"A", "A"},
		SpanAfter:         []bool{true, false},
		SpanLengths:       []int{5, 0},
		SpanAugmentations: []int{1, 0},
		Tolerance:         1e9,
	}
	got, err := sc.Run()
	require.NoError(t, err)
	assert.False(t, math.IsNaN(got))
	assert.False(t, math.IsInf(got, 0))
}
