package bench

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/sublinearls/allele"
	"github.com/katalvlaran/sublinearls/cohort"
	"github.com/katalvlaran/sublinearls/forward"
	"github.com/katalvlaran/sublinearls/penalty"
	"github.com/katalvlaran/sublinearls/reference"
)

// Scenario is one forward-probability fixture: a penalty configuration, a
// cohort, a query, and the log-likelihood it is expected to produce.
type Scenario struct {
	Name string `yaml:"name"`

	LogRho float64 `yaml:"log_rho"`
	LogMu  float64 `yaml:"log_mu"`

	// CohortAlleles is site-major: CohortAlleles[site][haplotype].
	CohortAlleles [][]string `yaml:"cohort_alleles"`
	QueryAlleles  []string   `yaml:"query_alleles"`

	LeftTailLength        int `yaml:"left_tail_length,omitempty"`
	LeftTailAugmentations int `yaml:"left_tail_augmentations,omitempty"`

	SpanAfter         []bool `yaml:"span_after,omitempty"`
	SpanLengths       []int  `yaml:"span_lengths,omitempty"`
	SpanAugmentations []int  `yaml:"span_augmentations,omitempty"`

	ExpectedLogLikelihood float64 `yaml:"expected_log_likelihood"`
	Tolerance             float64 `yaml:"tolerance"`
}

// Suite is an ordered collection of scenarios, typically one YAML file per
// suite.
type Suite struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Result is one scenario's outcome.
type Result struct {
	Name   string
	Got    float64
	Want   float64
	Delta  float64
	Passed bool
}

// LoadSuite reads and strictly parses a YAML suite file.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bench: reading suite: %w", err)
	}
	return LoadSuiteFromBytes(data)
}

// LoadSuiteFromBytes parses suite YAML already in memory.
func LoadSuiteFromBytes(data []byte) (*Suite, error) {
	var suite Suite
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&suite); err != nil {
		return nil, fmt.Errorf("bench: parsing suite: %w", err)
	}
	return &suite, nil
}

// Build constructs the penalty set, cohort, and query the scenario
// describes, along with the engine ready to run it.
func (s *Scenario) Build() (*forward.Engine, error) {
	if len(s.CohortAlleles) == 0 {
		return nil, fmt.Errorf("bench: scenario %q: %w", s.Name, ErrEmptyCohort)
	}
	h := len(s.CohortAlleles[0])

	ps, err := penalty.New(s.LogRho, s.LogMu, h)
	if err != nil {
		return nil, fmt.Errorf("bench: scenario %q: %w", s.Name, err)
	}

	alleles := make([][]allele.Value, len(s.CohortAlleles))
	for i, row := range s.CohortAlleles {
		alleles[i] = make([]allele.Value, len(row))
		for k, code := range row {
			alleles[i][k] = allele.FromByte(code[0])
		}
	}
	coh, err := cohort.NewDense(alleles)
	if err != nil {
		return nil, fmt.Errorf("bench: scenario %q: %w", s.Name, err)
	}

	queryAlleles := make([]allele.Value, len(s.QueryAlleles))
	for i, code := range s.QueryAlleles {
		queryAlleles[i] = allele.FromByte(code[0])
	}
	query := &forward.LiteralQuery{
		LeftTailLength:        s.LeftTailLength,
		LeftTailAugmentations: s.LeftTailAugmentations,
		Alleles:               queryAlleles,
		HasSpans:              s.SpanAfter,
		SpanLengths:           s.SpanLengths,
		Augs:                  s.SpanAugmentations,
	}

	refPositions := make([]uint64, len(s.CohortAlleles))
	for i := range refPositions {
		refPositions[i] = uint64(i + 1)
	}
	ref, err := reference.New(refPositions)
	if err != nil {
		return nil, fmt.Errorf("bench: scenario %q: %w", s.Name, err)
	}

	eng, err := forward.New(ref, coh, ps, query)
	if err != nil {
		return nil, fmt.Errorf("bench: scenario %q: %w", s.Name, err)
	}
	return eng, nil
}

// Run builds and executes the scenario, returning the computed
// log-likelihood.
func (s *Scenario) Run() (float64, error) {
	logrus.Debugf("bench: running scenario %q", s.Name)
	eng, err := s.Build()
	if err != nil {
		return 0, err
	}
	got, err := eng.CalculateProbability()
	if err != nil {
		return 0, fmt.Errorf("bench: scenario %q: %w", s.Name, err)
	}
	return got, nil
}

// RunSuite runs every scenario and reports pass/fail against each
// scenario's tolerance, logging a warning for every failure.
func RunSuite(suite *Suite) ([]Result, error) {
	results := make([]Result, 0, len(suite.Scenarios))
	for _, sc := range suite.Scenarios {
		got, err := sc.Run()
		if err != nil {
			return nil, err
		}
		delta := got - sc.ExpectedLogLikelihood
		if delta < 0 {
			delta = -delta
		}
		passed := delta <= sc.Tolerance
		if !passed {
			logrus.Warnf("bench: scenario %q off by %g (tolerance %g)", sc.Name, delta, sc.Tolerance)
		}
		results = append(results, Result{
			Name:   sc.Name,
			Got:    got,
			Want:   sc.ExpectedLogLikelihood,
			Delta:  delta,
			Passed: passed,
		})
	}
	return results, nil
}
