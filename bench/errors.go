// Package bench loads YAML-defined forward-probability scenarios and runs
// them against forward.Engine, comparing the resulting log-likelihood to
// an expected value within a per-scenario tolerance.
//
// Grounded on workload/spec.go's LoadWorkloadSpec (strict YAML decoding via
// gopkg.in/yaml.v3 with KnownFields) and on batch_formation.go's direct
// logrus usage for run diagnostics.
package bench

import "errors"

// ErrEmptyCohort is returned by Scenario.Build when the scenario defines
// no cohort sites at all.
var ErrEmptyCohort = errors.New("bench: scenario has no cohort sites")
