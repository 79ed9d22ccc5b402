// Package sublinearls computes Li-Stephens forward probabilities for a
// query haplotype against a reference cohort panel, using a delay
// multiplier to defer per-row updates so that only the rare side of each
// site's match/non-match split is ever written explicitly.
//
// Package layout:
//
//	allele/    — the four-letter allele alphabet and parsing
//	logmath/   — numerically stable log-space sum/difference primitives
//	penalty/   — immutable per-query log-space constants (rho, mu, H)
//	dpmap/     — affine update maps (x -> logsum(Const, Coeff+x)) and composition
//	history/   — generation-tagged map history with suffix-composition caching
//	reference/ — the reference site grid and canonical allele sequence
//	cohort/    — the reference panel's per-site allele storage
//	delay/     — the delay multiplier: equivalence classes over lazily
//	             batched row updates
//	reconcile/ — read/reference site reconciliation onto the forward
//	             engine's query contract
//	forward/   — the forward engine driving the recurrence to a final
//	             log-likelihood
//	bench/     — YAML-driven scenario fixtures for exercising the engine
//	             at scale
//
// See forward.Engine for the primary entry point.
package sublinearls
