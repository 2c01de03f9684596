// Package scoring implements the pure core of the quiz engine: answer
// correctness evaluation, error-cause classification, answer application,
// and full recomputation of list-level aggregates.
//
// Every function in this package is deterministic and side-effect free.
// Functions that change session state return new instances instead of
// mutating their inputs, which makes retried submissions and repeated
// recomputations safe by construction.
package scoring
