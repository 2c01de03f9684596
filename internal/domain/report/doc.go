// Package report implements the post-hoc analytics pass over a session's
// answer records: the error-cause histogram, grouped accuracy per
// classification dimension, and the rule-based study recommendations.
//
// The whole package is read-only and pure. It tolerates partially
// answered sessions; a report over fewer records is simply based on
// fewer records, not an error.
package report
