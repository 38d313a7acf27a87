// Package core implements the secpulse scoring engine: step validation,
// calculator evaluation, the wizard state machine, assessment response
// aggregation and rank classification. Everything in this package is pure
// computation over in-memory state; there is no I/O here.
package core
