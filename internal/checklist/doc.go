// Package checklist defines the core data model for the recurrence engine:
// master tasks (recurring work definitions), frequency variants, occurrences
// (date-specific appearances), and lifecycle statuses.
//
// The package is pure data. All rule evaluation lives in internal/recur and
// internal/status; persistence lives in internal/store.
//
// Frequency variants form a closed set. External authoring surfaces use
// free-form identifier strings (including legacy aliases); those are
// normalized once at the boundary via ParseVariant, so evaluation code never
// compares raw strings.
package checklist
