// Package recur implements the frequency rule evaluator: for one
// (task, variant, calendar date) triple it decides whether an occurrence
// appears on that date, and derives the due date, carry-over window, and
// lock date from the variant family's rules.
//
// Seven variant families exist (see internal/checklist). Month-restricted
// variants reuse the every-month logic gated on one target month.
//
// The directional tie-break used throughout: "nearest earlier non-holiday
// weekday" searches backward within the current week or month bound, falling
// forward only when the backward search finds no candidate. The two
// directions are not interchangeable: which one applies decides whether a
// short week containing several holidays still produces an occurrence.
//
// Evaluate is a pure function of its inputs. It performs no I/O, holds no
// state, and may be called concurrently.
package recur
