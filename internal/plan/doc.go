// Package plan derives the Procedure that converts values of one type into values of
// another.
//
// Derivation pipeline:
//  1. Select a strategy from the shape of both sides (struct or string-keyed map)
//  2. Enumerate fields with their accessors (internal/analyze)
//  3. Match fields by name and pick a coercion rule per pair (internal/match)
//  4. Record every field that was left out as a diagnostic
//
// A Procedure is plain data. Executing it is the job of internal/apply.
package plan
