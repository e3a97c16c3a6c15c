// Package match decides how a value read from one field reaches another field of a
// possibly different type.
//
// Key functions:
//   - Plan: coercion rule between two declared field types
//   - PlanToMap / PlanFromMap: the same decision when one side is a map entry
//   - Assignable: whether a value can be copied as-is (with lossless widening)
//   - Coerce: the runtime half of Assignable
package match
