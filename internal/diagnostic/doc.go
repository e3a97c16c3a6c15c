// Package diagnostic collects the explanations produced while a conversion procedure
// is derived: which fields were left out and why.
//
// Skipped fields are not failures. Fields whose types cannot be reconciled are
// warnings; fields missing a counterpart, a reader or a writer are infos. The CLI
// "plan" command prints both.
package diagnostic
