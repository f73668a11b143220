package models

import "fmt"

// Error kinds for a load run. All of them are fatal: the run's transaction
// rolls back and the CLI maps the kind to an exit code.

// ValidationError reports a catalog record that violates an invariant or a
// normalization rule. Record and Field name the offender.
type ValidationError struct {
	Record string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s.%s: %s", e.Record, e.Field, e.Reason)
}

// CatalogConflict reports two source records declaring the same name.
type CatalogConflict struct {
	Kind string // "agent" or "bundle"
	Name string
}

func (e *CatalogConflict) Error() string {
	return fmt.Sprintf("catalog conflict: duplicate %s %q", e.Kind, e.Name)
}

// UnresolvedMember reports a bundle whose explicit member list names an
// agent that does not exist after the agent upsert phase.
type UnresolvedMember struct {
	Bundle string
	Agent  string
}

func (e *UnresolvedMember) Error() string {
	return fmt.Sprintf("bundle %q: member agent %q does not exist", e.Bundle, e.Agent)
}

// IntegrityError reports a write the store rejected on a constraint.
type IntegrityError struct {
	Op  string
	Err error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity: %s: %v", e.Op, e.Err)
}

func (e *IntegrityError) Unwrap() error { return e.Err }

// StoreError wraps any other persistence failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
