package services

import (
	"errors"
	"fmt"
)

// Error taxonomy. Handlers match these with errors.Is; the concrete types
// below carry the detail for messages.
var (
	// ErrNotFound: a referenced entity id or email does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrConflict: a uniqueness rule was violated; the store is unchanged.
	ErrConflict = errors.New("conflict")

	// ErrDependency: a deletion is blocked by live dependents; the store is
	// unchanged.
	ErrDependency = errors.New("has dependents")
)

type NotFoundError struct {
	Resource string
	Ref      string
}

func NewNotFoundError(resource, ref string) error {
	return &NotFoundError{Resource: resource, Ref: ref}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Ref)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

type ConflictError struct {
	Resource string
	Reason   string
}

func NewConflictError(resource, reason string) error {
	return &ConflictError{Resource: resource, Reason: reason}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Resource, e.Reason)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

type DependencyError struct {
	Resource   string
	ID         string
	Dependents int
}

func NewDependencyError(resource, id string, dependents int) error {
	return &DependencyError{Resource: resource, ID: id, Dependents: dependents}
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s %q has %d dependents", e.Resource, e.ID, e.Dependents)
}

func (e *DependencyError) Is(target error) bool {
	return target == ErrDependency
}
