package provider

import (
	"errors"
	"fmt"

	"repairdispatch/internal/core/domain/model/kernel"
	"repairdispatch/internal/pkg/guard"
)

// ErrRefIsNotConstructed is returned when attempting to use an improperly
// initialized Ref. Refs must be created via NewRef.
var ErrRefIsNotConstructed = errors.New("provider Ref must be created via NewRef constructor")

// Ref identifies a provider across aggregate boundaries: a provider ID paired
// with its Kind tag. Job offers and request assignments reference providers
// through Ref rather than holding the full aggregate.
//
// Ref is an immutable value object; the zero value is invalid.
type Ref struct { //nolint:recvcheck //using for validation
	id    kernel.UUID
	kind  Kind
	guard guard.ConstructorGuard
}

// NewRef creates a provider reference from an ID and a Kind.
// Both must be valid; errors are aggregated.
func NewRef(id kernel.UUID, kind Kind) (Ref, error) {
	ref := Ref{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(ref.setID(id), ref.setKind(kind)); err != nil {
		return Ref{}, err
	}

	return ref, nil
}

// Validate checks if the Ref was properly constructed via NewRef.
func (r Ref) Validate() error {
	return r.guard.Validate(ErrRefIsNotConstructed)
}

// ID returns the referenced provider's identifier.
func (r Ref) ID() kernel.UUID {
	return r.id
}

// Kind returns the referenced provider's variant tag.
func (r Ref) Kind() Kind {
	return r.kind
}

// IsEqual compares two references by ID and Kind.
func (r Ref) IsEqual(other Ref) bool {
	return r.id.IsEqual(other.id) && r.kind == other.kind
}

// String returns a human-readable representation of the reference.
func (r Ref) String() string {
	return fmt.Sprintf("%s(%s)", r.kind, r.id)
}

func (r *Ref) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Ref) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	r.kind = kind
	return nil
}
