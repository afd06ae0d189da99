// Package guard provides the constructor-guard pattern used by value objects,
// commands, and queries across the application. Embedding a ConstructorGuard in
// a struct makes zero-value instances detectable: only values produced by the
// designated constructor pass validation.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is supplied for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks whether its enclosing struct was created through the
// designated constructor. The zero value is "not constructed" and fails
// validation, which is what protects invariants against direct struct literals.
//
// Example:
//
//	type DispatchCommand struct {
//	    requestID kernel.UUID
//	    guard     guard.ConstructorGuard
//	}
//
//	func NewDispatchCommand(id kernel.UUID) DispatchCommand {
//	    return DispatchCommand{requestID: id, guard: guard.NewConstructorGuard()}
//	}
//
//	func (c DispatchCommand) Validate() error {
//	    return c.guard.Validate(ErrDispatchCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the enclosing object as properly
// constructed. Call it from the object's constructor only.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for properly constructed objects. For zero-value guards
// it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
