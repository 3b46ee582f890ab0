// Package guard provides a constructor guard for value objects, commands and
// aggregates. Embedding a ConstructorGuard lets a type detect whether it was
// created through its designated constructor or left as a zero value, so that
// validation rules cannot be bypassed by direct struct initialization.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the guarded object
// was not constructed and no specific error was supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. The zero value is
// an unconstructed guard, so any object created without its constructor fails
// validation.
//
// Example:
//
//	type Settings struct {
//	    scope string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewSettings(scope string) Settings {
//	    return Settings{scope: scope, guard: guard.NewConstructorGuard()}
//	}
//
//	func (s Settings) Validate() error {
//	    return s.guard.Validate(ErrSettingsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the enclosing object as
// constructed. Call it from the object's constructor only.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the object was properly constructed. Otherwise it
// returns validationError, or ErrDefaultConstructorGuard when validationError
// is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
