// Package guard provides a small helper that enforces construction of
// structs through their factory functions. Commands and value objects embed
// a ConstructorGuard so a zero-value instance fails validation instead of
// slipping past the constructor's checks.
package guard

// ConstructorGuard marks a struct as having been created via its constructor.
// The zero value is invalid, which is the whole point.
type ConstructorGuard struct {
	constructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
// Call this only from within a factory function.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns notConstructedErr when the guard's owner was not created
// through its constructor, and nil otherwise.
func (g ConstructorGuard) Validate(notConstructedErr error) error {
	if !g.constructed {
		return notConstructedErr
	}
	return nil
}
