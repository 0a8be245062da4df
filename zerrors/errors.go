// Package zerrors defines the error types raised during class declaration,
// constructor synthesis, and attribute access.
//
// Every failure surfaces synchronously to the caller of the constructor or
// the attribute write. There is no rollback: a failed construction leaves a
// partially initialized instance whose already-assigned attributes remain
// reachable.
package zerrors

import (
	"fmt"
	"strings"
)

// ConfigurationError reports an invalid class or descriptor configuration
// detected at declaration or synthesis time: a descriptor rebinding conflict,
// a duplicate declaration, or an invalid filter.
type ConfigurationError struct {
	Class  string
	Attr   string // empty for class-level problems
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Attr == "" {
		return fmt.Sprintf("%s: %s", e.Class, e.Reason)
	}
	return fmt.Sprintf("%s.%s: %s", e.Class, e.Attr, e.Reason)
}

// MissingArgumentError reports required constructor arguments that were not
// supplied. Attrs preserves declaration order.
type MissingArgumentError struct {
	Class string
	Attrs []string
}

// Error implements the error interface.
func (e *MissingArgumentError) Error() string {
	if len(e.Attrs) == 1 {
		return fmt.Sprintf("%s: missing 1 required keyword argument: %q", e.Class, e.Attrs[0])
	}
	quoted := make([]string, len(e.Attrs))
	for i, attr := range e.Attrs {
		quoted[i] = fmt.Sprintf("%q", attr)
	}
	return fmt.Sprintf("%s: missing %d required keyword arguments: %s and %s",
		e.Class, len(e.Attrs), strings.Join(quoted[:len(quoted)-1], ", "), quoted[len(quoted)-1])
}

// UnexpectedArgumentError reports a constructor keyword that does not match
// any participating attribute.
type UnexpectedArgumentError struct {
	Class string
	Attr  string
}

// Error implements the error interface.
func (e *UnexpectedArgumentError) Error() string {
	return fmt.Sprintf("%s: unexpected keyword argument %q", e.Class, e.Attr)
}

// FrozenInstanceError reports a write to a frozen attribute after its first
// assignment.
type FrozenInstanceError struct {
	Class string
	Attr  string
}

// Error implements the error interface.
func (e *FrozenInstanceError) Error() string {
	return fmt.Sprintf("%s: frozen attribute %q can not be changed", e.Class, e.Attr)
}

// TypeMismatchError reports an opt-in type check failure during an attribute
// write.
type TypeMismatchError struct {
	Class string
	Attr  string
	Want  string
	Got   string
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s.%s: expected value of type %s, got %s", e.Class, e.Attr, e.Want, e.Got)
}

// UnsetAttributeError reports a read of an attribute that has neither a
// stored value nor a default.
type UnsetAttributeError struct {
	Class string
	Attr  string
}

// Error implements the error interface.
func (e *UnsetAttributeError) Error() string {
	return fmt.Sprintf("'%s.%s' is not set", e.Class, e.Attr)
}
