package descriptor

import (
	"reflect"

	"github.com/zincware/zninit/zerrors"
)

// TypeChecker validates a value against a declared attribute type. It is an
// optional collaborator: descriptors consult it only when type checking was
// requested, so replacing or removing it never affects untyped attributes.
type TypeChecker interface {
	Check(class, attr string, value any, want reflect.Type) error
}

// defaultChecker is used by descriptors that do not configure their own.
var defaultChecker TypeChecker = reflectChecker{}

// SetDefaultTypeChecker replaces the checker picked up by descriptors
// created afterwards. Passing nil restores the reflection-based checker.
func SetDefaultTypeChecker(tc TypeChecker) {
	if tc == nil {
		tc = reflectChecker{}
	}
	defaultChecker = tc
}

// reflectChecker validates assignability via the reflect package.
type reflectChecker struct{}

func (reflectChecker) Check(class, attr string, value any, want reflect.Type) error {
	if want == nil {
		return &zerrors.ConfigurationError{
			Class:  class,
			Attr:   attr,
			Reason: "type checking requires a type annotation",
		}
	}
	if value == nil {
		switch want.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			return nil
		}
		return &zerrors.TypeMismatchError{Class: class, Attr: attr, Want: want.String(), Got: "nil"}
	}
	got := reflect.TypeOf(value)
	if got.AssignableTo(want) {
		return nil
	}
	return &zerrors.TypeMismatchError{Class: class, Attr: attr, Want: want.String(), Got: got.String()}
}
