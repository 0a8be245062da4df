package zninit

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/zincware/zninit/descriptor"
	"github.com/zincware/zninit/zerrors"
)

// Instance is a constructed object: one storage slot per descriptor-managed
// attribute, populated during construction and mutated only through the
// descriptor write path afterwards.
type Instance struct {
	class  *Class
	values map[string]any
	frozen map[string]bool
}

func newInstance(c *Class) *Instance {
	return &Instance{
		class:  c,
		values: make(map[string]any),
		frozen: make(map[string]bool),
	}
}

// Class returns the instance's class.
func (i *Instance) Class() *Class { return i.class }

// ClassName implements descriptor.Storage.
func (i *Instance) ClassName() string { return i.class.name }

// Load implements descriptor.Storage.
func (i *Instance) Load(name string) (any, bool) {
	value, ok := i.values[name]
	return value, ok
}

// Store implements descriptor.Storage.
func (i *Instance) Store(name string, value any) { i.values[name] = value }

// Frozen implements descriptor.Storage.
func (i *Instance) Frozen(name string) bool { return i.frozen[name] }

// Freeze implements descriptor.Storage.
func (i *Instance) Freeze(name string) { i.frozen[name] = true }

// Get reads the named attribute through its descriptor.
func (i *Instance) Get(name string) (any, error) {
	d := i.class.descriptorFor(name)
	if d == nil {
		return nil, &zerrors.ConfigurationError{Class: i.class.name, Attr: name, Reason: "unknown attribute"}
	}
	return d.Read(i)
}

// Set writes the named attribute through its descriptor, so frozen and hook
// rules stay enforced after construction.
func (i *Instance) Set(name string, value any) error {
	d := i.class.descriptorFor(name)
	if d == nil {
		return &zerrors.ConfigurationError{Class: i.class.name, Attr: name, Reason: "unknown attribute"}
	}
	return d.Write(i, value)
}

// AsDict returns attribute name to current value for descriptors of the
// given kinds (every kind when none are given). Reading an unset attribute
// with no default fails; use Class().Attributes for the matching order.
func (i *Instance) AsDict(kinds ...descriptor.Kind) (map[string]any, error) {
	attrs := i.class.Attributes(kinds...)
	dict := make(map[string]any, len(attrs))
	for _, d := range attrs {
		value, err := d.Read(i)
		if err != nil {
			return nil, err
		}
		dict[d.Name()] = value
	}
	return dict, nil
}

// String returns a dataclass-like representation in declaration order,
// restricted to constructor-participating attributes with UseRepr set.
// Unset attributes are omitted.
func (i *Instance) String() string {
	if !i.class.useRepr {
		return fmt.Sprintf("<%s instance at %p>", i.class.name, i)
	}
	var fields []string
	for _, d := range i.class.InitAttributes() {
		if !d.UseRepr() {
			continue
		}
		value, err := d.Read(i)
		if err != nil {
			continue
		}
		fields = append(fields, fmt.Sprintf("%s=%s", d.Name(), d.Repr(value)))
	}
	return fmt.Sprintf("%s(%s)", i.class.name, strings.Join(fields, ", "))
}

// Equal reports whether both instances share a class and compare equal on
// every constructor-participating attribute.
func (i *Instance) Equal(other *Instance) bool {
	if other == nil || i.class != other.class {
		return false
	}
	for _, d := range i.class.InitAttributes() {
		a, aErr := d.Read(i)
		b, bErr := d.Read(other)
		if (aErr == nil) != (bErr == nil) {
			return false
		}
		if aErr != nil {
			continue
		}
		if !reflect.DeepEqual(a, b) {
			return false
		}
	}
	return true
}
