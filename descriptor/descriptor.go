// Package descriptor implements the attribute descriptor: a declarative
// marker that owns the read and write path of a single managed attribute.
//
// A descriptor is bound to its owning class exactly once, carries the
// metadata that controls constructor synthesis (default value, kind,
// representation behavior, freezing, hooks), and stores per-instance values
// in an explicit keyed container supplied by the instance (the Storage
// interface) rather than in any hidden per-object state.
package descriptor

import (
	"fmt"
	"reflect"

	"github.com/zincware/zninit/zerrors"
)

// Kind classifies a descriptor. Consumers can retrieve "all attributes of
// kind X" from an instance, and classes can restrict their constructor to a
// subset of kinds.
type Kind string

// KindAttribute is the default classification.
const KindAttribute Kind = "attribute"

type emptyType struct{}

// Empty is the "no default" sentinel. It is distinct from nil so that nil
// remains a usable default value.
var Empty any = emptyType{}

func (emptyType) String() string { return "<empty>" }

// Storage is the instance-side keyed container a descriptor reads from and
// writes to. Instances of the synthesizing base implement it; tests can
// supply their own.
type Storage interface {
	// ClassName identifies the instance's class in error messages.
	ClassName() string
	// Load returns the stored value for name and whether one was stored.
	Load(name string) (any, bool)
	// Store records value under name.
	Store(name string, value any)
	// Frozen reports whether name has been frozen on this instance.
	Frozen(name string) bool
	// Freeze marks name as frozen on this instance.
	Freeze(name string)
}

// SetAttrHook runs before a value is stored. It may validate or transform
// the value; an error aborts the write.
type SetAttrHook func(store Storage, value any) (any, error)

// GetAttrHook runs on every read. It receives the resolved value (stored
// value, else default, else nil) and whether a value had been stored, and
// may transform or lazily populate it.
type GetAttrHook func(store Storage, value any, stored bool) (any, error)

// ReprFunc formats a value for the generated representation.
type ReprFunc func(value any) string

// Descriptor is a declarative attribute marker. Create one with New and
// attach it to a class; the class binds its name and owner at declaration
// time.
type Descriptor struct {
	name  string
	owner string
	kind  Kind

	def        any // Empty means no default
	useRepr    bool
	reprFunc   ReprFunc
	checkTypes bool
	annotation reflect.Type
	metadata   map[string]any
	frozen     bool
	onSetAttr  SetAttrHook
	onGetAttr  GetAttrHook
	checker    TypeChecker
}

// Option configures a Descriptor.
type Option func(*Descriptor)

// WithDefault sets the default value used when the constructor keyword is
// omitted. Without it the attribute is required.
func WithDefault(value any) Option {
	return func(d *Descriptor) { d.def = value }
}

// WithKind tags the descriptor with a classification.
func WithKind(kind Kind) Option {
	return func(d *Descriptor) { d.kind = kind }
}

// WithRepr controls whether the attribute appears in the generated
// representation. Default is true.
func WithRepr(use bool) Option {
	return func(d *Descriptor) { d.useRepr = use }
}

// WithReprFunc replaces the default value formatter.
func WithReprFunc(fn ReprFunc) Option {
	return func(d *Descriptor) { d.reprFunc = fn }
}

// WithCheckTypes enables the opt-in type check: every write validates the
// value against the given annotation.
func WithCheckTypes(annotation reflect.Type) Option {
	return func(d *Descriptor) {
		d.checkTypes = true
		d.annotation = annotation
	}
}

// WithMetadata attaches an open key-to-value map to the descriptor.
func WithMetadata(metadata map[string]any) Option {
	return func(d *Descriptor) {
		for k, v := range metadata {
			d.metadata[k] = v
		}
	}
}

// WithFrozen rejects further writes after the first assignment.
func WithFrozen() Option {
	return func(d *Descriptor) { d.frozen = true }
}

// WithOnSetAttr installs a hook that runs on every write before storage.
func WithOnSetAttr(fn SetAttrHook) Option {
	return func(d *Descriptor) { d.onSetAttr = fn }
}

// WithOnGetAttr installs a hook that runs on every read, e.g. for lazy
// loading.
func WithOnGetAttr(fn GetAttrHook) Option {
	return func(d *Descriptor) { d.onGetAttr = fn }
}

// WithTypeChecker replaces the type-checking collaborator for this
// descriptor. Only consulted when WithCheckTypes is set.
func WithTypeChecker(tc TypeChecker) Option {
	return func(d *Descriptor) { d.checker = tc }
}

// New creates an unbound descriptor.
func New(opts ...Option) *Descriptor {
	d := &Descriptor{
		kind:     KindAttribute,
		def:      Empty,
		useRepr:  true,
		metadata: make(map[string]any),
		checker:  defaultChecker,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Bind stores the owner and attribute name. It is called once when the
// owning class is declared; rebinding the same descriptor under a different
// name is a configuration error. Reusing a name across unrelated classes is
// permitted.
func (d *Descriptor) Bind(owner, name string) error {
	if d.name != "" && d.name != name {
		return &zerrors.ConfigurationError{
			Class: owner,
			Attr:  name,
			Reason: fmt.Sprintf("descriptor is already bound as %q on %s",
				d.name, d.owner),
		}
	}
	if d.checkTypes && d.annotation == nil {
		return &zerrors.ConfigurationError{
			Class:  owner,
			Attr:   name,
			Reason: "type checking requires a type annotation",
		}
	}
	if d.checkTypes && d.checker == nil {
		return &zerrors.ConfigurationError{
			Class:  owner,
			Attr:   name,
			Reason: "type checking requires a type checker",
		}
	}
	d.owner = owner
	d.name = name
	return nil
}

// Name returns the bound attribute name, or "" before binding.
func (d *Descriptor) Name() string { return d.name }

// Owner returns the name of the class the descriptor was bound to.
func (d *Descriptor) Owner() string { return d.owner }

// Kind returns the descriptor's classification.
func (d *Descriptor) Kind() Kind { return d.kind }

// Default returns the default value and whether one was configured.
func (d *Descriptor) Default() (any, bool) {
	if d.def == Empty {
		return nil, false
	}
	return d.def, true
}

// UseRepr reports whether the attribute participates in the generated
// representation.
func (d *Descriptor) UseRepr() bool { return d.useRepr }

// IsFrozen reports whether the attribute rejects writes after the first
// assignment.
func (d *Descriptor) IsFrozen() bool { return d.frozen }

// Annotation returns the declared type annotation, or nil.
func (d *Descriptor) Annotation() reflect.Type { return d.annotation }

// Metadata returns the open metadata map attached to the descriptor.
func (d *Descriptor) Metadata() map[string]any { return d.metadata }

// Repr formats a value using the configured formatter. The default formats
// with %#v, which round-trips for plain values.
func (d *Descriptor) Repr(value any) string {
	if d.reprFunc != nil {
		return d.reprFunc(value)
	}
	return fmt.Sprintf("%#v", value)
}

// Read resolves the attribute value on store: the stored value if one was
// written, else the default. Reading an unset attribute with no default is
// an UnsetAttributeError. The read hook, if any, sees the resolved value and
// may replace it.
func (d *Descriptor) Read(store Storage) (any, error) {
	value, stored := store.Load(d.name)
	if !stored {
		if def, ok := d.Default(); ok {
			value = def
		}
	}
	if d.onGetAttr != nil {
		return d.onGetAttr(store, value, stored)
	}
	if !stored {
		if _, ok := d.Default(); !ok {
			return nil, &zerrors.UnsetAttributeError{Class: store.ClassName(), Attr: d.name}
		}
	}
	return value, nil
}

// Write stores value on store through the full write path: frozen check,
// write hook, opt-in type check, storage. Descriptor-side validation
// therefore fires during construction as well as afterwards.
func (d *Descriptor) Write(store Storage, value any) error {
	if store.Frozen(d.name) {
		return &zerrors.FrozenInstanceError{Class: store.ClassName(), Attr: d.name}
	}
	if d.onSetAttr != nil {
		transformed, err := d.onSetAttr(store, value)
		if err != nil {
			return err
		}
		value = transformed
	}
	if d.checkTypes {
		if err := d.checker.Check(store.ClassName(), d.name, value, d.annotation); err != nil {
			return err
		}
	}
	store.Store(d.name, value)
	if d.frozen {
		store.Freeze(d.name)
	}
	return nil
}
