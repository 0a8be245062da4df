package zninit

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/zincware/zninit/descriptor"
	"github.com/zincware/zninit/zerrors"
)

// Kwargs holds the keyword arguments accepted by a synthesized constructor.
type Kwargs map[string]any

// PostInitFunc runs after all attributes of a new instance are assigned.
// An error propagates to the caller; the instance keeps its fields.
type PostInitFunc func(inst *Instance) error

// Class is the synthesizing base: a named type whose constructor is built
// from the descriptors declared on it and on its ancestors.
type Class struct {
	name     string
	parent   *Class
	declared []*descriptor.Descriptor // declaration order within this class

	initKinds []descriptor.Kind // nil means every kind participates
	postInit  PostInitFunc
	useRepr   bool
	priority  []string // attribute names assigned before the rest

	// constructor synthesis cache, computed once per class on first use
	mu          sync.Mutex
	synthesized atomic.Bool
	sig         *signature
}

type declaredAttr struct {
	name string
	desc *descriptor.Descriptor
}

type classConfig struct {
	parent    *Class
	attrs     []declaredAttr
	initKinds []descriptor.Kind
	postInit  PostInitFunc
	useRepr   bool
	priority  []string
}

// ClassOption configures a class under construction.
type ClassOption func(*classConfig)

// WithParent sets the ancestor class. Attributes declared by the parent (and
// its ancestors) are inherited; redeclaring a name overrides the inherited
// descriptor while keeping its position.
func WithParent(parent *Class) ClassOption {
	return func(c *classConfig) { c.parent = parent }
}

// WithAttribute declares a descriptor attribute. Declaration order is
// preserved and determines constructor and representation order.
func WithAttribute(name string, d *descriptor.Descriptor) ClassOption {
	return func(c *classConfig) { c.attrs = append(c.attrs, declaredAttr{name: name, desc: d}) }
}

// WithInitKinds restricts the constructor to descriptors of the given kinds.
// Omit it to include every kind.
func WithInitKinds(kinds ...descriptor.Kind) ClassOption {
	return func(c *classConfig) { c.initKinds = kinds }
}

// WithPostInit installs the post-construction hook. Subclasses inherit the
// nearest ancestor's hook unless they install their own.
func WithPostInit(fn PostInitFunc) ClassOption {
	return func(c *classConfig) { c.postInit = fn }
}

// WithoutRepr disables the generated representation for instances of the
// class; String falls back to a plain pointer-style form.
func WithoutRepr() ClassOption {
	return func(c *classConfig) { c.useRepr = false }
}

// WithPriority assigns the named attributes first during construction, in
// the given order. The remaining attributes follow in declaration order.
func WithPriority(names ...string) ClassOption {
	return func(c *classConfig) { c.priority = names }
}

// NewClass declares a class: binds the declared descriptors, validates the
// configuration, and registers the class process-wide. The constructor
// signature itself is synthesized lazily on first use.
func NewClass(name string, opts ...ClassOption) (*Class, error) {
	if name == "" {
		return nil, &zerrors.ConfigurationError{Class: name, Reason: "class name must not be empty"}
	}
	cfg := classConfig{useRepr: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	cls := &Class{
		name:      name,
		parent:    cfg.parent,
		initKinds: cfg.initKinds,
		postInit:  cfg.postInit,
		useRepr:   cfg.useRepr,
		priority:  cfg.priority,
	}

	seen := make(map[string]bool, len(cfg.attrs))
	for _, attr := range cfg.attrs {
		if attr.name == "" {
			return nil, &zerrors.ConfigurationError{Class: name, Reason: "attribute name must not be empty"}
		}
		if attr.desc == nil {
			return nil, &zerrors.ConfigurationError{Class: name, Attr: attr.name, Reason: "attribute has no descriptor"}
		}
		if seen[attr.name] {
			return nil, &zerrors.ConfigurationError{Class: name, Attr: attr.name, Reason: "attribute is declared twice"}
		}
		seen[attr.name] = true
		if err := attr.desc.Bind(name, attr.name); err != nil {
			return nil, err
		}
		cls.declared = append(cls.declared, attr.desc)
	}

	merged := cls.collectAttributes()
	byName := make(map[string]bool, len(merged))
	for _, d := range merged {
		byName[d.Name()] = true
	}
	for _, p := range cfg.priority {
		if !byName[p] {
			return nil, &zerrors.ConfigurationError{Class: name, Attr: p, Reason: "priority list names an unknown attribute"}
		}
	}

	if err := defaultRegistry.register(cls); err != nil {
		return nil, err
	}
	log.Debug("declared class",
		zap.String("class", name),
		zap.Int("declared", len(cls.declared)),
		zap.Int("inherited", len(merged)-len(cls.declared)))
	return cls, nil
}

// MustNewClass is like NewClass but panics on configuration errors. Intended
// for class declarations in package variables.
func MustNewClass(name string, opts ...ClassOption) *Class {
	cls, err := NewClass(name, opts...)
	if err != nil {
		panic(err)
	}
	return cls
}

// Name returns the class name.
func (c *Class) Name() string { return c.name }

// Parent returns the ancestor class, or nil.
func (c *Class) Parent() *Class { return c.parent }

// Attributes returns the merged descriptors in ancestor-first declaration
// order, restricted to the given kinds (every kind when none are given).
func (c *Class) Attributes(kinds ...descriptor.Kind) []*descriptor.Descriptor {
	merged := c.collectAttributes()
	if len(kinds) == 0 {
		return merged
	}
	var filtered []*descriptor.Descriptor
	for _, d := range merged {
		for _, k := range kinds {
			if d.Kind() == k {
				filtered = append(filtered, d)
				break
			}
		}
	}
	return filtered
}

// InitAttributes returns the descriptors participating in the constructor,
// in declaration order.
func (c *Class) InitAttributes() []*descriptor.Descriptor {
	sig := c.signature()
	out := make([]*descriptor.Descriptor, len(sig.ordered))
	copy(out, sig.ordered)
	return out
}

// SetInitKinds replaces the classification filter and invalidates the cached
// constructor signature. A nil slice includes every kind; an empty non-nil
// slice includes none.
func (c *Class) SetInitKinds(kinds []descriptor.Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initKinds = kinds
	c.synthesized.Store(false)
	c.sig = nil
}

// Invalidate discards the cached constructor signature so the next use
// recomputes it.
func (c *Class) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.synthesized.Store(false)
	c.sig = nil
}

// descriptorFor finds a descriptor by attribute name across the hierarchy,
// honoring override semantics.
func (c *Class) descriptorFor(name string) *descriptor.Descriptor {
	for _, d := range c.collectAttributes() {
		if d.Name() == name {
			return d
		}
	}
	return nil
}

// postInitFunc returns the effective post-construction hook: the class's
// own, else the nearest ancestor's.
func (c *Class) postInitFunc() PostInitFunc {
	for cls := c; cls != nil; cls = cls.parent {
		if cls.postInit != nil {
			return cls.postInit
		}
	}
	return nil
}
