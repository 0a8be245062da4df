package zninit

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/zincware/zninit/descriptor"
	"github.com/zincware/zninit/zerrors"
)

// signature is the cached result of constructor synthesis for one class.
type signature struct {
	merged   []*descriptor.Descriptor          // full merged hierarchy, declaration order
	ordered  []*descriptor.Descriptor          // participating descriptors, declaration order
	assign   []*descriptor.Descriptor          // participating, assignment order (priority applied)
	params   []*descriptor.Descriptor          // participating, required first (readable signature)
	names    map[string]*descriptor.Descriptor // participating, by attribute name
	required []string                          // declaration order
	defaults map[string]any
}

// collectAttributes walks the ancestry from most-ancestral to most-specific
// and merges the declared descriptors. When a name reappears in a more
// specific class, the newer descriptor replaces the older one in place, so
// the merged order stays stable across overrides.
func (c *Class) collectAttributes() []*descriptor.Descriptor {
	var chain []*Class
	for cls := c; cls != nil; cls = cls.parent {
		chain = append(chain, cls)
	}

	var merged []*descriptor.Descriptor
	index := make(map[string]int)
	for i := len(chain) - 1; i >= 0; i-- {
		for _, d := range chain[i].declared {
			if pos, ok := index[d.Name()]; ok {
				merged[pos] = d
				continue
			}
			index[d.Name()] = len(merged)
			merged = append(merged, d)
		}
	}
	return merged
}

// kindIncluded reports whether descriptors of kind participate in the
// constructor under the current filter.
func (c *Class) kindIncluded(kind descriptor.Kind) bool {
	if c.initKinds == nil {
		return true
	}
	for _, allowed := range c.initKinds {
		if kind == allowed {
			return true
		}
	}
	return false
}

// signature returns the cached constructor signature, synthesizing it on
// first use. Double-check locking keeps concurrent first instantiations to
// an at-most-once correct synthesis.
func (c *Class) signature() *signature {
	if c.synthesized.Load() {
		return c.sig
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.synthesized.Load() {
		return c.sig
	}
	sig := c.buildSignature()
	c.sig = sig
	c.synthesized.Store(true)
	log.Debug("synthesized constructor",
		zap.String("class", c.name),
		zap.Strings("required", sig.required),
		zap.Int("defaulted", len(sig.defaults)))
	return sig
}

func (c *Class) buildSignature() *signature {
	sig := &signature{
		merged:   c.collectAttributes(),
		names:    make(map[string]*descriptor.Descriptor),
		defaults: make(map[string]any),
	}

	var requiredAttrs, defaultedAttrs []*descriptor.Descriptor
	for _, d := range sig.merged {
		if !c.kindIncluded(d.Kind()) {
			continue
		}
		sig.ordered = append(sig.ordered, d)
		sig.names[d.Name()] = d
		if def, ok := d.Default(); ok {
			defaultedAttrs = append(defaultedAttrs, d)
			sig.defaults[d.Name()] = def
		} else {
			requiredAttrs = append(requiredAttrs, d)
			sig.required = append(sig.required, d.Name())
		}
	}

	// The constructor is keyword-only, so declaration order never affects
	// call validity; the required-first split only shapes the readable
	// signature.
	sig.params = append(append([]*descriptor.Descriptor{}, requiredAttrs...), defaultedAttrs...)
	sig.assign = applyPriority(sig.ordered, c.priority)
	return sig
}

// applyPriority moves the named attributes to the front of the assignment
// order, keeping the rest in declaration order.
func applyPriority(attrs []*descriptor.Descriptor, priority []string) []*descriptor.Descriptor {
	if len(priority) == 0 {
		return attrs
	}
	ordered := make([]*descriptor.Descriptor, 0, len(attrs))
	taken := make(map[string]bool, len(priority))
	for _, name := range priority {
		for _, d := range attrs {
			if d.Name() == name {
				ordered = append(ordered, d)
				taken[name] = true
				break
			}
		}
	}
	for _, d := range attrs {
		if !taken[d.Name()] {
			ordered = append(ordered, d)
		}
	}
	return ordered
}

// Signature returns a readable keyword-only constructor signature, required
// attributes first.
func (c *Class) Signature() string {
	sig := c.signature()
	parts := make([]string, 0, len(sig.params))
	for _, d := range sig.params {
		if def, ok := d.Default(); ok {
			parts = append(parts, fmt.Sprintf("%s=%s", d.Name(), d.Repr(def)))
		} else {
			parts = append(parts, d.Name())
		}
	}
	return fmt.Sprintf("%s(%s)", c.name, strings.Join(parts, ", "))
}

// New constructs an instance from keyword arguments. Every required
// attribute must be supplied and every keyword must name a participating
// attribute. Values are assigned through the descriptor write path in
// assignment order; a failing write or post-init hook halts construction
// and returns the partially constructed instance alongside the error.
func (c *Class) New(kwargs Kwargs) (*Instance, error) {
	sig := c.signature()

	for name := range kwargs {
		if _, ok := sig.names[name]; !ok {
			return nil, &zerrors.UnexpectedArgumentError{Class: c.name, Attr: name}
		}
	}
	var missing []string
	for _, name := range sig.required {
		if _, ok := kwargs[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &zerrors.MissingArgumentError{Class: c.name, Attrs: missing}
	}

	inst := newInstance(c)
	for _, d := range sig.assign {
		value, ok := kwargs[d.Name()]
		if !ok {
			value = sig.defaults[d.Name()]
		}
		if err := d.Write(inst, value); err != nil {
			return inst, err
		}
	}
	if hook := c.postInitFunc(); hook != nil {
		if err := hook(inst); err != nil {
			return inst, err
		}
	}
	return inst, nil
}
