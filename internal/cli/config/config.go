// Package config loads zninit model definition files for the CLI.
//
// A model file declares classes and their descriptor attributes in YAML; the
// CLI builds real classes from it to inspect synthesized constructors
// without writing Go code.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/zincware/zninit"
	"github.com/zincware/zninit/descriptor"
)

// ModelFile is the top-level structure of a model definition file.
type ModelFile struct {
	Models []Model `mapstructure:"models"`
	Checks []Check `mapstructure:"checks"`
}

// Model declares a single class.
type Model struct {
	Name       string      `mapstructure:"name"`
	Extends    string      `mapstructure:"extends"`    // name of an earlier model
	InitKinds  []string    `mapstructure:"init_kinds"` // omit to include every kind
	Attributes []Attribute `mapstructure:"attributes"`
}

// Attribute declares a descriptor-managed attribute. Required attributes
// have no default; for the rest Default may be any YAML value, including
// null.
type Attribute struct {
	Name     string         `mapstructure:"name"`
	Kind     string         `mapstructure:"kind"`
	Required bool           `mapstructure:"required"`
	Default  any            `mapstructure:"default"`
	Frozen   bool           `mapstructure:"frozen"`
	NoRepr   bool           `mapstructure:"no_repr"`
	Metadata map[string]any `mapstructure:"metadata"`
}

// Check is a construction dry-run: the named model is constructed with the
// given keyword arguments.
type Check struct {
	Model  string         `mapstructure:"model"`
	Kwargs map[string]any `mapstructure:"kwargs"`
}

// Load reads and validates a model definition file.
func Load(path string) (*ModelFile, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}

	var file ModelFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model file: %w", err)
	}

	if err := validate(&file); err != nil {
		return nil, err
	}
	return &file, nil
}

func validate(file *ModelFile) error {
	if len(file.Models) == 0 {
		return fmt.Errorf("model file declares no models")
	}
	seen := make(map[string]bool, len(file.Models))
	for _, model := range file.Models {
		if model.Name == "" {
			return fmt.Errorf("model with empty name")
		}
		if seen[model.Name] {
			return fmt.Errorf("model %s is declared twice", model.Name)
		}
		if model.Extends != "" && !seen[model.Extends] {
			return fmt.Errorf("model %s extends unknown model %s", model.Name, model.Extends)
		}
		seen[model.Name] = true
		for _, attr := range model.Attributes {
			if attr.Name == "" {
				return fmt.Errorf("model %s has an attribute with empty name", model.Name)
			}
			if attr.Required && attr.Default != nil {
				return fmt.Errorf("model %s attribute %s is required but has a default",
					model.Name, attr.Name)
			}
		}
	}
	for _, check := range file.Checks {
		if !seen[check.Model] {
			return fmt.Errorf("check references unknown model %s", check.Model)
		}
	}
	return nil
}

// Build declares a class for every model, in file order.
func (f *ModelFile) Build() ([]*zninit.Class, error) {
	classes := make([]*zninit.Class, 0, len(f.Models))
	byName := make(map[string]*zninit.Class, len(f.Models))

	for _, model := range f.Models {
		opts := make([]zninit.ClassOption, 0, len(model.Attributes)+2)
		if model.Extends != "" {
			opts = append(opts, zninit.WithParent(byName[model.Extends]))
		}
		if model.InitKinds != nil {
			kinds := make([]descriptor.Kind, len(model.InitKinds))
			for i, k := range model.InitKinds {
				kinds[i] = descriptor.Kind(k)
			}
			opts = append(opts, zninit.WithInitKinds(kinds...))
		}
		for _, attr := range model.Attributes {
			opts = append(opts, zninit.WithAttribute(attr.Name, buildDescriptor(attr)))
		}

		cls, err := zninit.NewClass(model.Name, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to build model %s: %w", model.Name, err)
		}
		classes = append(classes, cls)
		byName[model.Name] = cls
	}
	return classes, nil
}

func buildDescriptor(attr Attribute) *descriptor.Descriptor {
	var opts []descriptor.Option
	if !attr.Required {
		opts = append(opts, descriptor.WithDefault(attr.Default))
	}
	if attr.Kind != "" {
		opts = append(opts, descriptor.WithKind(descriptor.Kind(attr.Kind)))
	}
	if attr.Frozen {
		opts = append(opts, descriptor.WithFrozen())
	}
	if attr.NoRepr {
		opts = append(opts, descriptor.WithRepr(false))
	}
	if len(attr.Metadata) > 0 {
		opts = append(opts, descriptor.WithMetadata(attr.Metadata))
	}
	return descriptor.New(opts...)
}
