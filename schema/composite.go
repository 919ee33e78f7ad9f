package schema

import (
	"fmt"

	"github.com/jcomellas/ex-hl7/message"
)

// ComponentSpec is one named component of a composite. Either Kind applies
// (primitive component) or Composite is non-nil (a nested composite whose
// own components become subcomponents).
type ComponentSpec struct {
	Name      string
	Kind      message.ValueKind
	Composite *CompositeSpec
}

// CompositeSpec is an ordered list of named components. Nesting depth is at
// most two: a composite inside a composite holds only primitive components.
type CompositeSpec struct {
	name       string
	components []ComponentSpec
	byName     map[string]int
}

// NewCompositeSpec builds a composite spec, enforcing unique component names
// and the depth limit.
func NewCompositeSpec(name string, components []ComponentSpec) (*CompositeSpec, error) {
	if name == "" {
		return nil, fmt.Errorf("schema: composite with empty name")
	}
	c := &CompositeSpec{
		name:       name,
		components: components,
		byName:     make(map[string]int, len(components)),
	}
	for i, comp := range components {
		if comp.Name == "" {
			return nil, fmt.Errorf("schema: %s: component %d has empty name", name, i+1)
		}
		if _, dup := c.byName[comp.Name]; dup {
			return nil, fmt.Errorf("schema: %s: duplicate component name %q", name, comp.Name)
		}
		if comp.Composite != nil {
			for _, sub := range comp.Composite.components {
				if sub.Composite != nil {
					return nil, fmt.Errorf("schema: %s.%s: composites nest at most two levels",
						name, comp.Name)
				}
			}
		}
		c.byName[comp.Name] = i
	}
	return c, nil
}

// MustCompositeSpec is NewCompositeSpec panicking on error, for static
// tables.
func MustCompositeSpec(name string, components []ComponentSpec) *CompositeSpec {
	c, err := NewCompositeSpec(name, components)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the composite name.
func (c *CompositeSpec) Name() string {
	return c.name
}

// Components returns the ordered component specs.
func (c *CompositeSpec) Components() []ComponentSpec {
	return c.components
}

// Index translates a component name into its 1-based position and spec.
func (c *CompositeSpec) Index(key string) (int, ComponentSpec, bool) {
	i, ok := c.byName[key]
	if !ok {
		return 0, ComponentSpec{}, false
	}
	return i + 1, c.components[i], true
}

// SubIndex translates a (component, subcomponent) name pair into 1-based
// positions, descending through a nested composite.
func (c *CompositeSpec) SubIndex(key, subkey string) (int, int, ComponentSpec, bool) {
	i, comp, ok := c.Index(key)
	if !ok || comp.Composite == nil {
		return 0, 0, ComponentSpec{}, false
	}
	j, sub, ok := comp.Composite.Index(subkey)
	if !ok {
		return 0, 0, ComponentSpec{}, false
	}
	return i, j, sub, true
}
