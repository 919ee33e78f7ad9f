package schema

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/jcomellas/ex-hl7/message"
)

//go:embed data/schema.yaml
var defaultSchema []byte

// Registry holds the segment and composite specs known to a reader or
// writer.
type Registry struct {
	segments   map[string]*SegmentSpec
	composites map[string]*CompositeSpec
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		segments:   make(map[string]*SegmentSpec),
		composites: make(map[string]*CompositeSpec),
	}
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := ParseRegistry(defaultSchema)
	if err != nil {
		panic(fmt.Sprintf("schema: embedded tables: %v", err))
	}
	return r
})

// Default returns the registry built from the embedded schema tables. The
// instance is shared; use Clone before registering process-local segments if
// isolation matters.
func Default() *Registry {
	return defaultRegistry()
}

// Clone returns a registry with the same specs that can be extended
// independently.
func (r *Registry) Clone() *Registry {
	dup := NewRegistry()
	for id, spec := range r.segments {
		dup.segments[id] = spec
	}
	for name, spec := range r.composites {
		dup.composites[name] = spec
	}
	return dup
}

// Register adds a segment spec. Registering an already-known ID is an error.
func (r *Registry) Register(spec *SegmentSpec) error {
	if _, dup := r.segments[spec.ID()]; dup {
		return fmt.Errorf("schema: segment %s already registered", spec.ID())
	}
	r.segments[spec.ID()] = spec
	return nil
}

// RegisterComposite adds a composite spec. Registering an already-known name
// is an error.
func (r *Registry) RegisterComposite(spec *CompositeSpec) error {
	if _, dup := r.composites[spec.Name()]; dup {
		return fmt.Errorf("schema: composite %s already registered", spec.Name())
	}
	r.composites[spec.Name()] = spec
	return nil
}

// Segment returns the spec for a segment ID, or nil when unknown.
func (r *Registry) Segment(id string) *SegmentSpec {
	return r.segments[id]
}

// Composite returns the spec for a composite name, or nil when unknown.
func (r *Registry) Composite(name string) *CompositeSpec {
	return r.composites[name]
}

// SegmentCount returns the number of registered segment specs.
func (r *Registry) SegmentCount() int {
	return len(r.segments)
}

// Declarative schema document shape. Composites must appear before the
// composites that embed them.
type yamlSchema struct {
	Composites []yamlComposite `yaml:"composites"`
	Segments   []yamlSegment   `yaml:"segments"`
}

type yamlComposite struct {
	Name       string          `yaml:"name"`
	Components []yamlComponent `yaml:"components"`
}

type yamlComponent struct {
	Name      string `yaml:"name"`
	Kind      string `yaml:"kind"`
	Composite string `yaml:"composite"`
}

type yamlSegment struct {
	ID     string      `yaml:"id"`
	Fields []yamlField `yaml:"fields"`
}

type yamlField struct {
	Name         string `yaml:"name"`
	Seq          int    `yaml:"seq"`
	Rep          int    `yaml:"rep"`
	Component    int    `yaml:"component"`
	Subcomponent int    `yaml:"subcomponent"`
	Kind         string `yaml:"kind"`
	Length       int    `yaml:"length"`
}

// ParseRegistry builds a registry from a declarative YAML schema document.
func ParseRegistry(data []byte) (*Registry, error) {
	var doc yamlSchema
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}

	r := NewRegistry()
	for _, yc := range doc.Composites {
		components := make([]ComponentSpec, 0, len(yc.Components))
		for _, comp := range yc.Components {
			spec := ComponentSpec{Name: comp.Name}
			if comp.Composite != "" {
				nested := r.Composite(comp.Composite)
				if nested == nil {
					return nil, fmt.Errorf("schema: %s.%s: unknown composite %q",
						yc.Name, comp.Name, comp.Composite)
				}
				spec.Composite = nested
			} else {
				kind, err := parseKind(comp.Kind)
				if err != nil {
					return nil, fmt.Errorf("schema: %s.%s: %w", yc.Name, comp.Name, err)
				}
				spec.Kind = kind
			}
			components = append(components, spec)
		}
		composite, err := NewCompositeSpec(yc.Name, components)
		if err != nil {
			return nil, err
		}
		if err := r.RegisterComposite(composite); err != nil {
			return nil, err
		}
	}

	for _, ys := range doc.Segments {
		fields := make([]FieldSpec, 0, len(ys.Fields))
		for _, yf := range ys.Fields {
			kind, err := parseKind(yf.Kind)
			if err != nil {
				return nil, fmt.Errorf("schema: %s.%s: %w", ys.ID, yf.Name, err)
			}
			rep := yf.Rep
			if rep == 0 {
				rep = 1
			}
			fields = append(fields, FieldSpec{
				Name:      yf.Name,
				Sequence:  yf.Seq,
				Coord:     Coordinate{Rep: rep, Comp: yf.Component, Sub: yf.Subcomponent},
				Kind:      kind,
				MaxLength: yf.Length,
			})
		}
		spec, err := NewSegmentSpec(ys.ID, fields)
		if err != nil {
			return nil, err
		}
		if err := r.Register(spec); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func parseKind(name string) (message.ValueKind, error) {
	if name == "" {
		return message.KindString, nil
	}
	kind, ok := message.ValueKindFromName(name)
	if !ok {
		return 0, fmt.Errorf("unknown value kind %q", name)
	}
	return kind, nil
}
