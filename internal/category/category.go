package category

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/goccy/go-yaml"
)

// Key identifies one of the fixed clinical sections.
type Key string

const (
	VitalSigns Key = "vital_signs"
	Allergies  Key = "allergies"
	Diagnosis  Key = "diagnosis"
	Anamnesis  Key = "anamnesis"
	Objective  Key = "objective"
	TestsPlan  Key = "tests_plan"
	TestsDone  Key = "tests_done"
	Treatment  Key = "treatment"
	Discharge  Key = "discharge"
	Notes      Key = "notes"
)

// All is the filter value that selects every category.
const All = "all"

// Order is the fixed presentation order. Consumers may filter it but must not
// reorder it.
var Order = [...]Key{
	VitalSigns, Allergies, Diagnosis, Anamnesis, Objective,
	TestsPlan, TestsDone, Treatment, Discharge, Notes,
}

// Parse converts s to a Key, reporting whether it names a known category.
func Parse(s string) (Key, bool) {
	for _, k := range Order {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Presentation is the display configuration for a category.
type Presentation struct {
	Key   Key    `yaml:"key" json:"key"`
	Label string `yaml:"label" json:"label"`
	Color string `yaml:"color" json:"color"`
}

// Registry maps every category key to its presentation.
type Registry struct {
	Version int
	byKey   map[Key]Presentation
}

//go:embed categories.yaml
var defaultYAML []byte

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the registry built from the embedded contract. The embedded
// file is validated by tests, so a load failure here is a build defect.
func Default() *Registry {
	defaultOnce.Do(func() {
		reg, err := Load(defaultYAML)
		if err != nil {
			panic(fmt.Sprintf("category: embedded registry: %v", err))
		}
		defaultReg = reg
	})
	return defaultReg
}

// Load parses a registry document and checks that it covers exactly the keys
// in Order.
func Load(data []byte) (*Registry, error) {
	var raw struct {
		Version    int            `yaml:"version"`
		Categories []Presentation `yaml:"categories"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}

	reg := &Registry{Version: raw.Version, byKey: make(map[Key]Presentation, len(Order))}
	for _, p := range raw.Categories {
		if _, ok := Parse(string(p.Key)); !ok {
			return nil, fmt.Errorf("unknown category %q", p.Key)
		}
		if _, dup := reg.byKey[p.Key]; dup {
			return nil, fmt.Errorf("duplicate category %q", p.Key)
		}
		if p.Label == "" {
			return nil, fmt.Errorf("category %q has no label", p.Key)
		}
		reg.byKey[p.Key] = p
	}
	for _, k := range Order {
		if _, ok := reg.byKey[k]; !ok {
			return nil, fmt.Errorf("category %q missing from registry", k)
		}
	}
	return reg, nil
}

// Lookup returns the presentation for k. Unknown keys get the key itself as
// label and no color.
func (r *Registry) Lookup(k Key) Presentation {
	if p, ok := r.byKey[k]; ok {
		return p
	}
	return Presentation{Key: k, Label: string(k)}
}

// Label is shorthand for Lookup(k).Label.
func (r *Registry) Label(k Key) string {
	return r.Lookup(k).Label
}

// All returns the presentations in Order.
func (r *Registry) All() []Presentation {
	out := make([]Presentation, 0, len(Order))
	for _, k := range Order {
		out = append(out, r.Lookup(k))
	}
	return out
}
