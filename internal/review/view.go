package review

import (
	"errors"
	"fmt"

	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/category"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/normalize"
)

// ErrUnknownCategory is returned for filter or toggle requests naming a key
// outside the fixed set.
var ErrUnknownCategory = errors.New("unknown category")

// ViewState is the category filter plus the expanded set. The zero value is
// not ready for use; call NewViewState.
type ViewState struct {
	active   string // category key or category.All
	expanded map[category.Key]bool
}

// NewViewState returns the default state: filter "all", every category
// expanded.
func NewViewState() *ViewState {
	v := &ViewState{}
	v.Reset()
	return v
}

func (v *ViewState) Reset() {
	v.active = category.All
	v.ExpandAll()
}

// Active returns the current filter value.
func (v *ViewState) Active() string { return v.active }

// SetActiveCategory sets the filter to a category key or category.All.
func (v *ViewState) SetActiveCategory(key string) error {
	if key == category.All {
		v.active = key
		return nil
	}
	if _, ok := category.Parse(key); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, key)
	}
	v.active = key
	return nil
}

// ToggleExpanded flips the expanded flag of one category.
func (v *ViewState) ToggleExpanded(key string) error {
	k, ok := category.Parse(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, key)
	}
	next := v.copyExpanded()
	next[k] = !next[k]
	v.expanded = next
	return nil
}

// ExpandAll expands all ten categories regardless of the filter.
func (v *ViewState) ExpandAll() {
	next := make(map[category.Key]bool, len(category.Order))
	for _, k := range category.Order {
		next[k] = true
	}
	v.expanded = next
}

// CollapseAll collapses all ten categories regardless of the filter.
func (v *ViewState) CollapseAll() {
	v.expanded = make(map[category.Key]bool, len(category.Order))
}

func (v *ViewState) IsExpanded(k category.Key) bool { return v.expanded[k] }

func (v *ViewState) copyExpanded() map[category.Key]bool {
	next := make(map[category.Key]bool, len(v.expanded))
	for k, on := range v.expanded {
		next[k] = on
	}
	return next
}

// VisibleSection is a rendered category header with its items, which are
// omitted while the category is collapsed.
type VisibleSection struct {
	Key        category.Key          `json:"key"`
	Label      string                `json:"label"`
	Color      string                `json:"color"`
	Count      int                   `json:"count"`
	Expanded   bool                  `json:"expanded"`
	Statements []normalize.Statement `json:"statements,omitempty"`
}

// FilterOption is one entry of the category filter selector.
type FilterOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Visible applies the filter and expansion state to normalized sections.
// Only non-empty categories are visible and their order is kept.
func (v *ViewState) Visible(sections []normalize.Section, reg *category.Registry) []VisibleSection {
	var out []VisibleSection
	for _, s := range normalize.NonEmpty(sections) {
		if v.active != category.All && string(s.Key) != v.active {
			continue
		}
		p := reg.Lookup(s.Key)
		vs := VisibleSection{
			Key:      s.Key,
			Label:    p.Label,
			Color:    p.Color,
			Count:    len(s.Statements),
			Expanded: v.expanded[s.Key],
		}
		if vs.Expanded {
			vs.Statements = s.Statements
		}
		out = append(out, vs)
	}
	return out
}

// FilterOptions lists "all" followed by every non-empty category.
func FilterOptions(sections []normalize.Section, reg *category.Registry) []FilterOption {
	available := normalize.NonEmpty(sections)
	out := make([]FilterOption, 0, len(available)+1)
	out = append(out, FilterOption{Value: category.All, Label: "Visos kategorijos", Count: len(available)})
	for _, s := range available {
		out = append(out, FilterOption{Value: string(s.Key), Label: reg.Label(s.Key), Count: len(s.Statements)})
	}
	return out
}
