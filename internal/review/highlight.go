package review

import (
	"sort"

	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/transcript"
)

// Navigation is a one-shot instruction to bring a segment into view.
type Navigation struct {
	Segment int    `json:"segment"`
	Anchor  string `json:"anchor"`
}

// Navigator receives navigation instructions. Delivery is fire-and-forget.
type Navigator interface {
	Navigate(Navigation)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(Navigation)

func (f NavigatorFunc) Navigate(n Navigation) { f(n) }

// Highlighter holds the previewed segment set for one transcript and issues
// navigation to segments within it.
type Highlighter struct {
	segments  int
	previewed map[int]struct{}
	nav       Navigator
}

// NewHighlighter creates a highlighter over a transcript of n segments. nav
// may be nil.
func NewHighlighter(n int, nav Navigator) *Highlighter {
	return &Highlighter{segments: n, previewed: map[int]struct{}{}, nav: nav}
}

// Reset clears the preview and rebinds to a transcript of n segments.
func (h *Highlighter) Reset(n int) {
	h.segments = n
	h.previewed = map[int]struct{}{}
}

// PreviewSegments replaces the previewed set with indices. A nil or empty
// slice clears it. Indices outside the transcript are ignored.
func (h *Highlighter) PreviewSegments(indices []int) {
	next := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		if i >= 0 && i < h.segments {
			next[i] = struct{}{}
		}
	}
	h.previewed = next
}

// Previewed returns the previewed indices in ascending order.
func (h *Highlighter) Previewed() []int {
	out := make([]int, 0, len(h.previewed))
	for i := range h.previewed {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func (h *Highlighter) IsPreviewed(i int) bool {
	_, ok := h.previewed[i]
	return ok
}

// NavigateToSegment asks the navigator to bring segment i into view. It does
// not touch the previewed set. Out-of-range indices are a no-op and return
// false.
func (h *Highlighter) NavigateToSegment(i int) (Navigation, bool) {
	if i < 0 || i >= h.segments {
		return Navigation{}, false
	}
	n := Navigation{Segment: i, Anchor: transcript.Anchor(i)}
	if h.nav != nil {
		h.nav.Navigate(n)
	}
	return n, true
}

// NavigateToFirst navigates to the first element of provenance. Empty
// provenance is a no-op.
func (h *Highlighter) NavigateToFirst(provenance []int) (Navigation, bool) {
	if len(provenance) == 0 {
		return Navigation{}, false
	}
	return h.NavigateToSegment(provenance[0])
}
