package transcript

import (
	"fmt"
	"strconv"
	"strings"
)

// AnchorPrefix is the externally visible identifier prefix for a segment.
// The renderer exposes segment i as "segment-i".
const AnchorPrefix = "segment-"

// Segment is one turn of the dialogue. Its index is its position in the
// transcript and is not stored.
type Segment struct {
	Time    string `json:"time"`
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Transcript is an ordered, immutable list of segments. The zero value is an
// empty transcript.
type Transcript struct {
	segments []Segment
}

// New copies segs into a new Transcript.
func New(segs []Segment) Transcript {
	cp := make([]Segment, len(segs))
	copy(cp, segs)
	return Transcript{segments: cp}
}

func (t Transcript) Len() int { return len(t.segments) }

// Contains reports whether i addresses a segment of t.
func (t Transcript) Contains(i int) bool {
	return i >= 0 && i < len(t.segments)
}

// At returns the segment at index i.
func (t Transcript) At(i int) (Segment, bool) {
	if !t.Contains(i) {
		return Segment{}, false
	}
	return t.segments[i], true
}

// Segments returns a copy of the segments in order.
func (t Transcript) Segments() []Segment {
	cp := make([]Segment, len(t.segments))
	copy(cp, t.segments)
	return cp
}

// Anchor returns the DOM identifier for segment i.
func Anchor(i int) string {
	return AnchorPrefix + strconv.Itoa(i)
}

// ParseAnchor is the inverse of Anchor.
func ParseAnchor(s string) (int, error) {
	if !strings.HasPrefix(s, AnchorPrefix) {
		return 0, fmt.Errorf("anchor %q: missing %q prefix", s, AnchorPrefix)
	}
	n, err := strconv.Atoi(strings.TrimPrefix(s, AnchorPrefix))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("anchor %q: invalid index", s)
	}
	return n, nil
}

// PromptLines renders the transcript the way the extraction prompt expects it:
// one "[i] time | speaker: text" line per segment.
func (t Transcript) PromptLines() string {
	var sb strings.Builder
	for i, seg := range t.segments {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "[%d] %s | %s: %s", i, seg.Time, seg.Speaker, seg.Text)
	}
	return sb.String()
}
