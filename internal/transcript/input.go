package transcript

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput marks a transcript rejected at the input boundary.
var ErrInvalidInput = errors.New("invalid transcript")

// Input is the submission payload: the transcript plus optional opaque
// metadata passed through to the extraction collaborator.
type Input struct {
	Meta       map[string]any `json:"meta,omitempty"`
	Transcript []Segment      `json:"transcript"`
}

// Parse accepts either a bare JSON array of segments or an object of the form
// {"transcript": [...], "meta": {...}} and validates every segment.
func Parse(data []byte) (Input, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Input{}, fmt.Errorf("%w: empty input", ErrInvalidInput)
	}

	var in Input
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &in.Transcript); err != nil {
			return Input{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	case '{':
		var wrapper struct {
			Meta       map[string]any   `json:"meta"`
			Transcript *json.RawMessage `json:"transcript"`
		}
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return Input{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if wrapper.Transcript == nil {
			return Input{}, fmt.Errorf("%w: transcript must be an array", ErrInvalidInput)
		}
		if err := json.Unmarshal(*wrapper.Transcript, &in.Transcript); err != nil {
			return Input{}, fmt.Errorf("%w: transcript must be an array", ErrInvalidInput)
		}
		in.Meta = wrapper.Meta
	default:
		return Input{}, fmt.Errorf("%w: transcript must be an array", ErrInvalidInput)
	}

	if err := in.Validate(); err != nil {
		return Input{}, err
	}
	return in, nil
}

// Validate checks that every segment has time, speaker and text.
func (in Input) Validate() error {
	for i, seg := range in.Transcript {
		var missing []string
		if strings.TrimSpace(seg.Time) == "" {
			missing = append(missing, "time")
		}
		if strings.TrimSpace(seg.Speaker) == "" {
			missing = append(missing, "speaker")
		}
		if strings.TrimSpace(seg.Text) == "" {
			missing = append(missing, "text")
		}
		if len(missing) > 0 {
			return fmt.Errorf("%w: segment %d missing %s", ErrInvalidInput, i, strings.Join(missing, ", "))
		}
	}
	return nil
}

// Model returns the immutable transcript for this input.
func (in Input) Model() Transcript {
	return New(in.Transcript)
}
