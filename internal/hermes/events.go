package hermes

// Subjects published and consumed by the review service.
const (
	SubjectExtractionCompleted = "ner.extraction.completed"
	SubjectExtractionFailed    = "ner.extraction.failed"
	SubjectHighlight           = "ner.review.highlight"
	SubjectNavigate            = "ner.review.navigate"

	// SubjectTranscriptSubmitted carries a transcript input, either a bare
	// segment array or {"transcript": [...], "meta": {...}}.
	SubjectTranscriptSubmitted = "ner.transcript.submitted"
)

// ExtractionCompleted is published when a result has been installed in the
// review session.
type ExtractionCompleted struct {
	RunID      string         `json:"run_id"`
	SessionID  string         `json:"session_id"`
	Generation uint64         `json:"generation"`
	Backend    string         `json:"backend"`
	Segments   int            `json:"segments"`
	Statements int            `json:"statements"`
	Categories map[string]int `json:"categories"`
	OutOfRange []int          `json:"out_of_range,omitempty"`
	DurationMS int64          `json:"duration_ms"`
}

// ExtractionFailed is published when the extraction collaborator errors.
type ExtractionFailed struct {
	RunID      string `json:"run_id"`
	SessionID  string `json:"session_id"`
	Generation uint64 `json:"generation"`
	Backend    string `json:"backend"`
	Error      string `json:"error"`
	DurationMS int64  `json:"duration_ms"`
}

// HighlightChanged mirrors the previewed segment set so a remote transcript
// renderer can follow along. An empty list clears the highlight.
type HighlightChanged struct {
	SessionID string `json:"session_id"`
	Segments  []int  `json:"segments"`
}

// Navigate asks a renderer to scroll segment Anchor into view.
type Navigate struct {
	SessionID string `json:"session_id"`
	Segment   int    `json:"segment"`
	Anchor    string `json:"anchor"`
}
