package review

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/category"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/document"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/normalize"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/transcript"
)

// ErrStatementNotFound is returned when a hover or click names a statement
// that is not part of the current result.
var ErrStatementNotFound = errors.New("statement not found")

// Status is the lifecycle of the current submission.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusPending Status = "pending"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// Observer is told about highlight changes and navigation so that a remote
// transcript renderer can follow along. Calls happen with the session lock
// held and must not call back into the session.
type Observer interface {
	HighlightChanged(sessionID string, segments []int)
	Navigated(sessionID string, n Navigation)
}

// Session owns all review state for the single document under review:
// transcript, extraction result, normalized sections, highlight and view
// state. Every submission bumps a generation number; results for older
// generations are discarded.
type Session struct {
	mu sync.Mutex

	id       uuid.UUID
	reg      *category.Registry
	observer Observer
	logger   *slog.Logger

	transcript transcript.Transcript
	result     *document.ExtractionResult
	sections   []normalize.Section
	highlight  *Highlighter
	view       *ViewState

	generation  uint64
	status      Status
	lastErr     string
	submittedAt time.Time
	completedAt time.Time
}

// NewSession creates an idle session. observer may be nil.
func NewSession(reg *category.Registry, observer Observer, logger *slog.Logger) *Session {
	s := &Session{
		id:       uuid.New(),
		reg:      reg,
		observer: observer,
		logger:   logger,
		view:     NewViewState(),
		status:   StatusIdle,
	}
	s.highlight = NewHighlighter(0, NavigatorFunc(s.navigated))
	return s
}

func (s *Session) ID() string { return s.id.String() }

func (s *Session) navigated(n Navigation) {
	if s.observer != nil {
		s.observer.Navigated(s.id.String(), n)
	}
}

func (s *Session) highlightChanged() {
	if s.observer != nil {
		s.observer.HighlightChanged(s.id.String(), s.highlight.Previewed())
	}
}

// Begin starts a new submission: the transcript is replaced, any previous
// result is cleared and the highlight and view are reset. It returns the
// generation to pass to Complete or Fail.
func (s *Session) Begin(t transcript.Transcript) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.transcript = t
	s.result = nil
	s.sections = nil
	s.highlight.Reset(t.Len())
	s.view.Reset()
	s.status = StatusPending
	s.lastErr = ""
	s.submittedAt = time.Now().UTC()
	s.completedAt = time.Time{}
	s.highlightChanged()

	return s.generation
}

// Complete installs the extraction result for generation gen. It returns
// false and changes nothing if a newer submission has started since.
func (s *Session) Complete(gen uint64, res *document.ExtractionResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.logger.Warn("discarding stale extraction result",
			"generation", gen,
			"current", s.generation,
		)
		return false
	}

	s.result = res
	var doc *document.Document
	if res != nil {
		doc = &res.Document
	}
	s.sections = normalize.Normalize(doc)
	s.view.Reset()
	s.highlight.PreviewSegments(nil)
	s.status = StatusReady
	s.completedAt = time.Now().UTC()
	s.highlightChanged()

	return true
}

// Fail records an extraction failure for generation gen. Stale failures are
// discarded like stale results.
func (s *Session) Fail(gen uint64, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.logger.Warn("discarding stale extraction failure",
			"generation", gen,
			"current", s.generation,
			"error", err,
		)
		return false
	}

	s.result = nil
	s.sections = nil
	s.status = StatusFailed
	if err != nil {
		s.lastErr = err.Error()
	}
	s.completedAt = time.Now().UTC()
	return true
}

// statement must be called with the lock held.
func (s *Session) statement(key string, idx int) (normalize.Statement, error) {
	k, ok := category.Parse(key)
	if !ok {
		return normalize.Statement{}, fmt.Errorf("%w: %q", ErrUnknownCategory, key)
	}
	sec, ok := normalize.Find(s.sections, k)
	if !ok || idx < 0 || idx >= len(sec.Statements) {
		return normalize.Statement{}, fmt.Errorf("%w: %s[%d]", ErrStatementNotFound, key, idx)
	}
	return sec.Statements[idx], nil
}

// Hover previews the provenance of one statement, replacing any previous
// preview.
func (s *Session) Hover(key string, idx int) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.statement(key, idx)
	if err != nil {
		return nil, err
	}
	s.highlight.PreviewSegments(st.Provenance)
	s.highlightChanged()
	return s.highlight.Previewed(), nil
}

// HoverSegments previews an explicit set of segments. nil clears.
func (s *Session) HoverSegments(indices []int) []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.highlight.PreviewSegments(indices)
	s.highlightChanged()
	return s.highlight.Previewed()
}

// Leave ends the current hover.
func (s *Session) Leave() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.highlight.PreviewSegments(nil)
	s.highlightChanged()
}

// Click navigates to the first provenance segment of a statement. The bool is
// false when there is nothing to navigate to.
func (s *Session) Click(key string, idx int) (Navigation, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.statement(key, idx)
	if err != nil {
		return Navigation{}, false, err
	}
	nav, ok := s.highlight.NavigateToFirst(st.Provenance)
	return nav, ok, nil
}

// NavigateToSegment navigates directly to segment i.
func (s *Session) NavigateToSegment(i int) (Navigation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.highlight.NavigateToSegment(i)
}

func (s *Session) SetActiveCategory(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.SetActiveCategory(key)
}

func (s *Session) ToggleExpanded(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.ToggleExpanded(key)
}

func (s *Session) ExpandAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.ExpandAll()
}

func (s *Session) CollapseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.CollapseAll()
}

// SegmentView is a transcript segment as the renderer needs it.
type SegmentView struct {
	Index       int    `json:"index"`
	Anchor      string `json:"anchor"`
	Time        string `json:"time"`
	Speaker     string `json:"speaker"`
	Text        string `json:"text"`
	Highlighted bool   `json:"highlighted"`
}

// View is a point-in-time copy of the session for rendering.
type View struct {
	SessionID     string           `json:"session_id"`
	Generation    uint64           `json:"generation"`
	Status        Status           `json:"status"`
	Error         string           `json:"error,omitempty"`
	Transcript    []SegmentView    `json:"transcript"`
	Highlighted   []int            `json:"highlighted"`
	Filter        string           `json:"filter"`
	FilterOptions []FilterOption   `json:"filter_options,omitempty"`
	Sections      []VisibleSection `json:"sections"`
	Total         int              `json:"total"`
	Empty         bool             `json:"empty"`
	References    int              `json:"references"`
	SubmittedAt   *time.Time       `json:"submitted_at,omitempty"`
	CompletedAt   *time.Time       `json:"completed_at,omitempty"`
}

// Snapshot renders the current state.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	segs := s.transcript.Segments()
	tv := make([]SegmentView, len(segs))
	for i, seg := range segs {
		tv[i] = SegmentView{
			Index:       i,
			Anchor:      transcript.Anchor(i),
			Time:        seg.Time,
			Speaker:     seg.Speaker,
			Text:        seg.Text,
			Highlighted: s.highlight.IsPreviewed(i),
		}
	}

	v := View{
		SessionID:   s.id.String(),
		Generation:  s.generation,
		Status:      s.status,
		Error:       s.lastErr,
		Transcript:  tv,
		Highlighted: s.highlight.Previewed(),
		Filter:      s.view.Active(),
		Sections:    []VisibleSection{},
	}
	if !s.submittedAt.IsZero() {
		t := s.submittedAt
		v.SubmittedAt = &t
	}
	if !s.completedAt.IsZero() {
		t := s.completedAt
		v.CompletedAt = &t
	}

	if s.status == StatusReady {
		v.Total = normalize.Total(s.sections)
		v.Empty = v.Total == 0
		v.FilterOptions = FilterOptions(s.sections, s.reg)
		if visible := s.view.Visible(s.sections, s.reg); visible != nil {
			v.Sections = visible
		}
		if s.result != nil {
			v.References = len(s.result.References)
		}
	}
	return v
}
