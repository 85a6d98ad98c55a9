package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/processor"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/review"
)

type statementRef struct {
	Category *string `json:"category,omitempty"`
	Index    *int    `json:"index,omitempty"`
	Segments []int   `json:"segments,omitempty"`
	Segment  *int    `json:"segment,omitempty"`
}

type submitResponse struct {
	Outcome *processor.Outcome `json:"outcome,omitempty"`
	Detail  string             `json:"detail,omitempty"`
	View    review.View        `json:"view"`
}

type navigateResponse struct {
	Navigated bool   `json:"navigated"`
	Segment   *int   `json:"segment"`
	Anchor    string `json:"anchor,omitempty"`
}

func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.proc.Session().Snapshot())
}

// submitTranscript replaces the reviewed transcript and waits for extraction.
func (s *Server) submitTranscript(w http.ResponseWriter, r *http.Request) {
	in, ok := s.parseTranscript(w, r)
	if !ok {
		return
	}

	outcome, err := s.proc.Submit(r.Context(), in)
	view := s.proc.Session().Snapshot()
	switch {
	case errors.Is(err, processor.ErrSuperseded):
		writeJSON(w, http.StatusConflict, submitResponse{Detail: err.Error(), View: view})
	case err != nil:
		writeJSON(w, http.StatusBadGateway, submitResponse{Detail: err.Error(), View: view})
	default:
		writeJSON(w, http.StatusOK, submitResponse{Outcome: &outcome, View: view})
	}
}

// hover previews either a statement's provenance ({category, index}) or an
// explicit segment list ({segments}).
func (s *Server) hover(w http.ResponseWriter, r *http.Request) {
	var ref statementRef
	if err := decodeBody(w, r, &ref); err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	var highlighted []int
	switch {
	case ref.Category != nil:
		if ref.Index == nil {
			writeDetail(w, http.StatusBadRequest, "index is required with category")
			return
		}
		got, err := s.proc.Session().Hover(*ref.Category, *ref.Index)
		if err != nil {
			writeReviewError(w, err)
			return
		}
		highlighted = got
	case ref.Segments != nil:
		highlighted = s.proc.Session().HoverSegments(ref.Segments)
	default:
		writeDetail(w, http.StatusBadRequest, "category and index, or segments, are required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"highlighted": highlighted})
}

func (s *Server) leave(w http.ResponseWriter, r *http.Request) {
	s.proc.Session().Leave()
	writeJSON(w, http.StatusOK, map[string]any{"highlighted": []int{}})
}

// click navigates to a statement's first source segment, or to {segment}.
func (s *Server) click(w http.ResponseWriter, r *http.Request) {
	var ref statementRef
	if err := decodeBody(w, r, &ref); err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	var (
		nav review.Navigation
		ok  bool
	)
	switch {
	case ref.Category != nil:
		if ref.Index == nil {
			writeDetail(w, http.StatusBadRequest, "index is required with category")
			return
		}
		var err error
		nav, ok, err = s.proc.Session().Click(*ref.Category, *ref.Index)
		if err != nil {
			writeReviewError(w, err)
			return
		}
	case ref.Segment != nil:
		nav, ok = s.proc.Session().NavigateToSegment(*ref.Segment)
	default:
		writeDetail(w, http.StatusBadRequest, "category and index, or segment, are required")
		return
	}

	resp := navigateResponse{Navigated: ok}
	if ok {
		resp.Segment = &nav.Segment
		resp.Anchor = nav.Anchor
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) setFilter(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Category string `json:"category"`
	}
	if err := decodeBody(w, r, &body); err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.proc.Session().SetActiveCategory(body.Category); err != nil {
		writeReviewError(w, err)
		return
	}
	s.snapshot(w, r)
}

func (s *Server) toggleSection(w http.ResponseWriter, r *http.Request) {
	if err := s.proc.Session().ToggleExpanded(chi.URLParam(r, "key")); err != nil {
		writeReviewError(w, err)
		return
	}
	s.snapshot(w, r)
}

func (s *Server) expandAll(w http.ResponseWriter, r *http.Request) {
	s.proc.Session().ExpandAll()
	s.snapshot(w, r)
}

func (s *Server) collapseAll(w http.ResponseWriter, r *http.Request) {
	s.proc.Session().CollapseAll()
	s.snapshot(w, r)
}

func writeReviewError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, review.ErrUnknownCategory):
		writeDetail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, review.ErrStatementNotFound):
		writeDetail(w, http.StatusNotFound, err.Error())
	default:
		writeDetail(w, http.StatusInternalServerError, err.Error())
	}
}
