package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/extractor"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/transcript"
)

// extract handles POST /api/extract. It is stateless: the review session is
// not touched.
func (s *Server) extract(w http.ResponseWriter, r *http.Request) {
	in, ok := s.parseTranscript(w, r)
	if !ok {
		return
	}

	result, err := s.proc.Extract(r.Context(), in)
	if err != nil {
		s.logger.Error("extraction failed", "error", err)
		if errors.Is(err, extractor.ErrInvalidResponse) {
			writeDetail(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeDetail(w, http.StatusInternalServerError, "Extraction failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) parseTranscript(w http.ResponseWriter, r *http.Request) (transcript.Input, bool) {
	data, err := readBody(w, r)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return transcript.Input{}, false
	}
	in, err := transcript.Parse(data)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return transcript.Input{}, false
	}
	return in, true
}

// listRuns handles GET /api/v1/runs?limit=N.
func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		writeDetail(w, http.StatusServiceUnavailable, "audit log disabled")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	runs, err := s.runs.RecentRuns(r.Context(), limit)
	if err != nil {
		s.logger.Error("list runs failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "list runs failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs, "total": len(runs)})
}
