package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/document"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/transcript"
)

// Remote delegates extraction to another service exposing POST /api/extract.
type Remote struct {
	url    string
	client *http.Client
}

func NewRemote(baseURL string, timeout time.Duration) *Remote {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Remote{
		url:    strings.TrimRight(baseURL, "/") + "/api/extract",
		client: &http.Client{Timeout: timeout},
	}
}

func (r *Remote) Name() string { return "remote:" + r.url }

// Extract posts the input as {transcript, meta} and decodes the
// {document, references} reply. Error replies carry a "detail" field which
// becomes the error message.
func (r *Remote) Extract(ctx context.Context, in transcript.Input) (*document.ExtractionResult, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote extraction: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		msg := detail(respBody)
		if resp.StatusCode == http.StatusUnprocessableEntity {
			return nil, fmt.Errorf("%w: %s", ErrInvalidResponse, msg)
		}
		return nil, fmt.Errorf("remote extraction %d: %s", resp.StatusCode, msg)
	}
	return Decode(respBody)
}

// detail pulls the message out of an error body. Validation errors carry a
// list rather than a string, which is passed through as JSON.
func detail(body []byte) string {
	var e struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(body, &e) == nil && len(e.Detail) > 0 {
		var s string
		if json.Unmarshal(e.Detail, &s) == nil {
			return s
		}
		return string(e.Detail)
	}
	return strings.TrimSpace(string(body))
}
