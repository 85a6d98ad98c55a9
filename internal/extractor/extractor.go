package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/document"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/transcript"
)

type Extractor struct {
	llm       Completer
	maxTokens int
	logger    *slog.Logger
}

func New(llm Completer, maxTokens int, logger *slog.Logger) *Extractor {
	if maxTokens <= 0 {
		maxTokens = 16384
	}
	return &Extractor{llm: llm, maxTokens: maxTokens, logger: logger}
}

func (e *Extractor) Name() string { return e.llm.Name() }

// Extract asks the LLM for an E025 document covering the transcript.
func (e *Extractor) Extract(ctx context.Context, in transcript.Input) (*document.ExtractionResult, error) {
	t := in.Model()

	e.logger.Info("extracting from transcript",
		"backend", e.llm.Name(),
		"segments", t.Len(),
	)

	raw, err := e.llm.Complete(ctx, systemPrompt, userPrompt(t), e.maxTokens)
	if err != nil {
		return nil, fmt.Errorf("llm extraction: %w", err)
	}

	result, err := Decode([]byte(raw))
	if err != nil {
		e.logger.Error("failed to parse extraction response",
			"error", err,
			"raw_len", len(raw),
		)
		return nil, err
	}

	e.logger.Info("extraction complete",
		"backend", e.llm.Name(),
		"items", result.Document.ItemCount(),
		"references", len(result.References),
	)
	return result, nil
}

// Decode parses an extraction reply. A surrounding markdown code fence is
// tolerated. The "document" key is required; "references" may be absent.
func Decode(raw []byte) (*document.ExtractionResult, error) {
	body := stripFence(raw)

	var envelope struct {
		Document   json.RawMessage            `json:"document"`
		References []document.EntityReference `json:"references"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if len(envelope.Document) == 0 || bytes.Equal(envelope.Document, []byte("null")) {
		return nil, fmt.Errorf("%w: missing document", ErrInvalidResponse)
	}

	result := &document.ExtractionResult{References: envelope.References}
	if err := json.Unmarshal(envelope.Document, &result.Document); err != nil {
		return nil, fmt.Errorf("%w: document: %v", ErrInvalidResponse, err)
	}
	if result.References == nil {
		result.References = []document.EntityReference{}
	}
	return result, nil
}

func stripFence(raw []byte) []byte {
	body := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(body, []byte("```")) {
		return body
	}
	if nl := bytes.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	} else {
		body = body[3:]
	}
	body = bytes.TrimSpace(body)
	body = bytes.TrimSuffix(body, []byte("```"))
	return bytes.TrimSpace(body)
}
