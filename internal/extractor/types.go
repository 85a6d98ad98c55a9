package extractor

import (
	"context"
	"errors"

	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/document"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/transcript"
)

// ErrInvalidResponse marks an extraction reply that could not be decoded
// into a document.
var ErrInvalidResponse = errors.New("invalid extraction response")

// Completer is an LLM backend that returns the text of a single reply.
type Completer interface {
	Complete(ctx context.Context, system, user string, maxTokens int) (string, error)
	Name() string
}

// Backend is anything that turns a transcript into an extraction result.
// Both Extractor and Remote satisfy it.
type Backend interface {
	Extract(ctx context.Context, in transcript.Input) (*document.ExtractionResult, error)
	Name() string
}

var (
	_ Backend = (*Extractor)(nil)
	_ Backend = (*Remote)(nil)
)
