package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/category"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/document"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/extractor"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/normalize"
)

// MetadataNormalizeExtraction describes the normalize_extraction tool.
var MetadataNormalizeExtraction = &mcp.Tool{
	Name: "normalize_extraction",
	Description: "Flatten an E025 extraction result into categorized statements. " +
		"Each statement carries its display text and the transcript segment indices it was derived from. " +
		"Accepts either {\"document\": ..., \"references\": [...]} or a bare document object. " +
		"Only categories with statements are returned, in fixed display order.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"result"},
		"properties": map[string]interface{}{
			"result": map[string]interface{}{
				"type":        "string",
				"description": "Extraction result JSON",
			},
			"category": map[string]interface{}{
				"type":        "string",
				"description": "Optional category key to restrict the output to.",
				"enum":        categoryKeys(),
			},
			"segments": map[string]interface{}{
				"type":        "integer",
				"description": "Optional transcript length. When set, provenance indices outside [0, segments) are reported.",
			},
		},
	},
}

// InputNormalizeExtraction is the input for the NormalizeExtraction tool.
type InputNormalizeExtraction struct {
	Result   string `json:"result"`
	Category string `json:"category"`
	Segments int    `json:"segments"`
}

// LabeledSection is a normalized section with its display label.
type LabeledSection struct {
	Key        category.Key          `json:"key"`
	Label      string                `json:"label"`
	Statements []normalize.Statement `json:"statements"`
}

// OutputNormalizeExtraction is the output for the NormalizeExtraction tool.
type OutputNormalizeExtraction struct {
	Sections []LabeledSection `json:"sections"`
	Total    int              `json:"total"`
	// OutOfRange lists provenance indices outside the transcript. Only set
	// when the input gave a transcript length.
	OutOfRange []int `json:"out_of_range,omitempty"`
}

// NormalizeExtraction decodes an extraction result and returns its statements.
func NormalizeExtraction(_ context.Context, _ *mcp.CallToolRequest, input InputNormalizeExtraction) (*mcp.CallToolResult, OutputNormalizeExtraction, error) {
	if input.Result == "" {
		return nil, OutputNormalizeExtraction{}, fmt.Errorf("result is required")
	}

	result, err := LoadResult([]byte(input.Result))
	if err != nil {
		return nil, OutputNormalizeExtraction{}, err
	}

	out, err := Normalize(result, input.Category, category.Default())
	if err != nil {
		return nil, OutputNormalizeExtraction{}, err
	}
	if input.Segments > 0 {
		out.OutOfRange = result.Document.OutOfRange(input.Segments)
	}
	return nil, out, nil
}

// Normalize builds the tool output for result, optionally restricted to one
// category key.
func Normalize(result *document.ExtractionResult, only string, reg *category.Registry) (OutputNormalizeExtraction, error) {
	var filter category.Key
	if only != "" && only != category.All {
		k, ok := category.Parse(only)
		if !ok {
			return OutputNormalizeExtraction{}, fmt.Errorf("unknown category %q", only)
		}
		filter = k
	}

	out := OutputNormalizeExtraction{Sections: []LabeledSection{}}
	for _, s := range normalize.NonEmpty(normalize.Normalize(&result.Document)) {
		if filter != "" && s.Key != filter {
			continue
		}
		out.Sections = append(out.Sections, LabeledSection{
			Key:        s.Key,
			Label:      reg.Label(s.Key),
			Statements: s.Statements,
		})
		out.Total += len(s.Statements)
	}
	return out, nil
}

// LoadResult decodes an extraction result, falling back to a bare document.
func LoadResult(data []byte) (*document.ExtractionResult, error) {
	result, err := extractor.Decode(data)
	if err == nil {
		return result, nil
	}
	if !errors.Is(err, extractor.ErrInvalidResponse) {
		return nil, err
	}

	var doc document.Document
	if jsonErr := json.Unmarshal(data, &doc); jsonErr != nil {
		return nil, err
	}
	return &document.ExtractionResult{Document: doc, References: []document.EntityReference{}}, nil
}

func categoryKeys() []string {
	keys := make([]string, 0, len(category.Order)+1)
	keys = append(keys, category.All)
	for _, k := range category.Order {
		keys = append(keys, string(k))
	}
	return keys
}
