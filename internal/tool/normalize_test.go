package tool

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/category"
)

const wrappedResult = `{
	"document": {
		"allergies": [{"type": "vaistai", "description": "penicillin", "source_segments": [2]}],
		"vital_signs": {"items": [{"name": "Temperatūra", "value": "36.6", "source_segments": [6, 9]}]}
	},
	"references": []
}`

const bareDocument = `{"treatment": {"items": [{"description": "Ibuprofenas 400 mg", "type": "medication", "source_segments": [4]}]}}`

func TestNormalizeExtraction(t *testing.T) {
	ctx := context.Background()
	req := &mcp.CallToolRequest{}

	tests := []struct {
		name           string
		input          InputNormalizeExtraction
		wantErr        bool
		errContains    string
		validateOutput func(t *testing.T, output OutputNormalizeExtraction)
	}{
		{
			name:        "empty result returns error",
			input:       InputNormalizeExtraction{},
			wantErr:     true,
			errContains: "result is required",
		},
		{
			name:    "invalid json returns error",
			input:   InputNormalizeExtraction{Result: "not json"},
			wantErr: true,
		},
		{
			name:        "unknown category returns error",
			input:       InputNormalizeExtraction{Result: wrappedResult, Category: "bogus"},
			wantErr:     true,
			errContains: "unknown category",
		},
		{
			name:  "wrapped result produces statements in display order",
			input: InputNormalizeExtraction{Result: wrappedResult},
			validateOutput: func(t *testing.T, output OutputNormalizeExtraction) {
				require.Len(t, output.Sections, 2)
				assert.Equal(t, category.VitalSigns, output.Sections[0].Key)
				assert.Equal(t, category.Allergies, output.Sections[1].Key)
				assert.Equal(t, "Vaistams: penicillin", output.Sections[1].Statements[0].Text)
				assert.Equal(t, []int{2}, output.Sections[1].Statements[0].Provenance)
				assert.Equal(t, 2, output.Total)
				assert.Nil(t, output.OutOfRange)
			},
		},
		{
			name:  "category filter",
			input: InputNormalizeExtraction{Result: wrappedResult, Category: "allergies"},
			validateOutput: func(t *testing.T, output OutputNormalizeExtraction) {
				require.Len(t, output.Sections, 1)
				assert.Equal(t, 1, output.Total)
			},
		},
		{
			name:  "segments reports out of range provenance",
			input: InputNormalizeExtraction{Result: wrappedResult, Segments: 8},
			validateOutput: func(t *testing.T, output OutputNormalizeExtraction) {
				assert.Equal(t, []int{9}, output.OutOfRange)
			},
		},
		{
			name:  "bare document is accepted",
			input: InputNormalizeExtraction{Result: bareDocument},
			validateOutput: func(t *testing.T, output OutputNormalizeExtraction) {
				require.Len(t, output.Sections, 1)
				assert.Equal(t, "💊 Ibuprofenas 400 mg", output.Sections[0].Statements[0].Text)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := NormalizeExtraction(ctx, req, tt.input)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			require.NoError(t, err)
			if tt.validateOutput != nil {
				tt.validateOutput(t, output)
			}
		})
	}
}

func TestCategoryKeys(t *testing.T) {
	keys := categoryKeys()
	assert.Equal(t, "all", keys[0])
	assert.Len(t, keys, len(category.Order)+1)
}
