package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/category"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/document"
)

func strPtr(s string) *string { return &s }

func fullDocument() *document.Document {
	return &document.Document{
		VitalSigns: &document.VitalSigns{Items: []document.VitalSignItem{
			{Name: "Temperatūra", Value: "36.6", SourceSegments: []int{6}},
			{Name: "Kraujospūdis", Value: "115/83 mmHg", SourceSegments: []int{6}},
		}},
		Allergies: []document.Allergy{
			{Type: "maistas", Description: "šokoladas", SourceSegments: []int{3}},
			{Type: "kita", Description: "beržas"},
		},
		Diagnosis: &document.Diagnosis{Items: []document.DiagnosisItem{
			{Diagnosis: "Refliuksas", DiagnosisCode: strPtr("K21.9"), DiagnosisCertainty: strPtr("+"), SourceSegments: []int{5}},
			{Diagnosis: "Psoriazė", SourceSegments: []int{5}},
			{Diagnosis: "Hipotirozė", DiagnosisCertainty: strPtr("0"), SourceSegments: []int{5}},
			{Diagnosis: "Gripas", DiagnosisCode: strPtr("J11"), DiagnosisCertainty: strPtr("-")},
		}},
		ClinicalNotes: &document.ClinicalNotes{
			ComplaintsAnamnesis:         []document.ClinicalStatement{{Statement: "Jaučia silpnumą", SourceSegments: []int{1}}},
			ObjectiveCondition:          []document.ClinicalStatement{{Statement: "Oda: švari", SourceSegments: []int{6}}},
			TestsConsultationsPlan:      []document.ClinicalStatement{{Statement: "BKT", SourceSegments: []int{7}}},
			PerformedTestsConsultations: []document.ClinicalStatement{{Statement: "EKG be pakitimų", SourceSegments: []int{7}}},
			ConditionOnDischarge:        []document.ClinicalStatement{{Statement: "Būklė gera", SourceSegments: []int{7}}},
			Notes:                       []document.ClinicalStatement{{Statement: "Gerti skysčių", SourceSegments: []int{7, 1}}},
		},
		Treatment: &document.Treatment{Items: []document.TreatmentItem{
			{Description: "Ilsėtis", Type: "recommendation", SourceSegments: []int{7}},
			{Description: "Operacija", Type: "surgery", SourceSegments: []int{7}},
		}},
	}
}

func TestSourcesMatchOrder(t *testing.T) {
	require.Len(t, sources, len(category.Order))
	for i, src := range sources {
		assert.Equal(t, category.Order[i], src.key)
	}
}

func TestNormalize_AllCategoriesInOrder(t *testing.T) {
	sections := Normalize(fullDocument())

	require.Len(t, sections, len(category.Order))
	for i, s := range sections {
		assert.Equal(t, category.Order[i], s.Key)
		for _, st := range s.Statements {
			assert.Equal(t, s.Key, st.Category)
		}
	}
}

func TestNormalize_Text(t *testing.T) {
	sections := Normalize(fullDocument())

	texts := func(k category.Key) []string {
		s, ok := Find(sections, k)
		require.True(t, ok)
		var out []string
		for _, st := range s.Statements {
			out = append(out, st.Text)
		}
		return out
	}

	assert.Equal(t, []string{"Temperatūra: 36.6", "Kraujospūdis: 115/83 mmHg"}, texts(category.VitalSigns))
	assert.Equal(t, []string{"Maistui: šokoladas", "Kita: beržas"}, texts(category.Allergies))
	assert.Equal(t, []string{
		"Refliuksas [K21.9] (✓)",
		"Psoriazė",
		"Hipotirozė (?)",
		"Gripas [J11] (✗)",
	}, texts(category.Diagnosis))
	assert.Equal(t, []string{"Jaučia silpnumą"}, texts(category.Anamnesis))
	assert.Equal(t, []string{"Oda: švari"}, texts(category.Objective))
	assert.Equal(t, []string{"BKT"}, texts(category.TestsPlan))
	assert.Equal(t, []string{"EKG be pakitimų"}, texts(category.TestsDone))
	assert.Equal(t, []string{"💡 Ilsėtis", "Operacija"}, texts(category.Treatment))
	assert.Equal(t, []string{"Būklė gera"}, texts(category.Discharge))
	assert.Equal(t, []string{"Gerti skysčių"}, texts(category.Notes))
}

func TestNormalize_ProvenancePreserved(t *testing.T) {
	sections := Normalize(fullDocument())

	notes, _ := Find(sections, category.Notes)
	assert.Equal(t, []int{7, 1}, notes.Statements[0].Provenance, "order must be preserved, not sorted")

	allergies, _ := Find(sections, category.Allergies)
	require.NotNil(t, allergies.Statements[1].Provenance)
	assert.Empty(t, allergies.Statements[1].Provenance)
}

func TestNormalize_ProvenanceIsCopied(t *testing.T) {
	doc := fullDocument()
	sections := Normalize(doc)

	doc.VitalSigns.Items[0].SourceSegments[0] = 99
	vs, _ := Find(sections, category.VitalSigns)
	assert.Equal(t, []int{6}, vs.Statements[0].Provenance)
}

func TestNormalize_CountInvariant(t *testing.T) {
	docs := map[string]*document.Document{
		"full":          fullDocument(),
		"empty":         {},
		"nil":           nil,
		"only notes":    {ClinicalNotes: &document.ClinicalNotes{Notes: []document.ClinicalStatement{{Statement: "x"}}}},
		"empty wrapper": {VitalSigns: &document.VitalSigns{}, Diagnosis: &document.Diagnosis{}, Treatment: &document.Treatment{}},
	}

	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, doc.ItemCount(), Total(Normalize(doc)))
		})
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	a, err := json.Marshal(Normalize(fullDocument()))
	require.NoError(t, err)
	b, err := json.Marshal(Normalize(fullDocument()))
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestNormalize_EmptyDocument(t *testing.T) {
	sections := Normalize(&document.Document{})

	require.Len(t, sections, len(category.Order))
	assert.Equal(t, 0, Total(sections))
	assert.Empty(t, NonEmpty(sections))
	for _, s := range sections {
		assert.NotNil(t, s.Statements)
	}
}

func TestNormalize_UnknownAllergyType(t *testing.T) {
	doc := &document.Document{Allergies: []document.Allergy{
		{Type: "nezinoma", Description: "dulkės", SourceSegments: []int{4}},
	}}

	sections := NonEmpty(Normalize(doc))
	require.Len(t, sections, 1)
	require.Len(t, sections[0].Statements, 1)
	assert.Equal(t, category.AllergyFallbackLabel+": dulkės", sections[0].Statements[0].Text)
	assert.Equal(t, []int{4}, sections[0].Statements[0].Provenance)
}

func TestNormalize_EndToEndScenario(t *testing.T) {
	raw := `{
		"allergies": [{"type": "vaistai", "description": "penicillin", "source_segments": [2]}],
		"vital_signs": {"items": [{"name": "Temperatūra", "value": "36.6", "source_segments": [6]}]}
	}`
	var doc document.Document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	var all []Statement
	for _, s := range Normalize(&doc) {
		all = append(all, s.Statements...)
	}

	require.Len(t, all, 2)
	assert.Equal(t, Statement{Category: category.VitalSigns, Text: "Temperatūra: 36.6", Provenance: []int{6}}, all[0])
	assert.Equal(t, Statement{Category: category.Allergies, Text: "Vaistams: penicillin", Provenance: []int{2}}, all[1])
}

func TestNonEmpty_KeepsOrder(t *testing.T) {
	doc := &document.Document{
		Treatment: &document.Treatment{Items: []document.TreatmentItem{{Description: "a", Type: "test"}}},
		Allergies: []document.Allergy{{Type: "kita", Description: "b"}},
	}
	got := NonEmpty(Normalize(doc))
	require.Len(t, got, 2)
	assert.Equal(t, category.Allergies, got[0].Key)
	assert.Equal(t, category.Treatment, got[1].Key)
}
