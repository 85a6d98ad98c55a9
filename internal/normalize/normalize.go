// Package normalize flattens an extraction document into ordered, categorized
// statements, each carrying the transcript segments it was derived from.
package normalize

import (
	"strings"

	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/category"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/document"
)

// Statement is a display-ready rendering of one extracted item.
type Statement struct {
	Category   category.Key `json:"category"`
	Text       string       `json:"text"`
	Provenance []int        `json:"provenance"`
}

// Section groups the statements of one category in source order.
type Section struct {
	Key        category.Key `json:"key"`
	Statements []Statement  `json:"statements"`
}

// source renders one category from a document. sources is indexed in
// category.Order; normalize_test checks the two stay aligned.
type source struct {
	key    category.Key
	render func(*document.Document) []Statement
}

var sources = [...]source{
	{category.VitalSigns, vitalSigns},
	{category.Allergies, allergies},
	{category.Diagnosis, diagnoses},
	{category.Anamnesis, clinical(category.Anamnesis, func(c *document.ClinicalNotes) []document.ClinicalStatement { return c.ComplaintsAnamnesis })},
	{category.Objective, clinical(category.Objective, func(c *document.ClinicalNotes) []document.ClinicalStatement { return c.ObjectiveCondition })},
	{category.TestsPlan, clinical(category.TestsPlan, func(c *document.ClinicalNotes) []document.ClinicalStatement { return c.TestsConsultationsPlan })},
	{category.TestsDone, clinical(category.TestsDone, func(c *document.ClinicalNotes) []document.ClinicalStatement { return c.PerformedTestsConsultations })},
	{category.Treatment, treatments},
	{category.Discharge, clinical(category.Discharge, func(c *document.ClinicalNotes) []document.ClinicalStatement { return c.ConditionOnDischarge })},
	{category.Notes, clinical(category.Notes, func(c *document.ClinicalNotes) []document.ClinicalStatement { return c.Notes })},
}

// Normalize returns one section per category in category.Order. Absent or
// empty sections produce empty statement lists; it never fails.
func Normalize(doc *document.Document) []Section {
	out := make([]Section, len(sources))
	for i, src := range sources {
		stmts := []Statement{}
		if doc != nil {
			if rendered := src.render(doc); rendered != nil {
				stmts = rendered
			}
		}
		out[i] = Section{Key: src.key, Statements: stmts}
	}
	return out
}

// Total counts statements across sections.
func Total(sections []Section) int {
	n := 0
	for _, s := range sections {
		n += len(s.Statements)
	}
	return n
}

// NonEmpty keeps the sections that have statements, preserving order.
func NonEmpty(sections []Section) []Section {
	var out []Section
	for _, s := range sections {
		if len(s.Statements) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// Find returns the section for k.
func Find(sections []Section, k category.Key) (Section, bool) {
	for _, s := range sections {
		if s.Key == k {
			return s, true
		}
	}
	return Section{}, false
}

func provenance(segs []int) []int {
	out := make([]int, len(segs))
	copy(out, segs)
	return out
}

func vitalSigns(doc *document.Document) []Statement {
	if doc.VitalSigns == nil {
		return nil
	}
	out := make([]Statement, 0, len(doc.VitalSigns.Items))
	for _, it := range doc.VitalSigns.Items {
		out = append(out, Statement{
			Category:   category.VitalSigns,
			Text:       it.Name + ": " + it.Value,
			Provenance: provenance(it.SourceSegments),
		})
	}
	return out
}

func allergies(doc *document.Document) []Statement {
	out := make([]Statement, 0, len(doc.Allergies))
	for _, a := range doc.Allergies {
		out = append(out, Statement{
			Category:   category.Allergies,
			Text:       category.AllergyTypeLabel(a.Type) + ": " + a.Description,
			Provenance: provenance(a.SourceSegments),
		})
	}
	return out
}

func diagnoses(doc *document.Document) []Statement {
	if doc.Diagnosis == nil {
		return nil
	}
	out := make([]Statement, 0, len(doc.Diagnosis.Items))
	for _, it := range doc.Diagnosis.Items {
		var sb strings.Builder
		sb.WriteString(it.Diagnosis)
		if it.DiagnosisCode != nil {
			sb.WriteString(" [" + *it.DiagnosisCode + "]")
		}
		if it.DiagnosisCertainty != nil {
			sb.WriteString(" (" + category.CertaintySymbol(*it.DiagnosisCertainty) + ")")
		}
		out = append(out, Statement{
			Category:   category.Diagnosis,
			Text:       sb.String(),
			Provenance: provenance(it.SourceSegments),
		})
	}
	return out
}

func treatments(doc *document.Document) []Statement {
	if doc.Treatment == nil {
		return nil
	}
	out := make([]Statement, 0, len(doc.Treatment.Items))
	for _, it := range doc.Treatment.Items {
		text := it.Description
		if icon := category.TreatmentIcon(it.Type); icon != "" {
			text = icon + " " + it.Description
		}
		out = append(out, Statement{
			Category:   category.Treatment,
			Text:       text,
			Provenance: provenance(it.SourceSegments),
		})
	}
	return out
}

func clinical(key category.Key, pick func(*document.ClinicalNotes) []document.ClinicalStatement) func(*document.Document) []Statement {
	return func(doc *document.Document) []Statement {
		if doc.ClinicalNotes == nil {
			return nil
		}
		list := pick(doc.ClinicalNotes)
		out := make([]Statement, 0, len(list))
		for _, st := range list {
			out = append(out, Statement{
				Category:   key,
				Text:       st.Statement,
				Provenance: provenance(st.SourceSegments),
			})
		}
		return out
	}
}
