package document

import (
	"encoding/json"
	"sort"
)

// UnmarshalJSON treats the placeholder codes some models emit ("null",
// "None", "") as an absent diagnosis code.
func (d *DiagnosisItem) UnmarshalJSON(data []byte) error {
	type plain DiagnosisItem
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.DiagnosisCode != nil {
		switch *p.DiagnosisCode {
		case "null", "None", "":
			p.DiagnosisCode = nil
		}
	}
	if p.DiagnosisCertainty != nil && *p.DiagnosisCertainty == "" {
		p.DiagnosisCertainty = nil
	}
	*d = DiagnosisItem(p)
	return nil
}

// ItemCount returns the number of items across the sections that the review
// list renders as statements.
func (d *Document) ItemCount() int {
	if d == nil {
		return 0
	}
	n := len(d.Allergies)
	if d.VitalSigns != nil {
		n += len(d.VitalSigns.Items)
	}
	if d.Diagnosis != nil {
		n += len(d.Diagnosis.Items)
	}
	if d.Treatment != nil {
		n += len(d.Treatment.Items)
	}
	if c := d.ClinicalNotes; c != nil {
		n += len(c.ComplaintsAnamnesis) + len(c.ObjectiveCondition) +
			len(c.TestsConsultationsPlan) + len(c.PerformedTestsConsultations) +
			len(c.ConditionOnDischarge) + len(c.Notes)
	}
	return n
}

// OutOfRange returns the distinct provenance indices that do not address a
// segment of a transcript with n segments, in ascending order.
func (d *Document) OutOfRange(n int) []int {
	if d == nil {
		return nil
	}
	seen := make(map[int]struct{})
	check := func(segs []int) {
		for _, s := range segs {
			if s < 0 || s >= n {
				seen[s] = struct{}{}
			}
		}
	}

	if d.VitalSigns != nil {
		for _, it := range d.VitalSigns.Items {
			check(it.SourceSegments)
		}
	}
	for _, a := range d.Allergies {
		check(a.SourceSegments)
	}
	if d.Diagnosis != nil {
		for _, it := range d.Diagnosis.Items {
			check(it.SourceSegments)
		}
	}
	if d.Treatment != nil {
		for _, it := range d.Treatment.Items {
			check(it.SourceSegments)
		}
	}
	if c := d.ClinicalNotes; c != nil {
		for _, list := range [][]ClinicalStatement{
			c.ComplaintsAnamnesis, c.ObjectiveCondition, c.TestsConsultationsPlan,
			c.PerformedTestsConsultations, c.ConditionOnDischarge, c.Notes,
		} {
			for _, st := range list {
				check(st.SourceSegments)
			}
		}
	}

	if len(seen) == 0 {
		return nil
	}
	out := make([]int, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}
