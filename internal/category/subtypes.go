package category

// Per-item sub-type tables. Each is total: an unrecognised code resolves to a
// documented fallback instead of an empty or missing value.

// AllergyFallbackLabel is used for allergy types outside the known set.
const AllergyFallbackLabel = "Kita"

// AllergyTypeLabel maps vaistai/maistas/kita to their display labels.
func AllergyTypeLabel(t string) string {
	switch t {
	case "vaistai":
		return "Vaistams"
	case "maistas":
		return "Maistui"
	case "kita":
		return "Kita"
	default:
		return AllergyFallbackLabel
	}
}

// CertaintySymbol maps a diagnosis certainty code to its symbol. Unknown codes
// are shown verbatim so the reviewer still sees what the extractor produced.
func CertaintySymbol(code string) string {
	switch code {
	case "+":
		return "✓"
	case "-":
		return "✗"
	case "0":
		return "?"
	default:
		return code
	}
}

// TreatmentIcon maps a treatment kind to its icon; unknown kinds have none.
func TreatmentIcon(kind string) string {
	switch kind {
	case "medication":
		return "💊"
	case "non_medication":
		return "🏥"
	case "prescription":
		return "📋"
	case "referral":
		return "📤"
	case "recommendation":
		return "💡"
	case "test":
		return "🔬"
	default:
		return ""
	}
}
