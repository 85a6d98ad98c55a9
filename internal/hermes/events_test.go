package hermes

import (
	"encoding/json"
	"testing"
)

func TestNavigateParsing(t *testing.T) {
	raw := `{"session_id": "s-1", "segment": 4, "anchor": "segment-4"}`

	var nav Navigate
	if err := json.Unmarshal([]byte(raw), &nav); err != nil {
		t.Fatalf("failed to parse Navigate: %v", err)
	}
	if nav.Segment != 4 {
		t.Errorf("expected segment 4, got %d", nav.Segment)
	}
	if nav.Anchor != "segment-4" {
		t.Errorf("expected anchor 'segment-4', got '%s'", nav.Anchor)
	}
}

func TestHighlightChangedEmptyListIsNotNull(t *testing.T) {
	data, err := json.Marshal(HighlightChanged{SessionID: "s-1", Segments: []int{}})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `{"session_id":"s-1","segments":[]}` {
		t.Errorf("unexpected payload %s", data)
	}
}

func TestExtractionCompletedOmitsEmptyOutOfRange(t *testing.T) {
	data, err := json.Marshal(ExtractionCompleted{RunID: "r", Categories: map[string]int{"allergies": 1}})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if _, ok := m["out_of_range"]; ok {
		t.Error("expected out_of_range to be omitted")
	}
	if m["categories"].(map[string]any)["allergies"] != float64(1) {
		t.Errorf("unexpected categories %v", m["categories"])
	}
}
