package store

import (
	"encoding/json"
	"testing"
)

func TestMissStatusValues(t *testing.T) {
	statuses := []MissStatus{MissPending, MissAdded, MissInvalid, MissIgnored}
	expected := []string{"pending", "added", "invalid", "ignored"}
	for i, s := range statuses {
		if string(s) != expected[i] {
			t.Errorf("expected %s, got %s", expected[i], s)
		}
		if !s.Valid() {
			t.Errorf("expected %s to be valid", s)
		}
	}
	if MissStatus("researching").Valid() {
		t.Error("expected unknown status to be invalid")
	}
}

func TestMissFilterDefaults(t *testing.T) {
	f := MissFilter{}
	if f.Limit != 0 || f.MinScans != 0 {
		t.Errorf("expected zero defaults, got %+v", f)
	}
	if f.Status != "" {
		t.Error("expected empty status filter")
	}
}

func TestProductScored(t *testing.T) {
	p := &Product{ProductID: "CP-123456"}
	if p.Scored() {
		t.Error("expected unscored product")
	}
	score := 42
	p.HazardScore = &score
	if !p.Scored() {
		t.Error("expected scored product")
	}
}

func TestProductJSONFieldNames(t *testing.T) {
	score := 70
	p := Product{ProductID: "FD-000123", Barcode: "0123456789012", Name: "Lotion", HazardScore: &score}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"product_id", "upc_barcode", "product_name", "hazard_score"} {
		if _, ok := m[key]; !ok {
			t.Errorf("expected key %q in %s", key, data)
		}
	}
	if _, ok := m["sub_category"]; ok {
		t.Error("empty sub_category should be omitted")
	}
}
