package domain

import (
	"encoding/json"
	"math"
	"testing"
)

func TestParticipantIDJSON(t *testing.T) {
	tests := []struct {
		in      string
		numeric bool
		value   string
		out     string
	}{
		{`"alice"`, false, "alice", `"alice"`},
		{`"1"`, false, "1", `"1"`},
		{`1`, true, "1", `1`},
		{`2.5`, true, "2.5", `2.5`},
		{`null`, false, "", `null`},
	}

	for _, tt := range tests {
		var id ParticipantID
		if err := json.Unmarshal([]byte(tt.in), &id); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.in, err)
		}
		if id.IsNumeric() != tt.numeric || id.String() != tt.value {
			t.Errorf("unmarshal %s = (%q, numeric=%v)", tt.in, id.String(), id.IsNumeric())
		}
		out, err := json.Marshal(id)
		if err != nil {
			t.Fatalf("marshal %s: %v", tt.in, err)
		}
		if string(out) != tt.out {
			t.Errorf("marshal %s = %s, want %s", tt.in, out, tt.out)
		}
	}

	var id ParticipantID
	if err := json.Unmarshal([]byte(`true`), &id); err == nil {
		t.Error("expected error for boolean id")
	}
}

func TestParticipantIDKey(t *testing.T) {
	if StringID("1").Key() == NumericID(1).Key() {
		t.Error("string and numeric ids must not share a key")
	}
	if NumericID(1).Key() != NumericID(1.0).Key() {
		t.Error("equal numbers must share a key")
	}
	if !NumericID(math.NaN()).IsZero() {
		t.Error("NaN id should be zero")
	}
}

func TestParticipantDefaults(t *testing.T) {
	p := Participant{ID: StringID("a")}
	if p.WeightOrDefault() != 1 {
		t.Errorf("default weight = %v", p.WeightOrDefault())
	}
	if p.PercentageOrZero() != 0 {
		t.Errorf("default percentage = %v", p.PercentageOrZero())
	}

	p.Weight, p.Percentage = Float64Ptr(0), Float64Ptr(25)
	if p.WeightOrDefault() != 0 || p.PercentageOrZero() != 25 {
		t.Errorf("explicit values not kept: %v %v", p.WeightOrDefault(), p.PercentageOrZero())
	}
}
