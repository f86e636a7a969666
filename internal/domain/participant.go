package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ParticipantID identifies a participant within a single split call.
// It accepts either a JSON string or a JSON number and keeps that form when
// marshalled back. The zero value means "no id".
type ParticipantID struct {
	value   string
	numeric bool
}

// StringID builds a string participant id.
func StringID(s string) ParticipantID {
	return ParticipantID{value: s}
}

// NumericID builds a numeric participant id. Non-finite values yield the zero id.
func NumericID(n float64) ParticipantID {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return ParticipantID{}
	}
	return ParticipantID{value: strconv.FormatFloat(n, 'f', -1, 64), numeric: true}
}

// IsZero reports whether the id is missing.
func (id ParticipantID) IsZero() bool {
	return id.value == ""
}

// IsNumeric reports whether the id was given as a number.
func (id ParticipantID) IsNumeric() bool {
	return id.numeric
}

func (id ParticipantID) String() string {
	return id.value
}

// Key is unique per (kind, value): the string "1" and the number 1 are different ids.
func (id ParticipantID) Key() string {
	if id.numeric {
		return "n:" + id.value
	}
	return "s:" + id.value
}

func (id ParticipantID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

func (id *ParticipantID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ParticipantID{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	}
	n, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("participant id must be a string or a number: %w", err)
	}
	*id = NumericID(n)
	return nil
}

// Participant is one party of a split. Weight and Percentage are optional and
// only read by the weighted and percentage methods respectively.
type Participant struct {
	ID         ParticipantID `json:"id"`
	Name       string        `json:"name"`
	Weight     *float64      `json:"weight,omitempty"`
	Percentage *float64      `json:"percentage,omitempty"`
}

// WeightOrDefault returns the participant weight, 1 when unset.
func (p Participant) WeightOrDefault() float64 {
	if p.Weight == nil {
		return 1
	}
	return *p.Weight
}

// PercentageOrZero returns the participant percentage, 0 when unset.
func (p Participant) PercentageOrZero() float64 {
	if p.Percentage == nil {
		return 0
	}
	return *p.Percentage
}
