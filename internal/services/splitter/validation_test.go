package splitter

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/hxuan190/fairsplit/internal/domain"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		wantErr string
	}{
		{name: "valid integer", amount: 100},
		{name: "valid four decimals", amount: 12.3456},
		{name: "upper bound", amount: 1_000_000_000},
		{name: "zero", amount: 0, wantErr: "Amount must be greater than zero"},
		{name: "negative", amount: -5, wantErr: "Amount must be greater than zero"},
		{name: "NaN", amount: math.NaN(), wantErr: "Amount must be a valid number"},
		{name: "infinite", amount: math.Inf(1), wantErr: "Amount must be a valid number"},
		{name: "too large", amount: 1_000_000_000.01, wantErr: "Amount cannot exceed 1,000,000,000"},
		{name: "five decimals", amount: 1.23456, wantErr: "Amount cannot have more than 4 decimal places"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(tt.amount)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateAmount(%v) unexpected error: %v", tt.amount, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateAmount(%v) expected error %q, got nil", tt.amount, tt.wantErr)
			}
			if err.Error() != tt.wantErr {
				t.Errorf("ValidateAmount(%v) error = %q, want %q", tt.amount, err.Error(), tt.wantErr)
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation kind, got %T", err)
			}
		})
	}
}

func TestValidateParticipants(t *testing.T) {
	many := make([]domain.Participant, MaxParticipants+1)
	for i := range many {
		many[i] = domain.Participant{ID: domain.NumericID(float64(i)), Name: "p"}
	}

	tests := []struct {
		name         string
		participants []domain.Participant
		wantErr      string
	}{
		{
			name: "valid mixed ids",
			participants: []domain.Participant{
				{ID: domain.StringID("a"), Name: "Alice"},
				{ID: domain.NumericID(2), Name: "Bob"},
			},
		},
		{
			name: "string and number with same text are distinct",
			participants: []domain.Participant{
				{ID: domain.StringID("1"), Name: "Alice"},
				{ID: domain.NumericID(1), Name: "Bob"},
			},
		},
		{name: "nil", participants: nil, wantErr: "Participants must be a non-empty list"},
		{name: "too many", participants: many, wantErr: "Too many participants (maximum 1000)"},
		{
			name: "missing id",
			participants: []domain.Participant{
				{ID: domain.StringID("a"), Name: "Alice"},
				{Name: "Bob"},
			},
			wantErr: "Participant at index 1 must have a valid id",
		},
		{
			name:         "blank name",
			participants: []domain.Participant{{ID: domain.StringID("a"), Name: "  "}},
			wantErr:      "Participant at index 0 must have a non-empty name",
		},
		{
			name: "duplicate id",
			participants: []domain.Participant{
				{ID: domain.StringID("a"), Name: "Alice"},
				{ID: domain.StringID("a"), Name: "Another Alice"},
			},
			wantErr: "Duplicate participant id: a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateParticipants(tt.participants)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateWeights(t *testing.T) {
	tests := []struct {
		name    string
		weights []float64
		wantErr string
	}{
		{name: "valid", weights: []float64{3, 2, 1}},
		{name: "max weight", weights: []float64{1_000_000, 1}},
		{name: "empty", weights: []float64{}, wantErr: "Weights must be a non-empty list"},
		{name: "zero weight", weights: []float64{1, 0}, wantErr: "Weight at index 1 must be positive"},
		{name: "negative weight", weights: []float64{-1}, wantErr: "Weight at index 0 must be positive"},
		{name: "NaN", weights: []float64{1, math.NaN()}, wantErr: "Weight at index 1 must be a valid number"},
		{name: "too heavy", weights: []float64{1_000_001}, wantErr: "Weight at index 0 cannot exceed 1,000,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWeights(tt.weights)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidatePercentages(t *testing.T) {
	tests := []struct {
		name        string
		percentages []float64
		wantErr     string
	}{
		{name: "valid", percentages: []float64{50, 30, 20}},
		{name: "two decimals", percentages: []float64{33.33, 33.33, 33.34}},
		{name: "zero share allowed", percentages: []float64{100, 0}},
		{name: "empty", percentages: nil, wantErr: "Percentages must be a non-empty list"},
		{name: "under 100", percentages: []float64{50, 30, 19}, wantErr: "Percentages must sum to 100% (current total: 99.00%)"},
		{name: "over 100", percentages: []float64{60, 50}, wantErr: "Percentages must sum to 100% (current total: 110.00%)"},
		{name: "negative", percentages: []float64{-10, 110}, wantErr: "Percentage at index 0 must be between 0 and 100"},
		{name: "three decimals", percentages: []float64{33.333, 66.667}, wantErr: "Percentage at index 0 cannot have more than 2 decimal places"},
		{name: "NaN", percentages: []float64{math.NaN()}, wantErr: "Percentage at index 0 must be a valid number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePercentages(tt.percentages)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRequest(t *testing.T) {
	participants := []domain.Participant{
		{ID: domain.StringID("a"), Name: "Alice", Percentage: domain.Float64Ptr(40)},
		{ID: domain.StringID("b"), Name: "Bob", Percentage: domain.Float64Ptr(40)},
	}

	if err := ValidateRequest(domain.SplitMethodEqual, 10, participants); err != nil {
		t.Errorf("equal: unexpected error %v", err)
	}

	err := ValidateRequest(domain.SplitMethodPercentage, 10, participants)
	if err == nil || !strings.Contains(err.Error(), "current total: 80.00%") {
		t.Errorf("percentage: expected sum error, got %v", err)
	}

	err = ValidateRequest("lottery", 10, participants)
	if err == nil || err.Error() != "Unsupported split method: lottery" {
		t.Errorf("unknown method: got %v", err)
	}
}
