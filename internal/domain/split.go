package domain

import "time"

type SplitMethod string

const (
	SplitMethodEqual      SplitMethod = "equal"
	SplitMethodWeighted   SplitMethod = "weighted"
	SplitMethodPercentage SplitMethod = "percentage"
)

func (m SplitMethod) IsValid() bool {
	switch m {
	case SplitMethodEqual, SplitMethodWeighted, SplitMethodPercentage:
		return true
	}
	return false
}

// Allocation is the share owed by one participant.
type Allocation struct {
	ParticipantID   ParticipantID `json:"participantId"`
	ParticipantName string        `json:"participantName"`
	Amount          float64       `json:"amount"`
	Currency        string        `json:"currency"`

	// Weighted split only
	Weight           *float64 `json:"weight,omitempty"`
	NormalizedWeight *float64 `json:"normalizedWeight,omitempty"`

	// Percentage split only
	Percentage *float64 `json:"percentage,omitempty"`
}

// SplitResult is the output of one split call. Method specific metadata is
// only populated for the method that produced it.
type SplitResult struct {
	Splits           []Allocation `json:"splits"`
	Total            float64      `json:"total"`
	Currency         string       `json:"currency"`
	Method           SplitMethod  `json:"method"`
	ParticipantCount int          `json:"participantCount"`

	// Equal split
	BaseAmount *float64 `json:"baseAmount,omitempty"`
	Remainder  *float64 `json:"remainder,omitempty"`

	// Weighted split
	TotalWeight       *float64  `json:"totalWeight,omitempty"`
	NormalizedWeights []float64 `json:"normalizedWeights,omitempty"`

	// Percentage split
	TotalPercentage *float64 `json:"totalPercentage,omitempty"`
}

// SplitEnvelope is the success/failure wrapper around a split; exactly one of
// Data and Error is set.
type SplitEnvelope struct {
	Success bool         `json:"success"`
	Data    *SplitResult `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
}

func NewSplitEnvelope(result *SplitResult, err error) SplitEnvelope {
	if err != nil {
		return SplitEnvelope{Success: false, Error: err.Error()}
	}
	return SplitEnvelope{Success: true, Data: result}
}

// ExpenseSplit is a split result bound to an expense, as stored and served by
// the expense service.
type ExpenseSplit struct {
	ExpenseID string       `json:"expenseId"`
	Amount    float64      `json:"amount"`
	Result    *SplitResult `json:"result"`
	Persisted bool         `json:"persisted"`
	CreatedAt time.Time    `json:"createdAt"`
}

func Float64Ptr(v float64) *float64 {
	return &v
}
