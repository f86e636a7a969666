package splitter

import (
	"math"
	"strings"

	"github.com/hxuan190/fairsplit/internal/domain"
)

const (
	MaxAmount              = 1_000_000_000
	MaxAmountDecimals      = 4
	MaxParticipants        = 1000
	MaxWeight              = 1_000_000
	MaxPercentageDecimals  = 2
	percentageSumTolerance = 1e-9

	// MsgAmountRequired is reported by the transport layers when no amount was sent.
	MsgAmountRequired = "Amount is required"
)

func ValidateAmount(amount float64) error {
	if !isFinite(amount) {
		return newValidationError("amount", "Amount must be a valid number")
	}
	if amount <= 0 {
		return newValidationError("amount", "Amount must be greater than zero")
	}
	if amount > MaxAmount {
		return newValidationError("amount", "Amount cannot exceed 1,000,000,000")
	}
	if decimalPlaces(amount) > MaxAmountDecimals {
		return newValidationError("amount", "Amount cannot have more than %d decimal places", MaxAmountDecimals)
	}
	return nil
}

func ValidateParticipants(participants []domain.Participant) error {
	if len(participants) == 0 {
		return newValidationError("participants", "Participants must be a non-empty list")
	}
	if len(participants) > MaxParticipants {
		return newValidationError("participants", "Too many participants (maximum %d)", MaxParticipants)
	}

	seen := make(map[string]struct{}, len(participants))
	for i, p := range participants {
		if p.ID.IsZero() {
			return newValidationError("participants", "Participant at index %d must have a valid id", i)
		}
		if strings.TrimSpace(p.Name) == "" {
			return newValidationError("participants", "Participant at index %d must have a non-empty name", i)
		}
		key := p.ID.Key()
		if _, dup := seen[key]; dup {
			return newValidationError("participants", "Duplicate participant id: %s", p.ID.String())
		}
		seen[key] = struct{}{}
	}
	return nil
}

func ValidateWeights(weights []float64) error {
	if len(weights) == 0 {
		return newValidationError("weights", "Weights must be a non-empty list")
	}

	var total float64
	for i, w := range weights {
		if !isFinite(w) {
			return newValidationError("weights", "Weight at index %d must be a valid number", i)
		}
		if w <= 0 {
			return newValidationError("weights", "Weight at index %d must be positive", i)
		}
		if w > MaxWeight {
			return newValidationError("weights", "Weight at index %d cannot exceed 1,000,000", i)
		}
		total += w
	}
	if total <= 0 {
		return newValidationError("weights", "Total weight must be greater than zero")
	}
	return nil
}

func ValidatePercentages(percentages []float64) error {
	if len(percentages) == 0 {
		return newValidationError("percentages", "Percentages must be a non-empty list")
	}

	for i, p := range percentages {
		if !isFinite(p) {
			return newValidationError("percentages", "Percentage at index %d must be a valid number", i)
		}
		if p < 0 || p > 100 {
			return newValidationError("percentages", "Percentage at index %d must be between 0 and 100", i)
		}
		if decimalPlaces(p) > MaxPercentageDecimals {
			return newValidationError("percentages", "Percentage at index %d cannot have more than %d decimal places", i, MaxPercentageDecimals)
		}
	}

	total := safeSum(percentages)
	if math.Abs(total-100) > percentageSumTolerance {
		return newValidationError("percentages", "Percentages must sum to 100%% (current total: %.2f%%)", total)
	}
	return nil
}
