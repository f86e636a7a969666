package splitter

import (
	"github.com/hxuan190/fairsplit/internal/domain"
)

// WeightedSplit divides amount proportionally to participant weights (default
// 1). Per-share rounding error is settled on the participant with the largest
// raw weight.
func WeightedSplit(amount float64, participants []domain.Participant, currency string) (result *domain.SplitResult, err error) {
	currency = NormalizeCurrency(currency)
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	if err := ValidateParticipants(participants); err != nil {
		return nil, err
	}

	weights := make([]float64, len(participants))
	for i, p := range participants {
		weights[i] = p.WeightOrDefault()
	}
	if err := ValidateWeights(weights); err != nil {
		return nil, err
	}

	defer recoverCalculation(&result, &err)

	normalized := NormalizeWeights(weights)

	splits := make([]domain.Allocation, len(participants))
	for i, p := range participants {
		splits[i] = domain.Allocation{
			ParticipantID:    p.ID,
			ParticipantName:  p.Name,
			Amount:           RoundToCurrency(amount*normalized[i], currency),
			Currency:         currency,
			Weight:           domain.Float64Ptr(weights[i]),
			NormalizedWeight: domain.Float64Ptr(normalized[i]),
		}
	}

	splits = settleRoundingDifference(splits, weights, amount, currency)

	if err := ValidateTotal(splits, amount, currency); err != nil {
		return nil, err
	}

	return &domain.SplitResult{
		Splits:            splits,
		Total:             RoundToCurrency(amount, currency),
		Currency:          currency,
		Method:            domain.SplitMethodWeighted,
		ParticipantCount:  len(participants),
		TotalWeight:       domain.Float64Ptr(safeSum(weights)),
		NormalizedWeights: normalized,
	}, nil
}
