package splitter

import (
	"github.com/hxuan190/fairsplit/internal/domain"
)

// PercentageSplit assigns each participant its percentage of amount. The
// percentages must already add up to 100.
func PercentageSplit(amount float64, participants []domain.Participant, currency string) (result *domain.SplitResult, err error) {
	currency = NormalizeCurrency(currency)
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	if err := ValidateParticipants(participants); err != nil {
		return nil, err
	}

	percentages := make([]float64, len(participants))
	for i, p := range participants {
		percentages[i] = p.PercentageOrZero()
	}
	if err := ValidatePercentages(percentages); err != nil {
		return nil, err
	}

	defer recoverCalculation(&result, &err)

	splits := make([]domain.Allocation, len(participants))
	for i, p := range participants {
		splits[i] = domain.Allocation{
			ParticipantID:   p.ID,
			ParticipantName: p.Name,
			Amount:          RoundToCurrency(amount*percentages[i]/100, currency),
			Currency:        currency,
			Percentage:      domain.Float64Ptr(percentages[i]),
		}
	}

	splits = settleRoundingDifference(splits, percentages, amount, currency)

	if err := ValidateTotal(splits, amount, currency); err != nil {
		return nil, err
	}

	return &domain.SplitResult{
		Splits:           splits,
		Total:            RoundToCurrency(amount, currency),
		Currency:         currency,
		Method:           domain.SplitMethodPercentage,
		ParticipantCount: len(participants),
		TotalPercentage:  domain.Float64Ptr(safeSum(percentages)),
	}, nil
}
