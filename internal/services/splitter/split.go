// Package splitter computes how an amount is shared between participants
// under the equal, weighted and percentage policies. Every function is pure:
// inputs are never modified and no state is kept between calls, so the
// package is safe for concurrent use without locking.
//
// Each split guarantees that the shares are non-negative and that, rounded to
// the currency precision, they add up exactly to the rounded input amount.
package splitter

import (
	"math"
	"slices"

	"github.com/hxuan190/fairsplit/internal/domain"
)

// SplitFunc is the common signature of the split algorithms.
type SplitFunc func(amount float64, participants []domain.Participant, currency string) (*domain.SplitResult, error)

// ForMethod returns the algorithm for method.
func ForMethod(method domain.SplitMethod) (SplitFunc, error) {
	switch method {
	case domain.SplitMethodEqual:
		return EqualSplit, nil
	case domain.SplitMethodWeighted:
		return WeightedSplit, nil
	case domain.SplitMethodPercentage:
		return PercentageSplit, nil
	}
	return nil, newValidationError("method", "Unsupported split method: %s", method)
}

// Split runs the algorithm registered for method.
func Split(method domain.SplitMethod, amount float64, participants []domain.Participant, currency string) (*domain.SplitResult, error) {
	fn, err := ForMethod(method)
	if err != nil {
		return nil, err
	}
	return fn(amount, participants, currency)
}

// ValidateRequest runs only the validation stage of method.
func ValidateRequest(method domain.SplitMethod, amount float64, participants []domain.Participant) error {
	if !method.IsValid() {
		return newValidationError("method", "Unsupported split method: %s", method)
	}
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	if err := ValidateParticipants(participants); err != nil {
		return err
	}

	switch method {
	case domain.SplitMethodWeighted:
		weights := make([]float64, len(participants))
		for i, p := range participants {
			weights[i] = p.WeightOrDefault()
		}
		return ValidateWeights(weights)
	case domain.SplitMethodPercentage:
		percentages := make([]float64, len(participants))
		for i, p := range participants {
			percentages[i] = p.PercentageOrZero()
		}
		return ValidatePercentages(percentages)
	}
	return nil
}

// settleRoundingDifference puts the gap between amount and the sum of the
// independently rounded shares on the participant with the largest stake
// (first one on ties). If taking a negative gap would push that share below
// zero, the gap is drained from the next largest stakeholders in turn.
func settleRoundingDifference(splits []domain.Allocation, stakes []float64, amount float64, currency string) []domain.Allocation {
	out := slices.Clone(splits)
	if len(out) == 0 {
		return out
	}

	precision := CurrencyPrecision(currency)
	factor := math.Pow10(precision)

	diffUnits := toMinorUnits(RoundToCurrency(amount, currency), precision)
	for _, s := range out {
		diffUnits -= toMinorUnits(s.Amount, precision)
	}
	if diffUnits == 0 {
		return out
	}

	order := stakeholderOrder(stakes)
	largest := order[0]
	if have := toMinorUnits(out[largest].Amount, precision); have+diffUnits >= 0 {
		out[largest].Amount = float64(have+diffUnits) / factor
		return out
	}

	remaining := -diffUnits
	for _, idx := range order {
		if remaining == 0 {
			break
		}
		have := toMinorUnits(out[idx].Amount, precision)
		take := min(have, remaining)
		out[idx].Amount = float64(have-take) / factor
		remaining -= take
	}
	return out
}

// stakeholderOrder returns indices sorted by descending stake, stable on input order.
func stakeholderOrder(stakes []float64) []int {
	order := make([]int, len(stakes))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case stakes[a] > stakes[b]:
			return -1
		case stakes[a] < stakes[b]:
			return 1
		}
		return 0
	})
	return order
}
