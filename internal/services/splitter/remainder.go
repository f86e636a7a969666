package splitter

import (
	"math"
	"slices"

	"github.com/hxuan190/fairsplit/internal/domain"
)

// DistributeRemainder spreads remainder over shares one minimum currency unit
// at a time, largest share first. The input slice is not modified.
func DistributeRemainder(shares []float64, remainder float64, currency string) []float64 {
	return distributeRemainder(shares, remainder, currency,
		func(v float64) float64 { return v },
		func(_ float64, amount float64) float64 { return amount },
	)
}

// DistributeRemainderAllocations is DistributeRemainder over allocation records.
func DistributeRemainderAllocations(allocations []domain.Allocation, remainder float64, currency string) []domain.Allocation {
	return distributeRemainder(allocations, remainder, currency,
		func(a domain.Allocation) float64 { return a.Amount },
		func(a domain.Allocation, amount float64) domain.Allocation {
			a.Amount = amount
			return a
		},
	)
}

// distributeRemainder walks participants ordered by descending amount (stable
// on input order) and cyclically adds or removes one minimum unit until the
// remainder is absorbed. A share is never reduced below one minimum unit; the
// walk gives up after len(items)*|units| steps.
func distributeRemainder[T any](items []T, remainder float64, currency string, amountOf func(T) float64, withAmount func(T, float64) T) []T {
	out := slices.Clone(items)
	if out == nil {
		out = []T{}
	}
	if len(out) == 0 || !isFinite(remainder) {
		return out
	}

	precision := CurrencyPrecision(currency)
	minUnit := 1 / math.Pow10(precision)
	units := int64(math.Round(remainder * math.Pow10(precision)))
	if units == 0 {
		return out
	}

	order := make([]int, len(out))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		av, bv := amountOf(out[a]), amountOf(out[b])
		switch {
		case av > bv:
			return -1
		case av < bv:
			return 1
		}
		return 0
	})

	maxIterations := int64(len(out)) * absInt64(units)
	for step := int64(0); units != 0 && step < maxIterations; step++ {
		idx := order[step%int64(len(order))]
		current := amountOf(out[idx])

		if units > 0 {
			out[idx] = withAmount(out[idx], roundHalfUp(current+minUnit, precision))
			units--
			continue
		}

		if toMinorUnits(current, precision)-1 >= 1 {
			out[idx] = withAmount(out[idx], roundHalfUp(current-minUnit, precision))
			units++
		}
	}

	return out
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
