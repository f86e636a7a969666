package splitter

import (
	"fmt"
	"reflect"
	"testing"

	"pgregory.net/rapid"

	"github.com/hxuan190/fairsplit/internal/domain"
)

var propertyCurrencies = []string{"USD", "JPY", "KWD", "BTC"}

// genAmount draws a valid amount with at most four decimals. Bitcoin amounts
// stay small enough for satoshi counts to be exact in a float64.
func genAmount(t *rapid.T, currency string) float64 {
	maxUnits := int64(MaxAmount) * 10_000
	if currency == "BTC" {
		maxUnits = 1_000_000 * 10_000
	}
	units := rapid.Int64Range(1, maxUnits).Draw(t, "amountUnits")
	return float64(units) / 10_000
}

func genPeople(t *rapid.T) []domain.Participant {
	n := rapid.IntRange(1, 50).Draw(t, "participants")
	return people(n)
}

// genPercentages draws n percentages with two decimals that sum to exactly 100.
func genPercentages(t *rapid.T, n int) []float64 {
	remaining := 10_000
	out := make([]float64, n)
	for i := 0; i < n-1; i++ {
		bp := rapid.IntRange(0, remaining).Draw(t, fmt.Sprintf("bp%d", i))
		out[i] = float64(bp) / 100
		remaining -= bp
	}
	out[n-1] = float64(remaining) / 100
	return out
}

func drawSplit(t *rapid.T) (domain.SplitMethod, float64, []domain.Participant, string) {
	currency := rapid.SampledFrom(propertyCurrencies).Draw(t, "currency")
	method := rapid.SampledFrom([]domain.SplitMethod{
		domain.SplitMethodEqual,
		domain.SplitMethodWeighted,
		domain.SplitMethodPercentage,
	}).Draw(t, "method")
	amount := genAmount(t, currency)
	participants := genPeople(t)

	switch method {
	case domain.SplitMethodWeighted:
		for i := range participants {
			w := rapid.IntRange(1, 1_000).Draw(t, fmt.Sprintf("w%d", i))
			participants[i].Weight = domain.Float64Ptr(float64(w))
		}
	case domain.SplitMethodPercentage:
		percentages := genPercentages(t, len(participants))
		for i := range participants {
			participants[i].Percentage = domain.Float64Ptr(percentages[i])
		}
	}
	return method, amount, participants, currency
}

func TestSplitSumsToRoundedAmount(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		method, amount, participants, currency := drawSplit(t)

		result, err := Split(method, amount, participants, currency)
		if err != nil {
			t.Fatalf("%s split of %v %s failed: %v", method, amount, currency, err)
		}

		precision := CurrencyPrecision(currency)
		want := toMinorUnits(RoundToCurrency(amount, currency), precision)
		if got := sumMinorUnits(result); got != want {
			t.Fatalf("%s split of %v %s sums to %d minor units, expected %d", method, amount, currency, got, want)
		}
		if result.Total != RoundToCurrency(amount, currency) {
			t.Fatalf("total = %v, expected %v", result.Total, RoundToCurrency(amount, currency))
		}
	})
}

func TestSplitSharesAreNonNegativeWholeUnits(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		method, amount, participants, currency := drawSplit(t)

		result, err := Split(method, amount, participants, currency)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Splits) != len(participants) {
			t.Fatalf("got %d splits for %d participants", len(result.Splits), len(participants))
		}
		for i, s := range result.Splits {
			if s.Amount < 0 {
				t.Fatalf("split %d is negative: %v", i, s.Amount)
			}
			if RoundToCurrency(s.Amount, currency) != s.Amount {
				t.Fatalf("split %d (%v) is not a whole number of minimum units", i, s.Amount)
			}
			if s.ParticipantID != participants[i].ID {
				t.Fatalf("split %d is out of input order", i)
			}
		}
	})
}

func TestSplitIsDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		method, amount, participants, currency := drawSplit(t)

		first, err := Split(method, amount, participants, currency)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := Split(method, amount, participants, currency)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("identical inputs produced different results")
		}
	})
}

func TestEqualSplitSharesDifferByAtMostOneUnit(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		currency := rapid.SampledFrom(propertyCurrencies).Draw(t, "currency")
		amount := genAmount(t, currency)
		participants := genPeople(t)

		result, err := EqualSplit(amount, participants, currency)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		precision := CurrencyPrecision(currency)
		base := toMinorUnits(*result.BaseAmount, precision)
		remainder := toMinorUnits(*result.Remainder, precision)
		if remainder < 0 || remainder > int64(len(participants)) {
			t.Fatalf("remainder %d units outside [0, %d]", remainder, len(participants))
		}
		for i, s := range result.Splits {
			units := toMinorUnits(s.Amount, precision)
			if units != base && units != base+1 {
				t.Fatalf("split %d has %d units, base is %d", i, units, base)
			}
		}
	})
}

func TestDistributeRemainderPreservesTotal(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 30).Draw(t, "n")
		shares := make([]float64, n)
		var total int64
		for i := range shares {
			units := rapid.Int64Range(1, 1_000_000).Draw(t, fmt.Sprintf("s%d", i))
			shares[i] = float64(units) / 100
			total += units
		}
		remainderUnits := rapid.Int64Range(0, int64(n)*3).Draw(t, "remainder")

		out := DistributeRemainder(shares, float64(remainderUnits)/100, "USD")

		var got int64
		for _, v := range out {
			got += toMinorUnits(v, 2)
		}
		if got != total+remainderUnits {
			t.Fatalf("total %d, expected %d", got, total+remainderUnits)
		}
	})
}
