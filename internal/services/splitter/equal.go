package splitter

import (
	"errors"
	"math"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"

	"github.com/hxuan190/fairsplit/internal/domain"
)

var errMinorUnitOverflow = errors.New("amount overflows minor unit range")

// EqualSplit divides amount evenly. Every participant first receives the
// floor of amount/n in minimum units; the leftover units go out largest-first
// (all tied, so in input order).
func EqualSplit(amount float64, participants []domain.Participant, currency string) (result *domain.SplitResult, err error) {
	currency = NormalizeCurrency(currency)
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	if err := ValidateParticipants(participants); err != nil {
		return nil, err
	}

	defer recoverCalculation(&result, &err)

	precision := CurrencyPrecision(currency)
	n := len(participants)

	baseUnits, err := floorDivMinorUnits(amount, precision, n)
	if err != nil {
		return nil, &CalculationError{Cause: err}
	}
	factor := math.Pow10(precision)
	baseAmount := float64(baseUnits) / factor

	// amount - baseAmount*n, counted in minimum units against the rounded total
	remainderUnits := toMinorUnits(RoundToCurrency(amount, currency), precision) - int64(baseUnits)*int64(n)
	remainder := float64(remainderUnits) / factor

	splits := make([]domain.Allocation, n)
	for i, p := range participants {
		splits[i] = domain.Allocation{
			ParticipantID:   p.ID,
			ParticipantName: p.Name,
			Amount:          baseAmount,
			Currency:        currency,
		}
	}

	splits = DistributeRemainderAllocations(splits, remainder, currency)

	if err := ValidateTotal(splits, amount, currency); err != nil {
		return nil, err
	}

	return &domain.SplitResult{
		Splits:           splits,
		Total:            RoundToCurrency(amount, currency),
		Currency:         currency,
		Method:           domain.SplitMethodEqual,
		ParticipantCount: n,
		BaseAmount:       domain.Float64Ptr(baseAmount),
		Remainder:        domain.Float64Ptr(remainder),
	}, nil
}

// floorDivMinorUnits returns floor(amount * 10^precision / n) computed on the
// exact decimal value of amount.
func floorDivMinorUnits(amount float64, precision, n int) (uint64, error) {
	scaled := decimal.NewFromFloat(amount).Shift(int32(precision)).Floor()
	total, overflow := uint256.FromBig(scaled.BigInt())
	if overflow {
		return 0, errMinorUnitOverflow
	}

	base := new(uint256.Int).Div(total, uint256.NewInt(uint64(n)))
	if !base.IsUint64() {
		return 0, errMinorUnitOverflow
	}
	return base.Uint64(), nil
}
