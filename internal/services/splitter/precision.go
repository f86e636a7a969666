package splitter

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/hxuan190/fairsplit/internal/domain"
)

const (
	// roundingEpsilon nudges values such as 1.005 (stored as 1.00499999...) over
	// the half-way point before rounding.
	roundingEpsilon = 2.220446049250313e-16

	DefaultDecimalPrecision    = 10
	DefaultPercentagePrecision = 2
)

type DecimalOp string

const (
	OpAdd      DecimalOp = "add"
	OpSubtract DecimalOp = "subtract"
	OpMultiply DecimalOp = "multiply"
	OpDivide   DecimalOp = "divide"
)

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// roundHalfUp rounds x to digits decimals, halves going towards +Inf.
func roundHalfUp(x float64, digits int) float64 {
	if !isFinite(x) {
		return 0
	}
	factor := math.Pow10(digits)
	return math.Floor((x+roundingEpsilon)*factor+0.5) / factor
}

// decimalPlaces counts the fractional digits of the shortest decimal literal of v.
func decimalPlaces(v float64) int {
	if !isFinite(v) {
		return 0
	}
	exp := decimal.NewFromFloat(v).Exponent()
	if exp >= 0 {
		return 0
	}
	return int(-exp)
}

// RoundToCurrency rounds amount to the minor unit precision of currency.
// Non-finite input yields 0.
func RoundToCurrency(amount float64, currency string) float64 {
	return roundHalfUp(amount, CurrencyPrecision(currency))
}

// toMinorUnits converts an already rounded amount into an integer count of
// minimum units.
func toMinorUnits(amount float64, precision int) int64 {
	return int64(math.Round(amount * math.Pow10(precision)))
}

// NormalizeWeights turns weights into proportions of the sum of positive
// weights. When no weight is positive the distribution is uniform.
func NormalizeWeights(weights []float64) []float64 {
	out := make([]float64, len(weights))
	if len(weights) == 0 {
		return out
	}

	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}

	if total <= 0 {
		uniform := 1 / float64(len(weights))
		for i := range out {
			out[i] = uniform
		}
		return out
	}

	for i, w := range weights {
		out[i] = w / total
	}
	return out
}

// SafeDecimalOperation applies op to a and b after scaling both to integers at
// precision decimal digits, which keeps 0.1+0.2 equal to 0.3. Division by zero,
// non-finite operands and unknown operations yield 0.
func SafeDecimalOperation(a, b float64, op DecimalOp, precision int) float64 {
	if !isFinite(a) || !isFinite(b) {
		return 0
	}
	if precision < 0 {
		precision = 0
	}

	da := decimal.NewFromFloat(a).Round(int32(precision))
	db := decimal.NewFromFloat(b).Round(int32(precision))

	var r decimal.Decimal
	switch op {
	case OpAdd:
		r = da.Add(db)
	case OpSubtract:
		r = da.Sub(db)
	case OpMultiply:
		r = da.Mul(db)
	case OpDivide:
		if db.IsZero() {
			return 0
		}
		r = da.Div(db)
	default:
		return 0
	}

	return r.InexactFloat64()
}

// safeSum adds values with SafeDecimalOperation at the default precision.
func safeSum(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum = SafeDecimalOperation(sum, v, OpAdd, DefaultDecimalPrecision)
	}
	return sum
}

// CalculatePercentage returns part as a percentage of whole, rounded to
// precision digits. A zero whole or non-finite input yields 0.
func CalculatePercentage(part, whole float64, precision int) float64 {
	if !isFinite(part) || !isFinite(whole) || whole == 0 {
		return 0
	}
	return roundHalfUp(part/whole*100, precision)
}

// IsWithinTolerance compares expected and actual. Small differences (under one
// unit) and a zero expectation use tolerance as an absolute bound; otherwise
// tolerance is a fraction of |expected|.
func IsWithinTolerance(expected, actual, tolerance float64) bool {
	if !isFinite(expected) || !isFinite(actual) || !isFinite(tolerance) {
		return false
	}
	diff := math.Abs(expected - actual)
	if diff < 1 || expected == 0 {
		return diff <= tolerance
	}
	return diff/math.Abs(expected) <= tolerance
}

// ValidateTotal checks that the allocations add up to expectedTotal once both
// sides are rounded to the currency precision.
func ValidateTotal(splits []domain.Allocation, expectedTotal float64, currency string) error {
	precision := CurrencyPrecision(currency)

	amounts := make([]float64, len(splits))
	for i, s := range splits {
		amounts[i] = s.Amount
	}
	actual := roundHalfUp(safeSum(amounts), precision)
	expected := roundHalfUp(expectedTotal, precision)

	if toMinorUnits(actual, precision) != toMinorUnits(expected, precision) {
		return &TotalMismatchError{
			Expected:  expected,
			Actual:    actual,
			Currency:  NormalizeCurrency(currency),
			precision: precision,
		}
	}
	return nil
}
