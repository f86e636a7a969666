package persistence

import (
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hxuan190/fairsplit/internal/domain"
	"github.com/hxuan190/fairsplit/internal/services/splitter"
)

func weightedExpense(t *testing.T) *domain.ExpenseSplit {
	t.Helper()
	participants := []domain.Participant{
		{ID: domain.StringID("alice"), Name: "Alice", Weight: domain.Float64Ptr(3)},
		{ID: domain.NumericID(42), Name: "Bob", Weight: domain.Float64Ptr(2)},
		{ID: domain.StringID("carol"), Name: "Carol", Weight: domain.Float64Ptr(1)},
	}
	result, err := splitter.WeightedSplit(100, participants, "USD")
	require.NoError(t, err)

	return &domain.ExpenseSplit{
		ExpenseID: "exp-1",
		Amount:    100,
		Result:    result,
		CreatedAt: time.UnixMilli(1_700_000_000_123).UTC(),
	}
}

func TestSplitToStoredFormatsAmounts(t *testing.T) {
	stored := SplitToStored(weightedExpense(t))

	assert.Equal(t, "exp-1", stored.ExpenseID)
	assert.Equal(t, "100", stored.Amount)
	assert.Equal(t, "100.00", stored.Total)
	assert.Equal(t, "weighted", stored.Method)
	assert.Equal(t, int64(1_700_000_000_123), stored.CreatedAt)
	require.Len(t, stored.Splits, 3)

	assert.Equal(t, "50.00", stored.Splits[0].Amount)
	assert.Equal(t, "33.33", stored.Splits[1].Amount)
	assert.Equal(t, "16.67", stored.Splits[2].Amount)

	assert.Equal(t, "42", stored.Splits[1].ParticipantID)
	assert.True(t, stored.Splits[1].NumericID)
	assert.False(t, stored.Splits[0].NumericID)

	require.NotNil(t, stored.TotalWeight)
	assert.Equal(t, "6", *stored.TotalWeight)
	assert.Nil(t, stored.BaseAmount)
	assert.Len(t, stored.NormalizedWeights, 3)
}

func TestStoredSplitRoundTrip(t *testing.T) {
	original := weightedExpense(t)

	data, err := sonic.Marshal(SplitToStored(original))
	require.NoError(t, err)

	restored, err := decodeSplit(data)
	require.NoError(t, err)

	assert.True(t, restored.Persisted)
	assert.Equal(t, original.ExpenseID, restored.ExpenseID)
	assert.Equal(t, original.Amount, restored.Amount)
	assert.True(t, original.CreatedAt.Equal(restored.CreatedAt))

	assert.Equal(t, original.Result.Total, restored.Result.Total)
	assert.Equal(t, original.Result.Method, restored.Result.Method)
	assert.Equal(t, original.Result.Currency, restored.Result.Currency)
	assert.Equal(t, *original.Result.TotalWeight, *restored.Result.TotalWeight)

	require.Len(t, restored.Result.Splits, len(original.Result.Splits))
	for i, want := range original.Result.Splits {
		got := restored.Result.Splits[i]
		assert.Equal(t, want.ParticipantID, got.ParticipantID)
		assert.Equal(t, want.ParticipantName, got.ParticipantName)
		assert.Equal(t, want.Amount, got.Amount)
		assert.Equal(t, want.Currency, got.Currency)
		assert.Equal(t, *want.Weight, *got.Weight)
	}
}

func TestStoredSplitEqualMetadata(t *testing.T) {
	participants := []domain.Participant{
		{ID: domain.StringID("a"), Name: "A"},
		{ID: domain.StringID("b"), Name: "B"},
		{ID: domain.StringID("c"), Name: "C"},
	}
	result, err := splitter.EqualSplit(1000, participants, "JPY")
	require.NoError(t, err)

	stored := SplitToStored(&domain.ExpenseSplit{ExpenseID: "jpy", Amount: 1000, Result: result, CreatedAt: time.Now()})
	require.NotNil(t, stored.BaseAmount)
	assert.Equal(t, "333", *stored.BaseAmount)
	assert.Equal(t, "1", *stored.Remainder)
	assert.Equal(t, "334", stored.Splits[0].Amount)

	restored, err := StoredToSplit(stored)
	require.NoError(t, err)
	assert.Equal(t, 333.0, *restored.Result.BaseAmount)
	assert.Equal(t, []float64{334, 333, 333}, []float64{
		restored.Result.Splits[0].Amount,
		restored.Result.Splits[1].Amount,
		restored.Result.Splits[2].Amount,
	})
}

func TestStoredToSplitRejectsCorruptRecords(t *testing.T) {
	tests := []struct {
		name   string
		stored StoredSplit
	}{
		{"bad amount", StoredSplit{Amount: "abc", Total: "1", Method: "equal"}},
		{"bad method", StoredSplit{Amount: "1", Total: "1", Method: "lottery"}},
		{"bad numeric id", StoredSplit{Amount: "1", Total: "1", Method: "equal", Splits: []StoredAllocation{
			{ParticipantID: "x", NumericID: true, Amount: "1"},
		}}},
		{"bad share", StoredSplit{Amount: "1", Total: "1", Method: "equal", Splits: []StoredAllocation{
			{ParticipantID: "x", Amount: "1.2.3"},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := StoredToSplit(&tt.stored)
			assert.Error(t, err)
		})
	}

	_, err := decodeSplit([]byte("{not json"))
	assert.Error(t, err)
}
