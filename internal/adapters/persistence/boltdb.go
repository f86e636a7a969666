package persistence

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	boltdb "github.com/andrew-solarstorm/bolt-db"
	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/hxuan190/fairsplit/internal/domain"
	"github.com/hxuan190/fairsplit/internal/services/splitter"
)

const (
	SplitsBucket = "splits"

	DefaultDBPath = "./data/splits.db"
)

var ErrSplitNotFound = errors.New("split not found")

// StoredSplit is the on-disk form of an expense split. Amounts are kept as
// fixed-point decimal strings at the currency precision.
type StoredSplit struct {
	ExpenseID        string             `json:"expenseId"`
	Amount           string             `json:"amount"`
	Total            string             `json:"total"`
	Currency         string             `json:"currency"`
	Method           string             `json:"method"`
	ParticipantCount int                `json:"participantCount"`
	Splits           []StoredAllocation `json:"splits"`
	CreatedAt        int64              `json:"createdAt"` // unix millis

	BaseAmount        *string  `json:"baseAmount,omitempty"`
	Remainder         *string  `json:"remainder,omitempty"`
	TotalWeight       *string  `json:"totalWeight,omitempty"`
	NormalizedWeights []string `json:"normalizedWeights,omitempty"`
	TotalPercentage   *string  `json:"totalPercentage,omitempty"`
}

type StoredAllocation struct {
	ParticipantID    string  `json:"participantId"`
	NumericID        bool    `json:"numericId,omitempty"`
	ParticipantName  string  `json:"participantName"`
	Amount           string  `json:"amount"`
	Weight           *string `json:"weight,omitempty"`
	NormalizedWeight *string `json:"normalizedWeight,omitempty"`
	Percentage       *string `json:"percentage,omitempty"`
}

type Storage struct {
	db     *boltdb.BoltDatabase
	dbPath string
}

func NewStorage(dbPath string) (*Storage, error) {
	if dbPath == "" {
		dbPath = DefaultDBPath
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db := boltdb.NewBoltDatabase(dbPath)
	if db == nil {
		return nil, fmt.Errorf("failed to open database at %s", dbPath)
	}

	log.Info().Str("path", dbPath).Msg("[splitStorage] opened database")

	return &Storage{
		db:     db,
		dbPath: dbPath,
	}, nil
}

func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Storage) SaveSplit(split *domain.ExpenseSplit) error {
	data, err := sonic.Marshal(SplitToStored(split))
	if err != nil {
		return fmt.Errorf("failed to marshal split: %w", err)
	}

	return s.db.Set(SplitsBucket, []byte(split.ExpenseID), data)
}

func (s *Storage) SaveSplitBatch(splits []*domain.ExpenseSplit) error {
	if len(splits) == 0 {
		return nil
	}

	batch := s.db.NewBatch()
	for _, split := range splits {
		data, err := sonic.Marshal(SplitToStored(split))
		if err != nil {
			return fmt.Errorf("failed to marshal split %s: %w", split.ExpenseID, err)
		}

		value := data
		op := &boltdb.WriteOperation{
			Bucket: []byte(SplitsBucket),
			Key:    []byte(split.ExpenseID),
			Value:  &value,
			Op:     boltdb.OpSet,
		}
		if err := batch.Add(op); err != nil {
			return fmt.Errorf("failed to add split %s to batch: %w", split.ExpenseID, err)
		}
	}

	if err := batch.Execute(); err != nil {
		log.Error().Err(err).Int("count", len(splits)).Msg("[splitStorage] FAILED to execute batch")
		return err
	}

	log.Debug().Int("count", len(splits)).Msg("[splitStorage] saved split batch")
	return nil
}

func (s *Storage) LoadSplit(expenseID string) (*domain.ExpenseSplit, error) {
	data, err := s.db.List(SplitsBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}

	value, ok := data[expenseID]
	if !ok {
		return nil, ErrSplitNotFound
	}
	return decodeSplit(value)
}

func (s *Storage) LoadAllSplits() ([]*domain.ExpenseSplit, error) {
	data, err := s.db.List(SplitsBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}

	splits := make([]*domain.ExpenseSplit, 0, len(data))
	failed := 0
	for id, value := range data {
		split, err := decodeSplit(value)
		if err != nil {
			log.Error().Str("expenseId", id).Err(err).Msg("[splitStorage] failed to decode split, skipping")
			failed++
			continue
		}
		splits = append(splits, split)
	}

	if failed > 0 {
		log.Error().
			Int("total_in_db", len(data)).
			Int("loaded", len(splits)).
			Int("failed", failed).
			Msg("[splitStorage] split loading completed with errors")
	}

	return splits, nil
}

func (s *Storage) GetSplitCount() (int, error) {
	data, err := s.db.List(SplitsBucket)
	if err != nil {
		return 0, err
	}
	return len(data), nil
}

func decodeSplit(value []byte) (*domain.ExpenseSplit, error) {
	var stored StoredSplit
	if err := sonic.Unmarshal(value, &stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal split: %w", err)
	}
	return StoredToSplit(&stored)
}

// SplitToStored converts a split into its storage form.
func SplitToStored(split *domain.ExpenseSplit) *StoredSplit {
	result := split.Result
	if result == nil {
		result = &domain.SplitResult{}
	}
	precision := splitter.CurrencyPrecision(result.Currency)

	stored := &StoredSplit{
		ExpenseID:        split.ExpenseID,
		Amount:           formatRaw(split.Amount),
		Total:            formatFixed(result.Total, precision),
		Currency:         result.Currency,
		Method:           string(result.Method),
		ParticipantCount: result.ParticipantCount,
		Splits:           make([]StoredAllocation, len(result.Splits)),
		CreatedAt:        split.CreatedAt.UnixMilli(),
		BaseAmount:       formatFixedPtr(result.BaseAmount, precision),
		Remainder:        formatFixedPtr(result.Remainder, precision),
		TotalWeight:      formatRawPtr(result.TotalWeight),
		TotalPercentage:  formatRawPtr(result.TotalPercentage),
	}

	if len(result.NormalizedWeights) > 0 {
		stored.NormalizedWeights = make([]string, len(result.NormalizedWeights))
		for i, w := range result.NormalizedWeights {
			stored.NormalizedWeights[i] = formatRaw(w)
		}
	}

	for i, a := range result.Splits {
		stored.Splits[i] = StoredAllocation{
			ParticipantID:    a.ParticipantID.String(),
			NumericID:        a.ParticipantID.IsNumeric(),
			ParticipantName:  a.ParticipantName,
			Amount:           formatFixed(a.Amount, precision),
			Weight:           formatRawPtr(a.Weight),
			NormalizedWeight: formatRawPtr(a.NormalizedWeight),
			Percentage:       formatRawPtr(a.Percentage),
		}
	}

	return stored
}

// StoredToSplit converts a stored record back into a split.
func StoredToSplit(stored *StoredSplit) (*domain.ExpenseSplit, error) {
	amount, err := parseAmount(stored.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}
	total, err := parseAmount(stored.Total)
	if err != nil {
		return nil, fmt.Errorf("invalid total: %w", err)
	}

	method := domain.SplitMethod(stored.Method)
	if !method.IsValid() {
		return nil, fmt.Errorf("invalid method %q", stored.Method)
	}

	result := &domain.SplitResult{
		Splits:           make([]domain.Allocation, len(stored.Splits)),
		Total:            total,
		Currency:         stored.Currency,
		Method:           method,
		ParticipantCount: stored.ParticipantCount,
	}

	if result.BaseAmount, err = parseAmountPtr(stored.BaseAmount); err != nil {
		return nil, fmt.Errorf("invalid baseAmount: %w", err)
	}
	if result.Remainder, err = parseAmountPtr(stored.Remainder); err != nil {
		return nil, fmt.Errorf("invalid remainder: %w", err)
	}
	if result.TotalWeight, err = parseAmountPtr(stored.TotalWeight); err != nil {
		return nil, fmt.Errorf("invalid totalWeight: %w", err)
	}
	if result.TotalPercentage, err = parseAmountPtr(stored.TotalPercentage); err != nil {
		return nil, fmt.Errorf("invalid totalPercentage: %w", err)
	}
	if len(stored.NormalizedWeights) > 0 {
		result.NormalizedWeights = make([]float64, len(stored.NormalizedWeights))
		for i, w := range stored.NormalizedWeights {
			if result.NormalizedWeights[i], err = parseAmount(w); err != nil {
				return nil, fmt.Errorf("invalid normalized weight %d: %w", i, err)
			}
		}
	}

	for i, sa := range stored.Splits {
		id, err := parseParticipantID(sa.ParticipantID, sa.NumericID)
		if err != nil {
			return nil, fmt.Errorf("split %d: %w", i, err)
		}
		a := domain.Allocation{
			ParticipantID:   id,
			ParticipantName: sa.ParticipantName,
			Currency:        stored.Currency,
		}
		if a.Amount, err = parseAmount(sa.Amount); err != nil {
			return nil, fmt.Errorf("split %d amount: %w", i, err)
		}
		if a.Weight, err = parseAmountPtr(sa.Weight); err != nil {
			return nil, fmt.Errorf("split %d weight: %w", i, err)
		}
		if a.NormalizedWeight, err = parseAmountPtr(sa.NormalizedWeight); err != nil {
			return nil, fmt.Errorf("split %d normalized weight: %w", i, err)
		}
		if a.Percentage, err = parseAmountPtr(sa.Percentage); err != nil {
			return nil, fmt.Errorf("split %d percentage: %w", i, err)
		}
		result.Splits[i] = a
	}

	return &domain.ExpenseSplit{
		ExpenseID: stored.ExpenseID,
		Amount:    amount,
		Result:    result,
		Persisted: true,
		CreatedAt: time.UnixMilli(stored.CreatedAt).UTC(),
	}, nil
}

func parseParticipantID(value string, numeric bool) (domain.ParticipantID, error) {
	if !numeric {
		return domain.StringID(value), nil
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return domain.ParticipantID{}, fmt.Errorf("invalid numeric participant id %q: %w", value, err)
	}
	return domain.NumericID(n), nil
}

func formatFixed(v float64, precision int) string {
	return decimal.NewFromFloat(v).StringFixed(int32(precision))
}

func formatFixedPtr(v *float64, precision int) *string {
	if v == nil {
		return nil
	}
	s := formatFixed(*v, precision)
	return &s
}

func formatRaw(v float64) string {
	return decimal.NewFromFloat(v).String()
}

func formatRawPtr(v *float64) *string {
	if v == nil {
		return nil
	}
	s := formatRaw(*v)
	return &s
}

func parseAmount(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

func parseAmountPtr(s *string) (*float64, error) {
	if s == nil {
		return nil, nil
	}
	v, err := parseAmount(*s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
