package expense

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	container "github.com/thehyperflames/dicontainer-go"
	"golang.org/x/sync/errgroup"

	"github.com/hxuan190/fairsplit/internal/adapters/persistence"
	"github.com/hxuan190/fairsplit/internal/config"
	"github.com/hxuan190/fairsplit/internal/domain"
	"github.com/hxuan190/fairsplit/internal/metrics"
	"github.com/hxuan190/fairsplit/internal/services"
	"github.com/hxuan190/fairsplit/internal/services/splitter"
)

const (
	EXPENSE_SERVICE = "expense-service"

	MaxBatchSize   = 100
	batchWorkers   = 8
	maxExpenseID   = 128
	defaultCacheSz = 1000
)

var (
	ErrExpenseNotFound = errors.New("expense split not found")
	ErrBatchEmpty      = errors.New("batch must contain at least one request")
	ErrBatchTooLarge   = fmt.Errorf("batch cannot contain more than %d requests", MaxBatchSize)
)

// SplitStore is the persistence the service needs. *persistence.Storage
// satisfies it.
type SplitStore interface {
	SaveSplit(split *domain.ExpenseSplit) error
	SaveSplitBatch(splits []*domain.ExpenseSplit) error
	LoadSplit(expenseID string) (*domain.ExpenseSplit, error)
	LoadAllSplits() ([]*domain.ExpenseSplit, error)
	GetSplitCount() (int, error)
	Close() error
}

// BatchItem is the outcome of one request of a batch. Exactly one of Split
// and Err is set.
type BatchItem struct {
	Index int
	Split *domain.ExpenseSplit
	Err   error
}

// Service binds split results to expenses. It runs the split engine, keeps
// recent results in memory and stores them when asked to.
type Service struct {
	container.BaseDIInstance
	logger *services.ServiceLogger
	config *config.SplitConfig

	mu      sync.RWMutex
	storage SplitStore
	recent  *lru.Cache[string, *domain.ExpenseSplit]

	now   func() time.Time
	newID func() string
}

// NewService builds a ready to use service. storage may be nil, in which
// case nothing is persisted.
func NewService(cfg *config.SplitConfig, storage SplitStore) *Service {
	svc := &Service{}
	svc.init(cfg, storage)
	return svc
}

func (svc *Service) init(cfg *config.SplitConfig, storage SplitStore) {
	if cfg == nil {
		cfg = &config.SplitConfig{DefaultCurrency: splitter.DefaultCurrency, CacheSize: defaultCacheSz}
	}
	size := cfg.CacheSize
	if size <= 0 {
		size = defaultCacheSz
	}
	// lru.New only fails on a non-positive size
	recent, _ := lru.New[string, *domain.ExpenseSplit](size)

	svc.logger = services.NewServiceLogger(svc)
	svc.config = cfg
	svc.storage = storage
	svc.recent = recent
	svc.now = func() time.Time { return time.Now().UTC() }
	svc.newID = uuid.NewString
}

func (svc *Service) ID() string {
	return EXPENSE_SERVICE
}

func (svc *Service) Configure(c container.IContainer) error {
	cfg := c.GetConfig(config.SPLIT_CONFIG_KEY).(*config.SplitConfig)
	if cfg == nil {
		return errors.New("invalid split config")
	}

	var storage SplitStore
	if cfg.PersistenceEnabled {
		s, err := persistence.NewStorage(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open split storage: %w", err)
		}
		storage = s
	}

	svc.init(cfg, storage)
	return nil
}

func (svc *Service) Start() error {
	if svc.storage == nil {
		svc.logger.Info().Msg("persistence disabled, splits are kept in memory only")
		return nil
	}

	count, err := svc.storage.GetSplitCount()
	if err != nil {
		svc.logger.Warn().Err(err).Msg("failed to count stored splits")
		return nil
	}
	metrics.StoredSplits.Set(float64(count))
	svc.logger.Info().Int("stored", count).Msg("expense service started")
	return nil
}

func (svc *Service) Stop() error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if svc.storage == nil {
		return nil
	}
	err := svc.storage.Close()
	svc.storage = nil
	return err
}

// DefaultCurrency is applied to requests without a currency.
func (svc *Service) DefaultCurrency() string {
	return svc.config.DefaultCurrency
}

// PersistenceEnabled reports whether persist requests reach disk.
func (svc *Service) PersistenceEnabled() bool {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return svc.storage != nil
}

// Validate runs only the validation stage for req.
func (svc *Service) Validate(req domain.SplitRequest) error {
	if req.Amount == nil {
		return &splitter.ValidationError{Field: "amount", Message: splitter.MsgAmountRequired}
	}
	return splitter.ValidateRequest(req.Method, *req.Amount, req.Participants)
}

// Calculate splits one expense. The result is cached and, when req.Persist is
// set and persistence is enabled, stored under the expense id.
func (svc *Service) Calculate(ctx context.Context, req domain.SplitRequest) (*domain.ExpenseSplit, error) {
	split, err := svc.compute(ctx, req)
	if err != nil {
		return nil, err
	}

	if req.Persist {
		if err := svc.persist(split); err != nil {
			return nil, err
		}
	}

	svc.remember(split)
	return split, nil
}

// CalculateBatch splits up to MaxBatchSize expenses. Items fail on their own;
// the returned error only reports a malformed batch or a failed batch write.
func (svc *Service) CalculateBatch(ctx context.Context, reqs []domain.SplitRequest) ([]BatchItem, error) {
	if len(reqs) == 0 {
		return nil, ErrBatchEmpty
	}
	if len(reqs) > MaxBatchSize {
		return nil, ErrBatchTooLarge
	}
	metrics.BatchSize.Observe(float64(len(reqs)))

	items := make([]BatchItem, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchWorkers)
	for i := range reqs {
		g.Go(func() error {
			split, err := svc.compute(gctx, reqs[i])
			items[i] = BatchItem{Index: i, Split: split, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	seen := make(map[string]int, len(items))
	toStore := make([]*domain.ExpenseSplit, 0, len(items))
	for i := range items {
		if items[i].Err != nil {
			continue
		}
		id := items[i].Split.ExpenseID
		if first, dup := seen[id]; dup {
			items[i] = BatchItem{Index: i, Err: &splitter.ValidationError{
				Field:   "expenseId",
				Message: fmt.Sprintf("Duplicate expense id in batch: %s (first used by request %d)", id, first),
			}}
			continue
		}
		seen[id] = i
		if reqs[i].Persist {
			toStore = append(toStore, items[i].Split)
		}
	}

	if len(toStore) > 0 {
		if err := svc.persistBatch(toStore); err != nil {
			return nil, err
		}
	}

	for _, item := range items {
		if item.Err == nil {
			svc.remember(item.Split)
		}
	}
	return items, nil
}

// Get returns a split by expense id from memory or storage.
func (svc *Service) Get(ctx context.Context, expenseID string) (*domain.ExpenseSplit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if split, ok := svc.recent.Get(expenseID); ok {
		metrics.SplitCacheHits.Inc()
		return split, nil
	}
	metrics.SplitCacheMisses.Inc()

	svc.mu.RLock()
	storage := svc.storage
	svc.mu.RUnlock()
	if storage == nil {
		return nil, ErrExpenseNotFound
	}

	split, err := storage.LoadSplit(expenseID)
	if errors.Is(err, persistence.ErrSplitNotFound) {
		return nil, ErrExpenseNotFound
	}
	if err != nil {
		metrics.StorageErrors.WithLabelValues("load").Inc()
		return nil, fmt.Errorf("failed to load split %s: %w", expenseID, err)
	}

	svc.remember(split)
	return split, nil
}

// List returns every known split, stored and in memory, newest first.
func (svc *Service) List(ctx context.Context) ([]*domain.ExpenseSplit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.ExpenseSplit)

	svc.mu.RLock()
	storage := svc.storage
	svc.mu.RUnlock()
	if storage != nil {
		stored, err := storage.LoadAllSplits()
		if err != nil {
			metrics.StorageErrors.WithLabelValues("list").Inc()
			return nil, fmt.Errorf("failed to list splits: %w", err)
		}
		for _, s := range stored {
			byID[s.ExpenseID] = s
		}
	}
	for _, s := range svc.recent.Values() {
		if _, ok := byID[s.ExpenseID]; !ok {
			byID[s.ExpenseID] = s
		}
	}

	out := make([]*domain.ExpenseSplit, 0, len(byID))
	for _, s := range byID {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ExpenseID < out[j].ExpenseID
	})
	return out, nil
}

func (svc *Service) compute(ctx context.Context, req domain.SplitRequest) (*domain.ExpenseSplit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	method := methodLabel(req.Method)
	if req.Amount == nil {
		metrics.SplitRequests.WithLabelValues(method, "invalid").Inc()
		return nil, &splitter.ValidationError{Field: "amount", Message: splitter.MsgAmountRequired}
	}

	expenseID := strings.TrimSpace(req.ExpenseID)
	if len(expenseID) > maxExpenseID {
		return nil, &splitter.ValidationError{
			Field:   "expenseId",
			Message: fmt.Sprintf("Expense id cannot exceed %d characters", maxExpenseID),
		}
	}
	if expenseID == "" {
		expenseID = svc.newID()
	}

	currency := req.Currency
	if strings.TrimSpace(currency) == "" {
		currency = svc.config.DefaultCurrency
	}

	start := time.Now()
	result, err := splitter.Split(req.Method, *req.Amount, req.Participants, currency)
	metrics.SplitDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	metrics.SplitRequests.WithLabelValues(method, statusLabel(err)).Inc()

	if err != nil {
		event := svc.logger.Debug()
		if !errors.Is(err, splitter.ErrValidation) {
			event = svc.logger.Error()
		}
		event.Err(err).
			Str("expenseId", expenseID).
			Str("method", string(req.Method)).
			Float64("amount", *req.Amount).
			Msg("split failed")
		return nil, err
	}

	metrics.SplitParticipants.Observe(float64(result.ParticipantCount))
	if result.Remainder != nil {
		units := *result.Remainder / splitter.MinimumUnit(result.Currency)
		metrics.RemainderUnits.WithLabelValues(result.Currency).Observe(units)
	}

	return &domain.ExpenseSplit{
		ExpenseID: expenseID,
		Amount:    *req.Amount,
		Result:    result,
		CreatedAt: svc.now(),
	}, nil
}

func (svc *Service) persist(split *domain.ExpenseSplit) error {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	if svc.storage == nil {
		svc.logger.Warn().Str("expenseId", split.ExpenseID).Msg("persist requested but persistence is disabled")
		return nil
	}
	if err := svc.storage.SaveSplit(split); err != nil {
		metrics.StorageErrors.WithLabelValues("save").Inc()
		return fmt.Errorf("failed to store split %s: %w", split.ExpenseID, err)
	}
	split.Persisted = true
	svc.refreshStoredCount()
	return nil
}

func (svc *Service) persistBatch(splits []*domain.ExpenseSplit) error {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	if svc.storage == nil {
		svc.logger.Warn().Int("count", len(splits)).Msg("persist requested but persistence is disabled")
		return nil
	}
	if err := svc.storage.SaveSplitBatch(splits); err != nil {
		metrics.StorageErrors.WithLabelValues("save_batch").Inc()
		return fmt.Errorf("failed to store split batch: %w", err)
	}
	for _, s := range splits {
		s.Persisted = true
	}
	svc.refreshStoredCount()
	return nil
}

// refreshStoredCount must be called with mu held.
func (svc *Service) refreshStoredCount() {
	if count, err := svc.storage.GetSplitCount(); err == nil {
		metrics.StoredSplits.Set(float64(count))
	}
}

func (svc *Service) remember(split *domain.ExpenseSplit) {
	svc.recent.Add(split.ExpenseID, split)
	metrics.SplitCacheSize.Set(float64(svc.recent.Len()))
}

// methodLabel keeps caller supplied method names out of metric labels.
func methodLabel(m domain.SplitMethod) string {
	if m.IsValid() {
		return string(m)
	}
	return "unknown"
}

func statusLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, splitter.ErrValidation):
		return "invalid"
	case errors.Is(err, splitter.ErrTotalMismatch):
		return "mismatch"
	}
	return "error"
}
