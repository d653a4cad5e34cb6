// internal/service/insight.go
package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/opsintel/chainsight/internal/cache"
	"github.com/opsintel/chainsight/internal/classify"
	"github.com/opsintel/chainsight/internal/dataset"
	"github.com/opsintel/chainsight/internal/domain"
	"github.com/opsintel/chainsight/internal/metrics"
	"github.com/opsintel/chainsight/internal/recommend"
	"github.com/opsintel/chainsight/internal/storage"
	"github.com/opsintel/chainsight/pkg/logger"
)

// Risk tier thresholds on the combined overdue + delayed rate, in percent.
const (
	riskLowCeiling    = 10.0
	riskMediumCeiling = 25.0
)

const snapshotSection = "snapshot"

// InsightService builds dashboard pages from the configured dataset. Page
// builders share one cached snapshot per dataset state, so repeated requests
// against an unchanged file never recompute.
type InsightService struct {
	loader  *dataset.Loader
	cache   cache.SnapshotCache
	store   storage.ObjectStorage
	prefix  string
	now     func() time.Time
	mu      sync.RWMutex
	srcPath string
}

// Option tweaks service construction.
type Option func(*InsightService)

// WithClock overrides the reference-time source.
func WithClock(now func() time.Time) Option {
	return func(s *InsightService) { s.now = now }
}

// WithObjectStorage enables remote dataset ingestion: before each load, the
// newest object under prefix is pulled next to the local dataset.
func WithObjectStorage(store storage.ObjectStorage, prefix string) Option {
	return func(s *InsightService) {
		s.store = store
		s.prefix = prefix
	}
}

// NewInsightService creates the service over a dataset file.
func NewInsightService(datasetPath string, c cache.SnapshotCache, opts ...Option) *InsightService {
	s := &InsightService{
		loader:  dataset.NewLoader(),
		cache:   c,
		now:     time.Now,
		srcPath: datasetPath,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DatasetPath returns the current dataset source path.
func (s *InsightService) DatasetPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.srcPath
}

// ReplaceDataset swaps the dataset source and drops every cached snapshot.
func (s *InsightService) ReplaceDataset(ctx context.Context, path string) error {
	s.mu.Lock()
	s.srcPath = path
	s.mu.Unlock()

	if err := s.cache.InvalidateAll(ctx); err != nil {
		return fmt.Errorf("invalidate snapshot cache: %w", err)
	}
	return nil
}

// Snapshot returns the full dashboard payload, computing it when the cache
// has no entry for the current dataset state. A dataset that cannot be read
// degrades to an empty table so every page still renders.
func (s *InsightService) Snapshot(ctx context.Context) (*domain.DashboardSnapshot, error) {
	path := s.resolveSource(ctx)

	fp, fpErr := fingerprint(path)
	if fpErr == nil {
		if cached, ok, err := s.cache.Get(ctx, fp, snapshotSection); err != nil {
			logger.Log.Warn().Err(err).Msg("snapshot cache read failed, recomputing")
		} else if ok {
			return cached, nil
		}
	}

	table, err := s.loader.Load(path)
	if err != nil {
		logger.Log.Warn().Err(err).Str("source", path).Msg("dataset load failed, serving empty results")
		table = domain.EmptyTable()
	}

	snapshot, buildErr := s.buildSnapshot(ctx, table, path)
	if buildErr != nil {
		return nil, buildErr
	}

	// Only a cleanly loaded dataset state is worth caching.
	if err == nil && fpErr == nil {
		if err := s.cache.Set(ctx, fp, snapshotSection, snapshot); err != nil {
			logger.Log.Warn().Err(err).Msg("snapshot cache write failed")
		}
	}
	return snapshot, nil
}

// Overview returns the operations overview page.
func (s *InsightService) Overview(ctx context.Context) (domain.OperationsOverview, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return domain.OperationsOverview{}, err
	}
	return snapshot.Overview, nil
}

// Risk returns the supply-chain risk page.
func (s *InsightService) Risk(ctx context.Context) (domain.RiskReport, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return domain.RiskReport{}, err
	}
	return snapshot.Risk, nil
}

// Performance returns the performance analytics page.
func (s *InsightService) Performance(ctx context.Context) (domain.PerformanceReport, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return domain.PerformanceReport{}, err
	}
	return snapshot.Performance, nil
}

// Inventory returns the inventory management page.
func (s *InsightService) Inventory(ctx context.Context) (domain.InventoryReport, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return domain.InventoryReport{}, err
	}
	return snapshot.Inventory, nil
}

// Cost returns the cost-optimization page.
func (s *InsightService) Cost(ctx context.Context) (domain.CostReport, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return domain.CostReport{}, err
	}
	return snapshot.Cost, nil
}

// Recommendations returns the combined risk insights and cost
// recommendations.
func (s *InsightService) Recommendations(ctx context.Context) ([]string, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	combined := make([]string, 0, len(snapshot.Risk.Insights)+len(snapshot.Cost.Recommendations))
	combined = append(combined, snapshot.Risk.Insights...)
	combined = append(combined, snapshot.Cost.Recommendations...)
	return combined, nil
}

// buildSnapshot computes every page from a loaded table. Pages are
// independent, so they run concurrently.
func (s *InsightService) buildSnapshot(ctx context.Context, table *domain.Table, path string) (*domain.DashboardSnapshot, error) {
	today := classify.Midnight(s.now())

	snapshot := &domain.DashboardSnapshot{
		GeneratedAt: s.now().UTC(),
		Source:      path,
		Rows:        table.Len(),
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		snapshot.Overview = BuildOverview(table, today)
		return nil
	})
	g.Go(func() error {
		snapshot.Risk = BuildRisk(table)
		return nil
	})
	g.Go(func() error {
		snapshot.Performance = BuildPerformance(table, today)
		return nil
	})
	g.Go(func() error {
		snapshot.Inventory = BuildInventory(table)
		return nil
	})
	g.Go(func() error {
		snapshot.Cost = BuildCost(table)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Log.Info().
		Str("source", path).
		Int("rows", table.Len()).
		Msg("dashboard snapshot computed")
	return snapshot, nil
}

// BuildOverview computes the operations overview page for a table.
func BuildOverview(t *domain.Table, today time.Time) domain.OperationsOverview {
	delivery := metrics.DeliveryRates(t, today)
	return domain.OperationsOverview{
		Counts:    metrics.BasicCounts(t),
		Delivery:  delivery,
		RiskLevel: riskTier(delivery.OverdueRate + delivery.DelayedRate),
	}
}

// BuildRisk computes the supply-chain risk page for a table.
func BuildRisk(t *domain.Table) domain.RiskReport {
	delayedCost, delayedPct := recommend.DelayImpact(t)
	return domain.RiskReport{
		Insights:       recommend.RiskAnalysis(t),
		Partners:       metrics.LogisticsRollup(t),
		DelayedCost:    delayedCost,
		DelayedCostPct: delayedPct,
	}
}

// BuildPerformance computes the performance analytics page for a table.
func BuildPerformance(t *domain.Table, today time.Time) domain.PerformanceReport {
	report := domain.PerformanceReport{
		TotalOrders:     t.Len(),
		StatusBreakdown: metrics.StatusSummaries(t),
		Suppliers:       metrics.SupplierRollup(t),
		Methods:         metrics.MethodRollup(t),
		Warehouses:      metrics.WarehouseRollup(t),
	}

	delivery := metrics.DeliveryRates(t, today)
	report.DeliveredRate = delivery.CompletedRate
	report.AvgOrderCost = metrics.CostKPIs(t).AvgOrderCost
	if len(report.Methods) > 0 {
		report.BestMethod = report.Methods[0].Method
	}

	for _, r := range t.Records {
		if r.Status == domain.StatusDelayed || r.Status == domain.StatusPending {
			report.AtRiskOrders++
		}
	}
	return report
}

// BuildInventory computes the inventory management page for a table.
func BuildInventory(t *domain.Table) domain.InventoryReport {
	products := metrics.ProductRollup(t)
	return domain.InventoryReport{
		KPIs:     metrics.InventoryKPIs(t),
		Products: products,
		ABC:      classify.ABC(products),
	}
}

// BuildCost computes the cost-optimization page for a table.
func BuildCost(t *domain.Table) domain.CostReport {
	return domain.CostReport{
		KPIs:            metrics.CostKPIs(t),
		Recommendations: recommend.CostRecommendations(t),
	}
}

// resolveSource picks the dataset file to load. With object storage enabled,
// the newest remote object wins; a storage failure falls back to the local
// path with a warning.
func (s *InsightService) resolveSource(ctx context.Context) string {
	local := s.DatasetPath()
	if s.store == nil {
		return local
	}

	newest, found, err := storage.LatestObject(ctx, s.store, s.prefix)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("listing remote datasets failed, using local dataset")
		return local
	}
	if !found {
		return local
	}

	dest := filepath.Join(filepath.Dir(local), filepath.Base(newest.Key))
	stale, err := localStale(dest, newest)
	if err != nil {
		logger.Log.Warn().Err(err).Str("dest", dest).Msg("checking local dataset copy failed, using local dataset")
		return local
	}
	if stale {
		if err := s.store.DownloadObject(ctx, newest.Key, dest); err != nil {
			logger.Log.Warn().Err(err).Str("key", newest.Key).Msg("remote dataset pull failed, using local dataset")
			return local
		}
		logger.Log.Info().Str("key", newest.Key).Str("dest", dest).Msg("remote dataset pulled")
	}
	return dest
}

// localStale reports whether the local copy of a remote object is missing or
// smaller/older than the remote.
func localStale(path string, remote storage.ObjectInfo) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat local dataset: %w", err)
	}
	return info.Size() != remote.Size || info.ModTime().Before(remote.LastModified), nil
}

// fingerprint captures the dataset state that keys cache entries.
func fingerprint(path string) (cache.Fingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return cache.Fingerprint{}, fmt.Errorf("stat dataset %s: %w", path, err)
	}
	return cache.Fingerprint{
		Source:  path,
		ModTime: info.ModTime(),
		Size:    info.Size(),
	}, nil
}

// riskTier maps the combined overdue + delayed rate to a risk label.
func riskTier(atRiskRate float64) string {
	switch {
	case atRiskRate < riskLowCeiling:
		return domain.RiskLow
	case atRiskRate < riskMediumCeiling:
		return domain.RiskMedium
	default:
		return domain.RiskHigh
	}
}
