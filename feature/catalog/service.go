package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"catalog-sync/core/database"
	"catalog-sync/core/reconcile"
	"catalog-sync/core/scryfall"
	"catalog-sync/feature/catalog/models"
	catalogReconcile "catalog-sync/feature/catalog/reconcile"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// ErrImportInProgress is returned when an import is requested while another one runs.
var ErrImportInProgress = errors.New("an import is already in progress")

// CatalogClient fetches the external catalog.
type CatalogClient interface {
	FetchSets(ctx context.Context) ([]scryfall.SetRecord, error)
	FetchCatalog(ctx context.Context) ([]scryfall.CardRecord, error)
}

// ImportOptions tunes a single import.
type ImportOptions struct {
	// Flush deletes every catalog row before reconciling, inside the same transaction.
	Flush bool
}

// Service coordinates catalog imports. At most one import runs at a time per Service.
type Service struct {
	client      CatalogClient
	db          *gorm.DB
	uow         database.UnitOfWork
	logger      *zap.Logger
	metrics     *Metrics
	autoMigrate bool

	running   sync.Mutex
	summaries singleflight.Group
}

// NewService creates a catalog service. metrics may be nil.
func NewService(client CatalogClient, db *gorm.DB, logger *zap.Logger, metrics *Metrics, autoMigrate bool) *Service {
	return &Service{
		client:      client,
		db:          db,
		uow:         database.NewUnitOfWork(db),
		logger:      logger,
		metrics:     metrics,
		autoMigrate: autoMigrate,
	}
}

// Import reconciles the external catalog into the store as one transaction:
// sets first, then the cards within scope, then removal of printings without an
// external identifier. On any error the store is left as it was.
func (s *Service) Import(ctx context.Context, scope reconcile.Scope, opts ImportOptions) (*models.ImportStats, error) {
	if !s.running.TryLock() {
		return nil, ErrImportInProgress
	}
	defer s.running.Unlock()

	log := s.logger.With(zap.String("scope", scope.String()), zap.Bool("flush", opts.Flush))
	log.Info("Import started")
	start := time.Now()

	stats, err := s.runImport(ctx, scope, opts, log)
	elapsed := time.Since(start)
	s.metrics.observe(stats, err, elapsed)
	if err != nil {
		log.Error("Import failed", zap.Error(err), zap.Duration("elapsed", elapsed))
		return nil, err
	}

	stats.Duration = elapsed
	stats.DurationMS = elapsed.Milliseconds()
	log.Info("Import finished",
		zap.Int64("sets", stats.Sets),
		zap.Int64("cards", stats.Cards),
		zap.Int64("printings", stats.Printings),
		zap.Int64("orphans_removed", stats.OrphansRemoved),
		zap.Duration("elapsed", elapsed),
	)
	return stats, nil
}

func (s *Service) runImport(ctx context.Context, scope reconcile.Scope, opts ImportOptions, log *zap.Logger) (*models.ImportStats, error) {
	if s.autoMigrate {
		if err := s.Migrate(ctx); err != nil {
			return nil, err
		}
	}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}

	var stats *models.ImportStats
	err := s.uow.Do(ctx, func(tx *gorm.DB) error {
		if opts.Flush {
			if err := flush(ctx, tx); err != nil {
				return err
			}
			log.Warn("Catalog flushed")
		}

		before, err := countTotals(ctx, tx)
		if err != nil {
			return err
		}

		r := catalogReconcile.New(tx, log)

		sets, err := s.client.FetchSets(ctx)
		if err != nil {
			return err
		}
		if _, err := r.SyncSets(ctx, sets); err != nil {
			return err
		}

		cards, err := s.client.FetchCatalog(ctx)
		if err != nil {
			return err
		}
		if _, err := r.SyncCards(ctx, cards, scope); err != nil {
			return err
		}

		// Counted before the orphan sweep so removals do not offset creations.
		after, err := countTotals(ctx, tx)
		if err != nil {
			return err
		}

		removed, err := removeOrphans(ctx, tx)
		if err != nil {
			return err
		}
		if removed > 0 {
			log.Info("Removed printings without external id", zap.Int64("count", removed))
		}

		st := after.Since(before)
		st.Scope = scope.String()
		st.OrphansRemoved = removed
		st.Flushed = opts.Flush
		stats = &st
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// Summary returns the current row counts. Concurrent callers share one query.
func (s *Service) Summary(ctx context.Context) (*models.Totals, error) {
	v, err, _ := s.summaries.Do("summary", func() (any, error) {
		totals, err := countTotals(ctx, s.db)
		if err != nil {
			return nil, err
		}
		return &totals, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Totals), nil
}

// Migrate creates or updates the catalog tables.
func (s *Service) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return &reconcile.StorageError{Op: "migrate", Err: err}
	}
	return nil
}

// Logger returns the service logger.
func (s *Service) Logger() *zap.Logger {
	return s.logger
}

func countTotals(ctx context.Context, db *gorm.DB) (models.Totals, error) {
	var t models.Totals
	counts := []struct {
		model any
		dest  *int64
		where string
	}{
		{&models.Set{}, &t.Sets, ""},
		{&models.SetType{}, &t.SetTypes, ""},
		{&models.Card{}, &t.Cards, ""},
		{&models.Printing{}, &t.Printings, ""},
		{&models.Artist{}, &t.Artists, ""},
		{&models.FrameEffect{}, &t.FrameEffects, ""},
		{&models.PromoType{}, &t.PromoTypes, ""},
		{&models.Printing{}, &t.OrphanPrintings, "external_id IS NULL"},
	}
	for _, c := range counts {
		q := db.WithContext(ctx).Model(c.model)
		if c.where != "" {
			q = q.Where(c.where)
		}
		if err := q.Count(c.dest).Error; err != nil {
			return t, &reconcile.StorageError{Op: "count", Entity: fmt.Sprintf("%T", c.model), Err: err}
		}
	}
	return t, nil
}

// removeOrphans deletes printings without an external identifier and their tag links.
// Their cards are kept.
func removeOrphans(ctx context.Context, tx *gorm.DB) (int64, error) {
	orphans := tx.Model(&models.Printing{}).Select("id").Where("external_id IS NULL")
	for table := range models.JoinTables {
		if err := tx.WithContext(ctx).Exec("DELETE FROM "+table+" WHERE printing_id IN (?)", orphans).Error; err != nil {
			return 0, &reconcile.StorageError{Op: "delete", Entity: table, Err: err}
		}
	}

	res := tx.WithContext(ctx).Where("external_id IS NULL").Delete(&models.Printing{})
	if res.Error != nil {
		return 0, &reconcile.StorageError{Op: "delete", Entity: "orphan printings", Err: res.Error}
	}
	return res.RowsAffected, nil
}

// flush deletes every catalog row, children first.
func flush(ctx context.Context, tx *gorm.DB) error {
	for table := range models.JoinTables {
		if err := tx.WithContext(ctx).Exec("DELETE FROM " + table).Error; err != nil {
			return &reconcile.StorageError{Op: "flush", Entity: table, Err: err}
		}
	}

	all := tx.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, model := range []any{
		&models.Printing{},
		&models.Card{},
		&models.Artist{},
		&models.Set{},
		&models.SetType{},
		&models.FrameEffect{},
		&models.PromoType{},
	} {
		if err := all.Delete(model).Error; err != nil {
			return &reconcile.StorageError{Op: "flush", Entity: "catalog", Err: err}
		}
	}
	return nil
}
