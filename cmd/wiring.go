package cmd

import (
	"fmt"

	"catalog-sync/core/config"
	"catalog-sync/core/database"
	"catalog-sync/core/logger"
	"catalog-sync/core/scryfall"
	"catalog-sync/core/storage"
	"catalog-sync/feature/catalog"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime bundles the collaborators shared by every command.
type runtime struct {
	cfg      *config.Config
	log      *zap.Logger
	db       *gorm.DB
	store    storage.Client
	archiver *catalog.Archiver
	client   *scryfall.Client
}

// bootstrap loads configuration and connects the database. Object storage is only
// connected when withArchive is set or archiving is enabled in the configuration.
func bootstrap(withArchive bool) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	l = l.With(zap.String("database", cfg.Database.Driver+"/"+cfg.Database.Name))

	rt := &runtime{cfg: cfg, log: l, db: db}

	var opts []scryfall.Option
	if withArchive || cfg.Catalog.Archive {
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		rt.store = store
		rt.archiver = catalog.NewArchiver(store, cfg.Storage.Bucket, cfg.Catalog.ArchivePrefix, cfg.Catalog.ArchiveKeep, l)
		if cfg.Catalog.Archive {
			opts = append(opts, scryfall.WithArchiver(rt.archiver))
		}
	}
	rt.client = scryfall.NewClient(cfg.Catalog, l, opts...)

	return rt, nil
}

// catalogClient returns the live client, or a client replaying snapshot when set.
func (rt *runtime) catalogClient(snapshot string) catalog.CatalogClient {
	if snapshot == "" {
		return rt.client
	}
	return catalog.NewSnapshotClient(rt.client, rt.archiver, rt.cfg.Catalog.BulkType, snapshot)
}

func (rt *runtime) service(metrics *catalog.Metrics) *catalog.Service {
	return catalog.NewService(rt.catalogClient(""), rt.db, rt.log, metrics, rt.cfg.Database.AutoMigrate)
}
