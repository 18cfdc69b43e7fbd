package integrity

import (
	"context"
	"errors"

	"catalog-sync/core/storage"
	"catalog-sync/feature/catalog/models"
	"catalog-sync/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrArchiveDisabled is returned by archive checks when no object storage is configured.
var ErrArchiveDisabled = errors.New("snapshot archive is not configured")

// Service handles integrity checks.
type Service struct {
	client storage.Client
	bucket string
	prefix string
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new integrity service. client may be nil when archiving is off.
func NewService(client storage.Client, bucket, prefix string, db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		prefix: prefix,
		db:     db,
		logger: logger,
	}
}

// CheckDatabase compares the catalog tables with the catalog models.
func (s *Service) CheckDatabase(ctx context.Context) (*checks.DatabaseReport, error) {
	if s.db == nil {
		return checks.CheckDatabase(nil, nil, nil)
	}
	return checks.CheckDatabase(s.db.WithContext(ctx), models.All(), models.JoinTables)
}

// CheckArchive inspects the snapshot archive.
func (s *Service) CheckArchive(ctx context.Context) (*checks.ArchiveReport, error) {
	if s.client == nil {
		return nil, ErrArchiveDisabled
	}
	return checks.CheckArchive(ctx, s.client, s.bucket, s.prefix)
}

// FixArchive creates the archive bucket.
func (s *Service) FixArchive(ctx context.Context) error {
	if s.client == nil {
		return ErrArchiveDisabled
	}
	return checks.FixArchive(ctx, s.client, s.bucket, s.logger)
}
