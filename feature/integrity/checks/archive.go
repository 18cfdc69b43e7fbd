package checks

import (
	"context"
	"fmt"
	"path"
	"time"

	"catalog-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ArchiveReport describes the snapshot archive in object storage.
type ArchiveReport struct {
	Bucket       string    `json:"bucket"`
	BucketExists bool      `json:"bucket_exists"`
	Snapshots    int       `json:"snapshots"`
	Latest       string    `json:"latest,omitempty"`
	LatestAt     time.Time `json:"latest_at"`
}

// CheckArchive reports whether the archive bucket exists and which snapshots it holds
// under prefix.
func CheckArchive(ctx context.Context, client storage.Client, bucket, prefix string) (*ArchiveReport, error) {
	report := &ArchiveReport{Bucket: bucket}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return report, nil
	}
	report.BucketExists = true

	opts := minio.ListObjectsOptions{Recursive: true}
	if prefix != "" {
		opts.Prefix = path.Clean(prefix) + "/"
	}
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list snapshots: %w", obj.Err)
		}
		report.Snapshots++
		if obj.Key > report.Latest {
			report.Latest = obj.Key
			report.LatestAt = obj.LastModified
		}
	}

	return report, nil
}

// FixArchive creates the archive bucket.
func FixArchive(ctx context.Context, client storage.Client, bucket string, logger *zap.Logger) error {
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		logger.Error("Failed to create bucket", zap.String("bucket", bucket), zap.Error(err))
		return err
	}
	logger.Info("Created missing bucket", zap.String("bucket", bucket))
	return nil
}
