package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"time"

	"catalog-sync/core/scryfall"
	"catalog-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const snapshotStampLayout = "20060102T150405Z"

// Archiver stores raw bulk payloads in object storage so an import can be replayed.
type Archiver struct {
	client storage.Client
	bucket string
	prefix string
	keep   int
	logger *zap.Logger
	now    func() time.Time
}

// NewArchiver creates an archiver writing under prefix in bucket. keep > 0 prunes
// older snapshots of the same bulk type.
func NewArchiver(client storage.Client, bucket, prefix string, keep int, logger *zap.Logger) *Archiver {
	return &Archiver{
		client: client,
		bucket: bucket,
		prefix: prefix,
		keep:   keep,
		logger: logger,
		now:    time.Now,
	}
}

// Archive uploads payload as the snapshot of entry.
func (a *Archiver) Archive(ctx context.Context, entry scryfall.BulkDataEntry, payload []byte) error {
	if err := a.ensureBucket(ctx); err != nil {
		return err
	}

	name := a.objectName(entry)
	info, err := a.client.PutObject(ctx, a.bucket, name, bytes.NewReader(payload), int64(len(payload)), minio.PutObjectOptions{
		ContentType: "application/json",
		UserMetadata: map[string]string{
			"bulk-id":    entry.ID,
			"updated-at": entry.UpdatedAt,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upload snapshot %s: %w", name, err)
	}
	a.logger.Info("Archived bulk catalog", zap.String("object", name), zap.Int64("size", info.Size))

	if a.keep > 0 {
		if err := a.prune(ctx, entry.Type); err != nil {
			a.logger.Warn("Failed to prune snapshots", zap.Error(err))
		}
	}
	return nil
}

// List returns the archived snapshots of a bulk type, oldest first.
func (a *Archiver) List(ctx context.Context, bulkType string) ([]minio.ObjectInfo, error) {
	var objects []minio.ObjectInfo
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{
		Prefix:    path.Join(a.prefix, bulkType) + "/",
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list snapshots: %w", obj.Err)
		}
		objects = append(objects, obj)
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	return objects, nil
}

// Latest returns the newest snapshot object of a bulk type.
func (a *Archiver) Latest(ctx context.Context, bulkType string) (string, error) {
	objects, err := a.List(ctx, bulkType)
	if err != nil {
		return "", err
	}
	if len(objects) == 0 {
		return "", fmt.Errorf("no %s snapshots in bucket %s", bulkType, a.bucket)
	}
	return objects[len(objects)-1].Key, nil
}

// Open streams an archived snapshot.
func (a *Archiver) Open(ctx context.Context, object string) (io.ReadCloser, error) {
	rc, err := a.client.GetObject(ctx, a.bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot %s: %w", object, err)
	}
	return rc, nil
}

func (a *Archiver) ensureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", a.bucket, err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", a.bucket, err)
	}
	return nil
}

func (a *Archiver) objectName(entry scryfall.BulkDataEntry) string {
	stamp := a.now().UTC()
	if t, err := time.Parse(time.RFC3339, entry.UpdatedAt); err == nil {
		stamp = t.UTC()
	}
	return path.Join(a.prefix, entry.Type, stamp.Format(snapshotStampLayout)+".json")
}

func (a *Archiver) prune(ctx context.Context, bulkType string) error {
	objects, err := a.List(ctx, bulkType)
	if err != nil {
		return err
	}
	if len(objects) <= a.keep {
		return nil
	}

	stale := objects[:len(objects)-a.keep]
	ch := make(chan minio.ObjectInfo, len(stale))
	for _, obj := range stale {
		ch <- obj
	}
	close(ch)

	var errs []error
	for rErr := range a.client.RemoveObjects(ctx, a.bucket, ch, minio.RemoveObjectsOptions{}) {
		errs = append(errs, fmt.Errorf("%s: %w", rErr.ObjectName, rErr.Err))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	a.logger.Info("Pruned snapshots", zap.String("bulk_type", bulkType), zap.Int("removed", len(stale)))
	return nil
}
