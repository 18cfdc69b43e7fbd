package catalog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"catalog-sync/core/scryfall"
	"catalog-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func listing(keys ...string) func(context.Context, string, minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	return func(context.Context, string, minio.ListObjectsOptions) <-chan minio.ObjectInfo {
		ch := make(chan minio.ObjectInfo, len(keys))
		for _, k := range keys {
			ch <- minio.ObjectInfo{Key: k}
		}
		close(ch)
		return ch
	}
}

func TestArchiver_Archive(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "catalog").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "catalog", mock.Anything).Return(nil)
	client.On("PutObject", mock.Anything, "catalog", "snapshots/default_cards/20240102T030405Z.json", mock.Anything, int64(2),
		mock.MatchedBy(func(opts minio.PutObjectOptions) bool {
			return opts.ContentType == "application/json" && opts.UserMetadata["bulk-id"] == "bulk-1"
		})).Return(minio.UploadInfo{Size: 2}, nil)

	a := NewArchiver(client, "catalog", "snapshots", 0, zap.NewNop())
	err := a.Archive(context.Background(), scryfall.BulkDataEntry{
		ID:        "bulk-1",
		Type:      "default_cards",
		UpdatedAt: "2024-01-02T03:04:05.000+00:00",
	}, []byte("[]"))
	require.NoError(t, err)
	client.AssertExpectations(t)
	client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
}

func TestArchiver_ObjectNameFallsBackToClock(t *testing.T) {
	a := NewArchiver(new(mocks.Client), "catalog", "snapshots", 0, zap.NewNop())
	a.now = func() time.Time { return time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC) }
	assert.Equal(t, "snapshots/oracle_cards/20250506T070809Z.json", a.objectName(scryfall.BulkDataEntry{Type: "oracle_cards"}))
}

func TestArchiver_PrunesOldSnapshots(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "catalog").Return(true, nil)
	client.On("PutObject", mock.Anything, "catalog", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)
	client.On("ListObjects", mock.Anything, "catalog", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
		return opts.Prefix == "snapshots/default_cards/" && opts.Recursive
	})).Return(listing(
		"snapshots/default_cards/20240103T000000Z.json",
		"snapshots/default_cards/20240101T000000Z.json",
		"snapshots/default_cards/20240102T000000Z.json",
	))

	var removed []string
	client.On("RemoveObjects", mock.Anything, "catalog", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			for obj := range args.Get(2).(<-chan minio.ObjectInfo) {
				removed = append(removed, obj.Key)
			}
		}).Return(nil)

	a := NewArchiver(client, "catalog", "snapshots", 2, zap.NewNop())
	require.NoError(t, a.Archive(context.Background(), scryfall.BulkDataEntry{Type: "default_cards"}, []byte("[]")))
	assert.Equal(t, []string{"snapshots/default_cards/20240101T000000Z.json"}, removed)
}

func TestArchiver_ArchiveFailures(t *testing.T) {
	t.Run("bucket check", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "catalog").Return(false, errors.New("denied"))
		a := NewArchiver(client, "catalog", "snapshots", 0, zap.NewNop())
		err := a.Archive(context.Background(), scryfall.BulkDataEntry{Type: "default_cards"}, nil)
		assert.ErrorContains(t, err, "denied")
	})

	t.Run("upload", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "catalog").Return(true, nil)
		client.On("PutObject", mock.Anything, "catalog", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, errors.New("disk full"))
		a := NewArchiver(client, "catalog", "snapshots", 3, zap.NewNop())
		err := a.Archive(context.Background(), scryfall.BulkDataEntry{Type: "default_cards"}, nil)
		assert.ErrorContains(t, err, "disk full")
		client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestArchiver_Latest(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "catalog", mock.Anything).Return(listing(
		"snapshots/default_cards/20240102T000000Z.json",
		"snapshots/default_cards/20240105T000000Z.json",
	)).Once()
	client.On("ListObjects", mock.Anything, "catalog", mock.Anything).Return(listing()).Once()
	a := NewArchiver(client, "catalog", "snapshots", 0, zap.NewNop())

	latest, err := a.Latest(context.Background(), "default_cards")
	require.NoError(t, err)
	assert.Equal(t, "snapshots/default_cards/20240105T000000Z.json", latest)

	_, err = a.Latest(context.Background(), "default_cards")
	assert.ErrorContains(t, err, "no default_cards snapshots")
}

func TestArchiver_Open(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "catalog", "snap.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte("[]"))), nil)
	client.On("GetObject", mock.Anything, "catalog", "gone.json", mock.Anything).
		Return(nil, errors.New("not found"))
	a := NewArchiver(client, "catalog", "snapshots", 0, zap.NewNop())

	rc, err := a.Open(context.Background(), "snap.json")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	_, err = a.Open(context.Background(), "gone.json")
	assert.ErrorContains(t, err, "gone.json")
}
