// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface, which supports both AWS S3
// and self-hosted MinIO. The catalog feature archives raw bulk payloads through it and
// can replay an archived payload instead of downloading a fresh one.
//
// The Client interface makes storage easy to mock in tests (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
