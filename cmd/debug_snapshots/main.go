package main

import (
	"context"
	"fmt"
	"log"

	"catalog-sync/core/config"
	"catalog-sync/core/storage"
	"catalog-sync/feature/catalog"

	"go.uber.org/zap"
)

// Lists the archived bulk payloads, oldest first.
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		log.Fatal(err)
	}

	archive := catalog.NewArchiver(client, cfg.Storage.Bucket, cfg.Catalog.ArchivePrefix, 0, zap.NewNop())
	objects, err := archive.List(context.Background(), cfg.Catalog.BulkType)
	if err != nil {
		log.Fatal(err)
	}

	var total int64
	for _, obj := range objects {
		total += obj.Size
		fmt.Printf("%s  %10d bytes  %s\n", obj.LastModified.Format("2006-01-02 15:04"), obj.Size, obj.Key)
	}
	fmt.Printf("\n%d snapshots, %d bytes in %s/%s\n", len(objects), total, cfg.Storage.Bucket, cfg.Catalog.ArchivePrefix)
}
