package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"catalog-sync/core/config"
	"catalog-sync/core/database"
	"catalog-sync/core/storage"
	"catalog-sync/feature/catalog"
	"catalog-sync/feature/catalog/models"

	"go.uber.org/zap"
)

// Compares one card in the newest archived bulk payload against the database.
// Usage: debug_card "Card Name"
func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: debug_card <card name>")
	}
	name := os.Args[1]

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	archive := catalog.NewArchiver(client, cfg.Storage.Bucket, cfg.Catalog.ArchivePrefix, 0, zap.NewNop())
	feed := catalog.NewSnapshotClient(nil, archive, cfg.Catalog.BulkType, catalog.LatestSnapshot)

	fmt.Println("=== Feed ===")
	cards, err := feed.FetchCatalog(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Total records in snapshot: %d\n", len(cards))

	matches := 0
	for i := range cards {
		rec := &cards[i]
		for j, face := range rec.Faces() {
			faceName := face.Name
			if faceName == nil {
				faceName = rec.Name
			}
			if faceName == nil || !strings.EqualFold(*faceName, name) {
				continue
			}
			matches++
			set := ""
			if rec.Set != nil {
				set = *rec.Set
			}
			id := ""
			if rec.ID != nil {
				id = *rec.ID
			}
			fmt.Printf("FOUND: id=%s set=%s layout=%s face=%d\n", id, set, rec.Layout, j)
		}
	}
	if matches == 0 {
		fmt.Println("NOT FOUND in feed")
	}

	fmt.Println("\n=== Database ===")
	var card models.Card
	if err := db.Where("LOWER(name) = ?", strings.ToLower(name)).First(&card).Error; err != nil {
		fmt.Printf("NOT FOUND in database: %v\n", err)
		return
	}

	var printings []models.Printing
	if err := db.Preload("Set").Preload("Artist").Preload("FrameEffects").Preload("PromoTypes").
		Where("card_id = ?", card.ID).Find(&printings).Error; err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Card #%d %q: %d printings\n", card.ID, card.Name, len(printings))
	data, _ := json.MarshalIndent(printings, "", "  ")
	fmt.Println(string(data))
}
