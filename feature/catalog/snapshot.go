package catalog

import (
	"context"

	"catalog-sync/core/reconcile"
	"catalog-sync/core/scryfall"

	"go.uber.org/zap"
)

// LatestSnapshot selects the newest archived payload in SnapshotClient.
const LatestSnapshot = "latest"

// SnapshotClient serves sets from the live API and cards from an archived bulk payload.
type SnapshotClient struct {
	live     CatalogClient
	archive  *Archiver
	bulkType string
	object   string
}

// NewSnapshotClient replays object (or LatestSnapshot) of bulkType from archive.
func NewSnapshotClient(live CatalogClient, archive *Archiver, bulkType, object string) *SnapshotClient {
	return &SnapshotClient{live: live, archive: archive, bulkType: bulkType, object: object}
}

// FetchSets delegates to the live client.
func (c *SnapshotClient) FetchSets(ctx context.Context) ([]scryfall.SetRecord, error) {
	return c.live.FetchSets(ctx)
}

// FetchCatalog decodes the archived payload.
func (c *SnapshotClient) FetchCatalog(ctx context.Context) ([]scryfall.CardRecord, error) {
	object := c.object
	if object == "" || object == LatestSnapshot {
		latest, err := c.archive.Latest(ctx, c.bulkType)
		if err != nil {
			return nil, &reconcile.FetchError{Reason: "no snapshot to replay", Err: err}
		}
		object = latest
	}

	rc, err := c.archive.Open(ctx, object)
	if err != nil {
		return nil, &reconcile.FetchError{URL: object, Err: err}
	}
	defer rc.Close()

	cards, err := scryfall.DecodeCards(rc)
	if err != nil {
		return nil, &reconcile.FetchError{URL: object, Reason: "malformed card payload", Err: err}
	}
	c.archive.logger.Info("Replaying archived catalog", zap.String("object", object), zap.Int("records", len(cards)))
	return cards, nil
}
