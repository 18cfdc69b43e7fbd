package reconcile

import (
	"context"
	"time"

	"catalog-sync/core/reconcile"
	"catalog-sync/core/scryfall"
	"catalog-sync/feature/catalog/models"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const releaseDateLayout = "2006-01-02"

// SyncSets creates or updates a Set (and its SetType) for every record of the sets
// endpoint. An existing external identifier is never overwritten.
func (r *Reconciler) SyncSets(ctx context.Context, records []scryfall.SetRecord) (*Result, error) {
	if err := r.warm(ctx); err != nil {
		return nil, err
	}
	if err := r.loadSets(ctx, reconcile.All()); err != nil {
		return nil, err
	}

	res := &Result{}
	for i := range records {
		rec := &records[i]
		res.Records++

		code := reconcile.NormalizeCode(rec.Code)
		if code == "" {
			return nil, &reconcile.RecordError{RecordID: rec.ID, Field: "code", Reason: "is missing"}
		}

		releaseDate, err := parseReleaseDate(rec.ReleasedAt)
		if err != nil {
			return nil, &reconcile.RecordError{RecordID: rec.ID, Field: "released_at", Reason: err.Error()}
		}

		setTypeID, err := r.setType(ctx, rec.SetType)
		if err != nil {
			return nil, err
		}

		set, _, err := r.sets.GetOrCreate(ctx, code, func() *models.Set {
			return &models.Set{
				Name:       rec.Name,
				Code:       code,
				ExternalID: nonEmpty(rec.ID),
				SetTypeID:  setTypeID,
			}
		})
		if err != nil {
			return nil, err
		}

		if !set.HasExternalID() && rec.ID != "" {
			set.ExternalID = nonEmpty(rec.ID)
			if setTypeID != nil {
				set.SetTypeID = setTypeID
			}
		}
		set.ReleaseDate = releaseDate
		set.Digital = rec.Digital
		set.FoilOnly = rec.FoilOnly
		set.NonfoilOnly = rec.NonfoilOnly
		set.IconURI = rec.IconSVGURI

		if err := r.tx.WithContext(ctx).Save(set).Error; err != nil {
			return nil, &reconcile.StorageError{Op: "update", Entity: "set " + code, Err: err}
		}
	}

	r.tally(res, 0)
	r.logger.Info("Sets reconciled",
		zap.Int("records", res.Records),
		zap.Int("sets_created", res.SetsCreated),
		zap.Int("set_types_created", res.SetTypesCreated),
	)
	return res, nil
}

func parseReleaseDate(s string) (*datatypes.Date, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(releaseDateLayout, s)
	if err != nil {
		return nil, err
	}
	d := datatypes.Date(t)
	return &d, nil
}
