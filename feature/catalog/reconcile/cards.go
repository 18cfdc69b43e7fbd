package reconcile

import (
	"context"

	"catalog-sync/core/reconcile"
	"catalog-sync/core/scryfall"
	"catalog-sync/feature/catalog/models"

	"go.uber.org/zap"
)

// preferredImage is the image_uris variant stored on printings.
const preferredImage = "normal"

// skippedLayouts are layouts that produce neither cards nor printings.
var skippedLayouts = map[string]struct{}{
	"token":      {},
	"art_series": {},
}

// SyncCards reconciles every face of every card record within scope. Requested set
// codes must already exist locally, otherwise a *reconcile.ScopeError is returned.
func (r *Reconciler) SyncCards(ctx context.Context, records []scryfall.CardRecord, scope reconcile.Scope) (*Result, error) {
	if err := r.warm(ctx); err != nil {
		return nil, err
	}
	if err := r.loadSets(ctx, scope); err != nil {
		return nil, err
	}

	if !scope.IsAll() {
		var missing []string
		for _, code := range scope.Codes() {
			if _, ok := r.sets.Get(code); !ok {
				missing = append(missing, code)
			}
		}
		if len(missing) > 0 {
			return nil, &reconcile.ScopeError{Missing: missing}
		}
	}

	res := &Result{}
	for i := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res.Records++
		if err := r.syncRecord(ctx, &records[i], scope, res); err != nil {
			return nil, err
		}
		if res.Records%progressEvery == 0 {
			r.logger.Debug("Reconciling cards", zap.Int("records", res.Records), zap.Int("total", len(records)))
		}
	}

	r.tally(res, 0)
	r.logger.Info("Cards reconciled",
		zap.String("scope", scope.String()),
		zap.Int("records", res.Records),
		zap.Int("faces", res.Faces),
		zap.Int("skipped_scope", res.SkippedScope),
		zap.Int("skipped_layout", res.SkippedLayout),
		zap.Int("cards_created", res.CardsCreated),
		zap.Int("printings_created", res.PrintingsCreated),
		zap.Int("sets_created", res.SetsCreated),
		zap.Int("artists_created", res.ArtistsCreated),
	)
	return res, nil
}

func (r *Reconciler) syncRecord(ctx context.Context, rec *scryfall.CardRecord, scope reconcile.Scope, res *Result) error {
	recordID := deref(rec.ID)

	code := reconcile.NormalizeCode(deref(rec.Set))
	if code == "" {
		return &reconcile.RecordError{RecordID: recordID, Field: "set", Reason: "is missing"}
	}
	if !scope.Includes(code) {
		res.SkippedScope++
		return nil
	}

	set, err := r.resolveSet(ctx, rec, code)
	if err != nil {
		return err
	}

	if _, skip := skippedLayouts[rec.Layout]; skip {
		res.SkippedLayout++
		return nil
	}

	if recordID == "" {
		return &reconcile.RecordError{Field: "id", Reason: "is missing"}
	}

	for i, face := range rec.Faces() {
		res.Faces++
		if err := r.syncFace(ctx, rec, &face, i, set, res); err != nil {
			return err
		}
	}
	return nil
}

// resolveSet finds or creates the record's set. A set that exists without an external
// identifier is enriched once from the record.
func (r *Reconciler) resolveSet(ctx context.Context, rec *scryfall.CardRecord, code string) (*models.Set, error) {
	if set, ok := r.sets.Get(code); ok {
		if set.HasExternalID() || deref(rec.SetID) == "" {
			return set, nil
		}
		setTypeID, err := r.setType(ctx, rec.SetType)
		if err != nil {
			return nil, err
		}
		set.ExternalID = nonEmpty(*rec.SetID)
		if setTypeID != nil {
			set.SetTypeID = setTypeID
		}
		if err := r.tx.WithContext(ctx).Save(set).Error; err != nil {
			return nil, &reconcile.StorageError{Op: "update", Entity: "set " + code, Err: err}
		}
		return set, nil
	}

	if rec.SetName == nil || *rec.SetName == "" {
		return nil, &reconcile.RecordError{RecordID: deref(rec.ID), Field: "set_name", Reason: "is missing for unknown set " + code}
	}
	setTypeID, err := r.setType(ctx, rec.SetType)
	if err != nil {
		return nil, err
	}
	set, _, err := r.sets.GetOrCreate(ctx, code, func() *models.Set {
		return &models.Set{
			Name:       *rec.SetName,
			Code:       code,
			ExternalID: nonEmpty(deref(rec.SetID)),
			SetTypeID:  setTypeID,
		}
	})
	return set, err
}

func (r *Reconciler) syncFace(ctx context.Context, rec *scryfall.CardRecord, face *scryfall.CardFace, index int, set *models.Set, res *Result) error {
	name := pick(face.Name, rec.Name)
	if name == nil || *name == "" {
		return &reconcile.RecordError{RecordID: deref(rec.ID), Face: index, Field: "name", Reason: "is missing on face and card"}
	}

	var card models.Card
	created, err := reconcile.UpdateOrCreate(ctx, r.tx, &card, map[string]any{"name": *name}, func(c *models.Card) {
		c.Name = *name
		c.ManaCost = pickString(face.ManaCost, rec.ManaCost)
		c.TypeLine = pickString(face.TypeLine, rec.TypeLine)
		c.Text = pickString(face.OracleText, rec.OracleText)
		c.Power = pickString(face.Power, rec.Power)
		c.Toughness = pickString(face.Toughness, rec.Toughness)
		c.Loyalty = pick(face.Loyalty, rec.Loyalty)
		c.Layout = rec.Layout
		c.ExternalID = deref(rec.OracleID)
	})
	if err != nil {
		return err
	}
	res.Cards++
	if created {
		res.CardsCreated++
	}

	var artistID *uint
	if artistName := pick(face.Artist, rec.Artist); artistName != nil && *artistName != "" {
		n := *artistName
		artist, _, err := r.artists.GetOrCreate(ctx, n, func() *models.Artist {
			return &models.Artist{FullName: n}
		})
		if err != nil {
			return err
		}
		artistID = &artist.ID
	}

	externalID := *rec.ID
	var printing models.Printing
	created, err = reconcile.UpdateOrCreate(ctx, r.tx, &printing,
		map[string]any{"external_id": externalID, "card_id": card.ID},
		func(p *models.Printing) {
			p.ExternalID = &externalID
			p.CardID = card.ID
			p.SetID = set.ID
			p.Rarity = models.ParseRarity(rec.Rarity)
			p.FlavorText = pickString(face.FlavorText, rec.FlavorText)
			p.ArtistID = artistID
			p.Number = deref(rec.CollectorNumber)
			p.MultiverseID = firstMultiverseID(rec.MultiverseIDs)
			if url, ok := imageURL(face, rec); ok {
				p.ExternalImageURL = &url
			}
		})
	if err != nil {
		return err
	}
	res.Printings++
	if created {
		res.PrintingsCreated++
	}

	if rec.FrameEffects != nil {
		if err := r.replaceFrameEffects(ctx, &printing, rec.FrameEffects); err != nil {
			return err
		}
	}
	if rec.PromoTypes != nil {
		if err := r.replacePromoTypes(ctx, &printing, rec.PromoTypes); err != nil {
			return err
		}
	}
	return nil
}

func pick(face, card *string) *string {
	if face != nil {
		return face
	}
	return card
}

func pickString(face, card *string) string {
	return deref(pick(face, card))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func firstMultiverseID(ids []int) *int {
	if len(ids) == 0 {
		return nil
	}
	id := ids[0]
	return &id
}

// imageURL picks the preferred variant from the face's image_uris when the face has
// any, otherwise from the record's.
func imageURL(face *scryfall.CardFace, rec *scryfall.CardRecord) (string, bool) {
	uris := face.ImageURIs
	if uris == nil {
		uris = rec.ImageURIs
	}
	url, ok := uris[preferredImage]
	if !ok || url == "" {
		return "", false
	}
	return url, true
}
