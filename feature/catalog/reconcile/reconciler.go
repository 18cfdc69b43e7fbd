package reconcile

import (
	"context"
	"strings"

	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// progressEvery is how many card records pass between progress logs.
const progressEvery = 5000

// Result tallies one reconciliation pass.
type Result struct {
	Records          int `json:"records"`
	Faces            int `json:"faces"`
	SkippedScope     int `json:"skipped_scope"`
	SkippedLayout    int `json:"skipped_layout"`
	Cards            int `json:"cards"`
	CardsCreated     int `json:"cards_created"`
	Printings        int `json:"printings"`
	PrintingsCreated int `json:"printings_created"`
	SetsCreated      int `json:"sets_created"`
	SetTypesCreated  int `json:"set_types_created"`
	ArtistsCreated   int `json:"artists_created"`
	TagsCreated      int `json:"tags_created"`
}

// Reconciler writes fetched catalog records into the store through tx.
// A Reconciler belongs to a single run and is not safe for concurrent use.
type Reconciler struct {
	tx     *gorm.DB
	logger *zap.Logger

	setTypes     *reconcile.LookupCache[models.SetType]
	sets         *reconcile.LookupCache[models.Set]
	frameEffects *reconcile.LookupCache[models.FrameEffect]
	promoTypes   *reconcile.LookupCache[models.PromoType]
	artists      *reconcile.LookupCache[models.Artist]
	warmed       bool
}

// New creates a Reconciler bound to the run's transaction.
func New(tx *gorm.DB, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		tx:     tx,
		logger: logger,
		setTypes: reconcile.NewLookupCache(reconcile.NewGormStore[models.SetType](tx, "set type"),
			func(st *models.SetType) string { return st.Name }, reconcile.CaseInsensitive),
		frameEffects: reconcile.NewLookupCache(reconcile.NewGormStore[models.FrameEffect](tx, "frame effect"),
			func(fe *models.FrameEffect) string { return fe.Name }, reconcile.CaseInsensitive),
		promoTypes: reconcile.NewLookupCache(reconcile.NewGormStore[models.PromoType](tx, "promo type"),
			func(pt *models.PromoType) string { return pt.Name }, reconcile.CaseInsensitive),
		artists: reconcile.NewLookupCache(reconcile.NewGormStore[models.Artist](tx, "artist"),
			func(a *models.Artist) string { return a.FullName }, reconcile.Exact),
	}
}

// warm loads the unscoped dimension caches once per run.
func (r *Reconciler) warm(ctx context.Context) error {
	if r.warmed {
		return nil
	}
	for _, w := range []interface{ Warm(context.Context) error }{r.setTypes, r.frameEffects, r.promoTypes, r.artists} {
		if err := w.Warm(ctx); err != nil {
			return err
		}
	}
	r.warmed = true
	return nil
}

// loadSets replaces the set cache with the sets visible to scope.
func (r *Reconciler) loadSets(ctx context.Context, scope reconcile.Scope) error {
	var scopes []func(*gorm.DB) *gorm.DB
	if !scope.IsAll() {
		codes := scope.Codes()
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("UPPER(code) IN ?", codes)
		})
	}
	r.sets = reconcile.NewLookupCache(reconcile.NewGormStore[models.Set](r.tx, "set", scopes...),
		func(s *models.Set) string { return s.Code }, reconcile.CaseInsensitive)
	return r.sets.Warm(ctx)
}

func (r *Reconciler) setType(ctx context.Context, name *string) (*uint, error) {
	if name == nil || *name == "" {
		return nil, nil
	}
	n := *name
	st, _, err := r.setTypes.GetOrCreate(ctx, n, func() *models.SetType {
		return &models.SetType{Name: n}
	})
	if err != nil {
		return nil, err
	}
	return &st.ID, nil
}

func (r *Reconciler) tally(res *Result, setsBefore int) {
	res.SetsCreated += r.sets.Created() - setsBefore
	res.SetTypesCreated = r.setTypes.Created()
	res.ArtistsCreated = r.artists.Created()
	res.TagsCreated = r.frameEffects.Created() + r.promoTypes.Created()
}

func nonEmpty(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
