package reconcile

import (
	"context"

	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog/models"
)

// replaceFrameEffects sets the printing's frame effects to exactly names.
func (r *Reconciler) replaceFrameEffects(ctx context.Context, p *models.Printing, names []string) error {
	effects, err := resolveTags(ctx, r.frameEffects, names,
		func(name string) *models.FrameEffect { return &models.FrameEffect{Name: name} },
		func(fe *models.FrameEffect) uint { return fe.ID })
	if err != nil {
		return err
	}
	return r.replaceAssociation(ctx, p, "FrameEffects", effects, len(effects))
}

// replacePromoTypes sets the printing's promo types to exactly names.
func (r *Reconciler) replacePromoTypes(ctx context.Context, p *models.Printing, names []string) error {
	promos, err := resolveTags(ctx, r.promoTypes, names,
		func(name string) *models.PromoType { return &models.PromoType{Name: name} },
		func(pt *models.PromoType) uint { return pt.ID })
	if err != nil {
		return err
	}
	return r.replaceAssociation(ctx, p, "PromoTypes", promos, len(promos))
}

func resolveTags[T any](ctx context.Context, cache *reconcile.LookupCache[T], names []string, build func(string) *T, id func(*T) uint) ([]*T, error) {
	out := make([]*T, 0, len(names))
	seen := make(map[uint]struct{}, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		n := name
		tag, _, err := cache.GetOrCreate(ctx, n, func() *T { return build(n) })
		if err != nil {
			return nil, err
		}
		if _, dup := seen[id(tag)]; dup {
			continue
		}
		seen[id(tag)] = struct{}{}
		out = append(out, tag)
	}
	return out, nil
}

func (r *Reconciler) replaceAssociation(ctx context.Context, p *models.Printing, name string, values any, n int) error {
	assoc := r.tx.WithContext(ctx).Model(p).Association(name)
	var err error
	if n == 0 {
		err = assoc.Clear()
	} else {
		err = assoc.Replace(values)
	}
	if err != nil {
		return &reconcile.StorageError{Op: "replace", Entity: name, Err: err}
	}
	return nil
}
