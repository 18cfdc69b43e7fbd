// Package reconcile provides the generic building blocks for synchronizing an external
// source of truth into the relational store.
//
// The catalog feed repeats the same reference values (set codes, tag names, artists) on
// every record. Resolving each occurrence against storage would cost one round-trip per
// record, so a run resolves them through a LookupCache instead.
//
// # Components
//
//   - LookupCache: a per-type, keyed cache over a Store port. It is warmed once from
//     storage and creates at most one row per distinct natural key.
//   - GormStore: the gorm implementation of Store, optionally scoped.
//   - UpdateOrCreate: update-or-create by natural key with full overwrite.
//   - Scope: which sets a run touches (All or Only a list of codes).
//   - Error kinds: FetchError, ScopeError, RecordError and StorageError. All of them
//     abort a run; callers inspect them with errors.As.
//
// # Usage
//
//	store := reconcile.NewGormStore[models.Artist](tx, "artist")
//	artists := reconcile.NewLookupCache(store, func(a *models.Artist) string { return a.FullName }, reconcile.Exact)
//	if err := artists.Warm(ctx); err != nil {
//	    return err
//	}
//	artist, created, err := artists.GetOrCreate(ctx, name, func() *models.Artist {
//	    return &models.Artist{FullName: name}
//	})
package reconcile
