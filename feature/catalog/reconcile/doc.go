// Package reconcile writes the fetched card catalog into the store.
//
// SyncSets mirrors the sets endpoint. SyncCards walks every face of every card record:
// it filters by scope, resolves the set, skips token-like layouts, upserts the Card by
// name and the Printing by (external id, card), and fully replaces the printing's frame
// effects and promo types when the record carries those keys.
//
// Shared reference rows (set types, sets, artists, tags) are resolved through
// per-run lookup caches, so each distinct value costs at most one insert per run.
package reconcile
