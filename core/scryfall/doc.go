// Package scryfall is the client for the external card catalog API.
//
// It performs I/O only: FetchSets pages through the sets endpoint, and FetchCatalog
// resolves the configured entry of the bulk-data index and downloads the full card feed.
// Every failure is reported as a *reconcile.FetchError; nothing is retried here.
//
// Record types keep absent JSON keys distinguishable from present ones (nil pointers and
// nil slices), because the reconciler falls back from a card face to the card and treats
// an absent tag list differently from an empty one.
package scryfall
