// Package catalog reconciles the external card catalog into the local database.
//
// An import runs as a single transaction: sets are synced first, then every card
// record within the requested scope, and finally printings without an external
// identifier are removed. Any error rolls the whole run back, so the store is
// either fully reconciled or left as it was. Only one import runs at a time.
//
// # Components
//
//   - Service: Runs imports and reports row counts.
//   - Handler: Exposes imports, summaries and schema checks over HTTP.
//   - Archiver: Keeps raw bulk payloads in object storage.
//   - SnapshotClient: Replays an archived payload instead of downloading one.
//   - Metrics: Prometheus counters for import outcomes.
//
// # HTTP Endpoints
//
//   - POST /catalog/import  : Run an import. Body: {"sets": ["abc"], "flush": false}.
//   - GET  /catalog/summary : Row counts of the catalog tables.
//   - GET  /catalog/schema  : Missing tables and columns.
package catalog
