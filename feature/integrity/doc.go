// Package integrity provides health checks for the catalog infrastructure.
//
// # Checks Provided
//
//   - Database: Compares the catalog tables, columns and declared column types with the models.
//   - Archive: Checks the snapshot bucket and counts the archived bulk payloads (supports ?fix=true).
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/database : Runs the database check.
//   - GET /integrity/archive : Runs the archive check.
package integrity
