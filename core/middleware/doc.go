// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation (X-API-Key) protecting the catalog routes.
//   - rayid: assigns every request a ray id, stored in locals and echoed in the
//     X-Ray-ID response header for tracing.
package middleware
