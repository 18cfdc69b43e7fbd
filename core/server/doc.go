// Package server holds the HTTP server configuration.
//
// The Config struct defines the HTTP port, the API key protecting the routes, and an
// optional cron schedule for recurring catalog imports run by the start command.
package server
