package server

import "github.com/robfig/cron/v3"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// ImportSchedule is a five-field cron expression for recurring full imports. Empty disables it.
	ImportSchedule string `mapstructure:"import_schedule" default:""`
}

// HasSchedule reports whether recurring imports are configured.
func (c Config) HasSchedule() bool {
	return c.ImportSchedule != ""
}

// ValidateSchedule parses ImportSchedule with the standard five-field cron syntax.
func (c Config) ValidateSchedule() error {
	if !c.HasSchedule() {
		return nil
	}
	_, err := cron.ParseStandard(c.ImportSchedule)
	return err
}
