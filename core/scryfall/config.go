package scryfall

// Config holds configuration for the catalog API client.
type Config struct {
	// BaseURL is the API root.
	BaseURL string `mapstructure:"base_url" default:"https://api.scryfall.com"`
	// BulkType selects the bulk-data index entry to download.
	BulkType string `mapstructure:"bulk_type" default:"default_cards"`
	// UserAgent identifies this client to the API.
	UserAgent string `mapstructure:"user_agent" default:"catalog-sync/1.0"`
	// TimeoutSeconds bounds each request, including the bulk download.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"300"`
	// Archive uploads every downloaded bulk payload to object storage.
	Archive bool `mapstructure:"archive" default:"false"`
	// ArchivePrefix is the object prefix for archived payloads.
	ArchivePrefix string `mapstructure:"archive_prefix" default:"snapshots"`
	// ArchiveKeep is how many archived payloads to retain per bulk type. Zero keeps all.
	ArchiveKeep int `mapstructure:"archive_keep" default:"7"`
}
