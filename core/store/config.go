package store

// Config holds configuration for the configuration store.
type Config struct {
	// Backend selects the persistence backend (file, object).
	Backend string `mapstructure:"backend" default:"file"`
	// Dir is the record directory for the file backend.
	Dir string `mapstructure:"dir" default:"./data/configs"`
	// Bucket is the bucket for the object backend. Empty means the
	// storage package's configured bucket.
	Bucket string `mapstructure:"bucket" default:""`
	// Prefix is the object key prefix for the object backend.
	Prefix string `mapstructure:"prefix" default:"configs"`
}
