package backup

// Config holds configuration for pre-merge backups.
type Config struct {
	// Enabled uploads every target region file before it is overwritten.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Prefix is the object key prefix under which runs are stored.
	Prefix string `mapstructure:"prefix" default:"backups"`
}
