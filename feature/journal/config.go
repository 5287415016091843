package journal

// Config holds configuration for the merge journal.
type Config struct {
	// Enabled records every applied merge run in the database.
	Enabled bool `mapstructure:"enabled" default:"true"`
}
