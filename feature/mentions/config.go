package mentions

// Config holds configuration for the mentions feature.
type Config struct {
	// Enabled controls whether the feature is loaded.
	Enabled bool `mapstructure:"enabled" default:"true"`
}
