package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// ReadTimeoutSeconds bounds reading a request. Loads block until their asset
	// is resident, so this is also the budget for a cold load.
	ReadTimeoutSeconds int `mapstructure:"read_timeout_seconds" default:"60"`
}

// ReadTimeout returns the configured read timeout, falling back to 60 seconds.
func (c Config) ReadTimeout() int {
	if c.ReadTimeoutSeconds <= 0 {
		return 60
	}
	return c.ReadTimeoutSeconds
}
