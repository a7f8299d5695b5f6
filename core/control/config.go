package control

// Config holds configuration for the launcher's control endpoint.
type Config struct {
	// Enabled toggles the control endpoint. Off by default: the launcher is
	// primarily a foreground CLI.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Port is the port where the control endpoint will listen.
	Port string `mapstructure:"port" default:"7077"`
	// ApiKey is the secret key required to access the endpoint. Empty
	// disables authentication.
	ApiKey string `mapstructure:"api_key" default:""`
}
