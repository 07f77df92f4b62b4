package interfaces

// Config represents the application configuration
type Config struct {
	RelayURL        string   `toml:"relay_url"`
	RelayURLs       []string `toml:"relay_urls"`
	Fragment        string   `toml:"fragment"`
	ServerPort      string   `toml:"server_port"`
	ClientPort      string   `toml:"client_port"`
	Listener        string   `toml:"listener"`
	Format          string   `toml:"format"`
	Target          string   `toml:"target"`
	ShareURL        string   `toml:"share_url"`
	CopyIndicatorMS int      `toml:"copy_indicator_ms"`

	// EmptyFragment is set when the fragment was given explicitly as ""
	EmptyFragment bool `toml:"-"`
}

// ConfigManager handles configuration loading and resolution
type ConfigManager interface {
	// Load loads configuration from the specified path
	Load(path string) (*Config, error)

	// SetFlag records a command-line value that overrides env and file
	SetFlag(key string, value interface{})

	// Resolve applies precedence rules (flags > env > config > defaults)
	Resolve() (*Config, error)

	// Validate validates the configuration values
	Validate(config *Config) error
}
