package config

const (
	defaultDataDir        = "~/.local/share/simplereplay"
	defaultDBName         = "data.db"
	defaultDocstoreName   = "docstore.db"
	defaultUserID         = "demo-user-001"
	defaultProvider       = ProviderSQLite
	defaultCloudBaseURL   = "http://127.0.0.1:7488"
	defaultShareBaseURL   = "http://127.0.0.1:7488/"
	defaultSaveTimeout    = 15
	defaultServerBind     = "127.0.0.1:7488"
	defaultMpvSocket      = "/tmp/simplereplay-mpv.sock"
	defaultPollIntervalMs = 200
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
	defaultConfigLocation = "~/.config/simplereplay/config.toml"
	projectConfigFileName = "simplereplay.toml"
	environmentPrefix     = "SIMPLEREPLAY_"
)

// Default returns a Config populated with repository defaults. Paths are
// not expanded until Load normalizes them.
func Default() Config {
	return Config{
		DataDir:  defaultDataDir,
		UserID:   defaultUserID,
		Provider: defaultProvider,
		Cloud: Cloud{
			BaseURL:      defaultCloudBaseURL,
			ShareBaseURL: defaultShareBaseURL,
			SaveTimeout:  defaultSaveTimeout,
		},
		Server: Server{
			Bind: defaultServerBind,
		},
		Player: Player{
			SocketPath:   defaultMpvSocket,
			PollInterval: defaultPollIntervalMs,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
