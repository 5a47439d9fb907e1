package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// applyEnv overrides file values with SIMPLEREPLAY_* variables.
func (c *Config) applyEnv() {
	str := func(name string, dst *string) {
		if v, ok := os.LookupEnv(environmentPrefix + name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	num := func(name string, dst *int) {
		if v, ok := os.LookupEnv(environmentPrefix + name); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				*dst = n
			}
		}
	}

	str("DATA_DIR", &c.DataDir)
	str("DB_PATH", &c.DBPath)
	str("USER_ID", &c.UserID)
	str("PROVIDER", &c.Provider)
	str("CLOUD_URL", &c.Cloud.BaseURL)
	str("SHARE_URL", &c.Cloud.ShareBaseURL)
	num("SAVE_TIMEOUT", &c.Cloud.SaveTimeout)
	str("SERVER_BIND", &c.Server.Bind)
	str("MPV_SOCKET", &c.Player.SocketPath)
	str("LOG_LEVEL", &c.Logging.Level)
	str("LOG_FORMAT", &c.Logging.Format)
}

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.UserID = strings.TrimSpace(c.UserID)
	if c.UserID == "" {
		c.UserID = defaultUserID
	}
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider == "" {
		c.Provider = defaultProvider
	}
	c.normalizeCloud()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.DataDir) == "" {
		c.DataDir = defaultDataDir
	}
	if c.DataDir, err = expandPath(c.DataDir); err != nil {
		return fmt.Errorf("data_dir: %w", err)
	}
	if strings.TrimSpace(c.DBPath) == "" {
		c.DBPath = filepath.Join(c.DataDir, defaultDBName)
	}
	if c.DBPath, err = expandPath(c.DBPath); err != nil {
		return fmt.Errorf("db_path: %w", err)
	}
	if strings.TrimSpace(c.Server.DBPath) == "" {
		c.Server.DBPath = filepath.Join(c.DataDir, defaultDocstoreName)
	}
	if c.Server.DBPath, err = expandPath(c.Server.DBPath); err != nil {
		return fmt.Errorf("server.db_path: %w", err)
	}
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	if c.Server.Bind == "" {
		c.Server.Bind = defaultServerBind
	}
	if strings.TrimSpace(c.Player.SocketPath) == "" {
		c.Player.SocketPath = defaultMpvSocket
	}
	if c.Player.SocketPath, err = expandPath(c.Player.SocketPath); err != nil {
		return fmt.Errorf("player.socket_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeCloud() {
	c.Cloud.BaseURL = strings.TrimRight(strings.TrimSpace(c.Cloud.BaseURL), "/")
	c.Cloud.ShareBaseURL = strings.TrimSpace(c.Cloud.ShareBaseURL)
	if c.Cloud.ShareBaseURL == "" {
		c.Cloud.ShareBaseURL = c.Cloud.BaseURL + "/"
	}
	if c.Cloud.SaveTimeout == 0 {
		c.Cloud.SaveTimeout = defaultSaveTimeout
	}
	if c.Player.PollInterval == 0 {
		c.Player.PollInterval = defaultPollIntervalMs
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = defaultLogFormat
	}
}
