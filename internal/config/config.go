package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	configFile  = "config.json"
	walletsFile = "wallets.json"
	sessionFile = "session.json"
)

// Config holds all send-it configuration.
type Config struct {
	RPCURL        string `json:"rpc_url"`
	WSURL         string `json:"ws_url"`
	ExplorerURL   string `json:"explorer_url"`
	DefaultWallet string `json:"default_wallet"`

	// internal: config dir path used for Save()
	configDir string
}

// Session is the persisted connection state: which wallet is connected, if
// any. It survives between invocations the way an injected wallet's
// shimmed disconnect state does.
type Session struct {
	Connected bool   `json:"connected"`
	Wallet    string `json:"wallet"`
	Address   string `json:"address"`
}

// Load reads config from dir (or creates defaults). dir defaults to ~/.send-it.
func Load(dir string) (*Config, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home dir: %w", err)
		}
		dir = filepath.Join(home, ".send-it")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	cfg := defaults(dir)

	path := filepath.Join(dir, configFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.configDir = dir
	if cfg.RPCURL == "" {
		cfg.RPCURL = DefaultRPCURL
	}
	if cfg.WSURL == "" {
		cfg.WSURL = DefaultWSURL
	}
	if cfg.ExplorerURL == "" {
		cfg.ExplorerURL = DefaultExplorer
	}

	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.configDir, configFile), data, 0o600)
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}

// WalletsPath returns the path of wallets.json for the wallet store.
func (c *Config) WalletsPath() string {
	return filepath.Join(c.configDir, walletsFile)
}

// LoadSession reads session.json. A missing file is an empty session.
func (c *Config) LoadSession() (*Session, error) {
	return loadJSON[Session](filepath.Join(c.configDir, sessionFile))
}

// SaveSession writes session.json.
func (c *Config) SaveSession(s *Session) error {
	return saveJSON(filepath.Join(c.configDir, sessionFile), s)
}

// --- helpers ---

func defaults(dir string) *Config {
	return &Config{
		RPCURL:      DefaultRPCURL,
		WSURL:       DefaultWSURL,
		ExplorerURL: DefaultExplorer,
		configDir:   dir,
	}
}

func loadJSON[T any](path string) (*T, error) {
	var zero T
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &zero, nil
	}
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func saveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
