package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds CLI defaults loaded from the optional TOML config file.
// Flags override everything in it.
type Config struct {
	// Source selects where auto-generated seeds come from: "crypto" (the
	// system CSPRNG, the default) or "remote" (an external provider).
	Source string `toml:"source"`

	// Endpoint is the remote entropy provider URL; required when Source is
	// "remote".
	Endpoint string `toml:"endpoint"`

	// Listen is the address the serve command binds to.
	Listen string `toml:"listen"`
}

// defaultConfig returns the configuration used when no file exists.
func defaultConfig() Config {
	return Config{
		Source: "crypto",
		Listen: ":8372",
	}
}

// defaultConfigPath returns the conventional config location,
// e.g. ~/.config/seedshuffle/config.toml on Linux.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "seedshuffle", "config.toml")
}

// loadConfig reads the TOML config at path, falling back to the default
// location when path is empty. A missing file is not an error: defaults are
// returned. Values absent from the file keep their defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = defaultConfigPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
