package deliver

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config controls the delivery handler and its server.
type Config struct {
	Listen  string `yaml:"listen"`  // IP:Port to listen on.
	Prefix  string `yaml:"prefix"`  // Request path prefix.
	Dir     string `yaml:"dir"`     // Directory containing the archives.
	MaxList int    `yaml:"maxlist"` // Listing capacity, 0 for unbounded.
}

// DefaultConfig returns the configuration used when no file and no flags
// are given.
func DefaultConfig() Config {
	return Config{
		Listen:  "127.0.0.1:18123",
		Prefix:  "/",
		Dir:     "/var/snapshots/",
		MaxList: 0,
	}
}

// LoadConfig reads a YAML config file over the defaults. Keys absent
// from the file keep their default values.
func LoadConfig(filename string) (Config, error) {
	cfg := DefaultConfig()
	d, err := os.ReadFile(filename)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(d, &cfg); err != nil {
		return cfg, errors.Wrap(err, "parse config")
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "/"
	}
	return cfg, nil
}
