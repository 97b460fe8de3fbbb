package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/glueful/memwatch/internal/errors"
)

// Write marshals cfg and writes it to path.
func Write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to serialize config",
			"This is a bug; please report it.")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write config file: "+path,
			"Check directory permissions.")
	}
	return nil
}
