package config

import (
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"

	"github.com/aquasecurity/patch-tuesday/utils"
)

const envPrefix = "PATCH_TUESDAY"

type Config struct {
	URL         string `mapstructure:"url"`
	APIKey      string `mapstructure:"api_key"`
	Concurrency int    `mapstructure:"concurrency"`
	Product     string `mapstructure:"product"`
	Format      string `mapstructure:"format"`
}

// DefaultPath returns the configuration file read when none is given explicitly.
func DefaultPath() string {
	return filepath.Join(utils.ConfigDir(), "config.yaml")
}

// Load reads the YAML configuration file at path, then applies PATCH_TUESDAY_*
// environment variables on top of it. A missing file is only an error when
// required is set.
func Load(fs afero.Fs, path string, required bool) (Config, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("url", "https://api.msrc.microsoft.com/cvrf/v2.0/cvrf/")
	v.SetDefault("api_key", "")
	v.SetDefault("concurrency", 12)
	v.SetDefault("product", "Win10_1809_x64")
	v.SetDefault("format", "text")

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return Config{}, xerrors.Errorf("unable to stat %s: %w", path, err)
	}
	switch {
	case exists:
		if err = v.ReadInConfig(); err != nil {
			return Config{}, xerrors.Errorf("failed to read config %s: %w", path, err)
		}
	case required:
		return Config{}, xerrors.Errorf("config file not found: %s", path)
	}

	var c Config
	if err = v.Unmarshal(&c); err != nil {
		return Config{}, xerrors.Errorf("failed to decode config: %w", err)
	}
	return c, nil
}
