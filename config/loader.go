package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/streamkit/errors"
)

const envPrefix = "STREAMKIT"

// Load reads configuration from the given file path, merged over defaults
// and under STREAMKIT_* environment variables. An empty path loads defaults
// and environment variables only. A .env file next to the config file (or
// in the working directory) is loaded into the environment first, without
// overriding variables already set.
func Load(path string) (*Config, error) {
	loadDotenv(path)

	v := viper.New()
	applyDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.InvalidConfig("reading config file " + path).WithCause(err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.InvalidConfig("unmarshaling configuration").WithCause(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults registers defaults on the viper instance so environment
// variables are picked up for keys absent from the config file.
func applyDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("pager.size", def.Pager.Size)
	v.SetDefault("pager.start_page", def.Pager.StartPage)
	v.SetDefault("pager.padding", def.Pager.Padding)
	v.SetDefault("pager.retry.max_attempts", def.Pager.Retry.MaxAttempts)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("telemetry.enabled", def.Telemetry.Enabled)
	v.SetDefault("telemetry.service_name", def.Telemetry.ServiceName)
	v.SetDefault("telemetry.endpoint", def.Telemetry.Endpoint)
	v.SetDefault("telemetry.insecure", def.Telemetry.Insecure)
	v.SetDefault("telemetry.sample_rate", def.Telemetry.SampleRate)
}

// loadDotenv loads a .env file next to the config file, falling back to the
// working directory. Missing files are fine.
func loadDotenv(configPath string) {
	candidates := []string{".env"}
	if configPath != "" {
		candidates = append([]string{filepath.Join(filepath.Dir(configPath), ".env")}, candidates...)
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}
