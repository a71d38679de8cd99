// Package config loads streamkit configuration from YAML files and
// environment variables using viper, with struct-tag validation.
//
// Configuration is resolved in order: defaults, config file, then
// environment variables prefixed with STREAMKIT_ (e.g.
// STREAMKIT_PAGER_SIZE=50 overrides pager.size). A .env file next to the
// config file is loaded first when present.
//
//	cfg, err := config.Load("config.yml")
//	pager := paginate.NewPager(fetch, cfg.Pager.PagerOptions()...)
package config
