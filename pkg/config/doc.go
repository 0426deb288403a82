// Package config loads application configuration from the environment and
// holds the process-wide settings used by serializers and paginators.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
//
//   - LoadEnv loads one or more `.env` files into the process environment.
//   - Load parses the environment into any struct using `env` tags and caches
//     the result per type.
//   - Current returns the active Settings, parsed from `RESTKIT_*` variables
//     on first use.
//
// # Settings
//
// Settings are read far more often than they change, so the active value is
// held in an atomic pointer. Reload swaps the whole value at once; readers
// never observe a partially updated configuration.
//
//	s := config.Current()
//	fmt.Println(s.PageSize) // 10 unless RESTKIT_PAGE_SIZE is set
//
//	// Replace from a map keyed by yaml names...
//	_, err := config.Override(map[string]any{"page_size": 50, "max_page_size": 200})
//
//	// ...or from a YAML file with the same keys.
//	_, err = config.LoadFile("restkit.yaml")
//
// Override and LoadFile start from Defaults, not from the current settings,
// so every reload is a complete configuration.
//
// # Error Handling
//
//   - ErrParsingConfig: env vars could not be parsed.
//   - ErrLoadingEnvFile: a .env file could not be loaded.
//   - ErrInvalidSettings: an override key or value does not fit Settings.
//   - ErrReadingFile: a settings file could not be read or decoded.
//   - ErrNilPointer: nil passed to Load or Reload.
//
// Use ResetCache in tests to drop cached configs and the active settings.
package config
