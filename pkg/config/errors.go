package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrLoadingEnvFile is returned when a .env file cannot be loaded
	ErrLoadingEnvFile = errors.New("failed to load env file")

	// ErrNilPointer is returned when a nil pointer is provided to Load or Reload
	ErrNilPointer = errors.New("nil pointer provided to config loader")

	// ErrInvalidSettings is returned when overrides do not match the settings fields
	ErrInvalidSettings = errors.New("invalid settings override")

	// ErrReadingFile is returned when a settings file cannot be read or decoded
	ErrReadingFile = errors.New("failed to read settings file")
)
