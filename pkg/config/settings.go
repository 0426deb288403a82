package config

import (
	"errors"
	"os"
	"slices"
	"sync/atomic"

	"github.com/caarlos0/env/v11"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Settings are the process-wide defaults consumed by the serializer and
// pagination layers.
type Settings struct {
	Env      string `env:"RESTKIT_ENV" envDefault:"development" yaml:"env"`
	LogLevel string `env:"RESTKIT_LOG_LEVEL" envDefault:"info" yaml:"log_level"`

	// PageSize is the default page size. Zero disables pagination.
	PageSize               int    `env:"RESTKIT_PAGE_SIZE" envDefault:"10" yaml:"page_size"`
	DefaultPaginationClass string `env:"RESTKIT_DEFAULT_PAGINATION_CLASS" envDefault:"pagination.PageNumberPagination" yaml:"default_pagination_class"`
	PageQueryParam         string `env:"RESTKIT_PAGE_QUERY_PARAM" envDefault:"page" yaml:"page_query_param"`
	// PageSizeQueryParam lets clients pick the page size. Empty disables it.
	PageSizeQueryParam string `env:"RESTKIT_PAGE_SIZE_QUERY_PARAM" yaml:"page_size_query_param"`
	// MaxPageSize caps a client-selected page size. Zero means no cap.
	MaxPageSize     int      `env:"RESTKIT_MAX_PAGE_SIZE" yaml:"max_page_size"`
	LastPageStrings []string `env:"RESTKIT_LAST_PAGE_STRINGS" envDefault:"last" envSeparator:"," yaml:"last_page_strings"`
}

func (s *Settings) clone() *Settings {
	c := *s
	c.LastPageStrings = slices.Clone(s.LastPageStrings)
	return &c
}

var current atomic.Pointer[Settings]

// Defaults returns the built-in settings, ignoring the environment.
func Defaults() *Settings {
	var s Settings
	// Parsing an empty environment applies only the envDefault tags.
	if err := env.ParseWithOptions(&s, env.Options{Environment: map[string]string{}}); err != nil {
		panic("config: invalid settings defaults: " + err.Error())
	}
	return &s
}

// LoadSettings parses settings from the environment after loading the
// default .env file.
func LoadSettings() (*Settings, error) {
	loadDefaultEnv()
	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}
	return &s, nil
}

// Current returns the active settings, loading them from the environment on
// first use. It panics when the environment holds invalid values. The
// returned value must not be modified; use Reload or Override instead.
func Current() *Settings {
	if s := current.Load(); s != nil {
		return s
	}
	s, err := LoadSettings()
	if err != nil {
		panic(err.Error())
	}
	current.CompareAndSwap(nil, s)
	return current.Load()
}

// Reload atomically replaces the active settings with a copy of s.
func Reload(s *Settings) error {
	if s == nil {
		return ErrNilPointer
	}
	current.Store(s.clone())
	return nil
}

// Override builds settings from the defaults plus values keyed by yaml
// name, such as {"page_size": 50}, and makes them active.
func Override(values map[string]any) (*Settings, error) {
	s := Defaults()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "yaml",
		Result:           s,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(values); err != nil {
		return nil, errors.Join(ErrInvalidSettings, err)
	}
	if err := Reload(s); err != nil {
		return nil, err
	}
	return Current(), nil
}

// LoadFile reads settings overrides from a YAML file and makes them active.
func LoadFile(path string) (*Settings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadingFile, err)
	}
	var values map[string]any
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return nil, errors.Join(ErrReadingFile, err)
	}
	return Override(values)
}
