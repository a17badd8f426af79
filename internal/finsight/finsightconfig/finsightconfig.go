// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package finsightconfig provides configuration parsing and validation for finsight.
//
// Configuration is stored at ~/.config/finsight/config.yaml (or
// $FINSIGHT_CONFIG_DIR/config.yaml). The file is optional: without it the
// tool uses the built-in source endpoints and the default timeout.
package finsightconfig

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the configuration file within the config directory.
const ConfigFileName = "config.yaml"

// DefaultTimeoutSeconds is the per-attempt HTTP timeout used when the
// configuration does not set one.
const DefaultTimeoutSeconds = 10

// configTemplate is the default configuration file template with comments.
// yaml.v3 does not preserve comments, so we hardcode the template string.
const configTemplate = `# The configuration file version.
#
# Required. The only current valid version is v1.
version: v1
# Data source endpoint overrides.
#
# Optional. Each entry replaces the built-in base URL of one data source,
# which is mainly useful for pointing the tool at a test server. Leave an
# entry empty (or omit it) to keep the built-in endpoint.
sources:
  # The fawazahmed0 currency-api package on the jsDelivr CDN.
  currency_base_url: ""
  # The currency-api mirror on raw.githubusercontent.com.
  currency_mirror_base_url: ""
  # The ip-api.com JSON endpoint.
  geolocation_base_url: ""
  # The Open-Meteo forecast endpoint.
  weather_base_url: ""
# The per-attempt HTTP timeout in seconds.
#
# Optional. Defaults to 10. Each source attempt gets its own timeout; a
# hung source blocks the run until its timeout fires.
timeout_seconds: 10
`

// ExternalConfig is the YAML-serializable configuration file structure.
type ExternalConfig struct {
	// Version is the configuration file version (must be "v1").
	Version string `yaml:"version"`
	// Sources holds the data source endpoint overrides.
	Sources ExternalSourcesConfig `yaml:"sources"`
	// TimeoutSeconds is the per-attempt HTTP timeout in seconds.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// ExternalSourcesConfig holds the data source endpoint overrides.
// Empty values keep the built-in endpoints.
type ExternalSourcesConfig struct {
	// CurrencyBaseURL overrides the jsDelivr currency-api base URL.
	CurrencyBaseURL string `yaml:"currency_base_url"`
	// CurrencyMirrorBaseURL overrides the raw.githubusercontent.com mirror base URL.
	CurrencyMirrorBaseURL string `yaml:"currency_mirror_base_url"`
	// GeolocationBaseURL overrides the ip-api.com endpoint URL.
	GeolocationBaseURL string `yaml:"geolocation_base_url"`
	// WeatherBaseURL overrides the Open-Meteo forecast endpoint URL.
	WeatherBaseURL string `yaml:"weather_base_url"`
}

// Config is the validated runtime configuration derived from the config file.
type Config struct {
	// CurrencyBaseURL is the jsDelivr currency-api base URL override, empty for the built-in.
	CurrencyBaseURL string
	// CurrencyMirrorBaseURL is the mirror base URL override, empty for the built-in.
	CurrencyMirrorBaseURL string
	// GeolocationBaseURL is the ip-api.com endpoint override, empty for the built-in.
	GeolocationBaseURL string
	// WeatherBaseURL is the Open-Meteo endpoint override, empty for the built-in.
	WeatherBaseURL string
	// Timeout is the per-attempt HTTP timeout.
	Timeout time.Duration
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Timeout: DefaultTimeoutSeconds * time.Second,
	}
}

// NewConfig validates an ExternalConfig and returns a runtime Config.
func NewConfig(externalConfig ExternalConfig) (*Config, error) {
	if externalConfig.Version != "v1" {
		return nil, fmt.Errorf("unsupported config version %q, must be v1", externalConfig.Version)
	}
	timeoutSeconds := externalConfig.TimeoutSeconds
	if timeoutSeconds == 0 {
		timeoutSeconds = DefaultTimeoutSeconds
	}
	if timeoutSeconds < 0 {
		return nil, fmt.Errorf("timeout_seconds must be positive, got %d", timeoutSeconds)
	}
	return &Config{
		CurrencyBaseURL:       externalConfig.Sources.CurrencyBaseURL,
		CurrencyMirrorBaseURL: externalConfig.Sources.CurrencyMirrorBaseURL,
		GeolocationBaseURL:    externalConfig.Sources.GeolocationBaseURL,
		WeatherBaseURL:        externalConfig.Sources.WeatherBaseURL,
		Timeout:               time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

// ConfigFilePath returns the path to the configuration file within the given config directory.
func ConfigFilePath(configDirPath string) string {
	return filepath.Join(configDirPath, ConfigFileName)
}

// ReadConfig reads and validates the configuration file from the given config directory.
// A missing file is not an error: the tool runs with DefaultConfig.
func ReadConfig(configDirPath string) (*Config, error) {
	config, err := readConfigFile(ConfigFilePath(configDirPath))
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return config, nil
}

// InitConfig creates a new configuration file with a documented template.
// Creates the config directory if it does not exist.
// Returns the path to the created file, or an error if the file already exists.
func InitConfig(configDirPath string) (string, error) {
	filePath := ConfigFilePath(configDirPath)
	if _, err := os.Stat(filePath); err == nil {
		return "", fmt.Errorf("configuration file already exists: %s", filePath)
	}
	// Create the config directory if it does not exist.
	if err := os.MkdirAll(configDirPath, 0o755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(filePath, []byte(configTemplate), 0o644); err != nil {
		return "", err
	}
	return filePath, nil
}

// ValidateConfig reads and validates the configuration file from the given
// config directory. Unlike ReadConfig, a missing file is an error here:
// validating nothing would always pass.
func ValidateConfig(configDirPath string) error {
	filePath := ConfigFilePath(configDirPath)
	if _, err := readConfigFile(filePath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("configuration file not found at %s, run \"finsight config init\" to create one", filePath)
		}
		return err
	}
	return nil
}

// *** PRIVATE ***

// readConfigFile reads and validates a configuration file.
// Returns the os.ReadFile error unwrapped so callers can detect IsNotExist.
func readConfigFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	var externalConfig ExternalConfig
	if err := unmarshalYAMLStrict(data, &externalConfig); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", filePath, err)
	}
	return NewConfig(externalConfig)
}

// unmarshalYAMLStrict unmarshals the data as YAML with strict field checking.
// If the data length is 0, this is a no-op.
func unmarshalYAMLStrict(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	yamlDecoder := yaml.NewDecoder(bytes.NewReader(data))
	// Reject unknown fields.
	yamlDecoder.KnownFields(true)
	if err := yamlDecoder.Decode(v); err != nil {
		return fmt.Errorf("could not unmarshal as YAML: %w", err)
	}
	return nil
}
