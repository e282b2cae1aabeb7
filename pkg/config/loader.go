package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read by Load when no files are given. It may be absent.
const DefaultEnvFile = ".env"

// Load reads the given .env files, later files overriding earlier ones,
// then parses the DETECTOR_ variables into a Config and validates it.
// Variables set in the process environment take precedence over the files.
// The process environment itself is not modified.
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//		// Handle error
//	}
func Load(files ...string) (Config, error) {
	vars, err := readEnvFiles(files)
	if err != nil {
		return Config{}, err
	}
	for k, v := range environ() {
		vars[k] = v
	}

	cfg, err := env.ParseAsWithOptions[Config](env.Options{
		Prefix:      Prefix,
		Environment: vars,
	})
	if err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MustLoad works like Load but panics if configuration loading fails.
// This is useful for configurations that are required for the application to start.
func MustLoad(files ...string) Config {
	cfg, err := Load(files...)
	if err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
	return cfg
}

func readEnvFiles(files []string) (map[string]string, error) {
	vars := make(map[string]string)
	if len(files) == 0 {
		// The default file is optional.
		if _, err := os.Stat(DefaultEnvFile); err != nil {
			return vars, nil
		}
		files = []string{DefaultEnvFile}
	}

	for _, file := range files {
		m, err := godotenv.Read(file)
		if err != nil {
			return nil, errors.Join(ErrLoadingEnvFile, fmt.Errorf("%s: %w", file, err))
		}
		for k, v := range m {
			vars[k] = v
		}
	}
	return vars, nil
}

func environ() map[string]string {
	m := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			m[k] = v
		}
	}
	return m
}
