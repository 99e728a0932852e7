package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	EnvPrefix     = "ASCLEPIUS_"
	EnvConfigFile = "ASCLEPIUS_CONFIG"
)

// Load arma la Config por capas, de menor a mayor precedencia:
//  1. defaults (New)
//  2. archivo YAML indicado en ASCLEPIUS_CONFIG (opcional)
//  3. variables de entorno ASCLEPIUS_*
//  4. PORT, para plataformas que solo inyectan el puerto
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// ASCLEPIUS_HISTORY_LIMIT -> history_limit; las keys son planas.
	envProvider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		if key == "config" {
			return "", nil
		}
		if key == "emergency_keywords" {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := New()
	// Decodificar una lista sobre un slice default más largo deja elementos
	// viejos al final; el default de keywords se aplica después.
	defaultKeywords := cfg.EmergencyKeywords
	cfg.EmergencyKeywords = nil
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if len(cfg.EmergencyKeywords) == 0 {
		cfg.EmergencyKeywords = defaultKeywords
	}

	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" && os.Getenv(EnvPrefix+"ADDR") == "" {
		cfg.Addr = ":" + port
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rechaza settings con los que el server no puede arrancar.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("addr must not be empty"))
	}
	if c.ReadTimeout <= 0 {
		errs = append(errs, errors.New("read_timeout must be positive"))
	}
	if c.WriteTimeout <= 0 {
		errs = append(errs, errors.New("write_timeout must be positive"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown_timeout must be positive"))
	}
	if c.HistoryLimit < 0 {
		errs = append(errs, errors.New("history_limit must be >= 0"))
	}
	if !hasNonBlank(c.EmergencyKeywords) {
		errs = append(errs, errors.New("emergency_keywords must contain at least one phrase"))
	}
	return errors.Join(errs...)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func hasNonBlank(items []string) bool {
	for _, s := range items {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return false
}
