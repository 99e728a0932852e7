// Package config contiene la configuración del servicio y cómo se carga.
package config

import (
	"time"

	"asclepius-api/internal/domain/diagnosis"
)

// Config contiene la configuración del proceso.
type Config struct {
	// AppName va en cada línea de log y lo reporta /health.
	AppName string `koanf:"app_name"`

	// Version la reportan GET / y el documento Swagger.
	Version string `koanf:"version"`

	// Addr es la dirección HTTP de escucha, p.ej. ":8080".
	Addr string `koanf:"addr"`

	// LogLevel: debug, info, warn, error. LogFormat: text, json.
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// HistoryLimit acota el historial en memoria; 0 = sin límite.
	HistoryLimit int `koanf:"history_limit"`

	// EmergencyKeywords se buscan como substrings, sin distinguir mayúsculas, en orden.
	EmergencyKeywords []string `koanf:"emergency_keywords"`

	// SwaggerEnabled monta la doc de la API en /swagger/.
	SwaggerEnabled bool `koanf:"swagger_enabled"`
}

// New devuelve los defaults.
func New() *Config {
	return &Config{
		AppName:           "asclepius-api",
		Version:           "0.1.0",
		Addr:              ":8080",
		LogLevel:          "info",
		LogFormat:         "text",
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		HistoryLimit:      0,
		EmergencyKeywords: diagnosis.DefaultEmergencyKeywords(),
		SwaggerEnabled:    true,
	}
}
