package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"asclepius-api/internal/config"
	"asclepius-api/internal/domain/diagnosis"

	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"ASCLEPIUS_CONFIG",
	"ASCLEPIUS_ADDR",
	"ASCLEPIUS_LOG_LEVEL",
	"ASCLEPIUS_LOG_FORMAT",
	"ASCLEPIUS_HISTORY_LIMIT",
	"ASCLEPIUS_EMERGENCY_KEYWORDS",
	"ASCLEPIUS_WRITE_TIMEOUT",
	"ASCLEPIUS_SWAGGER_ENABLED",
	"PORT",
}

func clearConfigEnvVars() {
	for _, k := range configEnvVars {
		_ = os.Unsetenv(k)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "asclepius.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading with defaults only", func() {
			cfg, err := config.Load()

			convey.Convey("Then the defaults are used", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.AppName, convey.ShouldEqual, "asclepius-api")
				convey.So(cfg.Version, convey.ShouldEqual, "0.1.0")
				convey.So(cfg.HistoryLimit, convey.ShouldEqual, 0)
				convey.So(cfg.SwaggerEnabled, convey.ShouldBeTrue)
				convey.So(cfg.WriteTimeout, convey.ShouldEqual, 10*time.Second)
				convey.So(cfg.EmergencyKeywords, convey.ShouldResemble, diagnosis.DefaultEmergencyKeywords())
			})
		})

		convey.Convey("When environment variables are set", func() {
			_ = os.Setenv("ASCLEPIUS_ADDR", ":9090")
			_ = os.Setenv("ASCLEPIUS_LOG_FORMAT", "json")
			_ = os.Setenv("ASCLEPIUS_HISTORY_LIMIT", "500")
			_ = os.Setenv("ASCLEPIUS_WRITE_TIMEOUT", "3s")
			_ = os.Setenv("ASCLEPIUS_SWAGGER_ENABLED", "false")
			_ = os.Setenv("ASCLEPIUS_EMERGENCY_KEYWORDS", "anaphylaxis, seizure ,,")

			cfg, err := config.Load()

			convey.Convey("Then they override the defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.HistoryLimit, convey.ShouldEqual, 500)
				convey.So(cfg.WriteTimeout, convey.ShouldEqual, 3*time.Second)
				convey.So(cfg.SwaggerEnabled, convey.ShouldBeFalse)
				convey.So(cfg.EmergencyKeywords, convey.ShouldResemble, []string{"anaphylaxis", "seizure"})
			})
		})

		convey.Convey("When only PORT is set", func() {
			_ = os.Setenv("PORT", "7000")

			cfg, err := config.Load()

			convey.Convey("Then the address follows it", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7000")
			})
		})

		convey.Convey("When a YAML file is provided", func() {
			path := writeConfigFile(t, `
addr: ":9191"
log_level: debug
history_limit: 25
emergency_keywords:
  - chest pain
  - fainting
`)
			_ = os.Setenv("ASCLEPIUS_CONFIG", path)
			_ = os.Setenv("ASCLEPIUS_HISTORY_LIMIT", "30")

			cfg, err := config.Load()

			convey.Convey("Then file values apply and env still wins", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9191")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.HistoryLimit, convey.ShouldEqual, 30)
				convey.So(cfg.EmergencyKeywords, convey.ShouldResemble, []string{"chest pain", "fainting"})
			})
		})

		convey.Convey("When the YAML file does not exist", func() {
			_ = os.Setenv("ASCLEPIUS_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

			_, err := config.Load()

			convey.Convey("Then loading fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the history limit is negative", func() {
			_ = os.Setenv("ASCLEPIUS_HISTORY_LIMIT", "-1")

			_, err := config.Load()

			convey.Convey("Then validation rejects it", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "history_limit")
			})
		})
	})
}

func TestConfigValidate(t *testing.T) {
	convey.Convey("Given default settings", t, func() {
		cfg := config.New()

		convey.Convey("They are valid", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Blank keywords and empty addr are both reported", func() {
			cfg.Addr = ""
			cfg.EmergencyKeywords = []string{" "}
			err := cfg.Validate()
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "addr")
			convey.So(err.Error(), convey.ShouldContainSubstring, "emergency_keywords")
		})
	})
}
