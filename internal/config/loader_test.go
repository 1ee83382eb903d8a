package config_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/okian/joust/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.Log.Level, convey.ShouldEqual, "info")
				convey.So(cfg.Store.Driver, convey.ShouldEqual, "memory")
				convey.So(cfg.Engine.RetryAttempts, convey.ShouldEqual, 3)
				convey.So(cfg.HTTP.ShutdownTimeout, convey.ShouldEqual, 30*time.Second)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("JOUST_ADDR", ":8080")
			_ = os.Setenv("JOUST_LOG_LEVEL", "debug")
			_ = os.Setenv("JOUST_LOG_FORMAT", "json")
			_ = os.Setenv("JOUST_STORE_DRIVER", "sqlite")
			_ = os.Setenv("JOUST_STORE_DSN", "/tmp/joust-test.db")
			_ = os.Setenv("JOUST_ENGINE_RETRY_ATTEMPTS", "5")
			_ = os.Setenv("JOUST_ENGINE_SHARE_BASE_URL", "https://rank.example.com")
			_ = os.Setenv("JOUST_HTTP_READ_HEADER_TIMEOUT", "2s")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.Log.Level, convey.ShouldEqual, "debug")
				convey.So(cfg.Log.Format, convey.ShouldEqual, "json")
				convey.So(cfg.Store.Driver, convey.ShouldEqual, "sqlite")
				convey.So(cfg.Store.DSN, convey.ShouldEqual, "/tmp/joust-test.db")
				convey.So(cfg.Engine.RetryAttempts, convey.ShouldEqual, 5)
				convey.So(cfg.Engine.ShareBaseURL, convey.ShouldEqual, "https://rank.example.com")
				convey.So(cfg.HTTP.ReadHeaderTimeout, convey.ShouldEqual, 2*time.Second)
				// Untouched keys keep their defaults.
				convey.So(cfg.HTTP.ShutdownTimeout, convey.ShouldEqual, 30*time.Second)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			yamlContent := `
addr: ":9090"
log:
  level: warn
store:
  driver: sqlite
  dsn: /tmp/joust.db
engine:
  retry_attempts: 4
http:
  shutdown_timeout: 10s
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("JOUST_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.Log.Level, convey.ShouldEqual, "warn")
				convey.So(cfg.Store.Driver, convey.ShouldEqual, "sqlite")
				convey.So(cfg.Store.DSN, convey.ShouldEqual, "/tmp/joust.db")
				convey.So(cfg.Engine.RetryAttempts, convey.ShouldEqual, 4)
				convey.So(cfg.HTTP.ShutdownTimeout, convey.ShouldEqual, 10*time.Second)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
store:
  driver: sqlite
  dsn: /tmp/joust.db
engine:
  retry_attempts: 4
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("JOUST_CONFIG", tmpFile)
			_ = os.Setenv("JOUST_ADDR", ":8080")                // overrides the file
			_ = os.Setenv("JOUST_ENGINE_RETRY_ATTEMPTS", "7")   // overrides the file
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")              // from env
				convey.So(cfg.Engine.RetryAttempts, convey.ShouldEqual, 7)    // from env
				convey.So(cfg.Store.Driver, convey.ShouldEqual, "sqlite")     // from file
				convey.So(cfg.Store.DSN, convey.ShouldEqual, "/tmp/joust.db") // from file
			})
		})

		convey.Convey("When loading config with an invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("JOUST_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a non-existent file", func() {
			_ = os.Setenv("JOUST_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the environment clears addr", func() {
			_ = os.Setenv("JOUST_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the environment selects an unknown driver", func() {
			_ = os.Setenv("JOUST_STORE_DRIVER", "redis")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a partial YAML file", func() {
			yamlContent := `
log:
  format: json
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("JOUST_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should merge with defaults for missing fields", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Log.Format, convey.ShouldEqual, "json") // from file
				convey.So(cfg.Log.Level, convey.ShouldEqual, "info")  // default
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")      // default
				convey.So(cfg.Store.Driver, convey.ShouldEqual, "memory")
				convey.So(cfg.Engine.RetryAttempts, convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When a numeric key carries a non-numeric value", func() {
			_ = os.Setenv("JOUST_ENGINE_RETRY_ATTEMPTS", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When a duration key carries garbage", func() {
			_ = os.Setenv("JOUST_HTTP_SHUTDOWN_TIMEOUT", "soon")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"JOUST_CONFIG",
		"JOUST_ADDR",
		"JOUST_LOG_LEVEL",
		"JOUST_LOG_FORMAT",
		"JOUST_STORE_DRIVER",
		"JOUST_STORE_DSN",
		"JOUST_CATALOG_CSV",
		"JOUST_ENGINE_RETRY_ATTEMPTS",
		"JOUST_ENGINE_SHARE_BASE_URL",
		"JOUST_HTTP_SHUTDOWN_TIMEOUT",
		"JOUST_HTTP_READ_HEADER_TIMEOUT",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "joust-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
