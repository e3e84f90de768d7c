package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tomllog "github.com/bnema/pmc-telemetry/internal/adapters/emit/toml"
	"github.com/bnema/pmc-telemetry/internal/adapters/render/summary"
	"github.com/bnema/pmc-telemetry/internal/domain"
	otelplatform "github.com/bnema/pmc-telemetry/internal/platform/otel"
	"github.com/bnema/pmc-telemetry/internal/ports"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".pmct"
	envPrefix  = "PMCT"

	prefixKey    = "prefix"
	sinksKey     = "sinks"
	jsonlPathKey = "jsonl.path"
)

type app struct {
	config          *viper.Viper
	eventLog        *tomllog.Log
	clock           ports.Clock
	otel            otelplatform.Config
	summaryRenderer func([]domain.CombinedEvent, summary.RenderOptions) (string, error)
	verbose         bool
}

func wireApp() (*app, error) {
	cfg := viper.New()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDir))
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()
	cfg.SetDefault(prefixKey, domain.DefaultPrefix)
	cfg.SetDefault(sinksKey, sinkLog)
	cfg.SetDefault(jsonlPathKey, filepath.Join(homeDir, configDir, "events.jsonl"))

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	clock := ports.SystemClock{}
	eventLog, err := tomllog.NewLog(cfg, clock)
	if err != nil {
		return nil, fmt.Errorf("wire event log: %w", err)
	}

	otelConfig, err := otelplatform.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("wire otel config: %w", err)
	}

	return &app{
		config:          cfg,
		eventLog:        eventLog,
		clock:           clock,
		otel:            otelConfig,
		summaryRenderer: summary.Render,
	}, nil
}

func (a *app) newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
