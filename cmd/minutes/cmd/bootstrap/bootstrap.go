// Package bootstrap loads what every command needs: environment, config
// file, API keys and the logger.
package bootstrap

import (
	"fmt"

	"go.uber.org/zap"
	"meeting-minutes/internal/app/config"
	"meeting-minutes/internal/app/logging"
	envconfig "meeting-minutes/internal/config"
)

var (
	ConfigPath string
	Verbose    bool
)

// Env is the loaded runtime environment of a command.
type Env struct {
	Config *config.Config
	Keys   *envconfig.APIKeys
	Logger *zap.Logger
}

// Load reads .env, the config file and the API keys.
func Load() (*Env, error) {
	logger, err := logging.NewLogger(Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	keys, err := envconfig.InitializeConfig(logger)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig(ConfigPath)
	if err != nil {
		return nil, err
	}

	return &Env{Config: cfg, Keys: keys, Logger: logger}, nil
}

// Close flushes the logger.
func (e *Env) Close() {
	_ = e.Logger.Sync()
}
