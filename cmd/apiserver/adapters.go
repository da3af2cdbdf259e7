package main

import (
	"github.com/turtacn/LegalSpend-Research/internal/config"
	"github.com/turtacn/LegalSpend-Research/internal/infrastructure/monitoring/logging"
)

// watchLogLevel applies log level changes written to the config file.  Every
// other setting needs a restart.
func watchLogLevel(path string, logger logging.Logger) error {
	setter, ok := logger.(logging.LevelSetter)
	if !ok {
		return nil
	}
	return config.Watch(path,
		func(cfg *config.Config) {
			setter.SetLevel(cfg.Log.Level)
			logger.Info("log level reloaded", logging.String("level", cfg.Log.Level))
		},
		func(err error) {
			logger.Warn("ignoring invalid config change", logging.Err(err))
		},
	)
}
