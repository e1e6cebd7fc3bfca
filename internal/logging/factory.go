package logging

import (
	"fmt"
	"sync"

	"careergenie-jobs/internal/config"
	"careergenie-jobs/internal/logging/adapters"
)

// Manager owns the global logging system initialization.
type Manager struct {
	logger *MultiLogger
}

// NewManager creates a new logging manager
func NewManager() *Manager {
	return &Manager{logger: NewMultiLogger()}
}

// Initialize builds adapters from configuration and wires them into the
// logger. With no adapters configured, a single stdout adapter is used.
func (m *Manager) Initialize(cfg *config.Config) error {
	m.logger.SetLevel(ParseLogLevel(cfg.Logging.Level))

	if len(cfg.Logging.Adapters) == 0 {
		stdout := adapters.NewStdoutAdapter("stdout", adapters.StdoutConfig{Format: cfg.Logging.Format})
		return m.logger.AddAdapter(stdout)
	}

	for _, ac := range cfg.Logging.Adapters {
		if !ac.Enabled {
			continue
		}

		adapter, err := createAdapter(ac, cfg.Logging.Format)
		if err != nil {
			return fmt.Errorf("failed to create adapter %s: %w", ac.Name, err)
		}

		if err := m.logger.AddAdapter(adapter); err != nil {
			return fmt.Errorf("failed to add adapter %s: %w", ac.Name, err)
		}
	}

	return nil
}

// GetLogger returns the initialized logger
func (m *Manager) GetLogger() Logger {
	return m.logger
}

// Close closes the logging system
func (m *Manager) Close() error {
	if m.logger != nil {
		return m.logger.Close()
	}
	return nil
}

func createAdapter(ac config.LogAdapterConfig, defaultFormat string) (LogAdapter, error) {
	format := ac.Format
	if format == "" {
		format = defaultFormat
	}

	switch ac.Type {
	case "stdout":
		return adapters.NewStdoutAdapter(ac.Name, adapters.StdoutConfig{Format: format}), nil
	case "file":
		return adapters.NewFileAdapter(ac.Name, adapters.FileConfig{
			FilePath:   ac.FilePath,
			Format:     format,
			CreateDirs: true,
		})
	default:
		return nil, fmt.Errorf("unsupported adapter type: %s", ac.Type)
	}
}

var (
	globalManager *Manager
	globalMu      sync.Mutex
)

// InitializeLogging initializes the global logging system
func InitializeLogging(cfg *config.Config) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	globalManager = NewManager()
	return globalManager.Initialize(cfg)
}

// GetGlobalLogger returns the global logger instance, falling back to a basic
// stdout logger when InitializeLogging was never called (tests, early startup).
func GetGlobalLogger() Logger {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalManager == nil {
		globalManager = NewManager()
		stdout := adapters.NewStdoutAdapter("stdout", adapters.StdoutConfig{Format: "json"})
		globalManager.logger.AddAdapter(stdout)
	}

	return globalManager.GetLogger()
}

// CloseGlobalLogging closes the global logging system during shutdown.
func CloseGlobalLogging() error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalManager == nil {
		return nil
	}
	return globalManager.Close()
}
