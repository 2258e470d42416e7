//go:build unit
// +build unit

package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/MGTheTrain/textbook-rsa/internal/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetLoggerSingleton() {
	loggerInstance = nil
	loggerErr = nil
	loggerOnce = sync.Once{}
}

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name      string
		settings  *config.LoggerSettings
		wantErr   bool
		setupTest func(*testing.T) string
	}{
		{
			name:     "console logger",
			settings: &config.LoggerSettings{LogLevel: config.LogLevelInfo, LogType: config.LogTypeConsole},
		},
		{
			name: "file logger with rotation",
			settings: &config.LoggerSettings{
				LogLevel:   config.LogLevelInfo,
				LogType:    config.LogTypeFile,
				MaxSize:    10,
				MaxBackups: 3,
				MaxAge:     28,
			},
			setupTest: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "app.log")
			},
		},
		{
			name:     "invalid log level",
			settings: &config.LoggerSettings{LogLevel: "verbose", LogType: config.LogTypeConsole},
			wantErr:  true,
		},
		{
			name:     "unsupported log type",
			settings: &config.LoggerSettings{LogLevel: config.LogLevelInfo, LogType: "unknown"},
			wantErr:  true,
		},
		{
			name: "file logger missing rotation settings",
			settings: &config.LoggerSettings{
				LogLevel: config.LogLevelInfo,
				LogType:  config.LogTypeFile,
				FilePath: "/tmp/test.log",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(resetLoggerSingleton)

			if tt.setupTest != nil {
				tt.settings.FilePath = tt.setupTest(t)
			}

			err := InitLogger(tt.settings)

			if tt.wantErr {
				assert.Error(t, err)

				logger, getErr := GetLogger()
				assert.Error(t, getErr)
				assert.Nil(t, logger)
				return
			}

			require.NoError(t, err)

			logger, err := GetLogger()
			require.NoError(t, err)
			require.NotNil(t, logger)

			if tt.settings.LogType == config.LogTypeFile {
				logger.Info("test message")
				_, err := os.Stat(tt.settings.FilePath)
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetLogger_BeforeInit(t *testing.T) {
	t.Cleanup(resetLoggerSingleton)

	logger, err := GetLogger()
	assert.Error(t, err)
	assert.Nil(t, logger)
	assert.Contains(t, err.Error(), "not initialized")
}

func TestInitLogger_Idempotent(t *testing.T) {
	t.Cleanup(resetLoggerSingleton)

	require.NoError(t, InitLogger(config.NewConsoleLoggerSettings(false)))
	assert.NoError(t, InitLogger(config.NewConsoleLoggerSettings(true)))

	logger1, _ := GetLogger()
	logger2, _ := GetLogger()
	assert.Same(t, logger1, logger2)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{config.LogLevelDebug, slog.LevelDebug},
		{config.LogLevelInfo, slog.LevelInfo},
		{config.LogLevelWarning, slog.LevelWarn},
		{config.LogLevelError, slog.LevelError},
		{config.LogLevelCritical, slog.LevelError},
		{"unknown", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.level))
		})
	}
}

func TestFormatArgs(t *testing.T) {
	assert.Equal(t, "", formatArgs())
	assert.Equal(t, "blocks 3", formatArgs("blocks ", 3))
	assert.Equal(t, "helloworld", formatArgs("hello", "world"))
}
