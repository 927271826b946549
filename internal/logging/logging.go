// Package logging provides structured logging functionality.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/pritdesai016/theoquity-journal/internal/config"
)

// NewLogger creates a logger from the logging configuration: a console
// writer, a rotating file writer, or both.
func NewLogger(cfg config.LoggingConfig) zerolog.Logger {
	var writers []io.Writer

	if cfg.Console {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}

	if cfg.File {
		logDir := filepath.Dir(cfg.FilePath)
		if err := os.MkdirAll(logDir, 0755); err == nil {
			writers = append(writers, &lumberjack.Logger{
				Filename:   cfg.FilePath,
				MaxSize:    cfg.MaxSize,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAge,
				Compress:   true,
			})
		}
	}

	var writer io.Writer
	switch len(writers) {
	case 0:
		writer = os.Stderr
	case 1:
		writer = writers[0]
	default:
		writer = zerolog.MultiLevelWriter(writers...)
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	return zerolog.New(writer).
		With().
		Timestamp().
		Logger()
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// SetDebugLevel sets the global log level to debug.
func SetDebugLevel() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
}

// WithSession adds a session key to the logger context.
func WithSession(logger zerolog.Logger, key string) zerolog.Logger {
	return logger.With().Str("session", key).Logger()
}

// LogTradeAppended logs a trade leg append.
func LogTradeAppended(logger zerolog.Logger, tradeID, legID int, symbol string, qty, price float64) {
	logger.Info().
		Str("event", "trade_appended").
		Int("trade_id", tradeID).
		Int("leg_id", legID).
		Str("symbol", symbol).
		Float64("buy_qty", qty).
		Float64("buy_price", price).
		Msg("Trade leg recorded")
}

// LogStopAppended logs a stop event append.
func LogStopAppended(logger zerolog.Logger, tradeID, legID int, stopType string, price float64) {
	logger.Info().
		Str("event", "stop_appended").
		Int("trade_id", tradeID).
		Int("leg_id", legID).
		Str("stop_type", stopType).
		Float64("stop_price", price).
		Msg("Stop event recorded")
}

// LogMetricsComputed logs a metrics derivation.
func LogMetricsComputed(logger zerolog.Logger, tradeID, legID int, netPnL float64) {
	logger.Debug().
		Str("event", "metrics_computed").
		Int("trade_id", tradeID).
		Int("leg_id", legID).
		Float64("net_pnl", netPnL).
		Msg("Metrics computed")
}

// LogExport logs a table export.
func LogExport(logger zerolog.Logger, table, path string, rows int) {
	logger.Info().
		Str("event", "export").
		Str("table", table).
		Str("path", path).
		Int("rows", rows).
		Msg("Table exported")
}
