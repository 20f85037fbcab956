// Copyright 2021 - 2023 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logutil

import (
	"os"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/matrixorigin/simplevec/pkg/common/moerr"
)

// LogConfig configures the global logger.  A non-empty Filename routes
// output through lumberjack rotation, otherwise logs go to stderr.
type LogConfig struct {
	Level    string `toml:"level"`
	Format   string `toml:"format"`
	Filename string `toml:"filename"`

	MaxSize    int `toml:"max-size"`
	MaxDays    int `toml:"max-days"`
	MaxBackups int `toml:"max-backups"`
}

var (
	once         sync.Once
	globalLogger atomic.Value
)

// GetGlobalLogger returns the process logger, initializing it with the
// default config on first use.
func GetGlobalLogger() *zap.Logger {
	once.Do(func() {
		if globalLogger.Load() == nil {
			logger, _ := initLogger(LogConfig{Level: "info", Format: "console"})
			globalLogger.Store(logger)
		}
	})
	return globalLogger.Load().(*zap.Logger)
}

// SetupLogger replaces the process logger.  It returns ErrBadConfig on
// an unknown level or format.
func SetupLogger(cfg LogConfig) error {
	logger, err := initLogger(cfg)
	if err != nil {
		return err
	}
	globalLogger.Store(logger)
	return nil
}

func initLogger(cfg LogConfig) (*zap.Logger, error) {
	level, err := cfg.getLevel()
	if err != nil {
		return nil, err
	}
	encoder, err := cfg.getEncoder()
	if err != nil {
		return nil, err
	}
	core := zapcore.NewCore(encoder, cfg.getSyncer(), level)
	return zap.New(core, zap.AddCaller()), nil
}

func (cfg LogConfig) getLevel() (zap.AtomicLevel, error) {
	switch cfg.Level {
	case "", "info":
		return zap.NewAtomicLevelAt(zapcore.InfoLevel), nil
	case "debug":
		return zap.NewAtomicLevelAt(zapcore.DebugLevel), nil
	case "warn":
		return zap.NewAtomicLevelAt(zapcore.WarnLevel), nil
	case "error":
		return zap.NewAtomicLevelAt(zapcore.ErrorLevel), nil
	case "panic":
		return zap.NewAtomicLevelAt(zapcore.PanicLevel), nil
	case "fatal":
		return zap.NewAtomicLevelAt(zapcore.FatalLevel), nil
	}
	return zap.AtomicLevel{}, moerr.NewBadConfig("unknown log level %s", cfg.Level)
}

func (cfg LogConfig) getEncoder() (zapcore.Encoder, error) {
	switch cfg.Format {
	case "", "console":
		return zapcore.NewConsoleEncoder(zap.NewProductionEncoderConfig()), nil
	case "json":
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), nil
	}
	return nil, moerr.NewBadConfig("unknown log format %s", cfg.Format)
}

func (cfg LogConfig) getSyncer() zapcore.WriteSyncer {
	if cfg.Filename != "" {
		return zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSize,
			MaxAge:     cfg.MaxDays,
			MaxBackups: cfg.MaxBackups,
		})
	}
	return zapcore.AddSync(os.Stderr)
}

func Debug(msg string, fields ...zap.Field) {
	GetGlobalLogger().WithOptions(zap.AddCallerSkip(1)).Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	GetGlobalLogger().WithOptions(zap.AddCallerSkip(1)).Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	GetGlobalLogger().WithOptions(zap.AddCallerSkip(1)).Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	GetGlobalLogger().WithOptions(zap.AddCallerSkip(1)).Error(msg, fields...)
}

// Infof only use in develop mode
func Infof(msg string, args ...interface{}) {
	GetGlobalLogger().WithOptions(zap.AddCallerSkip(1)).Sugar().Infof(msg, args...)
}

// Warnf only use in develop mode
func Warnf(msg string, args ...interface{}) {
	GetGlobalLogger().WithOptions(zap.AddCallerSkip(1)).Sugar().Warnf(msg, args...)
}
