package main

import (
	"io"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// newLogger builds the CLI logger from the logging.* keys. With neither a
// console nor a file sink configured it returns a no-op logger. The
// returned function flushes and closes the sinks.
func newLogger(v *viper.Viper, stderr io.Writer) (*zap.Logger, func(), error) {
	cfg := zap.NewDevelopmentConfig()
	if err := cfg.Level.UnmarshalText([]byte(v.GetString("logging.level"))); err != nil {
		return nil, nil, err
	}
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var (
		sinks []zapcore.WriteSyncer
		file  *lumberjack.Logger
	)
	if v.GetBool("logging.console") {
		sinks = append(sinks, zapcore.AddSync(stderr))
	}
	if name := v.GetString("logging.file"); name != "" {
		file = &lumberjack.Logger{
			Filename:   name,
			MaxSize:    100, // MB
			MaxBackups: 5,
			MaxAge:     28, // days
		}
		sinks = append(sinks, zapcore.AddSync(file))
	}
	if len(sinks) == 0 {
		return zap.NewNop(), func() {}, nil
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg.EncoderConfig), zapcore.NewMultiWriteSyncer(sinks...), cfg.Level)
	logger := zap.New(core)
	return logger, func() {
		_ = logger.Sync()
		if file != nil {
			_ = file.Close()
		}
	}, nil
}
