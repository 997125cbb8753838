package logger

import (
	"investor-service/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Local environments get the colored console
// encoder at debug level; everything else logs JSON at info.
func New(cfg config.AppConfig) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.IsDevelopment() {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.TimeKey = "ts"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	l, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return l.With(zap.String("service", cfg.AppName)), nil
}
