package xzap

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/philipjonsen/cryptopunks/base/logger"
)

var global atomic.Pointer[zap.Logger]

func init() {
	global.Store(zap.NewNop())
}

// SetUp initializes the global logger from conf and returns it.
// Mode "file" writes rotated logs under conf.Path, anything else
// writes to stdout.
func SetUp(c logger.LogConf) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if c.Level != "" {
		var err error
		level, err = zapcore.ParseLevel(c.Level)
		if err != nil {
			return nil, err
		}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var ws zapcore.WriteSyncer
	switch c.Mode {
	case "file":
		ws = zapcore.AddSync(&lumberjack.Logger{
			Filename: filepath.Join(c.Path, c.ServiceName+".log"),
			MaxSize:  c.MaxSizeMB,
			MaxAge:   c.KeepDays,
			Compress: c.Compress,
		})
	default:
		ws = zapcore.AddSync(os.Stdout)
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), ws, level)
	lg := zap.New(core, zap.AddCaller())
	if c.ServiceName != "" {
		lg = lg.With(zap.String("service", c.ServiceName))
	}
	global.Store(lg)
	return lg, nil
}

// WithContext returns the global logger. The context is accepted so
// call sites can carry request-scoped fields later without churn.
func WithContext(_ context.Context) *zap.Logger {
	return global.Load()
}
