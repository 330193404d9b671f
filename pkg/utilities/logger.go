package utilities

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Level string `envconfig:"LOG_LEVEL"`
	Dev   bool   `envconfig:"LOG_DEV"`
	// Dir enables rotating log files next to stdout. Leave empty on
	// read-only or serverless hosts.
	Dir      string        `envconfig:"LOG_DIR"`
	MaxAge   time.Duration `envconfig:"LOG_MAX_AGE" default:"336h"`
	Rotation time.Duration `envconfig:"LOG_ROTATION" default:"24h"`
}

// ConfigFromEnv reads logger config from env vars.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	if cfg.Level == "" {
		if cfg.Dev {
			cfg.Level = "debug"
		} else {
			cfg.Level = "info"
		}
	}
	return cfg, nil
}

func levelFromString(l string) zapcore.Level {
	switch l {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Init initializes and returns a *zap.Logger
func Init(cfg Config) (*zap.Logger, error) {
	lvl := levelFromString(cfg.Level)
	if cfg.Dev && cfg.Dir == "" {
		c := zap.NewDevelopmentConfig()
		c.Level = zap.NewAtomicLevelAt(lvl)
		return c.Build()
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	enc := zapcore.NewJSONEncoder(encoderCfg)
	cores := []zapcore.Core{zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), lvl)}

	if cfg.Dir != "" {
		fileCores, err := rotatingCores(cfg, enc, lvl)
		if err != nil {
			return nil, err
		}
		cores = append(cores, fileCores...)
	}

	opts := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)}
	return zap.New(zapcore.NewTee(cores...), opts...), nil
}

// rotatingCores writes everything at lvl and above to combined.<date>.log and
// errors only to error.<date>.log.
func rotatingCores(cfg Config, enc zapcore.Encoder, lvl zapcore.Level) ([]zapcore.Core, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	combined, err := newRotator(cfg, "combined")
	if err != nil {
		return nil, err
	}
	errs, err := newRotator(cfg, "error")
	if err != nil {
		return nil, err
	}
	errLevel := zapcore.ErrorLevel
	if lvl > errLevel {
		errLevel = lvl
	}
	return []zapcore.Core{
		zapcore.NewCore(enc.Clone(), zapcore.AddSync(combined), lvl),
		zapcore.NewCore(enc.Clone(), zapcore.AddSync(errs), errLevel),
	}, nil
}

func newRotator(cfg Config, name string) (*rotatelogs.RotateLogs, error) {
	pattern := filepath.Join(cfg.Dir, name+".%Y%m%d.log")
	rl, err := rotatelogs.New(pattern,
		rotatelogs.WithLinkName(filepath.Join(cfg.Dir, name+".log")),
		rotatelogs.WithMaxAge(cfg.MaxAge),
		rotatelogs.WithRotationTime(cfg.Rotation),
	)
	if err != nil {
		return nil, fmt.Errorf("open %s log: %w", name, err)
	}
	return rl, nil
}
