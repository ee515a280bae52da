package logging

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Rogue-Bear-Innovations/bookmarker-api/internal/config"
)

var (
	Module = fx.Options(
		fx.Provide(
			NewLogger,
			func(l *zap.Logger) *zap.SugaredLogger { return l.Sugar() },
		),
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Named("fx")}
		}),
	)
)

func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "parse log level")
	}

	zc := zap.NewProductionConfig()
	if cfg.LogDevelopment {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	l, err := zc.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return l, nil
}

// Printer adapts a sugared logger to the Printf/Fatalf style loggers of gorm and goose.
type Printer struct {
	l *zap.SugaredLogger
}

func NewPrinter(l *zap.SugaredLogger) *Printer {
	return &Printer{l: l}
}

func (p *Printer) Printf(format string, args ...interface{}) {
	p.l.Info(fmt.Sprintf(format, args...))
}

func (p *Printer) Fatalf(format string, args ...interface{}) {
	p.l.Fatal(fmt.Sprintf(format, args...))
}
