package db

import (
	"context"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/bookmarker-api/internal/db/migrations"
	"github.com/Rogue-Bear-Innovations/bookmarker-api/internal/logging"
)

// Migrate applies the embedded goose migrations. PostgreSQL only.
func Migrate(ctx context.Context, db *gorm.DB, l *zap.SugaredLogger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "get sql db")
	}

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(logging.NewPrinter(l.Named("goose")))
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "set goose dialect")
	}

	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return errors.Wrap(err, "apply migrations")
	}
	return nil
}
