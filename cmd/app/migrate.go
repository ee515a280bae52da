package main

import (
	"github.com/urfave/cli/v2"

	"github.com/Rogue-Bear-Innovations/bookmarker-api/internal/config"
	"github.com/Rogue-Bear-Innovations/bookmarker-api/internal/db"
	"github.com/Rogue-Bear-Innovations/bookmarker-api/internal/logging"
)

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending database migrations and exit",
		Action: func(c *cli.Context) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}
			zl, err := logging.NewLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = zl.Sync() }()
			l := zl.Sugar()

			conn, err := db.NewGormClient(cfg, l)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(conn) }()

			if err := db.Migrate(c.Context, conn, l); err != nil {
				return err
			}
			l.Info("Migrations applied.")
			return nil
		},
	}
}
