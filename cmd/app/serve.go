package main

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"github.com/Rogue-Bear-Innovations/bookmarker-api/internal/config"
	"github.com/Rogue-Bear-Innovations/bookmarker-api/internal/db"
	"github.com/Rogue-Bear-Innovations/bookmarker-api/internal/logging"
	"github.com/Rogue-Bear-Innovations/bookmarker-api/internal/rpc"
	"github.com/Rogue-Bear-Innovations/bookmarker-api/internal/service"
	"github.com/Rogue-Bear-Innovations/bookmarker-api/internal/transport"
)

const stopTimeout = 15 * time.Second

func newApp() *fx.App {
	return fx.New(
		config.Module,
		logging.Module,
		db.Module,
		service.Module,
		transport.Module,
		rpc.Module,
		fx.Invoke(func(*transport.HTTPServer, *rpc.GRPCServer) {}),
	)
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP API and the gRPC health endpoint",
		Action: func(c *cli.Context) error {
			app := newApp()
			if err := app.Err(); err != nil {
				return errors.Wrap(err, "build application")
			}

			if err := app.Start(c.Context); err != nil {
				return errors.Wrap(err, "start application")
			}

			select {
			case <-c.Context.Done():
			case <-app.Done():
			}

			stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
			defer cancel()
			return app.Stop(stopCtx)
		},
	}
}
