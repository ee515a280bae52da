package rpc

import (
	"go.uber.org/fx"

	"github.com/Rogue-Bear-Innovations/bookmarker-api/internal/db"
)

var (
	Module = fx.Provide(
		func(s *db.Store) Pinger { return s },
		NewLifecycleGRPCServer,
	)
)
