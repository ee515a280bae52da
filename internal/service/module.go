package service

import (
	"go.uber.org/fx"

	"github.com/Rogue-Bear-Innovations/bookmarker-api/internal/auth"
	"github.com/Rogue-Bear-Innovations/bookmarker-api/internal/config"
	"github.com/Rogue-Bear-Innovations/bookmarker-api/internal/db"
)

var (
	Module = fx.Options(
		fx.Provide(
			func(s *db.Store) UserStore { return s },
			func(s *db.Store) BookmarkStore { return s },
			func() PasswordHasher { return auth.NewArgon2Hasher(auth.DefaultParams) },
			func(cfg *config.Config) TokenIssuer { return auth.NewIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL) },
			NewAuth,
			NewUsers,
			NewBookmarks,
		),
	)
)
