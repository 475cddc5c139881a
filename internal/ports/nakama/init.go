package nakama

import (
	"context"
	"database/sql"

	"showdown/internal/bot"
	"showdown/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// loadRuntimeData loads the data-folder files the module depends on. Both
// loaders are load-once, so calling this from every entry point is cheap; the
// auth hook in particular needs the config before any match exists.
func loadRuntimeData(logger runtime.Logger) {
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("could not load game config: %v", err)
	}
	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("could not load bot identities: %v", err)
	}
}

// InitModule wires RPCs, hooks and the match handler for the Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	loadRuntimeData(logger)

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	if err := initializer.RegisterAfterAuthenticateDevice(AfterAuthenticateDevice); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameShowdown, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return &matchHandler{}, nil
	}); err != nil {
		return err
	}

	if err := bot.ProvisionBots(ctx, nk, logger); err != nil {
		logger.Warn("InitModule: could not provision bots: %v", err)
	}

	logger.Info("Showdown Go module loaded.")
	return nil
}
