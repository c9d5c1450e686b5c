package nakama

import (
	"context"
	"database/sql"

	"github.com/heroiclabs/nakama-common/runtime"

	"pidro/internal/bot"
	"pidro/internal/config"
)

// InitModule wires RPCs and match handlers for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := config.LoadGameConfig(gameConfigPath); err != nil {
		logger.Warn("InitModule: Using default game config: %v", err)
	}
	identitiesPath := config.GetGameConfig().BotIdentitiesPath
	if identitiesPath == "" {
		identitiesPath = botIdentitiesPath
	}
	if err := bot.LoadIdentities(identitiesPath); err != nil {
		logger.Warn("InitModule: Could not load bot identities: %v", err)
	} else {
		provisionCtx, cancel := context.WithTimeout(ctx, provisionTimeout)
		bot.ProvisionBots(provisionCtx, nk, logger)
		cancel()
	}

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNamePidro, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return newMatchHandler(), nil
	}); err != nil {
		return err
	}

	logger.Info("Pidro Go module loaded.")
	return nil
}
