package usecases

import (
	"context"

	"github.com/irafid364-byte/Botie/models"
)

// DiscordUseCaseInterface defines the interface for Discord use case operations
type DiscordUseCaseInterface interface {
	ProcessVouchInteraction(ctx context.Context, event models.VouchInteraction) error
}

// CommandRegistrar submits the bot's slash commands to Discord
type CommandRegistrar interface {
	Register(ctx context.Context, appID string) error
}
