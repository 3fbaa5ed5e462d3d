package commands

import (
	"context"
	"fmt"
	"log"

	"github.com/irafid364-byte/Botie/clients"
	"github.com/irafid364-byte/Botie/models"
)

var vouchDeclaration = models.CommandDeclaration{
	Name:        models.VouchCommandName,
	Description: "Create a vouch for a product or service",
	Options: []models.CommandOption{
		{
			Name:        models.VouchOptionProduct,
			Description: "The product or service you want to vouch for",
			Kind:        models.CommandOptionKindString,
			Required:    true,
		},
		{
			Name:        models.VouchOptionClient,
			Description: "The client you are vouching for",
			Kind:        models.CommandOptionKindUser,
			Required:    true,
		},
		{
			Name:        models.VouchOptionChannel,
			Description: "Select the channel to post the vouch",
			Kind:        models.CommandOptionKindChannel,
			Required:    true,
		},
	},
}

// Declarations returns the full command set the bot owns. Every call returns a fresh copy.
func Declarations() []models.CommandDeclaration {
	declaration := vouchDeclaration
	declaration.Options = append([]models.CommandOption(nil), vouchDeclaration.Options...)
	return []models.CommandDeclaration{declaration}
}

type CommandsService struct {
	discordClient clients.DiscordClient
}

func NewCommandsService(discordClient clients.DiscordClient) *CommandsService {
	return &CommandsService{
		discordClient: discordClient,
	}
}

// Register replaces the application's global commands with Declarations.
// Failures are returned to the caller, never retried.
func (s *CommandsService) Register(ctx context.Context, appID string) error {
	log.Printf("🔄 Registering slash commands...")

	declarations := Declarations()
	registered, err := s.discordClient.RegisterGlobalCommands(ctx, appID, declarations)
	if err != nil {
		log.Printf("❌ Error registering commands: %v", err)
		return fmt.Errorf("failed to register %d commands: %w", len(declarations), err)
	}

	for _, command := range registered {
		log.Printf("✅ Registered /%s (ID: %s)", command.Name, command.ID)
	}
	log.Printf("✅ Slash commands registered successfully!")
	log.Printf("💬 Use /%s [product] to create a vouch embed", models.VouchCommandName)
	return nil
}
