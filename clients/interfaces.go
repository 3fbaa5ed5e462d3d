package clients

import (
	"context"

	"github.com/irafid364-byte/Botie/models"
)

// DiscordClient is the set of Discord REST operations the bot performs
type DiscordClient interface {
	// RegisterGlobalCommands replaces every global command of the application with declarations
	RegisterGlobalCommands(ctx context.Context, appID string, declarations []models.CommandDeclaration) ([]DiscordRegisteredCommand, error)
	// DeferEphemeralReply acknowledges an interaction with a deferred reply only the invoker can see
	DeferEphemeralReply(ctx context.Context, interaction models.DiscordInteractionRef) error
	// EditReply replaces the content of the original interaction response
	EditReply(ctx context.Context, interaction models.DiscordInteractionRef, content string) error
	// SendReplyDocument posts a reply document as an embed to the given channel
	SendReplyDocument(ctx context.Context, channelID string, doc models.ReplyDocument) (*DiscordPostMessageResponse, error)
}
