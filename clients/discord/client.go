package discord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/irafid364-byte/Botie/clients"
	"github.com/irafid364-byte/Botie/models"
)

// DiscordClient implements the clients.DiscordClient interface on top of a discordgo session.
// The session is shared with the gateway handlers; the client only issues REST calls on it.
type DiscordClient struct {
	session *discordgo.Session
}

func NewDiscordClient(session *discordgo.Session) clients.DiscordClient {
	return &DiscordClient{
		session: session,
	}
}

func (c *DiscordClient) RegisterGlobalCommands(
	ctx context.Context,
	appID string,
	declarations []models.CommandDeclaration,
) ([]clients.DiscordRegisteredCommand, error) {
	commands := make([]*discordgo.ApplicationCommand, 0, len(declarations))
	for _, declaration := range declarations {
		command, err := ToApplicationCommand(declaration)
		if err != nil {
			return nil, err
		}
		commands = append(commands, command)
	}

	// An empty guild ID targets the global catalog
	registered, err := c.session.ApplicationCommandBulkOverwrite(appID, "", commands, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to overwrite global commands: %w", err)
	}

	result := make([]clients.DiscordRegisteredCommand, 0, len(registered))
	for _, command := range registered {
		result = append(result, clients.DiscordRegisteredCommand{
			ID:   command.ID,
			Name: command.Name,
		})
	}
	return result, nil
}

func (c *DiscordClient) DeferEphemeralReply(ctx context.Context, interaction models.DiscordInteractionRef) error {
	err := c.session.InteractionRespond(toInteraction(interaction), &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to acknowledge interaction %s: %w", interaction.ID, err)
	}
	return nil
}

func (c *DiscordClient) EditReply(ctx context.Context, interaction models.DiscordInteractionRef, content string) error {
	_, err := c.session.InteractionResponseEdit(toInteraction(interaction), &discordgo.WebhookEdit{
		Content: &content,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to edit response for interaction %s: %w", interaction.ID, err)
	}
	return nil
}

func (c *DiscordClient) SendReplyDocument(
	ctx context.Context,
	channelID string,
	doc models.ReplyDocument,
) (*clients.DiscordPostMessageResponse, error) {
	message, err := c.session.ChannelMessageSendEmbed(channelID, ToMessageEmbed(doc), discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to send embed to channel %s: %w", channelID, err)
	}

	return &clients.DiscordPostMessageResponse{
		ChannelID: message.ChannelID,
		MessageID: message.ID,
	}, nil
}

// ToApplicationCommand converts a declaration into the chat input command discordgo submits
func ToApplicationCommand(declaration models.CommandDeclaration) (*discordgo.ApplicationCommand, error) {
	options := make([]*discordgo.ApplicationCommandOption, 0, len(declaration.Options))
	for _, option := range declaration.Options {
		optionType, err := toOptionType(option.Kind)
		if err != nil {
			return nil, fmt.Errorf("command %s option %s: %w", declaration.Name, option.Name, err)
		}
		options = append(options, &discordgo.ApplicationCommandOption{
			Type:        optionType,
			Name:        option.Name,
			Description: option.Description,
			Required:    option.Required,
		})
	}

	return &discordgo.ApplicationCommand{
		Type:        discordgo.ChatApplicationCommand,
		Name:        declaration.Name,
		Description: declaration.Description,
		Options:     options,
	}, nil
}

// ToMessageEmbed converts a reply document into a Discord embed
func ToMessageEmbed(doc models.ReplyDocument) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(doc.Fields))
	for _, field := range doc.Fields {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   field.Name,
			Value:  field.Value,
			Inline: field.Inline,
		})
	}

	embed := &discordgo.MessageEmbed{
		Title:  doc.Title,
		Color:  doc.Color,
		Fields: fields,
	}
	if doc.ThumbnailURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: doc.ThumbnailURL}
	}
	if doc.FooterText != "" || doc.FooterIconURL != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text:    doc.FooterText,
			IconURL: doc.FooterIconURL,
		}
	}
	if !doc.Timestamp.IsZero() {
		embed.Timestamp = doc.Timestamp.UTC().Format(time.RFC3339)
	}
	return embed
}

// IsPermissionError reports whether Discord rejected a request because the bot
// cannot see or post in the target channel
func IsPermissionError(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) || restErr.Message == nil {
		return false
	}
	return restErr.Message.Code == discordgo.ErrCodeMissingPermissions ||
		restErr.Message.Code == discordgo.ErrCodeMissingAccess
}

func toOptionType(kind models.CommandOptionKind) (discordgo.ApplicationCommandOptionType, error) {
	switch kind {
	case models.CommandOptionKindString:
		return discordgo.ApplicationCommandOptionString, nil
	case models.CommandOptionKindUser:
		return discordgo.ApplicationCommandOptionUser, nil
	case models.CommandOptionKindChannel:
		return discordgo.ApplicationCommandOptionChannel, nil
	default:
		return 0, fmt.Errorf("unsupported option kind %q", kind)
	}
}

func toInteraction(ref models.DiscordInteractionRef) *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:    ref.ID,
		AppID: ref.AppID,
		Token: ref.Token,
	}
}
