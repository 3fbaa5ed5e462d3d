package discord

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/irafid364-byte/Botie/clients"
	"github.com/irafid364-byte/Botie/models"
)

// MockDiscordClient implements the clients.DiscordClient interface for testing
type MockDiscordClient struct {
	mock.Mock
}

func (m *MockDiscordClient) RegisterGlobalCommands(
	ctx context.Context,
	appID string,
	declarations []models.CommandDeclaration,
) ([]clients.DiscordRegisteredCommand, error) {
	args := m.Called(ctx, appID, declarations)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]clients.DiscordRegisteredCommand), args.Error(1)
}

func (m *MockDiscordClient) DeferEphemeralReply(ctx context.Context, interaction models.DiscordInteractionRef) error {
	args := m.Called(ctx, interaction)
	return args.Error(0)
}

func (m *MockDiscordClient) EditReply(ctx context.Context, interaction models.DiscordInteractionRef, content string) error {
	args := m.Called(ctx, interaction, content)
	return args.Error(0)
}

func (m *MockDiscordClient) SendReplyDocument(
	ctx context.Context,
	channelID string,
	doc models.ReplyDocument,
) (*clients.DiscordPostMessageResponse, error) {
	args := m.Called(ctx, channelID, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.DiscordPostMessageResponse), args.Error(1)
}
