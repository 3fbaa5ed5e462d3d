package discord

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/irafid364-byte/Botie/models"
)

// MockDiscordUseCase is a mock implementation of usecases.DiscordUseCaseInterface
type MockDiscordUseCase struct {
	mock.Mock
}

func (m *MockDiscordUseCase) ProcessVouchInteraction(ctx context.Context, event models.VouchInteraction) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
