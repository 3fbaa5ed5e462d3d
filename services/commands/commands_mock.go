package commands

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCommandsService is a mock implementation of the command registrar
type MockCommandsService struct {
	mock.Mock
}

func (m *MockCommandsService) Register(ctx context.Context, appID string) error {
	args := m.Called(ctx, appID)
	return args.Error(0)
}
