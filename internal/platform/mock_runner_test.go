package platform

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Run(ctx context.Context, cmd Command) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}
