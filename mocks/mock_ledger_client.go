package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fiscaudit/internal/domain"
)

// MockLedgerClient is a mock implementation of port.LedgerClient.
type MockLedgerClient struct {
	mock.Mock
}

func (m *MockLedgerClient) FindByDocument(ctx context.Context, sourceName string) ([]domain.LedgerRow, error) {
	args := m.Called(ctx, sourceName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerRow), args.Error(1)
}
