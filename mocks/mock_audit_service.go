package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fiscaudit/internal/service"
)

// MockAuditService is a mock implementation of service.AuditService.
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) AnalyzeDocument(ctx context.Context, name string, data []byte) (*service.AnalysisReport, error) {
	args := m.Called(ctx, name, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AnalysisReport), args.Error(1)
}
