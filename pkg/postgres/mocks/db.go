package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hitakshiA/charity-rewards-indexer/pkg/postgres"
)

// MockDB is a mock implementation of postgres.DB for testing
type MockDB struct {
	mock.Mock
}

func (m *MockDB) Exec(ctx context.Context, query string, args ...any) error {
	callArgs := []any{ctx, query}
	callArgs = append(callArgs, args...)
	argsResult := m.Called(callArgs...)
	return argsResult.Error(0)
}

func (m *MockDB) QueryRow(ctx context.Context, query string, args ...any) postgres.Row {
	callArgs := []any{ctx, query}
	callArgs = append(callArgs, args...)
	argsResult := m.Called(callArgs...)
	if argsResult.Get(0) == nil {
		return nil
	}
	return argsResult.Get(0).(postgres.Row)
}

var _ postgres.DB = (*MockDB)(nil)
