package mocks

import (
	"context"
	"fmt"

	"github.com/NeuralTrust/supaquery/pkg/domain/table"
	"github.com/stretchr/testify/mock"
)

type MockReader struct {
	mock.Mock
}

func (m *MockReader) SelectAll(ctx context.Context, tableName, columns string) (*table.Response, error) {
	args := m.Called(ctx, tableName, columns)
	resp, ok := args.Get(0).(*table.Response)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected *table.Response, got %T", args.Get(0))
	}
	return resp, args.Error(1)
}
