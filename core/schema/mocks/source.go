package mocks

import (
	"context"

	"scaffold-wizard/core/schema"

	"github.com/stretchr/testify/mock"
)

// Source is a mock implementation of schema.Source
type Source struct {
	mock.Mock
}

func (m *Source) ReadTableSchema(ctx context.Context, schemaName, tableName string) (*schema.TableSchema, error) {
	args := m.Called(ctx, schemaName, tableName)
	if table, ok := args.Get(0).(*schema.TableSchema); ok {
		return table, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Source) TestConnection(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
