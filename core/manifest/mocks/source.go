package mocks

import (
	"context"

	"scaffold-wizard/core/manifest"

	"github.com/stretchr/testify/mock"
)

// Source is a mock implementation of manifest.Source
type Source struct {
	mock.Mock
}

func (m *Source) GetEntityManifest(ctx context.Context, entityID string) (*manifest.EntityManifest, error) {
	args := m.Called(ctx, entityID)
	if man, ok := args.Get(0).(*manifest.EntityManifest); ok {
		return man, args.Error(1)
	}
	return nil, args.Error(1)
}
