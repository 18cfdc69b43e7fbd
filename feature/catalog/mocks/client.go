package mocks

import (
	"context"

	"catalog-sync/core/scryfall"

	"github.com/stretchr/testify/mock"
)

// CatalogClient is a mock implementation of catalog.CatalogClient.
type CatalogClient struct {
	mock.Mock
}

func (m *CatalogClient) FetchSets(ctx context.Context) ([]scryfall.SetRecord, error) {
	args := m.Called(ctx)
	if sets, ok := args.Get(0).([]scryfall.SetRecord); ok {
		return sets, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CatalogClient) FetchCatalog(ctx context.Context) ([]scryfall.CardRecord, error) {
	args := m.Called(ctx)
	if cards, ok := args.Get(0).([]scryfall.CardRecord); ok {
		return cards, args.Error(1)
	}
	return nil, args.Error(1)
}
