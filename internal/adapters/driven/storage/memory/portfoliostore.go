package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
)

// Ensure PortfolioStore implements the interface.
var _ driven.PortfolioStore = (*PortfolioStore)(nil)

// PortfolioStore is an in-memory implementation of driven.PortfolioStore.
// Portfolios are held as JSON so callers never share maps with the store.
type PortfolioStore struct {
	mu         sync.RWMutex
	portfolios map[string][]byte
}

// NewPortfolioStore creates a new in-memory portfolio store.
func NewPortfolioStore() *PortfolioStore {
	return &PortfolioStore{
		portfolios: make(map[string][]byte),
	}
}

// Save stores or replaces the portfolio under key.
func (s *PortfolioStore) Save(_ context.Context, key string, portfolio domain.PersistedPortfolio) error {
	data, err := json.Marshal(portfolio)
	if err != nil {
		return fmt.Errorf("marshalling portfolio: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.portfolios[key] = data
	return nil
}

// Load retrieves the portfolio under key.
func (s *PortfolioStore) Load(_ context.Context, key string) (*domain.PersistedPortfolio, error) {
	s.mu.RLock()
	data, ok := s.portfolios[key]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	var portfolio domain.PersistedPortfolio
	if err := json.Unmarshal(data, &portfolio); err != nil {
		return nil, fmt.Errorf("unmarshalling portfolio: %w", err)
	}
	return &portfolio, nil
}

// Delete removes the portfolio under key.
func (s *PortfolioStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.portfolios, key)
	return nil
}

// Keys lists every stored key, sorted.
func (s *PortfolioStore) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.portfolios))
	for k := range s.portfolios {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
