package service

import (
	"context"
	"strings"

	"github.com/gemtrack/gemtrack/internal/domain"
)

// SearchResult matches grouped by kind
type SearchResult struct {
	Products []*domain.Product `json:"products"`
	Clients  []*domain.Client  `json:"clients"`
}

type SearchService struct {
	products ProductRepository
	clients  ClientRepository
}

func NewSearchService(products ProductRepository, clients ClientRepository) *SearchService {
	return &SearchService{products: products, clients: clients}
}

// GlobalSearch matches query against products and clients independently.
// A blank query yields two empty lists.
func (s *SearchService) GlobalSearch(ctx context.Context, query string) (*SearchResult, error) {
	result := &SearchResult{
		Products: []*domain.Product{},
		Clients:  []*domain.Client{},
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return result, nil
	}
	var err error
	if result.Products, err = s.products.Search(ctx, query); err != nil {
		return nil, err
	}
	if result.Clients, err = s.clients.Search(ctx, query); err != nil {
		return nil, err
	}
	return result, nil
}
