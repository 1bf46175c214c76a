package cataloging

import (
	"strings"

	"github.com/vfg2006/invoicing-api/infrastructure/repository"
	"github.com/vfg2006/invoicing-api/internal/domain"
)

const searchLimit = 20

// Cataloger expõe as buscas de autocomplete do formulário de compras
type Cataloger interface {
	SearchProducts(query string) ([]*domain.Product, error)
	SearchProviders(query string) ([]*domain.Provider, error)
	SearchFixedAssets(query string) ([]*domain.FixedAsset, error)
}

type Service struct {
	productRepo    repository.ProductRepository
	providerRepo   repository.ProviderRepository
	fixedAssetRepo repository.FixedAssetRepository
}

func NewService(
	productRepo repository.ProductRepository,
	providerRepo repository.ProviderRepository,
	fixedAssetRepo repository.FixedAssetRepository,
) Cataloger {
	return &Service{
		productRepo:    productRepo,
		providerRepo:   providerRepo,
		fixedAssetRepo: fixedAssetRepo,
	}
}

func (s *Service) SearchProducts(query string) ([]*domain.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*domain.Product{}, nil
	}

	return s.productRepo.SearchProducts(query, searchLimit)
}

func (s *Service) SearchProviders(query string) ([]*domain.Provider, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*domain.Provider{}, nil
	}

	return s.providerRepo.SearchProviders(query, searchLimit)
}

func (s *Service) SearchFixedAssets(query string) ([]*domain.FixedAsset, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*domain.FixedAsset{}, nil
	}

	return s.fixedAssetRepo.SearchFixedAssets(query, searchLimit)
}
