package repository

import (
	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/invoicing-api/infrastructure/database/postgres"
	"github.com/vfg2006/invoicing-api/internal/domain"
)

const providersTable = "providers"

type ProviderRepository interface {
	SearchProviders(query string, limit int) ([]*domain.Provider, error)
}

type providerRepository struct {
	conn *postgres.Connection
}

func NewProviderRepository(conn *postgres.Connection) ProviderRepository {
	return &providerRepository{
		conn: conn,
	}
}

// SearchProviders busca fornecedores por prefixo de identificação (NIT)
// ou trecho do nome
func (r *providerRepository) SearchProviders(query string, limit int) ([]*domain.Provider, error) {
	queryBuilder := squirrel.
		Select("id", "identification", "name", "city").
		From(providersTable).
		Where(squirrel.Or{
			squirrel.ILike{"identification": query + "%"},
			squirrel.ILike{"name": "%" + query + "%"},
		}).
		OrderBy("name ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	providersSQL, providersArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(providersSQL, providersArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	providers := make([]*domain.Provider, 0)
	for rows.Next() {
		var provider domain.Provider
		if err := rows.Scan(&provider.ID, &provider.Identification, &provider.Name, &provider.City); err != nil {
			return nil, err
		}
		providers = append(providers, &provider)
	}

	return providers, rows.Err()
}
