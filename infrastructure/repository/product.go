package repository

import (
	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/invoicing-api/infrastructure/database/postgres"
	"github.com/vfg2006/invoicing-api/internal/domain"
)

const productsTable = "products"

type ProductRepository interface {
	SearchProducts(query string, limit int) ([]*domain.Product, error)
}

type productRepository struct {
	conn *postgres.Connection
}

func NewProductRepository(conn *postgres.Connection) ProductRepository {
	return &productRepository{
		conn: conn,
	}
}

// SearchProducts busca produtos por prefixo de código ou trecho do nome,
// para o autocomplete do formulário de compras
func (r *productRepository) SearchProducts(query string, limit int) ([]*domain.Product, error) {
	queryBuilder := squirrel.
		Select("id", "code", "name", "price").
		From(productsTable).
		Where(squirrel.Or{
			squirrel.ILike{"code": query + "%"},
			squirrel.ILike{"name": "%" + query + "%"},
		}).
		OrderBy("name ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	productsSQL, productsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(productsSQL, productsArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(&product.ID, &product.Code, &product.Name, &product.Price); err != nil {
			return nil, err
		}
		products = append(products, &product)
	}

	return products, rows.Err()
}
