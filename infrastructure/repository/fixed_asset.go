package repository

import (
	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/invoicing-api/infrastructure/database/postgres"
	"github.com/vfg2006/invoicing-api/internal/domain"
)

const fixedAssetsTable = "fixed_assets"

type FixedAssetRepository interface {
	SearchFixedAssets(query string, limit int) ([]*domain.FixedAsset, error)
}

type fixedAssetRepository struct {
	conn *postgres.Connection
}

func NewFixedAssetRepository(conn *postgres.Connection) FixedAssetRepository {
	return &fixedAssetRepository{
		conn: conn,
	}
}

func (r *fixedAssetRepository) SearchFixedAssets(query string, limit int) ([]*domain.FixedAsset, error) {
	queryBuilder := squirrel.
		Select("id", "code", "name").
		From(fixedAssetsTable).
		Where(squirrel.Or{
			squirrel.ILike{"code": query + "%"},
			squirrel.ILike{"name": "%" + query + "%"},
		}).
		OrderBy("name ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	assetsSQL, assetsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(assetsSQL, assetsArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assets := make([]*domain.FixedAsset, 0)
	for rows.Next() {
		var asset domain.FixedAsset
		if err := rows.Scan(&asset.ID, &asset.Code, &asset.Name); err != nil {
			return nil, err
		}
		assets = append(assets, &asset)
	}

	return assets, rows.Err()
}
