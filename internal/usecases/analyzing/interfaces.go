package analyzing

import (
	"context"

	siigodomain "github.com/vfg2006/invoicing-api/infrastructure/integrator/siigo/domain"
)

// PurchaseFetcher é a dependência de busca de compras do serviço de
// analytics. Satisfeita por siigo.SiigoIntegrator.
type PurchaseFetcher interface {
	FetchPurchases(ctx context.Context, dateRange siigodomain.DateRange, fullScan bool) (*siigodomain.FetchResult, error)
}
