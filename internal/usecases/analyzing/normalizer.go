package analyzing

import (
	"github.com/sirupsen/logrus"
	siigodomain "github.com/vfg2006/invoicing-api/infrastructure/integrator/siigo/domain"
	"github.com/vfg2006/invoicing-api/internal/domain"
)

// Normalize converte um registro solto do SIIGO na forma estrita
// interna. Devolve false quando o registro não tem data parseável —
// nesse caso ele é descartado da agregação. A ausência de valor nunca
// descarta: o montante vira 0.
func Normalize(record siigodomain.RawPurchaseRecord) (*domain.NormalizedInvoice, bool) {
	date, ok := siigodomain.ExtractDate(record)
	if !ok {
		return nil, false
	}

	amount := siigodomain.ExtractAmount(record)
	supplierID, supplierName := siigodomain.ExtractSupplier(record)

	return &domain.NormalizedInvoice{
		Date:         date,
		Amount:       amount,
		SupplierID:   supplierID,
		SupplierName: supplierName,
	}, true
}

// NormalizeAll normaliza o lote inteiro e devolve a contagem de
// registros descartados. Registros malformados nunca abortam o lote.
func NormalizeAll(records []siigodomain.RawPurchaseRecord) ([]domain.NormalizedInvoice, int) {
	invoices := make([]domain.NormalizedInvoice, 0, len(records))
	dropped := 0

	for _, record := range records {
		invoice, ok := Normalize(record)
		if !ok {
			dropped++
			continue
		}
		invoices = append(invoices, *invoice)
	}

	if dropped > 0 {
		logrus.WithFields(logrus.Fields{
			"dropped": dropped,
			"total":   len(records),
		}).Warn("Registros descartados na normalização por data inválida")
	}

	return invoices, dropped
}
