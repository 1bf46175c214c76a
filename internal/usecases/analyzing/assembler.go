package analyzing

import (
	"sort"
	"time"

	"github.com/vfg2006/invoicing-api/internal/domain"
	"github.com/vfg2006/invoicing-api/pkg/utils"
)

// categorySplit é a divisão heurística do gasto por categoria. Os
// registros de compra do SIIGO não trazem campo de categoria, então o
// painel recebe percentuais fixos aplicados sobre o total.
var categorySplit = []struct {
	name    string
	percent float64
}{
	{"Inventario", 40},
	{"Servicios", 25},
	{"Gastos administrativos", 20},
	{"Activos fijos", 10},
	{"Otros", 5},
}

// AssembleReport combina a saída do agregador com o breakdown sintético
// de categorias e a lista de compras recentes, produzindo a estrutura
// final consumida pelo painel
func AssembleReport(
	aggregate *AggregateResult,
	invoices []domain.NormalizedInvoice,
	dropped int,
	failedPages int,
	recentLimit int,
) *domain.AnalyticsReport {
	report := &domain.AnalyticsReport{
		Totals: domain.AnalyticsTotals{
			TotalAmount:    aggregate.TotalAmount,
			InvoiceCount:   aggregate.InvoiceCount,
			DroppedRecords: dropped,
			FailedPages:    failedPages,
		},
		MonthlyData:       aggregate.Buckets,
		GrowthRate:        aggregate.GrowthRate,
		TopSuppliers:      aggregate.TopSuppliers,
		CategoryBreakdown: categoryBreakdown(aggregate.TotalAmount),
		RecentInvoices:    recentInvoices(invoices, recentLimit),
		GeneratedAt:       time.Now(),
	}

	return report
}

func categoryBreakdown(totalAmount float64) []domain.CategoryShare {
	shares := make([]domain.CategoryShare, 0, len(categorySplit))

	for _, split := range categorySplit {
		shares = append(shares, domain.CategoryShare{
			Category: split.name,
			Percent:  split.percent,
			Amount:   utils.RoundWithTwoDecimalPlace(totalAmount * split.percent / 100),
		})
	}

	return shares
}

// recentInvoices devolve as compras mais recentes em ordem decrescente
// de data. Registros com data inválida já foram descartados na
// normalização, então o sort nunca encontra datas zeradas.
func recentInvoices(invoices []domain.NormalizedInvoice, limit int) []domain.RecentInvoice {
	sorted := make([]domain.NormalizedInvoice, len(invoices))
	copy(sorted, invoices)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	recent := make([]domain.RecentInvoice, 0, len(sorted))
	for _, invoice := range sorted {
		recent = append(recent, domain.RecentInvoice{
			Date:         invoice.Date.Format(time.DateOnly),
			Amount:       invoice.Amount,
			SupplierName: invoice.SupplierName,
		})
	}

	return recent
}
