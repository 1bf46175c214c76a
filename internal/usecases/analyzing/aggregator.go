package analyzing

import (
	"fmt"
	"sort"
	"time"

	"github.com/vfg2006/invoicing-api/internal/domain"
	"github.com/vfg2006/invoicing-api/pkg/utils"
)

// AggregateResult é a saída do agregador mensal, antes da montagem do
// relatório final
type AggregateResult struct {
	Buckets      []domain.MonthBucket
	TotalAmount  float64
	InvoiceCount int
	GrowthRate   float64
	TopSuppliers []domain.SupplierAggregate
}

// Aggregate distribui as compras normalizadas em um bucket por mês de
// calendário na janela [ref − windowMonths + 1, ref], inclusive. Meses
// sem compras permanecem zerados; compras fora da janela não entram
// nos totais. A agregação é comutativa sobre o conjunto de entrada —
// a ordem dos registros não altera o resultado.
func Aggregate(invoices []domain.NormalizedInvoice, windowMonths int, topK int, ref time.Time) *AggregateResult {
	if windowMonths < 1 {
		windowMonths = 1
	}

	refMonth := utils.TruncateToMonth(ref)
	firstMonth := refMonth.AddDate(0, -(windowMonths - 1), 0)

	buckets := make([]domain.MonthBucket, 0, windowMonths)
	indexByMonth := make(map[string]int, windowMonths)

	for i := 0; i < windowMonths; i++ {
		month := firstMonth.AddDate(0, i, 0)
		key := monthKey(month)

		indexByMonth[key] = len(buckets)
		buckets = append(buckets, domain.MonthBucket{
			Period: fmt.Sprintf("%02d-%04d", int(month.Month()), month.Year()),
			Year:   month.Year(),
			Month:  int(month.Month()),
		})
	}

	result := &AggregateResult{}

	inWindow := make([]domain.NormalizedInvoice, 0, len(invoices))

	for _, invoice := range invoices {
		index, ok := indexByMonth[monthKey(invoice.Date)]
		if !ok {
			continue
		}

		buckets[index].TotalAmount = utils.RoundWithTwoDecimalPlace(buckets[index].TotalAmount + invoice.Amount)
		buckets[index].InvoiceCount++

		result.TotalAmount += invoice.Amount
		result.InvoiceCount++
		inWindow = append(inWindow, invoice)
	}

	result.Buckets = buckets
	result.TotalAmount = utils.RoundWithTwoDecimalPlace(result.TotalAmount)
	result.GrowthRate = growthRate(buckets)
	result.TopSuppliers = RankSuppliers(inWindow, topK)

	return result
}

func monthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// growthRate compara os dois últimos meses da janela. Casos especiais:
// mês anterior exatamente zero e mês atual positivo → +100; menos de
// dois meses ou denominador zero → 0.
func growthRate(buckets []domain.MonthBucket) float64 {
	if len(buckets) < 2 {
		return 0
	}

	last := buckets[len(buckets)-1].TotalAmount
	previous := buckets[len(buckets)-2].TotalAmount

	if previous == 0 {
		if last > 0 {
			return 100
		}
		return 0
	}

	return utils.RoundWithTwoDecimalPlace((last - previous) / previous * 100)
}

// RankSuppliers agrupa por identidade do fornecedor, soma valor e
// quantidade e devolve o top-K por valor decrescente. O sort é estável:
// empates preservam a ordem de primeira aparição.
func RankSuppliers(invoices []domain.NormalizedInvoice, topK int) []domain.SupplierAggregate {
	aggregates := make([]domain.SupplierAggregate, 0)
	indexBySupplier := make(map[string]int)

	for _, invoice := range invoices {
		index, ok := indexBySupplier[invoice.SupplierID]
		if !ok {
			indexBySupplier[invoice.SupplierID] = len(aggregates)
			aggregates = append(aggregates, domain.SupplierAggregate{
				SupplierID:   invoice.SupplierID,
				SupplierName: invoice.SupplierName,
			})
			index = len(aggregates) - 1
		}

		aggregates[index].TotalAmount = utils.RoundWithTwoDecimalPlace(aggregates[index].TotalAmount + invoice.Amount)
		aggregates[index].InvoiceCount++
	}

	sort.SliceStable(aggregates, func(i, j int) bool {
		return aggregates[i].TotalAmount > aggregates[j].TotalAmount
	})

	if topK > 0 && len(aggregates) > topK {
		aggregates = aggregates[:topK]
	}

	return aggregates
}
