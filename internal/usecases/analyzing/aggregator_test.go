package analyzing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/invoicing-api/internal/domain"
)

func invoiceAt(year int, month time.Month, day int, amount float64, supplierID, supplierName string) domain.NormalizedInvoice {
	return domain.NormalizedInvoice{
		Date:         time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		Amount:       amount,
		SupplierID:   supplierID,
		SupplierName: supplierName,
	}
}

func TestAggregate_JanelaZeradaSemCompras(t *testing.T) {
	ref := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	result := Aggregate(nil, 6, 5, ref)

	assert.Len(t, result.Buckets, 6)
	assert.Equal(t, "01-2024", result.Buckets[0].Period)
	assert.Equal(t, "06-2024", result.Buckets[5].Period)

	for _, bucket := range result.Buckets {
		assert.Zero(t, bucket.TotalAmount)
		assert.Zero(t, bucket.InvoiceCount)
	}

	assert.Zero(t, result.TotalAmount)
	assert.Zero(t, result.InvoiceCount)
	assert.Zero(t, result.GrowthRate)
	assert.Empty(t, result.TopSuppliers)
}

func TestAggregate_DistribuiPorMesEExcluiForaDaJanela(t *testing.T) {
	ref := time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)

	invoices := []domain.NormalizedInvoice{
		invoiceAt(2024, time.January, 10, 100, "S1", "Fornecedor A"),
		invoiceAt(2024, time.January, 25, 50, "S1", "Fornecedor A"),
		invoiceAt(2024, time.February, 5, 200, "S2", "Fornecedor B"),
		// Fora da janela de 2 meses: não entra em nenhum total
		invoiceAt(2023, time.November, 1, 9999, "S3", "Fornecedor C"),
	}

	result := Aggregate(invoices, 2, 5, ref)

	assert.Len(t, result.Buckets, 2)
	assert.Equal(t, "01-2024", result.Buckets[0].Period)
	assert.Equal(t, 150.0, result.Buckets[0].TotalAmount)
	assert.Equal(t, 2, result.Buckets[0].InvoiceCount)
	assert.Equal(t, "02-2024", result.Buckets[1].Period)
	assert.Equal(t, 200.0, result.Buckets[1].TotalAmount)
	assert.Equal(t, 1, result.Buckets[1].InvoiceCount)

	assert.Equal(t, 350.0, result.TotalAmount)
	assert.Equal(t, 3, result.InvoiceCount)

	// [150, 200] → (200-150)/150 × 100 = 33.33
	assert.Equal(t, 33.33, result.GrowthRate)

	// Fornecedor fora da janela não aparece no ranking
	for _, supplier := range result.TopSuppliers {
		assert.NotEqual(t, "S3", supplier.SupplierID)
	}
}

func TestGrowthRate_CasosEspeciais(t *testing.T) {
	tests := []struct {
		name     string
		buckets  []domain.MonthBucket
		expected float64
	}{
		{
			name:     "mês único devolve zero",
			buckets:  []domain.MonthBucket{{TotalAmount: 500}},
			expected: 0,
		},
		{
			name: "anterior zero e atual positivo devolve +100",
			buckets: []domain.MonthBucket{
				{TotalAmount: 0},
				{TotalAmount: 50},
			},
			expected: 100,
		},
		{
			name: "ambos zero devolve zero",
			buckets: []domain.MonthBucket{
				{TotalAmount: 0},
				{TotalAmount: 0},
			},
			expected: 0,
		},
		{
			name: "crescimento de 50 por cento",
			buckets: []domain.MonthBucket{
				{TotalAmount: 100},
				{TotalAmount: 150},
			},
			expected: 50,
		},
		{
			name: "queda de 25 por cento",
			buckets: []domain.MonthBucket{
				{TotalAmount: 200},
				{TotalAmount: 150},
			},
			expected: -25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, growthRate(tt.buckets))
		})
	}
}

func TestRankSuppliers_TopKPorValorDecrescente(t *testing.T) {
	invoices := []domain.NormalizedInvoice{
		invoiceAt(2024, time.March, 1, 300, "S1", "Fornecedor A"),
		invoiceAt(2024, time.March, 2, 100, "S2", "Fornecedor B"),
		invoiceAt(2024, time.March, 3, 150, "S3", "Fornecedor C"),
		invoiceAt(2024, time.March, 4, 50, "S3", "Fornecedor C"),
	}

	ranked := RankSuppliers(invoices, 2)

	assert.Len(t, ranked, 2)
	assert.Equal(t, "S1", ranked[0].SupplierID)
	assert.Equal(t, 300.0, ranked[0].TotalAmount)
	assert.Equal(t, 1, ranked[0].InvoiceCount)
	assert.Equal(t, "S3", ranked[1].SupplierID)
	assert.Equal(t, 200.0, ranked[1].TotalAmount)
	assert.Equal(t, 2, ranked[1].InvoiceCount)
}

func TestRankSuppliers_EmpatePreservaOrdemDePrimeiraAparicao(t *testing.T) {
	invoices := []domain.NormalizedInvoice{
		invoiceAt(2024, time.March, 1, 100, "S1", "Fornecedor A"),
		invoiceAt(2024, time.March, 2, 100, "S2", "Fornecedor B"),
	}

	ranked := RankSuppliers(invoices, 5)

	assert.Len(t, ranked, 2)
	assert.Equal(t, "S1", ranked[0].SupplierID)
	assert.Equal(t, "S2", ranked[1].SupplierID)
}
