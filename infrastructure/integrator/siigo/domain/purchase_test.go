package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIdentity_PrecedenciaDosCampos(t *testing.T) {
	tests := []struct {
		name     string
		record   RawPurchaseRecord
		expected string
	}{
		{
			name:     "id tem precedência sobre number",
			record:   RawPurchaseRecord{"id": "abc", "number": "F-42"},
			expected: "id:abc",
		},
		{
			name:     "number quando não há id",
			record:   RawPurchaseRecord{"number": "F-42", "reference": "R-1"},
			expected: "number:F-42",
		},
		{
			name:     "reference quando não há id nem number",
			record:   RawPurchaseRecord{"reference": "R-1"},
			expected: "reference:R-1",
		},
		{
			name:     "code por último",
			record:   RawPurchaseRecord{"code": "C-9"},
			expected: "code:C-9",
		},
		{
			name:     "id numérico inteiro sem casa decimal",
			record:   RawPurchaseRecord{"id": 1042.0},
			expected: "id:1042",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.record.Identity())
		})
	}
}

func TestIdentity_HashEstruturalEstavel(t *testing.T) {
	a := RawPurchaseRecord{"total": 100.0, "date": "2024-03-15"}
	b := RawPurchaseRecord{"date": "2024-03-15", "total": 100.0}
	c := RawPurchaseRecord{"total": 200.0, "date": "2024-03-15"}

	assert.Equal(t, a.Identity(), b.Identity())
	assert.NotEqual(t, a.Identity(), c.Identity())
	assert.Contains(t, a.Identity(), "hash:")
}

func TestPopulatedFields(t *testing.T) {
	record := RawPurchaseRecord{
		"id":       "1",
		"total":    100.0,
		"date":     "",
		"supplier": map[string]any{},
		"items":    []any{map[string]any{"price": 1.0}},
		"note":     nil,
	}

	// id, total e items contam; string vazia, mapa vazio e nil não
	assert.Equal(t, 3, record.PopulatedFields())
}

func TestDateRange_Contains(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	dateRange := DateRange{Start: start, End: end}

	assert.True(t, dateRange.Contains(start))
	assert.True(t, dateRange.Contains(end))
	assert.True(t, dateRange.Contains(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, dateRange.Contains(start.AddDate(0, 0, -1)))
	assert.False(t, dateRange.Contains(end.AddDate(0, 0, 1)))

	// Registro do último dia com hora preenchida ainda está dentro;
	// a comparação é por dia de calendário
	assert.True(t, dateRange.Contains(time.Date(2024, 3, 31, 10, 0, 0, 0, time.UTC)))
	assert.True(t, dateRange.Contains(time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, dateRange.Contains(time.Date(2024, 4, 1, 0, 0, 1, 0, time.UTC)))

	open := DateRange{}
	assert.True(t, open.IsZero())
	assert.True(t, open.Contains(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDateRange_Contains_LimitesComHora(t *testing.T) {
	// Limites derivados de time.Now() também carregam hora; o dia de
	// calendário de ambos os lados é o que conta
	dateRange := DateRange{
		Start: time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 31, 15, 30, 0, 0, time.UTC),
	}

	assert.True(t, dateRange.Contains(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, dateRange.Contains(time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC)))
	assert.False(t, dateRange.Contains(time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC)))
}
