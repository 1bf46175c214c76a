package siigoclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	siigodomain "github.com/vfg2006/invoicing-api/infrastructure/integrator/siigo/domain"
)

func mustDate(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestParsePurchasesPage_FormatosDeEnvelope(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		records    int
		totalPages int
	}{
		{
			name:    "envelope results",
			body:    `{"results": [{"id": "1"}, {"id": "2"}]}`,
			records: 2,
		},
		{
			name:    "envelope data",
			body:    `{"data": [{"id": "1"}]}`,
			records: 1,
		},
		{
			name:    "envelope items",
			body:    `{"items": [{"id": "1"}, {"id": "2"}, {"id": "3"}]}`,
			records: 3,
		},
		{
			name:    "array na raiz",
			body:    `[{"id": "1"}, {"id": "2"}]`,
			records: 2,
		},
		{
			name:       "com metadado de paginação",
			body:       `{"results": [{"id": "1"}], "pagination": {"total_pages": 7}}`,
			records:    1,
			totalPages: 7,
		},
		{
			name:    "envelope sem array conhecido",
			body:    `{"foo": "bar"}`,
			records: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := parsePurchasesPage([]byte(tt.body))

			assert.NoError(t, err)
			assert.Len(t, data.records, tt.records)
			assert.Equal(t, tt.totalPages, data.totalPages)
		})
	}
}

func TestFetchAllPurchases_TotalPagesGuiaABusca(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))

		fmt.Fprintf(w, `{"results": [{"id": "p%d"}], "pagination": {"total_pages": 3}}`, page)
	}))
	defer server.Close()

	client := testClient(server.URL)

	result, err := client.FetchAllPurchases(context.Background(), "token-abc", siigodomain.DateRange{}, FetchOptions{
		PageSize: 3,
		MaxPages: 5,
	})

	assert.NoError(t, err)
	assert.Len(t, result.Records, 3)
	assert.Equal(t, 3, result.PagesFetched)
	assert.Zero(t, result.FailedPages)
}

func TestFetchAllPurchases_ConcorrentePreservaOrdemDasPaginas(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		fmt.Fprintf(w, `{"results": [{"id": "p%d"}], "pagination": {"total_pages": 4}}`, page)
	}))
	defer server.Close()

	client := testClient(server.URL)

	result, err := client.FetchAllPurchases(context.Background(), "token-abc", siigodomain.DateRange{}, FetchOptions{
		PageSize:       3,
		MaxPages:       10,
		Concurrent:     true,
		MaxConcurrency: 2,
	})

	assert.NoError(t, err)
	assert.Equal(t, 4, result.PagesFetched)
	assert.Len(t, result.Records, 4)

	for i, record := range result.Records {
		assert.Equal(t, fmt.Sprintf("p%d", i+1), record["id"])
	}
}

func TestFetchAllPurchases_RespeitaTetoDePaginas(t *testing.T) {
	var requests int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		page := r.URL.Query().Get("page")
		fmt.Fprintf(w, `{"results": [{"id": "p%s"}], "pagination": {"total_pages": 100}}`, page)
	}))
	defer server.Close()

	client := testClient(server.URL)

	result, err := client.FetchAllPurchases(context.Background(), "token-abc", siigodomain.DateRange{}, FetchOptions{
		PageSize: 3,
		MaxPages: 5,
	})

	assert.NoError(t, err)
	assert.Equal(t, 5, result.PagesFetched)
	assert.Equal(t, int32(5), atomic.LoadInt32(&requests))
}

func TestFetchAllPurchases_ParaNaPaginaIncompleta(t *testing.T) {
	// Sem metadado de paginação: páginas 1 e 2 cheias (page size 3),
	// página 3 incompleta encerra a busca
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))

		switch page {
		case 1, 2:
			fmt.Fprintf(w, `{"results": [{"id": "p%d-1"}, {"id": "p%d-2"}, {"id": "p%d-3"}]}`, page, page, page)
		default:
			fmt.Fprintf(w, `{"results": [{"id": "p%d-1"}]}`, page)
		}
	}))
	defer server.Close()

	client := testClient(server.URL)

	result, err := client.FetchAllPurchases(context.Background(), "token-abc", siigodomain.DateRange{}, FetchOptions{
		PageSize: 3,
		MaxPages: 10,
	})

	assert.NoError(t, err)
	assert.Len(t, result.Records, 7)
	assert.Equal(t, 3, result.PagesFetched)
}

func TestFetchAllPurchases_PrimeiraPaginaFalhaViraResultadoVazio(t *testing.T) {
	var requests int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := testClient(server.URL)

	result, err := client.FetchAllPurchases(context.Background(), "token-abc", siigodomain.DateRange{}, FetchOptions{
		PageSize: 3,
		MaxPages: 5,
	})

	assert.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.Equal(t, 1, result.FailedPages)

	// 3 tentativas com retry para a página 1
	assert.Equal(t, int32(3), atomic.LoadInt32(&requests))
}

func TestFetchAllPurchases_PaginaIntermediariaFalhaEhContada(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))

		if page == 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}

		fmt.Fprintf(w, `{"results": [{"id": "p%d"}], "pagination": {"total_pages": 3}}`, page)
	}))
	defer server.Close()

	client := testClient(server.URL)

	result, err := client.FetchAllPurchases(context.Background(), "token-abc", siigodomain.DateRange{}, FetchOptions{
		PageSize: 3,
		MaxPages: 5,
	})

	assert.NoError(t, err)
	assert.Len(t, result.Records, 2)
	assert.Equal(t, 3, result.PagesFetched)
	assert.Equal(t, 1, result.FailedPages)
}

func TestFetchAllPurchases_FiltroDeDataNoCliente(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": [
			{"id": "dentro", "date": "2024-03-15"},
			{"id": "ultimo-dia", "date": "2024-03-31"},
			{"id": "ultimo-dia-com-hora", "date": "2024-03-31T10:00:00Z"},
			{"id": "fora", "date": "2023-01-01"},
			{"id": "sem-data"}
		]}`)
	}))
	defer server.Close()

	client := testClient(server.URL)

	dateRange := siigodomain.DateRange{
		Start: mustDate("2024-03-01"),
		End:   mustDate("2024-03-31"),
	}

	result, err := client.FetchAllPurchases(context.Background(), "token-abc", dateRange, FetchOptions{
		PageSize: 5,
		MaxPages: 5,
	})

	assert.NoError(t, err)

	// Registro fora do período sai; registros do último dia ficam mesmo
	// com hora preenchida; registro sem data extraível passa (o
	// normalizador decide o descarte)
	assert.Len(t, result.Records, 4)
	assert.Equal(t, "dentro", result.Records[0]["id"])
	assert.Equal(t, "ultimo-dia", result.Records[1]["id"])
	assert.Equal(t, "ultimo-dia-com-hora", result.Records[2]["id"])
	assert.Equal(t, "sem-data", result.Records[3]["id"])
}

func TestDedupRecords_VenceORegistroMaisPreenchido(t *testing.T) {
	records := []siigodomain.RawPurchaseRecord{
		{"id": "1", "total": 100.0},
		{"id": "1", "total": 100.0, "date": "2024-03-15", "supplier": map[string]any{"name": "A"}},
		{"id": "2"},
	}

	deduped := DedupRecords(records)

	assert.Len(t, deduped, 2)

	// A entrada mais rica substitui a primeira, mantendo a posição
	assert.Equal(t, "1", deduped[0]["id"])
	assert.Contains(t, deduped[0], "date")
	assert.Equal(t, "2", deduped[1]["id"])
}

func TestDedupRecords_Idempotente(t *testing.T) {
	records := []siigodomain.RawPurchaseRecord{
		{"id": "1", "total": 100.0},
		{"number": "F-42", "total": 50.0},
		{"id": "1", "total": 100.0},
	}

	once := DedupRecords(records)
	twice := DedupRecords(once)

	assert.Equal(t, once, twice)
	assert.Len(t, once, 2)
}

func TestDedupRecords_IdentidadeEstruturalSemCamposDeId(t *testing.T) {
	records := []siigodomain.RawPurchaseRecord{
		{"total": 100.0, "date": "2024-03-15"},
		{"total": 100.0, "date": "2024-03-15"},
		{"total": 200.0, "date": "2024-03-15"},
	}

	deduped := DedupRecords(records)

	assert.Len(t, deduped, 2)
}
