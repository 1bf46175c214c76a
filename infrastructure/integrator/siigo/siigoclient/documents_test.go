package siigoclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	siigodomain "github.com/vfg2006/invoicing-api/infrastructure/integrator/siigo/domain"
)

func purchasePayload() *siigodomain.PurchasePayload {
	return &siigodomain.PurchasePayload{
		Document: siigodomain.Document{ID: 24446},
		Date:     "2024-03-15",
		Supplier: siigodomain.Supplier{Identification: "900123456"},
		Items: []siigodomain.Item{
			{Code: "P-001", Quantity: 10, Price: 2.5},
		},
		Payments: []siigodomain.Payment{
			{ID: 5636, Value: 25.0},
		},
	}
}

func TestCreatePurchase_Sucesso(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/purchases", r.URL.Path)
		assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))

		var payload map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "2024-03-15", payload["date"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": "f07b", "number": 1042, "name": "FC-1-1042", "total": 25.0}`))
	}))
	defer server.Close()

	client := testClient(server.URL)

	created, err := client.CreatePurchase(context.Background(), "token-abc", purchasePayload())

	assert.NoError(t, err)
	assert.Equal(t, "f07b", created.ID)
	assert.Equal(t, 25.0, created.Total)
	assert.Contains(t, created.Raw, "number")
}

func TestCreateInvoice_UsaEndpointDeFaturas(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/invoices", r.URL.Path)
		w.Write([]byte(`{"id": "inv-1"}`))
	}))
	defer server.Close()

	client := testClient(server.URL)

	created, err := client.CreateInvoice(context.Background(), "token-abc", purchasePayload())

	assert.NoError(t, err)
	assert.Equal(t, "inv-1", created.ID)
}

func TestCreatePurchase_ErroEstruturadoDoSiigo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"status": 422, "errors": [{"code": "invalid_supplier", "message": "Proveedor no existe"}]}`))
	}))
	defer server.Close()

	client := testClient(server.URL)

	created, err := client.CreatePurchase(context.Background(), "token-abc", purchasePayload())

	assert.Error(t, err)
	assert.Nil(t, created)
	assert.Contains(t, err.Error(), "Proveedor no existe")
}
