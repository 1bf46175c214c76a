package purchasing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	siigodomain "github.com/vfg2006/invoicing-api/infrastructure/integrator/siigo/domain"
	"github.com/vfg2006/invoicing-api/infrastructure/integrator/siigo/mocks"
	"github.com/vfg2006/invoicing-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func validForm() *domain.PurchaseForm {
	return &domain.PurchaseForm{
		DocumentID: 24446,
		Date:       "2024-03-15",
		SupplierID: "900123456",
		Items: []domain.PurchaseItem{
			{Code: "P-001", Description: "Papel carta", Quantity: 10, Price: 2.5},
		},
		Payments: []domain.PurchasePayment{
			{MethodID: 5636, Value: 25.0},
		},
	}
}

func TestSubmitPurchase_MapeiaFormularioParaPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIntegrator := mocks.NewMockSiigoIntegrator(ctrl)
	service := NewService(mockIntegrator)

	form := validForm()
	form.Observations = "Compra de papelaria"

	mockIntegrator.EXPECT().
		SubmitPurchase(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, payload *siigodomain.PurchasePayload) (*siigodomain.CreatedDocument, error) {
			assert.Equal(t, 24446, payload.Document.ID)
			assert.Equal(t, "2024-03-15", payload.Date)
			assert.Equal(t, "900123456", payload.Supplier.Identification)
			assert.Equal(t, "Compra de papelaria", payload.Observations)
			assert.Len(t, payload.Items, 1)
			assert.Equal(t, 10.0, payload.Items[0].Quantity)
			assert.Len(t, payload.Payments, 1)
			assert.Equal(t, 5636, payload.Payments[0].ID)

			return &siigodomain.CreatedDocument{ID: "doc-1"}, nil
		})

	created, err := service.SubmitPurchase(context.Background(), form)

	assert.NoError(t, err)
	assert.Equal(t, "doc-1", created.ID)
}

func TestSubmitPurchase_SemObservacoesGeraReferencia(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIntegrator := mocks.NewMockSiigoIntegrator(ctrl)
	service := NewService(mockIntegrator)

	mockIntegrator.EXPECT().
		SubmitPurchase(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, payload *siigodomain.PurchasePayload) (*siigodomain.CreatedDocument, error) {
			assert.Regexp(t, `^REF-[A-Z0-9]{8}$`, payload.Observations)
			return &siigodomain.CreatedDocument{ID: "doc-1"}, nil
		})

	_, err := service.SubmitPurchase(context.Background(), validForm())
	assert.NoError(t, err)
}

func TestSubmitPurchase_ValidacaoDoFormulario(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(form *domain.PurchaseForm)
		expected error
	}{
		{
			name:     "sem tipo de documento",
			mutate:   func(f *domain.PurchaseForm) { f.DocumentID = 0 },
			expected: ErrMissingDocument,
		},
		{
			name:     "sem fornecedor",
			mutate:   func(f *domain.PurchaseForm) { f.SupplierID = "" },
			expected: ErrMissingSupplier,
		},
		{
			name:     "sem itens",
			mutate:   func(f *domain.PurchaseForm) { f.Items = nil },
			expected: ErrMissingItems,
		},
		{
			name:     "data vazia",
			mutate:   func(f *domain.PurchaseForm) { f.Date = "" },
			expected: ErrInvalidDate,
		},
		{
			name:     "data em formato inválido",
			mutate:   func(f *domain.PurchaseForm) { f.Date = "15/03/2024" },
			expected: ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockIntegrator := mocks.NewMockSiigoIntegrator(ctrl)
			service := NewService(mockIntegrator)

			form := validForm()
			tt.mutate(form)

			_, err := service.SubmitPurchase(context.Background(), form)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestSubmitInvoice_UsaEndpointDeFaturas(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIntegrator := mocks.NewMockSiigoIntegrator(ctrl)
	service := NewService(mockIntegrator)

	mockIntegrator.EXPECT().
		SubmitInvoice(gomock.Any(), gomock.Any()).
		Return(&siigodomain.CreatedDocument{ID: "inv-1"}, nil)

	created, err := service.SubmitInvoice(context.Background(), validForm())

	assert.NoError(t, err)
	assert.Equal(t, "inv-1", created.ID)
}
