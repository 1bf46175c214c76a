package purchasing

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/invoicing-api/infrastructure/integrator/siigo"
	siigodomain "github.com/vfg2006/invoicing-api/infrastructure/integrator/siigo/domain"
	"github.com/vfg2006/invoicing-api/internal/domain"
	"github.com/vfg2006/invoicing-api/pkg/utils"
)

var (
	ErrMissingDocument = errors.New("tipo de documento é obrigatório")
	ErrMissingSupplier = errors.New("fornecedor é obrigatório")
	ErrMissingItems    = errors.New("a compra precisa de ao menos um item")
	ErrInvalidDate     = errors.New("data inválida, use o formato YYYY-MM-DD")
)

// Purchaser registra compras e faturas no SIIGO a partir do formulário
// da UI
type Purchaser interface {
	SubmitPurchase(ctx context.Context, form *domain.PurchaseForm) (*siigodomain.CreatedDocument, error)
	SubmitInvoice(ctx context.Context, form *domain.PurchaseForm) (*siigodomain.CreatedDocument, error)
}

type Service struct {
	siigoService siigo.SiigoIntegrator
}

func NewService(siigoService siigo.SiigoIntegrator) Purchaser {
	return &Service{
		siigoService: siigoService,
	}
}

func (s *Service) SubmitPurchase(ctx context.Context, form *domain.PurchaseForm) (*siigodomain.CreatedDocument, error) {
	payload, err := buildPayload(form)
	if err != nil {
		return nil, err
	}

	created, err := s.siigoService.SubmitPurchase(ctx, payload)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"document_id": created.ID,
		"supplier":    form.SupplierID,
	}).Info("Compra registrada no SIIGO")

	return created, nil
}

func (s *Service) SubmitInvoice(ctx context.Context, form *domain.PurchaseForm) (*siigodomain.CreatedDocument, error) {
	payload, err := buildPayload(form)
	if err != nil {
		return nil, err
	}

	created, err := s.siigoService.SubmitInvoice(ctx, payload)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"document_id": created.ID,
		"supplier":    form.SupplierID,
	}).Info("Fatura registrada no SIIGO")

	return created, nil
}

// buildPayload valida o formulário e mapeia para o schema de documento
// do SIIGO. Sem observações, uma referência curta é gerada para manter
// rastreabilidade do documento.
func buildPayload(form *domain.PurchaseForm) (*siigodomain.PurchasePayload, error) {
	if form.DocumentID == 0 {
		return nil, ErrMissingDocument
	}
	if form.SupplierID == "" {
		return nil, ErrMissingSupplier
	}
	if len(form.Items) == 0 {
		return nil, ErrMissingItems
	}
	if form.Date == "" {
		return nil, ErrInvalidDate
	}
	if _, err := utils.ParseDate(form.Date); err != nil {
		return nil, ErrInvalidDate
	}

	observations := form.Observations
	if observations == "" {
		reference, err := utils.GenerateReference()
		if err != nil {
			return nil, fmt.Errorf("erro ao gerar referência do documento: %w", err)
		}
		observations = "REF-" + reference
	}

	items := make([]siigodomain.Item, 0, len(form.Items))
	for _, item := range form.Items {
		items = append(items, siigodomain.Item{
			Code:        item.Code,
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	payments := make([]siigodomain.Payment, 0, len(form.Payments))
	for _, payment := range form.Payments {
		payments = append(payments, siigodomain.Payment{
			ID:      payment.MethodID,
			Value:   payment.Value,
			DueDate: payment.DueDate,
		})
	}

	return &siigodomain.PurchasePayload{
		Document:     siigodomain.Document{ID: form.DocumentID},
		Date:         form.Date,
		Supplier:     siigodomain.Supplier{Identification: form.SupplierID},
		CostCenter:   form.CostCenter,
		Observations: observations,
		Items:        items,
		Payments:     payments,
	}, nil
}
