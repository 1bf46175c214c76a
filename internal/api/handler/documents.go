package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	siigodomain "github.com/vfg2006/invoicing-api/infrastructure/integrator/siigo/domain"
	"github.com/vfg2006/invoicing-api/internal/domain"
	"github.com/vfg2006/invoicing-api/internal/usecases/purchasing"
	"github.com/vfg2006/invoicing-api/pkg/apiErrors"
	"github.com/vfg2006/invoicing-api/pkg/log"
)

// CreatePurchase registra uma compra no SIIGO a partir do formulário da UI
func CreatePurchase(service purchasing.Purchaser) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var form domain.PurchaseForm
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		created, err := service.SubmitPurchase(r.Context(), &form)
		if err != nil {
			handleDocumentError(w, logger, err, "compra")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(created); err != nil {
			logger.WithError(err).Error("documents: falha ao serializar resposta")
		}
	})
}

// CreateInvoice registra uma fatura no SIIGO
func CreateInvoice(service purchasing.Purchaser) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var form domain.PurchaseForm
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		created, err := service.SubmitInvoice(r.Context(), &form)
		if err != nil {
			handleDocumentError(w, logger, err, "fatura")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(created); err != nil {
			logger.WithError(err).Error("documents: falha ao serializar resposta")
		}
	})
}

func handleDocumentError(w http.ResponseWriter, logger log.Logger, err error, docType string) {
	switch {
	case errors.Is(err, purchasing.ErrMissingDocument),
		errors.Is(err, purchasing.ErrMissingSupplier),
		errors.Is(err, purchasing.ErrMissingItems):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)

	case errors.Is(err, purchasing.ErrInvalidDate):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)

	case errors.Is(err, siigodomain.ErrAuthenticationUnavailable):
		logger.WithError(err).Warn("documents: autenticação no SIIGO indisponível")
		apiErrors.WriteError(w, apiErrors.ErrSiigoAuthentication, "Autenticação na API do SIIGO indisponível", nil)

	default:
		logger.WithError(err).Errorf("documents: falha ao registrar %s no SIIGO", docType)
		apiErr := apiErrors.FromError(err, apiErrors.ErrExternalService)
		apiErrors.WriteError(w, apiErr.Code, "Erro ao registrar documento no SIIGO", map[string]any{
			"detail": apiErr.Message,
		})
	}
}
