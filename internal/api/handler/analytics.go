package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	siigodomain "github.com/vfg2006/invoicing-api/infrastructure/integrator/siigo/domain"
	"github.com/vfg2006/invoicing-api/internal/usecases/analyzing"
	"github.com/vfg2006/invoicing-api/pkg/apiErrors"
	"github.com/vfg2006/invoicing-api/pkg/log"
	"github.com/vfg2006/invoicing-api/pkg/utils"
)

// GetPurchaseAnalytics devolve o relatório de analytics de compras.
// Falha de autenticação no SIIGO vira 401; o painel reage pedindo novas
// credenciais em vez de mostrar um erro genérico.
func GetPurchaseAnalytics(service *analyzing.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filters, err := parseAnalyticsFilters(r)
		if err != nil {
			logger.WithError(err).Warn("analytics: parâmetros de consulta inválidos")
			apiErrors.WriteError(w, apiErrors.ErrInvalidDateRange, err.Error(), nil)
			return
		}

		report, err := service.BuildPurchaseReport(r.Context(), *filters)
		if err != nil {
			if errors.Is(err, siigodomain.ErrAuthenticationUnavailable) {
				logger.WithError(err).Warn("analytics: autenticação no SIIGO indisponível")
				apiErrors.WriteError(w, apiErrors.ErrSiigoAuthentication, "Autenticação na API do SIIGO indisponível", nil)
				return
			}

			logger.WithError(err).Error("analytics: falha ao gerar relatório de compras")
			apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao consultar compras no SIIGO", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithError(err).Error("analytics: falha ao serializar resposta")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func parseAnalyticsFilters(r *http.Request) (*analyzing.ReportFilters, error) {
	query := r.URL.Query()

	filters := &analyzing.ReportFilters{}

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := utils.ParseDate(raw)
		if err != nil {
			return nil, errors.New("startDate inválido, use o formato YYYY-MM-DD")
		}
		filters.StartDate = startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := utils.ParseDate(raw)
		if err != nil {
			return nil, errors.New("endDate inválido, use o formato YYYY-MM-DD")
		}
		filters.EndDate = endDate
	}

	if filters.StartDate != nil && filters.EndDate != nil && filters.EndDate.Before(*filters.StartDate) {
		return nil, errors.New("endDate anterior a startDate")
	}

	if raw := query.Get("getAllPages"); raw != "" {
		fullScan, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errors.New("getAllPages inválido, use true ou false")
		}
		filters.FullScan = fullScan
	}

	// page e pageSize são aceitos por compatibilidade com o painel, mas a
	// paginação da busca é controlada pela configuração do servidor
	if raw := query.Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err != nil || page < 1 {
			return nil, errors.New("page inválido")
		}
	}
	if raw := query.Get("pageSize"); raw != "" {
		if pageSize, err := strconv.Atoi(raw); err != nil || pageSize < 1 {
			return nil, errors.New("pageSize inválido")
		}
	}

	return filters, nil
}
