package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vfg2006/invoicing-api/internal/usecases/cataloging"
	"github.com/vfg2006/invoicing-api/pkg/apiErrors"
	"github.com/vfg2006/invoicing-api/pkg/log"
)

// Handlers de autocomplete do formulário de compras. Todos recebem o
// termo de busca pelo parâmetro q.

func SearchProducts(service cataloging.Cataloger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		products, err := service.SearchProducts(r.URL.Query().Get("q"))
		if err != nil {
			logger.WithError(err).Error("catalog: falha ao buscar produtos")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar produtos", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(products)
	})
}

func SearchProviders(service cataloging.Cataloger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		providers, err := service.SearchProviders(r.URL.Query().Get("q"))
		if err != nil {
			logger.WithError(err).Error("catalog: falha ao buscar fornecedores")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar fornecedores", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(providers)
	})
}

func SearchFixedAssets(service cataloging.Cataloger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		assets, err := service.SearchFixedAssets(r.URL.Query().Get("q"))
		if err != nil {
			logger.WithError(err).Error("catalog: falha ao buscar ativos fixos")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar ativos fixos", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(assets)
	})
}
