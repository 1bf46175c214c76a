package siigo

import (
	"context"

	siigodomain "github.com/vfg2006/invoicing-api/infrastructure/integrator/siigo/domain"
	"github.com/vfg2006/invoicing-api/infrastructure/integrator/siigo/siigoclient"
	"github.com/vfg2006/invoicing-api/internal/config"
)

// SiigoIntegrator é a fachada da integração usada pelos usecases.
// Toda operação autentica primeiro; falha de autenticação sobe como
// ErrAuthenticationUnavailable para virar 401 na borda HTTP.
type SiigoIntegrator interface {
	FetchPurchases(ctx context.Context, dateRange siigodomain.DateRange, fullScan bool) (*siigodomain.FetchResult, error)
	SubmitPurchase(ctx context.Context, payload *siigodomain.PurchasePayload) (*siigodomain.CreatedDocument, error)
	SubmitInvoice(ctx context.Context, payload *siigodomain.PurchasePayload) (*siigodomain.CreatedDocument, error)
}

type SiigoService struct {
	cfg    *config.Config
	Client siigoclient.Client
}

func New(cfg *config.Config, client siigoclient.Client) SiigoIntegrator {
	return &SiigoService{
		cfg:    cfg,
		Client: client,
	}
}

// FetchPurchases busca as compras do período. fullScan troca o teto de
// páginas do caminho rápido (5) pelo teto do caminho completo (500).
func (s *SiigoService) FetchPurchases(ctx context.Context, dateRange siigodomain.DateRange, fullScan bool) (*siigodomain.FetchResult, error) {
	token, err := s.Client.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	maxPages := s.cfg.Siigo.QuickMaxPages
	if fullScan {
		maxPages = s.cfg.Siigo.FullMaxPages
	}

	opts := siigoclient.FetchOptions{
		PageSize:       s.cfg.Siigo.PageSize,
		MaxPages:       maxPages,
		Concurrent:     s.cfg.Siigo.ConcurrentFetch,
		MaxConcurrency: s.cfg.Siigo.MaxConcurrency,
	}

	return s.Client.FetchAllPurchases(ctx, token, dateRange, opts)
}

func (s *SiigoService) SubmitPurchase(ctx context.Context, payload *siigodomain.PurchasePayload) (*siigodomain.CreatedDocument, error) {
	token, err := s.Client.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	return s.Client.CreatePurchase(ctx, token, payload)
}

func (s *SiigoService) SubmitInvoice(ctx context.Context, payload *siigodomain.PurchasePayload) (*siigodomain.CreatedDocument, error) {
	token, err := s.Client.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	return s.Client.CreateInvoice(ctx, token, payload)
}
