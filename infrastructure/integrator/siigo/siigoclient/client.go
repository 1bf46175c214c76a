package siigoclient

import (
	"context"
	"math/rand"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	siigodomain "github.com/vfg2006/invoicing-api/infrastructure/integrator/siigo/domain"
	"github.com/vfg2006/invoicing-api/internal/config"
	"github.com/vfg2006/invoicing-api/pkg/cache"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	Authenticate(ctx context.Context) (string, error)
	FetchAllPurchases(ctx context.Context, token string, dateRange siigodomain.DateRange, opts FetchOptions) (*siigodomain.FetchResult, error)
	CreatePurchase(ctx context.Context, token string, payload *siigodomain.PurchasePayload) (*siigodomain.CreatedDocument, error)
	CreateInvoice(ctx context.Context, token string, payload *siigodomain.PurchasePayload) (*siigodomain.CreatedDocument, error)
}

// FetchOptions parametriza a busca paginada de compras
type FetchOptions struct {
	PageSize       int
	MaxPages       int
	Concurrent     bool
	MaxConcurrency int
}

type SiigoClient struct {
	cfg        *config.Config
	httpClient *http.Client
	tokenCache cache.Cache

	// sleep e jitter são substituíveis em testes
	sleep  func(time.Duration)
	jitter func(max time.Duration) time.Duration
}

func NewClient(cfg *config.Config, tokenCache cache.Cache) Client {
	return &SiigoClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Siigo.RequestTimeout,
		},
		tokenCache: tokenCache,
		sleep:      time.Sleep,
		jitter: func(max time.Duration) time.Duration {
			if max <= 0 {
				return 0
			}
			return time.Duration(rand.Int63n(int64(max)))
		},
	}
}
