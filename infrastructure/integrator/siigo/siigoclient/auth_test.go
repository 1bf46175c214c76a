package siigoclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	siigodomain "github.com/vfg2006/invoicing-api/infrastructure/integrator/siigo/domain"
	"github.com/vfg2006/invoicing-api/internal/config"
	"github.com/vfg2006/invoicing-api/pkg/cache"
)

func testClient(baseURL string) *SiigoClient {
	cfg := &config.Config{}
	cfg.Siigo.BaseURL = baseURL
	cfg.Siigo.Username = "user"
	cfg.Siigo.AccessKey = "key"
	cfg.Siigo.PartnerID = "invoicing-api"
	cfg.Siigo.PageSize = 3
	cfg.Siigo.QuickMaxPages = 5
	cfg.Siigo.FullMaxPages = 500
	cfg.Siigo.RequestTimeout = 5 * time.Second
	cfg.Siigo.PageMaxRetries = 3
	cfg.Siigo.MaxConcurrency = 4
	cfg.Siigo.TokenSafetyDelta = 60 * time.Second

	return &SiigoClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Siigo.RequestTimeout},
		tokenCache: cache.NewMemory(time.Minute, time.Minute),
		sleep:      func(time.Duration) {},
		jitter:     func(time.Duration) time.Duration { return 0 },
	}
}

func TestAuthenticate_SucessoNaTerceiraTentativa(t *testing.T) {
	attempts := 0
	sleeps := []time.Duration{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth", r.URL.Path)
		assert.Equal(t, "invoicing-api", r.Header.Get("Partner-Id"))

		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token": "token-abc", "expires_in": 3600}`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	client.sleep = func(d time.Duration) { sleeps = append(sleeps, d) }

	token, err := client.Authenticate(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, "token-abc", token)
	assert.Equal(t, 3, attempts)

	// Backoff linear: 1s após a primeira falha, 2s após a segunda
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, sleeps)
}

func TestAuthenticate_CacheEvitaSegundaRequisicao(t *testing.T) {
	requests := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{"access_token": "token-abc", "expires_in": 3600}`))
	}))
	defer server.Close()

	client := testClient(server.URL)

	first, err := client.Authenticate(context.Background())
	assert.NoError(t, err)

	second, err := client.Authenticate(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, requests)
}

func TestAuthenticate_EsgotaTentativasDevolveErroSentinela(t *testing.T) {
	attempts := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := testClient(server.URL)

	token, err := client.Authenticate(context.Background())

	assert.Error(t, err)
	assert.ErrorIs(t, err, siigodomain.ErrAuthenticationUnavailable)
	assert.Empty(t, token)
	assert.Equal(t, 3, attempts)
}

func TestAuthenticate_RespostaSemAccessTokenFalha(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"expires_in": 3600}`))
	}))
	defer server.Close()

	client := testClient(server.URL)

	_, err := client.Authenticate(context.Background())

	assert.Error(t, err)
	assert.ErrorIs(t, err, siigodomain.ErrAuthenticationUnavailable)
}

func TestAuthenticate_TokenComTTLCurtoNaoEntraNoCache(t *testing.T) {
	requests := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		// expires_in menor que a margem de segurança: TTL <= 0
		w.Write([]byte(`{"access_token": "token-abc", "expires_in": 30}`))
	}))
	defer server.Close()

	client := testClient(server.URL)

	_, err := client.Authenticate(context.Background())
	assert.NoError(t, err)

	_, err = client.Authenticate(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, 2, requests)
}
