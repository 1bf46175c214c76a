package siigoclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	siigodomain "github.com/vfg2006/invoicing-api/infrastructure/integrator/siigo/domain"
)

const (
	tokenCacheKey   = "siigo:token"
	maxAuthAttempts = 3
	authBackoffStep = 1 * time.Second
)

type authRequest struct {
	Username  string `json:"username"`
	AccessKey string `json:"access_key"`
}

type authResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Authenticate obtém um bearer token do SIIGO, com até 3 tentativas e
// backoff linear (1s × tentativa). O token fica em cache até
// expires_in − margem de segurança; cache hit não toca a rede.
// Falha definitiva devolve ErrAuthenticationUnavailable — o chamador
// deve traduzir para 401, nunca propagar como 500.
func (c *SiigoClient) Authenticate(ctx context.Context) (string, error) {
	if cached, ok := c.tokenCache.Get(tokenCacheKey); ok {
		if token, ok := cached.(string); ok && token != "" {
			return token, nil
		}
	}

	var lastErr error

	for attempt := 1; attempt <= maxAuthAttempts; attempt++ {
		token, expiresIn, err := c.requestToken(ctx)
		if err == nil {
			ttl := time.Duration(expiresIn)*time.Second - c.cfg.Siigo.TokenSafetyDelta
			if ttl > 0 {
				c.tokenCache.Set(tokenCacheKey, token, ttl)
			}

			return token, nil
		}

		lastErr = err
		logrus.WithError(err).WithField("attempt", attempt).Warn("Falha ao autenticar no SIIGO")

		if attempt < maxAuthAttempts {
			c.sleep(time.Duration(attempt) * authBackoffStep)
		}
	}

	return "", fmt.Errorf("%w: %v", siigodomain.ErrAuthenticationUnavailable, lastErr)
}

func (c *SiigoClient) requestToken(ctx context.Context) (string, int64, error) {
	body, err := json.Marshal(authRequest{
		Username:  c.cfg.Siigo.Username,
		AccessKey: c.cfg.Siigo.AccessKey,
	})
	if err != nil {
		return "", 0, fmt.Errorf("erro ao serializar credenciais: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Siigo.BaseURL+"/auth", bytes.NewReader(body))
	if err != nil {
		return "", 0, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Partner-Id", c.cfg.Siigo.PartnerID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("erro ao executar a requisição de autenticação: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", 0, fmt.Errorf("autenticação falhou com status %d: %s", resp.StatusCode, string(respBody))
	}

	var tokenResp authResponse
	if err := json.Unmarshal(respBody, &tokenResp); err != nil {
		return "", 0, fmt.Errorf("erro ao decodificar resposta de autenticação: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return "", 0, fmt.Errorf("resposta de autenticação sem access_token")
	}

	return tokenResp.AccessToken, tokenResp.ExpiresIn, nil
}
