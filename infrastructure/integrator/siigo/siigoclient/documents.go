package siigoclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	siigodomain "github.com/vfg2006/invoicing-api/infrastructure/integrator/siigo/domain"
)

// CreatePurchase envia um documento de compra para o SIIGO
func (c *SiigoClient) CreatePurchase(ctx context.Context, token string, payload *siigodomain.PurchasePayload) (*siigodomain.CreatedDocument, error) {
	return c.postDocument(ctx, token, "/v1/purchases", payload)
}

// CreateInvoice envia uma fatura de venda para o SIIGO
func (c *SiigoClient) CreateInvoice(ctx context.Context, token string, payload *siigodomain.PurchasePayload) (*siigodomain.CreatedDocument, error) {
	return c.postDocument(ctx, token, "/v1/invoices", payload)
}

func (c *SiigoClient) postDocument(ctx context.Context, token, path string, payload *siigodomain.PurchasePayload) (*siigodomain.CreatedDocument, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar documento: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.Siigo.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.cfg.Siigo.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Partner-Id", c.cfg.Siigo.PartnerID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errorResp siigodomain.ErrorResponse
		if parseErr := json.Unmarshal(respBody, &errorResp); parseErr == nil && len(errorResp.Errors) > 0 {
			return nil, fmt.Errorf("SIIGO rejeitou o documento (status %d): %s", resp.StatusCode, errorResp.Message())
		}
		return nil, fmt.Errorf("criação de documento falhou com status %d: %s", resp.StatusCode, string(respBody))
	}

	var raw map[string]any
	if err := json.Unmarshal(respBody, &raw); err != nil {
		return nil, fmt.Errorf("erro ao decodificar documento criado: %w", err)
	}

	created := &siigodomain.CreatedDocument{Raw: raw}
	if err := json.Unmarshal(respBody, created); err != nil {
		return nil, fmt.Errorf("erro ao decodificar documento criado: %w", err)
	}

	return created, nil
}
