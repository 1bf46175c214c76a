package siigoclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	siigodomain "github.com/vfg2006/invoicing-api/infrastructure/integrator/siigo/domain"
)

const pageRetryBaseDelay = 500 * time.Millisecond

// pageData é o resultado normalizado de uma página do endpoint de compras
type pageData struct {
	records    []siigodomain.RawPurchaseRecord
	totalPages int
}

// FetchAllPurchases busca todas as páginas de compras do período.
// A primeira página revela o total de páginas quando a API informa
// pagination.total_pages; sem esse metadado, o loop sequencial para
// quando uma página devolve menos registros que o page size. Páginas
// que falham após os retries viram páginas vazias e são contadas em
// FailedPages — o chamador sabe que o resultado pode estar subcontado.
func (c *SiigoClient) FetchAllPurchases(
	ctx context.Context,
	token string,
	dateRange siigodomain.DateRange,
	opts FetchOptions,
) (*siigodomain.FetchResult, error) {
	if opts.PageSize <= 0 {
		opts.PageSize = c.cfg.Siigo.PageSize
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = c.cfg.Siigo.QuickMaxPages
	}
	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = c.cfg.Siigo.MaxConcurrency
	}

	result := &siigodomain.FetchResult{}

	first, err := c.fetchPurchasesPage(ctx, token, dateRange, 1, opts.PageSize)
	result.PagesFetched = 1
	if err != nil {
		logrus.WithError(err).Warn("Página 1 de compras falhou após retries; tratando como vazia")
		result.FailedPages++
		result.Records = []siigodomain.RawPurchaseRecord{}
		return result, nil
	}

	pages := [][]siigodomain.RawPurchaseRecord{first.records}

	switch {
	case first.totalPages > 1:
		lastPage := first.totalPages
		if lastPage > opts.MaxPages {
			lastPage = opts.MaxPages
		}

		if opts.Concurrent {
			c.fetchPagesConcurrently(ctx, token, dateRange, opts, lastPage, &pages, result)
		} else {
			c.fetchPagesSequentially(ctx, token, dateRange, opts, lastPage, &pages, result)
		}

	case first.totalPages == 0 && len(first.records) == opts.PageSize:
		// Sem metadado de paginação: segue buscando até uma página
		// incompleta sinalizar o fim dos dados
		c.fetchUntilShortPage(ctx, token, dateRange, opts, &pages, result)
	}

	merged := make([]siigodomain.RawPurchaseRecord, 0)
	for _, page := range pages {
		merged = append(merged, page...)
	}

	deduped := DedupRecords(merged)

	if !dateRange.IsZero() {
		deduped = filterByDateRange(deduped, dateRange)
	}

	result.Records = deduped

	logrus.WithFields(logrus.Fields{
		"pages_fetched": result.PagesFetched,
		"failed_pages":  result.FailedPages,
		"records":       len(result.Records),
	}).Info("Busca paginada de compras concluída")

	return result, nil
}

// fetchPagesSequentially busca as páginas 2..lastPage em ordem
func (c *SiigoClient) fetchPagesSequentially(
	ctx context.Context,
	token string,
	dateRange siigodomain.DateRange,
	opts FetchOptions,
	lastPage int,
	pages *[][]siigodomain.RawPurchaseRecord,
	result *siigodomain.FetchResult,
) {
	for page := 2; page <= lastPage; page++ {
		data, err := c.fetchPurchasesPage(ctx, token, dateRange, page, opts.PageSize)
		result.PagesFetched++
		if err != nil {
			logrus.WithError(err).WithField("page", page).Warn("Página de compras falhou após retries; tratando como vazia")
			result.FailedPages++
			continue
		}
		*pages = append(*pages, data.records)
	}
}

// fetchPagesConcurrently dispara as páginas restantes com fan-out
// limitado. A concatenação preserva a ordem das páginas; a agregação
// a jusante é comutativa sobre o conjunto, então a ordem de conclusão
// não importa.
func (c *SiigoClient) fetchPagesConcurrently(
	ctx context.Context,
	token string,
	dateRange siigodomain.DateRange,
	opts FetchOptions,
	lastPage int,
	pages *[][]siigodomain.RawPurchaseRecord,
	result *siigodomain.FetchResult,
) {
	byIndex := make([][]siigodomain.RawPurchaseRecord, lastPage+1)

	semaphore := make(chan struct{}, opts.MaxConcurrency)

	var wg sync.WaitGroup
	var mutex sync.Mutex

	for page := 2; page <= lastPage; page++ {
		wg.Add(1)

		go func(page int) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			data, err := c.fetchPurchasesPage(ctx, token, dateRange, page, opts.PageSize)

			mutex.Lock()
			defer mutex.Unlock()

			result.PagesFetched++
			if err != nil {
				logrus.WithError(err).WithField("page", page).Warn("Página de compras falhou após retries; tratando como vazia")
				result.FailedPages++
				return
			}
			byIndex[page] = data.records
		}(page)
	}

	wg.Wait()

	for page := 2; page <= lastPage; page++ {
		if byIndex[page] != nil {
			*pages = append(*pages, byIndex[page])
		}
	}
}

// fetchUntilShortPage segue o caminho sem metadado de paginação
func (c *SiigoClient) fetchUntilShortPage(
	ctx context.Context,
	token string,
	dateRange siigodomain.DateRange,
	opts FetchOptions,
	pages *[][]siigodomain.RawPurchaseRecord,
	result *siigodomain.FetchResult,
) {
	for page := 2; page <= opts.MaxPages; page++ {
		data, err := c.fetchPurchasesPage(ctx, token, dateRange, page, opts.PageSize)
		result.PagesFetched++
		if err != nil {
			logrus.WithError(err).WithField("page", page).Warn("Página de compras falhou após retries; tratando como vazia")
			result.FailedPages++
			return
		}

		*pages = append(*pages, data.records)

		if len(data.records) < opts.PageSize {
			return
		}
	}
}

// fetchPurchasesPage busca uma página com retry e backoff exponencial
// com jitter
func (c *SiigoClient) fetchPurchasesPage(
	ctx context.Context,
	token string,
	dateRange siigodomain.DateRange,
	page int,
	pageSize int,
) (*pageData, error) {
	var lastErr error

	for attempt := 1; attempt <= c.cfg.Siigo.PageMaxRetries; attempt++ {
		data, err := c.doPurchasesRequest(ctx, token, dateRange, page, pageSize)
		if err == nil {
			return data, nil
		}

		lastErr = err
		logrus.WithError(err).WithFields(logrus.Fields{
			"page":    page,
			"attempt": attempt,
		}).Warn("Erro ao buscar página de compras")

		if attempt < c.cfg.Siigo.PageMaxRetries {
			backoff := pageRetryBaseDelay << (attempt - 1)
			c.sleep(backoff + c.jitter(pageRetryBaseDelay/2))
		}
	}

	return nil, fmt.Errorf("página %d esgotou as tentativas: %w", page, lastErr)
}

func (c *SiigoClient) doPurchasesRequest(
	ctx context.Context,
	token string,
	dateRange siigodomain.DateRange,
	page int,
	pageSize int,
) (*pageData, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.Siigo.RequestTimeout)
	defer cancel()

	endpoint, err := url.Parse(c.cfg.Siigo.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = endpoint.Path + "/v1/purchases"

	query := endpoint.Query()
	if !dateRange.Start.IsZero() {
		query.Set("created_start", dateRange.Start.Format(time.DateOnly))
	}
	if !dateRange.End.IsZero() {
		query.Set("created_end", dateRange.End.Format(time.DateOnly))
	}
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Partner-Id", c.cfg.Siigo.PartnerID)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("requisição de compras falhou com status %d: %s", resp.StatusCode, string(body))
	}

	return parsePurchasesPage(body)
}

// resultArrayKeys são as chaves tentadas, em ordem, para localizar o
// array de resultados nas diferentes versões de resposta do SIIGO
var resultArrayKeys = []string{"results", "data", "items"}

// parsePurchasesPage normaliza os formatos heterogêneos de resposta do
// endpoint de compras
func parsePurchasesPage(body []byte) (*pageData, error) {
	var envelope map[string]any
	if err := json.Unmarshal(body, &envelope); err != nil {
		// Algumas versões devolvem o array diretamente na raiz
		var plain []siigodomain.RawPurchaseRecord
		if arrErr := json.Unmarshal(body, &plain); arrErr == nil {
			return &pageData{records: plain}, nil
		}
		return nil, fmt.Errorf("erro ao decodificar página de compras: %w", err)
	}

	data := &pageData{records: []siigodomain.RawPurchaseRecord{}}

	for _, key := range resultArrayKeys {
		rawList, ok := envelope[key].([]any)
		if !ok {
			continue
		}

		for _, item := range rawList {
			if record, ok := item.(map[string]any); ok {
				data.records = append(data.records, siigodomain.RawPurchaseRecord(record))
			}
		}
		break
	}

	if pagination, ok := envelope["pagination"].(map[string]any); ok {
		if totalPages, ok := pagination["total_pages"].(float64); ok {
			data.totalPages = int(totalPages)
		}
	}

	return data, nil
}

// DedupRecords remove registros duplicados pela identidade derivada,
// preservando a ordem de chegada. Quando duas entradas compartilham a
// identidade, vence a que tiver estritamente mais campos preenchidos.
// A operação é idempotente.
func DedupRecords(records []siigodomain.RawPurchaseRecord) []siigodomain.RawPurchaseRecord {
	deduped := make([]siigodomain.RawPurchaseRecord, 0, len(records))
	indexByIdentity := make(map[string]int, len(records))

	for _, record := range records {
		identity := record.Identity()

		existingIndex, exists := indexByIdentity[identity]
		if !exists {
			indexByIdentity[identity] = len(deduped)
			deduped = append(deduped, record)
			continue
		}

		if record.PopulatedFields() > deduped[existingIndex].PopulatedFields() {
			deduped[existingIndex] = record
		}
	}

	return deduped
}

// filterByDateRange aplica o filtro de datas no cliente, por cima do
// filtro do servidor — os filtros de data do SIIGO não são confiáveis
// entre formatos de registro. Registros sem data extraível passam; o
// normalizador decide o descarte e o contabiliza.
func filterByDateRange(records []siigodomain.RawPurchaseRecord, dateRange siigodomain.DateRange) []siigodomain.RawPurchaseRecord {
	filtered := make([]siigodomain.RawPurchaseRecord, 0, len(records))

	for _, record := range records {
		date, ok := siigodomain.ExtractDate(record)
		if ok && !dateRange.Contains(date) {
			continue
		}
		filtered = append(filtered, record)
	}

	return filtered
}
