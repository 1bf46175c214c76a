package analyzing

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	siigodomain "github.com/vfg2006/invoicing-api/infrastructure/integrator/siigo/domain"
	"github.com/vfg2006/invoicing-api/internal/config"
	"github.com/vfg2006/invoicing-api/internal/domain"
	"github.com/vfg2006/invoicing-api/pkg/cache"
)

// ReportFilters são os parâmetros aceitos pelo relatório de compras
type ReportFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
	FullScan  bool
}

// Service orquestra o pipeline de analytics: fetch → normalize →
// aggregate → assemble. O pipeline é stateless e de passada única;
// nada é persistido entre invocações além do snapshot em cache.
type Service struct {
	cfg           *config.Config
	fetcher       PurchaseFetcher
	snapshotCache cache.Cache
}

func NewService(cfg *config.Config, fetcher PurchaseFetcher, snapshotCache cache.Cache) *Service {
	return &Service{
		cfg:           cfg,
		fetcher:       fetcher,
		snapshotCache: snapshotCache,
	}
}

// BuildPurchaseReport produz o relatório de analytics de compras.
// Falha de autenticação no SIIGO sobe como erro (vira 401 na borda);
// qualquer panic no restante do pipeline é capturado e convertido em
// relatório zerado para o painel continuar renderizável.
func (s *Service) BuildPurchaseReport(ctx context.Context, filters ReportFilters) (report *domain.AnalyticsReport, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			logrus.WithField("panic", recovered).Error("Pipeline de analytics falhou de forma inesperada; devolvendo relatório zerado")
			report = domain.EmptyAnalyticsReport()
			err = nil
		}
	}()

	dateRange := s.effectiveRange(filters, time.Now())

	fetchResult, err := s.fetchWithSnapshot(ctx, dateRange, filters.FullScan)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar compras do SIIGO")
	}

	invoices, dropped := NormalizeAll(fetchResult.Records)

	windowMonths := s.windowMonths(filters)
	ref := time.Now()
	if filters.EndDate != nil {
		ref = *filters.EndDate
	}

	topK := s.cfg.Analytics.TopSuppliers
	if filters.FullScan {
		topK = s.cfg.Analytics.TopSuppliersFull
	}

	aggregate := Aggregate(invoices, windowMonths, topK, ref)

	report = AssembleReport(aggregate, invoices, dropped, fetchResult.FailedPages, s.cfg.Analytics.RecentInvoices)

	logrus.WithFields(logrus.Fields{
		"invoices":      aggregate.InvoiceCount,
		"dropped":       dropped,
		"failed_pages":  fetchResult.FailedPages,
		"window_months": windowMonths,
	}).Info("Relatório de analytics de compras gerado")

	return report, nil
}

// WarmSnapshot busca as compras dos últimos windowDays e pré-aquece o
// cache de snapshot. Usado pelo agendador. O período aquecido é o mesmo
// que uma requisição sem filtros resolve (ver effectiveRange), então a
// requisição padrão do painel responde do cache.
func (s *Service) WarmSnapshot(ctx context.Context, windowDays int) error {
	dateRange := defaultWindow(time.Now(), windowDays)

	fetchResult, err := s.fetcher.FetchPurchases(ctx, dateRange, true)
	if err != nil {
		return errors.Wrap(err, "erro ao pré-aquecer snapshot de compras")
	}

	// O mesmo snapshot serve a varredura completa e a varredura rápida
	// do painel; o resultado completo é um superconjunto do rápido
	s.snapshotCache.Set(snapshotKey(dateRange, true), fetchResult, s.cfg.Analytics.SnapshotTTL)
	s.snapshotCache.Set(snapshotKey(dateRange, false), fetchResult, s.cfg.Analytics.SnapshotTTL)
	return nil
}

// fetchWithSnapshot consulta o cache de snapshot antes de ir à rede.
// A invalidação é só por TTL; requisições concorrentes podem ambas
// perder o cache e buscar em duplicidade — ineficiência aceita, não é
// bug de corretude.
func (s *Service) fetchWithSnapshot(ctx context.Context, dateRange siigodomain.DateRange, fullScan bool) (*siigodomain.FetchResult, error) {
	key := snapshotKey(dateRange, fullScan)

	if cached, ok := s.snapshotCache.Get(key); ok {
		if snapshot, ok := cached.(*siigodomain.FetchResult); ok {
			return snapshot, nil
		}
	}

	fetchResult, err := s.fetcher.FetchPurchases(ctx, dateRange, fullScan)
	if err != nil {
		return nil, err
	}

	s.snapshotCache.Set(key, fetchResult, s.cfg.Analytics.SnapshotTTL)
	return fetchResult, nil
}

func snapshotKey(dateRange siigodomain.DateRange, fullScan bool) string {
	start := ""
	end := ""
	if !dateRange.Start.IsZero() {
		start = dateRange.Start.Format(time.DateOnly)
	}
	if !dateRange.End.IsZero() {
		end = dateRange.End.Format(time.DateOnly)
	}
	return fmt.Sprintf("purchases:%s:%s:full=%t", start, end, fullScan)
}

// effectiveRange resolve o período efetivo do relatório. Sem nenhum
// filtro de data, o período é a janela default do agendador — a mesma
// que WarmSnapshot pré-aquece, para que a chave de snapshot coincida.
func (s *Service) effectiveRange(filters ReportFilters, now time.Time) siigodomain.DateRange {
	if filters.StartDate == nil && filters.EndDate == nil && s.cfg.SnapshotWarmer.WindowDays > 0 {
		return defaultWindow(now, s.cfg.SnapshotWarmer.WindowDays)
	}
	return toDateRange(filters)
}

// defaultWindow é a janela [hoje−windowDays, hoje], truncada ao dia
// para a chave de snapshot ser estável ao longo do dia
func defaultWindow(now time.Time, windowDays int) siigodomain.DateRange {
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return siigodomain.DateRange{Start: end.AddDate(0, 0, -windowDays), End: end}
}

func toDateRange(filters ReportFilters) siigodomain.DateRange {
	dateRange := siigodomain.DateRange{}
	if filters.StartDate != nil {
		dateRange.Start = *filters.StartDate
	}
	if filters.EndDate != nil {
		dateRange.End = *filters.EndDate
	}
	return dateRange
}

// windowMonths deriva o tamanho da janela a partir do período
// solicitado; sem período explícito vale o default de configuração
func (s *Service) windowMonths(filters ReportFilters) int {
	if filters.StartDate == nil || filters.EndDate == nil {
		return s.cfg.Analytics.WindowMonths
	}

	start := *filters.StartDate
	end := *filters.EndDate

	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()) + 1
	if months < 1 {
		return 1
	}
	return months
}
