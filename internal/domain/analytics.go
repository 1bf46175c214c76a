package domain

import "time"

// NormalizedInvoice é a forma estrita derivada de um registro solto do
// SIIGO. Invariantes: Amount >= 0 e Date é uma data de calendário
// válida — registros sem data parseável são descartados antes de
// chegar aqui.
type NormalizedInvoice struct {
	Date         time.Time `json:"date"`
	Amount       float64   `json:"amount"`
	SupplierID   string    `json:"supplier_id"`
	SupplierName string    `json:"supplier_name"`
}

// MonthBucket agrega as compras de um mês de calendário. Period usa o
// formato mm-yyyy. Meses sem compras dentro da janela aparecem zerados.
type MonthBucket struct {
	Period       string  `json:"period"`
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	TotalAmount  float64 `json:"total_amount"`
	InvoiceCount int     `json:"invoice_count"`
}

// SupplierAggregate é uma linha do ranking de fornecedores, ordenado
// de forma decrescente por TotalAmount
type SupplierAggregate struct {
	SupplierID   string  `json:"supplier_id"`
	SupplierName string  `json:"supplier_name"`
	TotalAmount  float64 `json:"total_amount"`
	InvoiceCount int     `json:"invoice_count"`
}

// CategoryShare é uma fatia sintética do gasto por categoria — o SIIGO
// não expõe categoria nos registros de compra, então a divisão é
// heurística por percentual fixo
type CategoryShare struct {
	Category string  `json:"category"`
	Percent  float64 `json:"percent"`
	Amount   float64 `json:"amount"`
}

// RecentInvoice é uma entrada da lista de compras mais recentes
type RecentInvoice struct {
	Date         string  `json:"date"`
	Amount       float64 `json:"amount"`
	SupplierName string  `json:"supplier_name"`
}

// AnalyticsTotals resume o conjunto agregado. DroppedRecords conta
// registros descartados por data inválida; FailedPages preserva o
// sinal de páginas perdidas no fetch (o relatório pode estar
// subcontado quando > 0).
type AnalyticsTotals struct {
	TotalAmount    float64 `json:"total_amount"`
	InvoiceCount   int     `json:"invoice_count"`
	DroppedRecords int     `json:"dropped_records"`
	FailedPages    int     `json:"failed_pages"`
}

// AnalyticsReport é a estrutura final consumida pelo painel
type AnalyticsReport struct {
	Totals            AnalyticsTotals     `json:"totals"`
	MonthlyData       []MonthBucket       `json:"monthly_data"`
	GrowthRate        float64             `json:"growth_rate"`
	TopSuppliers      []SupplierAggregate `json:"top_suppliers"`
	CategoryBreakdown []CategoryShare     `json:"category_breakdown"`
	RecentInvoices    []RecentInvoice     `json:"recent_invoices"`
	GeneratedAt       time.Time           `json:"generated_at"`
}

// EmptyAnalyticsReport devolve um relatório zerado porém renderizável.
// É o que o painel recebe quando o pipeline de agregação falha de forma
// inesperada — o erro fica só no log.
func EmptyAnalyticsReport() *AnalyticsReport {
	return &AnalyticsReport{
		MonthlyData:       []MonthBucket{},
		TopSuppliers:      []SupplierAggregate{},
		CategoryBreakdown: []CategoryShare{},
		RecentInvoices:    []RecentInvoice{},
		GeneratedAt:       time.Now(),
	}
}
