package domain

// Tipos do payload de criação de compras e faturas no SIIGO.

// Document identifica o tipo de documento contábil no SIIGO
type Document struct {
	ID int `json:"id"`
}

// Supplier identifica o fornecedor pelo número de identificação fiscal
type Supplier struct {
	Identification string `json:"identification"`
	BranchOffice   int    `json:"branch_office,omitempty"`
}

// Item é uma linha do documento
type Item struct {
	Code        string  `json:"code"`
	Description string  `json:"description,omitempty"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
}

// Payment descreve uma forma de pagamento do documento
type Payment struct {
	ID      int     `json:"id"`
	Value   float64 `json:"value"`
	DueDate string  `json:"due_date,omitempty"`
}

// PurchasePayload é o corpo aceito por POST /purchases e POST /invoices
type PurchasePayload struct {
	Document     Document  `json:"document"`
	Date         string    `json:"date"`
	Supplier     Supplier  `json:"supplier"`
	CostCenter   int       `json:"cost_center,omitempty"`
	Observations string    `json:"observations,omitempty"`
	Items        []Item    `json:"items"`
	Payments     []Payment `json:"payments"`
}

// CreatedDocument é a representação devolvida pelo SIIGO após a criação
type CreatedDocument struct {
	ID     any            `json:"id"`
	Number any            `json:"number,omitempty"`
	Name   string         `json:"name,omitempty"`
	Date   string         `json:"date,omitempty"`
	Total  float64        `json:"total,omitempty"`
	Raw    map[string]any `json:"-"`
}
