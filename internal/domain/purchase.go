package domain

// PurchaseForm é o payload recebido do formulário de compras da UI,
// antes do mapeamento para o schema do SIIGO
type PurchaseForm struct {
	DocumentID   int               `json:"document_id"`
	Date         string            `json:"date"`
	SupplierID   string            `json:"supplier_id"`
	CostCenter   int               `json:"cost_center,omitempty"`
	Observations string            `json:"observations,omitempty"`
	Items        []PurchaseItem    `json:"items"`
	Payments     []PurchasePayment `json:"payments"`
}

type PurchaseItem struct {
	Code        string  `json:"code"`
	Description string  `json:"description,omitempty"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
}

type PurchasePayment struct {
	MethodID int     `json:"method_id"`
	Value    float64 `json:"value"`
	DueDate  string  `json:"due_date,omitempty"`
}
