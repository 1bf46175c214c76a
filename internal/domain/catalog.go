package domain

// Product é um produto do catálogo local usado no autocomplete do
// formulário de compras
type Product struct {
	ID    int     `json:"id"`
	Code  string  `json:"code"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Provider é um fornecedor cadastrado localmente
type Provider struct {
	ID             int    `json:"id"`
	Identification string `json:"identification"`
	Name           string `json:"name"`
	City           string `json:"city,omitempty"`
}

// FixedAsset é um ativo fixo cadastrado localmente
type FixedAsset struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}
