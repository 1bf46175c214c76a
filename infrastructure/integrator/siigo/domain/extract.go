package domain

import (
	"strconv"
	"strings"
	"time"
)

// Estratégias de extração para os registros de formato solto do SIIGO.
// Cada estratégia devolve (valor, true) no primeiro campo que conseguir
// interpretar; a composição é first-success-wins, na ordem declarada.

// dateFieldCandidates são os nomes de campo tentados, em ordem, na
// extração de data.
var dateFieldCandidates = []string{
	"date", "created", "creation_date", "created_at", "issue_date", "fecha",
}

// amountFieldCandidates são os nomes de campo tentados, em ordem, na
// extração de valor total.
var amountFieldCandidates = []string{
	"total", "amount", "value", "total_amount", "net_total", "valor",
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateOnly,
	"2006-01",
	"02/01/2006",
	"2006/01/02",
}

type dateStrategy func(RawPurchaseRecord) (time.Time, bool)

var dateStrategies = []dateStrategy{
	extractStructuredDate,
	extractNamedDateField,
}

// ExtractDate tenta extrair uma data de calendário válida do registro.
// Devolve false quando nenhuma estratégia tem sucesso; nesse caso o
// registro deve ser descartado da agregação (contado, não fatal).
func ExtractDate(record RawPurchaseRecord) (time.Time, bool) {
	for _, strategy := range dateStrategies {
		if date, ok := strategy(record); ok {
			return date, true
		}
	}
	return time.Time{}, false
}

// extractStructuredDate procura sub-objetos do tipo {year, month}
func extractStructuredDate(record RawPurchaseRecord) (time.Time, bool) {
	for _, key := range dateFieldCandidates {
		sub, ok := record[key].(map[string]any)
		if !ok {
			continue
		}

		year, okYear := toInt(sub["year"])
		month, okMonth := toInt(sub["month"])
		if !okYear || !okMonth || month < 1 || month > 12 || year < 1900 {
			continue
		}

		day := 1
		if d, ok := toInt(sub["day"]); ok && d >= 1 && d <= 31 {
			day = d
		}

		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
	}

	return time.Time{}, false
}

// extractNamedDateField tenta os campos candidatos como string de data
// ou timestamp epoch
func extractNamedDateField(record RawPurchaseRecord) (time.Time, bool) {
	for _, key := range dateFieldCandidates {
		value, ok := record[key]
		if !ok {
			continue
		}

		if date, ok := parseDateValue(value); ok {
			return date, true
		}
	}

	return time.Time{}, false
}

func parseDateValue(value any) (time.Time, bool) {
	switch v := value.(type) {
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return time.Time{}, false
		}

		if date, ok := parseEpochString(trimmed); ok {
			return date, true
		}

		for _, layout := range dateLayouts {
			if date, err := time.Parse(layout, trimmed); err == nil {
				return date, true
			}
		}
	case float64:
		// Epoch numérico direto (segundos ou milissegundos)
		return parseEpochString(strconv.FormatInt(int64(v), 10))
	}

	return time.Time{}, false
}

// parseEpochString interpreta strings numéricas de 10 a 13 dígitos como
// epoch em segundos ou milissegundos
func parseEpochString(s string) (time.Time, bool) {
	if len(s) < 10 || len(s) > 13 {
		return time.Time{}, false
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, false
	}

	if len(s) > 10 {
		return time.UnixMilli(n).UTC(), true
	}
	return time.Unix(n, 0).UTC(), true
}

// ExtractAmount extrai o valor total do registro. Nunca descarta o
// registro: sem nenhum campo utilizável o valor é 0.
func ExtractAmount(record RawPurchaseRecord) float64 {
	for _, key := range amountFieldCandidates {
		value, ok := record[key]
		if !ok {
			continue
		}

		if amount, ok := coerceAmount(value); ok {
			return amount
		}
	}

	// Fallback: somar price × quantity dos itens
	if items, ok := record["items"].([]any); ok {
		return sumLineItems(items)
	}

	return 0
}

func coerceAmount(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return nonNegative(v), true
	case int:
		return nonNegative(float64(v)), true
	case string:
		cleaned := stripNonNumeric(v)
		if cleaned == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return nonNegative(parsed), true
	}

	return 0, false
}

// stripNonNumeric remove separadores de milhar e símbolos de moeda,
// preservando dígitos, ponto decimal e sinal
func stripNonNumeric(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func sumLineItems(items []any) float64 {
	total := 0.0
	for _, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		price, okPrice := coerceAmount(item["price"])
		quantity, okQuantity := coerceAmount(item["quantity"])
		if !okPrice || !okQuantity {
			// Itens que não parseiam são ignorados, não zeram o total
			continue
		}

		total += price * quantity
	}

	return nonNegative(total)
}

func nonNegative(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}

// supplierKeys são os sub-objetos tentados, em ordem, na extração do
// fornecedor
var supplierKeys = []string{"supplier", "provider", "vendor"}

// ExtractSupplier extrai identificação e nome do fornecedor. Registros
// sem fornecedor identificável caem no agregado "unknown".
func ExtractSupplier(record RawPurchaseRecord) (id string, name string) {
	for _, key := range supplierKeys {
		sub, ok := record[key].(map[string]any)
		if !ok {
			continue
		}

		if v, ok := sub["identification"].(string); ok && v != "" {
			id = v
		}
		if v, ok := sub["name"].(string); ok && v != "" {
			name = v
		}

		if id != "" || name != "" {
			break
		}
	}

	if id == "" && name != "" {
		id = name
	}
	if id == "" {
		id = "unknown"
	}
	if name == "" {
		name = id
	}

	return id, name
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
