package domain

import (
	"fmt"
	"hash/fnv"
	"sort"
	"time"
)

// RawPurchaseRecord é o registro de compra como devolvido pelo SIIGO.
// O formato não é estável entre versões da API, então nenhum schema é
// imposto localmente; a extração de campos acontece via estratégias
// ordenadas (ver extract.go).
type RawPurchaseRecord map[string]any

// DateRange delimita o período consultado. Datas zeradas desativam o filtro.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains verifica se a data está dentro do período (inclusive). A
// comparação é por dia de calendário: os limites do período chegam como
// meia-noite, mas o registro pode carregar hora (RFC3339), e um registro
// do último dia do período não pode ficar de fora por causa disso.
func (r DateRange) Contains(t time.Time) bool {
	day := dateOnly(t)
	if !r.Start.IsZero() && day.Before(dateOnly(r.Start)) {
		return false
	}
	if !r.End.IsZero() && day.After(dateOnly(r.End)) {
		return false
	}
	return true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsZero indica que nenhum filtro de data foi solicitado
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// FetchResult é o resultado da busca paginada de compras. FailedPages
// preserva o sinal de páginas que falharam após as tentativas de retry,
// separado do fim natural dos dados — o relatório pode estar subcontado
// quando FailedPages > 0.
type FetchResult struct {
	Records      []RawPurchaseRecord
	PagesFetched int
	FailedPages  int
}

// identityKeys são os campos tentados, em ordem, para derivar a
// identidade de um registro na deduplicação.
var identityKeys = []string{"id", "number", "reference", "code"}

// Identity deriva a identidade do registro para deduplicação: prefere
// id, depois number/reference/code e por fim um hash estrutural.
func (r RawPurchaseRecord) Identity() string {
	for _, key := range identityKeys {
		if value, ok := r[key]; ok {
			if s := stringifyScalar(value); s != "" {
				return key + ":" + s
			}
		}
	}

	return "hash:" + r.structuralHash()
}

// PopulatedFields conta os campos com conteúdo útil. Usado na
// deduplicação: entre dois registros com a mesma identidade, vence o
// que tiver estritamente mais campos preenchidos.
func (r RawPurchaseRecord) PopulatedFields() int {
	count := 0
	for _, value := range r {
		if isPopulated(value) {
			count++
		}
	}
	return count
}

func isPopulated(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case map[string]any:
		return len(v) > 0
	case []any:
		return len(v) > 0
	default:
		return true
	}
}

// structuralHash calcula um hash FNV-64 sobre os pares chave=valor
// ordenados, para registros sem nenhum campo identificador.
func (r RawPurchaseRecord) structuralHash() string {
	keys := make([]string, 0, len(r))
	for key := range r {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	h := fnv.New64a()
	for _, key := range keys {
		fmt.Fprintf(h, "%s=%v;", key, r[key])
	}

	return fmt.Sprintf("%016x", h.Sum64())
}

func stringifyScalar(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		// json decodifica números como float64; inteiros não devem
		// ganhar casa decimal na identidade
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	case int, int64:
		return fmt.Sprintf("%d", v)
	case nil:
		return ""
	default:
		return ""
	}
}
