package domain

import (
	"errors"
	"fmt"
)

// ErrAuthenticationUnavailable indica que o token não pôde ser obtido
// após todas as tentativas. Os handlers traduzem para 401.
var ErrAuthenticationUnavailable = errors.New("autenticação no SIIGO indisponível")

// ErrorResponse é o corpo de erro devolvido pela API do SIIGO
type ErrorResponse struct {
	Status int `json:"status,omitempty"`
	Errors []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// Message concatena as mensagens de erro devolvidas pela API
func (e *ErrorResponse) Message() string {
	if len(e.Errors) == 0 {
		return "erro desconhecido na API do SIIGO"
	}

	msg := e.Errors[0].Message
	for _, item := range e.Errors[1:] {
		msg = fmt.Sprintf("%s; %s", msg, item.Message)
	}
	return msg
}
