// Package response contém os tipos e funções auxiliares para montar as
// respostas JSON unificadas dos handlers HTTP: sucesso, erro e mensagens
// de validação sempre no mesmo formato.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Response descreve a estrutura padrão da resposta JSON do servidor.
// Status é "OK" ou "Error"; Error carrega o texto do erro quando houver;
// Data carrega os dados da resposta em caso de sucesso.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ErrorResponse é a estrutura de erro usada nas anotações @Failure da
// documentação Swagger.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"corpo da requisição inválido"`
}

const (
	// StatusOK é o valor de status da resposta de sucesso.
	StatusOK = "OK"
	// StatusError é o valor de status da resposta com erro.
	StatusError = "Error"
)

// StatusOKWithData devolve um Response de sucesso com os dados informados.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error devolve um ErrorResponse com a mensagem informada.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationError monta um Response de erro a partir das violações de
// validação, cada uma convertida em texto legível e unida por vírgula.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("o campo %s é obrigatório", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("o campo %s deve ser um email válido", err.Field()))
		case "numeric":
			errsMsgs = append(errsMsgs, fmt.Sprintf("o campo %s aceita apenas números", err.Field()))
		case "uuid":
			errsMsgs = append(errsMsgs, fmt.Sprintf("o campo %s deve ser um uuid", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("o campo %s é curto demais", err.Field()))
		case "gt":
			errsMsgs = append(errsMsgs, fmt.Sprintf("o campo %s deve ser maior que zero", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("o campo %s é inválido", err.Field()))
		}
	}
	return Response{
		Status: StatusError,
		Error:  strings.Join(errsMsgs, ", "),
	}
}
