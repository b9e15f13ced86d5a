package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/crm-manager/internal/httperr"
)

var businessMessages = map[string]string{
	"client_not_found":            "Cliente não encontrado.",
	"appointment_not_found":       "Agendamento não encontrado.",
	"payment_not_found":           "Pagamento não encontrado.",
	"service_not_found":           "Serviço não encontrado.",
	"missing_name":                "Nome obrigatório.",
	"missing_phone":               "Telefone obrigatório.",
	"invalid_phone":               "Telefone inválido.",
	"invalid_email":               "E-mail inválido.",
	"invalid_status":              "Status inválido.",
	"invalid_origin":              "Origem inválida.",
	"missing_service_name":        "Serviço obrigatório.",
	"invalid_date":                "Data inválida.",
	"invalid_time":                "Hora inválida.",
	"invalid_due_date":            "Vencimento inválido.",
	"invalid_value":               "Valor inválido.",
	"invalid_price":               "Preço inválido.",
	"invalid_duration":            "Duração inválida.",
	"invalid_payment_method":      "Forma de pagamento inválida.",
	"invalid_state":               "Operação não permitida no status atual.",
	"already_paid":                "Pagamento já quitado.",
	"appointment_client_mismatch": "O agendamento pertence a outro cliente.",
	"invalid_interaction_type":    "Tipo de interação inválido.",
	"missing_description":         "Descrição obrigatória.",
	"image_too_large":             "Imagem muito grande.",
	"invalid_image":               "Imagem inválida.",
	"invalid_export_entity":       "Tipo de exportação inválido.",
	"checkout_unavailable":        "Checkout indisponível.",
	"archive_unavailable":         "Armazenamento indisponível.",
}

func businessStatus(code string) int {
	switch {
	case strings.HasSuffix(code, "_not_found"):
		return http.StatusNotFound
	case code == "invalid_state", code == "already_paid":
		return http.StatusConflict
	case code == "checkout_unavailable", code == "archive_unavailable":
		return http.StatusServiceUnavailable
	case code == "image_too_large":
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusBadRequest
	}
}

// respondError writes a usecase error. Business errors keep their code;
// anything else is logged and reported with the fallback code.
func respondError(c *gin.Context, err error, fallbackCode, fallbackMessage string) {
	if code, ok := httperr.BusinessCode(err); ok {
		msg, known := businessMessages[code]
		if !known {
			msg = "Operação inválida."
		}
		httperr.Write(c, businessStatus(code), code, msg)
		return
	}

	switch {
	case httperr.IsForeignKeyViolation(err):
		httperr.Conflict(c, "reference_violation", "Registro relacionado inexistente ou em uso.")
	case httperr.IsUniqueViolation(err):
		httperr.Conflict(c, "already_exists", "Registro já existe.")
	default:
		log.Printf("%s %s: %s: %v", c.Request.Method, c.Request.URL.Path, fallbackCode, err)
		httperr.Internal(c, fallbackCode, fallbackMessage)
	}
}
