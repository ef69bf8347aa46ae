package handler

import (
	"github.com/arenalog/sge/internal/apperr"
	"github.com/arenalog/sge/internal/sge/service"
	"github.com/gin-gonic/gin"
)

// Handlers coleção de handlers do SGE
type Handlers struct {
	Usuario *UsuarioHandler
	Pedido  *PedidoHandler
	Item    *ItemHandler
	Recurso *RecursoHandler
	Evento  *EventoHandler
}

// NewHandlers cria a coleção de handlers
func NewHandlers(svcs *service.Services) *Handlers {
	return &Handlers{
		Usuario: NewUsuarioHandler(svcs.Usuario),
		Pedido:  NewPedidoHandler(svcs.Pedido),
		Item:    NewItemHandler(svcs.Item),
		Recurso: NewRecursoHandler(svcs.Recurso),
		Evento:  NewEventoHandler(svcs.Evento),
	}
}

// === Envelope de resposta ===

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

// RespondError converte a taxonomia de erros em status HTTP num único ponto
func RespondError(c *gin.Context, err error) {
	message := apperr.MessageOf(err)
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		Error(c, 40000, message)
	case apperr.KindNotFound:
		Error(c, 40400, message)
	case apperr.KindConflict:
		Error(c, 40900, message)
	default:
		Error(c, 50000, message)
	}
}
