package handler

import (
	"github.com/arenalog/sge/internal/sge/service"
	"github.com/gin-gonic/gin"
)

// EventoHandler efetivação de eventos e alocações
type EventoHandler struct {
	svc *service.EventoService
}

func NewEventoHandler(svc *service.EventoService) *EventoHandler {
	return &EventoHandler{svc: svc}
}

// CreateEvento efetiva um evento a partir de um pedido
// POST /eventos
func (h *EventoHandler) CreateEvento(c *gin.Context) {
	var req service.CreateEventoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dados inválidos: "+err.Error())
		return
	}

	if err := h.svc.CreateEvento(c.Request.Context(), &req); err != nil {
		RespondError(c, err)
		return
	}

	Created(c, "Evento criado com sucesso!", nil)
}

// CreateAlocacao aloca um item a um evento
// POST /alocacoes
func (h *EventoHandler) CreateAlocacao(c *gin.Context) {
	var req service.CreateAlocacaoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dados inválidos: "+err.Error())
		return
	}

	if err := h.svc.CreateAlocacao(c.Request.Context(), &req); err != nil {
		RespondError(c, err)
		return
	}

	Created(c, "Item alocado com sucesso!", nil)
}
