package handler

import (
	"github.com/arenalog/sge/internal/sge/service"
	"github.com/gin-gonic/gin"
)

// PedidoHandler fluxo de pedidos e seus requisitos
type PedidoHandler struct {
	svc *service.PedidoService
}

func NewPedidoHandler(svc *service.PedidoService) *PedidoHandler {
	return &PedidoHandler{svc: svc}
}

// CreatePedido cria um pedido de evento
// POST /pedidos
func (h *PedidoHandler) CreatePedido(c *gin.Context) {
	var req service.CreatePedidoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dados inválidos: "+err.Error())
		return
	}

	idPedido, err := h.svc.CreatePedido(c.Request.Context(), &req)
	if err != nil {
		RespondError(c, err)
		return
	}

	Created(c, "Pedido criado com sucesso!", gin.H{"idpedido": idPedido})
}

// ListPedidos lista pedidos com filtros opcionais
// GET /pedidos?status=&usuario=
func (h *PedidoHandler) ListPedidos(c *gin.Context) {
	rows, err := h.svc.ListPedidos(c.Request.Context(), c.Query("status"), c.Query("usuario"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, "success", rows)
}

// UpdateStatus atualiza o status e os responsáveis de um pedido
// PATCH /pedidos/:id/status
func (h *PedidoHandler) UpdateStatus(c *gin.Context) {
	var req service.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dados inválidos: "+err.Error())
		return
	}

	if err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), &req); err != nil {
		RespondError(c, err)
		return
	}

	Success(c, "Status atualizado com sucesso!", nil)
}

// AddRequisitos adiciona o lote de requisitos de um pedido
// POST /pedidos/:id/requisitos
func (h *PedidoHandler) AddRequisitos(c *gin.Context) {
	var req service.AddRequisitosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dados inválidos: "+err.Error())
		return
	}

	if err := h.svc.AddRequisitos(c.Request.Context(), c.Param("id"), &req); err != nil {
		RespondError(c, err)
		return
	}

	Created(c, "Requisitos adicionados com sucesso!", nil)
}

// ListRequisitos lista os requisitos de um pedido
// GET /pedidos/:id/requisitos
func (h *PedidoHandler) ListRequisitos(c *gin.Context) {
	rows, err := h.svc.ListRequisitos(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, "success", rows)
}

// DeleteRequisitoFisico remove uma linha física de requisito
// DELETE /pedidos/:id/requisitos/fisico/:resId
func (h *PedidoHandler) DeleteRequisitoFisico(c *gin.Context) {
	if err := h.svc.DeleteRequisitoFisico(c.Request.Context(), c.Param("id"), c.Param("resId")); err != nil {
		RespondError(c, err)
		return
	}
	Success(c, "Requisito removido com sucesso!", nil)
}

// DeleteRequisitoHumano remove uma linha humana de requisito
// DELETE /pedidos/:id/requisitos/humano/:resId
func (h *PedidoHandler) DeleteRequisitoHumano(c *gin.Context) {
	if err := h.svc.DeleteRequisitoHumano(c.Request.Context(), c.Param("id"), c.Param("resId")); err != nil {
		RespondError(c, err)
		return
	}
	Success(c, "Requisito removido com sucesso!", nil)
}
