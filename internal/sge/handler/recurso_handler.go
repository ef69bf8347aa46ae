package handler

import (
	"github.com/arenalog/sge/internal/sge/service"
	"github.com/gin-gonic/gin"
)

// RecursoHandler registros de apoio: tipos de recurso, profissões e armazéns
type RecursoHandler struct {
	svc *service.RecursoService
}

func NewRecursoHandler(svc *service.RecursoService) *RecursoHandler {
	return &RecursoHandler{svc: svc}
}

// ListTiposRecurso lista os tipos de recurso
// GET /tipos-recurso
func (h *RecursoHandler) ListTiposRecurso(c *gin.Context) {
	rows, err := h.svc.ListTiposRecurso(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, "success", rows)
}

// CreateTipoRecurso cadastra um tipo de recurso
// POST /tipos-recurso
func (h *RecursoHandler) CreateTipoRecurso(c *gin.Context) {
	var req service.CreateTipoRecursoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dados inválidos: "+err.Error())
		return
	}

	if err := h.svc.CreateTipoRecurso(c.Request.Context(), &req); err != nil {
		RespondError(c, err)
		return
	}

	Created(c, "Tipo de recurso criado com sucesso!", nil)
}

// DeleteTipoRecurso remove um tipo de recurso
// DELETE /tipos-recurso/:id
func (h *RecursoHandler) DeleteTipoRecurso(c *gin.Context) {
	if err := h.svc.DeleteTipoRecurso(c.Request.Context(), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	Success(c, "Tipo de recurso removido com sucesso!", nil)
}

// ListProfissoes lista as profissões
// GET /profissoes
func (h *RecursoHandler) ListProfissoes(c *gin.Context) {
	rows, err := h.svc.ListProfissoes(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, "success", rows)
}

// ListArmazens lista os armazéns
// GET /armazens
func (h *RecursoHandler) ListArmazens(c *gin.Context) {
	rows, err := h.svc.ListArmazens(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, "success", rows)
}
