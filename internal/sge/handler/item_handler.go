package handler

import (
	"fmt"
	"net/url"

	"github.com/arenalog/sge/internal/sge/repository"
	"github.com/arenalog/sge/internal/sge/service"
	"github.com/gin-gonic/gin"
)

// ItemHandler inventário de itens de patrimônio
type ItemHandler struct {
	svc *service.ItemService
}

func NewItemHandler(svc *service.ItemService) *ItemHandler {
	return &ItemHandler{svc: svc}
}

func itemFilterFromQuery(c *gin.Context) repository.ItemFilter {
	return repository.ItemFilter{
		TipoRecurso: c.Query("tiporecursofisico"),
		Status:      c.Query("statusitem"),
		Qualidade:   c.Query("qualidade"),
		Armazem:     c.Query("armazem"),
		Search:      c.Query("search"),
	}
}

// ListItems lista itens com filtros dinâmicos
// GET /items?tiporecursofisico=&statusitem=&qualidade=&armazem=&search=
func (h *ItemHandler) ListItems(c *gin.Context) {
	rows, err := h.svc.ListItems(c.Request.Context(), itemFilterFromQuery(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, "success", rows)
}

// CreateItem cadastra um item
// POST /items
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req service.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dados inválidos: "+err.Error())
		return
	}

	nroPatrimonio, err := h.svc.CreateItem(c.Request.Context(), &req)
	if err != nil {
		RespondError(c, err)
		return
	}

	Created(c, "Item cadastrado com sucesso!", gin.H{"nropatrimonio": nroPatrimonio})
}

// UpdateItem atualiza os campos informados de um item
// PUT /items/:nropatrimonio
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	var req service.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dados inválidos: "+err.Error())
		return
	}

	if err := h.svc.UpdateItem(c.Request.Context(), c.Param("nropatrimonio"), &req); err != nil {
		RespondError(c, err)
		return
	}

	Success(c, "Item atualizado com sucesso!", nil)
}

// DeleteItem remove um item
// DELETE /items/:nropatrimonio
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	if err := h.svc.DeleteItem(c.Request.Context(), c.Param("nropatrimonio")); err != nil {
		RespondError(c, err)
		return
	}
	Success(c, "Item removido com sucesso!", nil)
}

// ExportItems exporta o inventário filtrado em XLSX
// GET /items/export
func (h *ItemHandler) ExportItems(c *gin.Context) {
	f, filename, err := h.svc.ExportItems(c.Request.Context(), itemFilterFromQuery(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(filename)))
	c.Header("Cache-Control", "no-cache")

	if err := f.Write(c.Writer); err != nil {
		RespondError(c, err)
	}
}
