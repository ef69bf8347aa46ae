package handler

import (
	"github.com/arenalog/sge/internal/sge/service"
	"github.com/gin-gonic/gin"
)

// UsuarioHandler cadastro de usuários e listagens de equipe
type UsuarioHandler struct {
	svc *service.UsuarioService
}

func NewUsuarioHandler(svc *service.UsuarioService) *UsuarioHandler {
	return &UsuarioHandler{svc: svc}
}

// CreateUsuario cadastra um usuário
// POST /usuarios
func (h *UsuarioHandler) CreateUsuario(c *gin.Context) {
	var req service.CreateUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Dados inválidos: "+err.Error())
		return
	}

	ndoc, err := h.svc.CreateUsuario(c.Request.Context(), &req)
	if err != nil {
		RespondError(c, err)
		return
	}

	Created(c, "Usuário cadastrado com sucesso!", gin.H{"ndoc": ndoc})
}

// ListUsuarios lista os usuários
// GET /users
func (h *UsuarioHandler) ListUsuarios(c *gin.Context) {
	rows, err := h.svc.ListUsuarios(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, "success", rows)
}

// ListAnalistas lista os analistas
// GET /analysts
func (h *UsuarioHandler) ListAnalistas(c *gin.Context) {
	rows, err := h.svc.ListAnalistas(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, "success", rows)
}

// ListGerentes lista os gerentes
// GET /managers
func (h *UsuarioHandler) ListGerentes(c *gin.Context) {
	rows, err := h.svc.ListGerentes(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, "success", rows)
}
