package service

import (
	"github.com/arenalog/sge/internal/config"
	"github.com/arenalog/sge/internal/sge/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services coleção de serviços do SGE
type Services struct {
	Usuario *UsuarioService
	Pedido  *PedidoService
	Item    *ItemService
	Recurso *RecursoService
	Evento  *EventoService
}

// NewServices cria a coleção de serviços sobre os repositórios
func NewServices(repos *repository.Repositories, db *gorm.DB, cfg *config.Config, logger *zap.Logger) *Services {
	policy := cfg.Pedido.AssignmentPolicy
	if policy == "" {
		policy = AssignmentPolicyAuto
	}

	return &Services{
		Usuario: NewUsuarioService(repos.Usuario, repos.Analista, repos.Gerente),
		Pedido: NewPedidoService(repos.Pedido, repos.Usuario, repos.Analista, repos.Gerente,
			repos.Requisito, db, logger, policy),
		Item:    NewItemService(repos.Item, repos.TipoRecurso, repos.Armazem),
		Recurso: NewRecursoService(repos.TipoRecurso, repos.Profissao, repos.Armazem),
		Evento:  NewEventoService(repos.Evento, repos.Alocacao, repos.Pedido, repos.Item, logger),
	}
}
