package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories coleção de repositórios do SGE
type Repositories struct {
	Usuario     *UsuarioRepository
	Analista    *AnalistaRepository
	Gerente     *GerenteRepository
	Pedido      *PedidoRepository
	Requisito   *RequisitoRepository
	TipoRecurso *TipoRecursoRepository
	Profissao   *ProfissaoRepository
	Armazem     *ArmazemRepository
	Item        *ItemRepository
	Evento      *EventoRepository
	Alocacao    *AlocacaoRepository
}

// NewRepositories cria a coleção de repositórios
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Usuario:     NewUsuarioRepository(db),
		Analista:    NewAnalistaRepository(db),
		Gerente:     NewGerenteRepository(db),
		Pedido:      NewPedidoRepository(db),
		Requisito:   NewRequisitoRepository(db),
		TipoRecurso: NewTipoRecursoRepository(db),
		Profissao:   NewProfissaoRepository(db),
		Armazem:     NewArmazemRepository(db),
		Item:        NewItemRepository(db),
		Evento:      NewEventoRepository(db),
		Alocacao:    NewAlocacaoRepository(db),
	}
}
