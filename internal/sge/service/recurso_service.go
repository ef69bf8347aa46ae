package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/arenalog/sge/internal/apperr"
	"github.com/arenalog/sge/internal/sge/entity"
	"github.com/arenalog/sge/internal/sge/repository"
	"gorm.io/gorm"
)

// CreateTipoRecursoRequest payload de cadastro de tipo de recurso
type CreateTipoRecursoRequest struct {
	IDTipoRecurso string `json:"idtiporecurso" binding:"required"`
	Nome          string `json:"nome" binding:"required"`
}

// ProfissaoRow linha da listagem de profissões
type ProfissaoRow struct {
	Nome string `json:"nome"`
}

// RecursoService registros de apoio: tipos de recurso, profissões e armazéns
type RecursoService struct {
	tipoRepo      *repository.TipoRecursoRepository
	profissaoRepo *repository.ProfissaoRepository
	armazemRepo   *repository.ArmazemRepository
}

func NewRecursoService(tipoRepo *repository.TipoRecursoRepository, profissaoRepo *repository.ProfissaoRepository, armazemRepo *repository.ArmazemRepository) *RecursoService {
	return &RecursoService{
		tipoRepo:      tipoRepo,
		profissaoRepo: profissaoRepo,
		armazemRepo:   armazemRepo,
	}
}

// ListTiposRecurso lista os tipos de recurso cadastrados
func (s *RecursoService) ListTiposRecurso(ctx context.Context) ([]entity.TipoRecurso, error) {
	return s.tipoRepo.FindAll(ctx)
}

// CreateTipoRecurso cadastra um tipo de recurso, rejeitando id duplicado
func (s *RecursoService) CreateTipoRecurso(ctx context.Context, req *CreateTipoRecursoRequest) error {
	exists, err := s.tipoRepo.Exists(ctx, req.IDTipoRecurso)
	if err != nil {
		return fmt.Errorf("verificar tipo de recurso: %w", err)
	}
	if exists {
		return apperr.Conflict("Tipo de recurso '%s' já existe.", req.IDTipoRecurso)
	}

	tipo := &entity.TipoRecurso{ID: req.IDTipoRecurso, Nome: req.Nome}
	if err := s.tipoRepo.Create(ctx, tipo); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("Tipo de recurso '%s' já existe.", req.IDTipoRecurso)
		}
		return fmt.Errorf("cadastrar tipo de recurso: %w", err)
	}
	return nil
}

// DeleteTipoRecurso remove um tipo de recurso; uso por itens ou requisitos impede a exclusão
func (s *RecursoService) DeleteTipoRecurso(ctx context.Context, id string) error {
	exists, err := s.tipoRepo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("verificar tipo de recurso: %w", err)
	}
	if !exists {
		return apperr.NotFound("Tipo de recurso não encontrado.")
	}

	if err := s.tipoRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return apperr.Conflict("Não é possível excluir este tipo pois está em uso.")
		}
		return fmt.Errorf("excluir tipo de recurso: %w", err)
	}
	return nil
}

// ListProfissoes lista as profissões cadastradas
func (s *RecursoService) ListProfissoes(ctx context.Context) ([]ProfissaoRow, error) {
	profissoes, err := s.profissaoRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]ProfissaoRow, 0, len(profissoes))
	for _, p := range profissoes {
		rows = append(rows, ProfissaoRow{Nome: p.Nome})
	}
	return rows, nil
}

// ListArmazens lista os armazéns cadastrados
func (s *RecursoService) ListArmazens(ctx context.Context) ([]entity.Armazem, error) {
	return s.armazemRepo.FindAll(ctx)
}
