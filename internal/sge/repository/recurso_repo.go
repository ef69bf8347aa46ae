package repository

import (
	"context"

	"github.com/arenalog/sge/internal/sge/entity"
	"gorm.io/gorm"
)

// TipoRecursoRepository tipos de recurso físico
type TipoRecursoRepository struct {
	db *gorm.DB
}

func NewTipoRecursoRepository(db *gorm.DB) *TipoRecursoRepository {
	return &TipoRecursoRepository{db: db}
}

// FindAll lista os tipos de recurso
func (r *TipoRecursoRepository) FindAll(ctx context.Context) ([]entity.TipoRecurso, error) {
	var tipos []entity.TipoRecurso
	if err := r.db.WithContext(ctx).Order("id").Find(&tipos).Error; err != nil {
		return nil, err
	}
	return tipos, nil
}

// Exists verifica se o tipo de recurso está cadastrado
func (r *TipoRecursoRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.TipoRecurso{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create insere um tipo de recurso
func (r *TipoRecursoRepository) Create(ctx context.Context, tipo *entity.TipoRecurso) error {
	return r.db.WithContext(ctx).Create(tipo).Error
}

// Delete remove um tipo de recurso; uso existente surge como violação de FK
func (r *TipoRecursoRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.TipoRecurso{}).Error
}

// ProfissaoRepository profissões
type ProfissaoRepository struct {
	db *gorm.DB
}

func NewProfissaoRepository(db *gorm.DB) *ProfissaoRepository {
	return &ProfissaoRepository{db: db}
}

// FindAll lista as profissões
func (r *ProfissaoRepository) FindAll(ctx context.Context) ([]entity.Profissao, error) {
	var profissoes []entity.Profissao
	if err := r.db.WithContext(ctx).Order("nome").Find(&profissoes).Error; err != nil {
		return nil, err
	}
	return profissoes, nil
}

// Exists verifica se a profissão está cadastrada
func (r *ProfissaoRepository) Exists(ctx context.Context, nome string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Profissao{}).Where("nome = ?", nome).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ArmazemRepository armazéns
type ArmazemRepository struct {
	db *gorm.DB
}

func NewArmazemRepository(db *gorm.DB) *ArmazemRepository {
	return &ArmazemRepository{db: db}
}

// FindAll lista os armazéns
func (r *ArmazemRepository) FindAll(ctx context.Context) ([]entity.Armazem, error) {
	var armazens []entity.Armazem
	if err := r.db.WithContext(ctx).Order("id").Find(&armazens).Error; err != nil {
		return nil, err
	}
	return armazens, nil
}

// Exists verifica se o armazém está cadastrado
func (r *ArmazemRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Armazem{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
