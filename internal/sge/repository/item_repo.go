package repository

import (
	"context"
	"errors"

	"github.com/arenalog/sge/internal/sge/entity"
	"gorm.io/gorm"
)

// ItemFilter filtros dinâmicos da listagem de itens.
// Campos vazios ou com o valor "all" não restringem a consulta.
type ItemFilter struct {
	TipoRecurso string
	Status      string
	Qualidade   string
	Armazem     string
	Search      string
}

// ItemRepository itens de patrimônio
type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// FindAll lista itens aplicando os filtros dinâmicos
func (r *ItemRepository) FindAll(ctx context.Context, filter ItemFilter) ([]entity.Item, error) {
	query := r.db.WithContext(ctx).
		Preload("TipoRecurso").
		Preload("Armazem").
		Model(&entity.Item{})

	if filter.TipoRecurso != "" && filter.TipoRecurso != "all" {
		query = query.Where("tipo_recurso_id = ?", filter.TipoRecurso)
	}
	if filter.Status != "" && filter.Status != "all" {
		query = query.Where("status_item = ?", filter.Status)
	}
	if filter.Qualidade != "" && filter.Qualidade != "all" {
		query = query.Where("qualidade = ?", filter.Qualidade)
	}
	if filter.Armazem != "" && filter.Armazem != "all" {
		query = query.Where("armazem_id = ?", filter.Armazem)
	}
	if filter.Search != "" {
		query = query.Where("nro_patrimonio ILIKE ?", "%"+filter.Search+"%")
	}

	items := make([]entity.Item, 0)
	if err := query.Order("nro_patrimonio").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByNroPatrimonio busca um item pelo número de patrimônio
func (r *ItemRepository) FindByNroPatrimonio(ctx context.Context, nroPatrimonio string) (*entity.Item, error) {
	var item entity.Item
	if err := r.db.WithContext(ctx).Where("nro_patrimonio = ?", nroPatrimonio).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Exists verifica se o número de patrimônio já está cadastrado
func (r *ItemRepository) Exists(ctx context.Context, nroPatrimonio string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Item{}).Where("nro_patrimonio = ?", nroPatrimonio).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create insere um item
func (r *ItemRepository) Create(ctx context.Context, item *entity.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Update aplica os campos informados ao item
func (r *ItemRepository) Update(ctx context.Context, nroPatrimonio string, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&entity.Item{}).
		Where("nro_patrimonio = ?", nroPatrimonio).
		Updates(updates).Error
}

// Delete remove um item; vínculos existentes surgem como violação de FK
func (r *ItemRepository) Delete(ctx context.Context, nroPatrimonio string) error {
	return r.db.WithContext(ctx).Where("nro_patrimonio = ?", nroPatrimonio).Delete(&entity.Item{}).Error
}
