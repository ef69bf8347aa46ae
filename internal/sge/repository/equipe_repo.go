package repository

import (
	"context"

	"github.com/arenalog/sge/internal/sge/entity"
	"gorm.io/gorm"
)

// AnalistaRepository equipe de análise de pedidos
type AnalistaRepository struct {
	db *gorm.DB
}

func NewAnalistaRepository(db *gorm.DB) *AnalistaRepository {
	return &AnalistaRepository{db: db}
}

// Exists verifica se o analista está cadastrado
func (r *AnalistaRepository) Exists(ctx context.Context, cpf string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Analista{}).Where("cpf = ?", cpf).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAll lista todos os analistas
func (r *AnalistaRepository) FindAll(ctx context.Context) ([]entity.Analista, error) {
	var analistas []entity.Analista
	if err := r.db.WithContext(ctx).Order("cpf").Find(&analistas).Error; err != nil {
		return nil, err
	}
	return analistas, nil
}

// LeastLoaded devolve o CPF do analista com menos pedidos em análise,
// desempatando pelo menor CPF. ErrNotFound quando não há analistas.
func (r *AnalistaRepository) LeastLoaded(ctx context.Context) (string, error) {
	var cpf string
	err := r.db.WithContext(ctx).
		Table("analistas a").
		Select("a.cpf").
		Joins("LEFT JOIN pedidos p ON p.analista = a.cpf AND p.status = ?", entity.PedidoStatusEmAnalise).
		Group("a.cpf").
		Order("COUNT(p.id) ASC, a.cpf ASC").
		Limit(1).
		Scan(&cpf).Error
	if err != nil {
		return "", err
	}
	if cpf == "" {
		return "", ErrNotFound
	}
	return cpf, nil
}

// GerenteRepository equipe de aprovação de pedidos
type GerenteRepository struct {
	db *gorm.DB
}

func NewGerenteRepository(db *gorm.DB) *GerenteRepository {
	return &GerenteRepository{db: db}
}

// Exists verifica se o gerente está cadastrado
func (r *GerenteRepository) Exists(ctx context.Context, cpf string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Gerente{}).Where("cpf = ?", cpf).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAll lista todos os gerentes
func (r *GerenteRepository) FindAll(ctx context.Context) ([]entity.Gerente, error) {
	var gerentes []entity.Gerente
	if err := r.db.WithContext(ctx).Order("cpf").Find(&gerentes).Error; err != nil {
		return nil, err
	}
	return gerentes, nil
}

// LeastLoaded devolve o CPF do gerente com menos pedidos em análise,
// desempatando pelo menor CPF. ErrNotFound quando não há gerentes.
func (r *GerenteRepository) LeastLoaded(ctx context.Context) (string, error) {
	var cpf string
	err := r.db.WithContext(ctx).
		Table("gerentes g").
		Select("g.cpf").
		Joins("LEFT JOIN pedidos p ON p.gerente = g.cpf AND p.status = ?", entity.PedidoStatusEmAnalise).
		Group("g.cpf").
		Order("COUNT(p.id) ASC, g.cpf ASC").
		Limit(1).
		Scan(&cpf).Error
	if err != nil {
		return "", err
	}
	if cpf == "" {
		return "", ErrNotFound
	}
	return cpf, nil
}
