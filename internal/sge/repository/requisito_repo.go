package repository

import (
	"context"

	"github.com/arenalog/sge/internal/sge/entity"
	"gorm.io/gorm"
)

// RequisitoRepository documento de requisitos de pedido e suas linhas
type RequisitoRepository struct {
	db *gorm.DB
}

func NewRequisitoRepository(db *gorm.DB) *RequisitoRepository {
	return &RequisitoRepository{db: db}
}

// DocumentoExists verifica se o pedido já possui documento de requisitos
func (r *RequisitoRepository) DocumentoExists(ctx context.Context, pedidoID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.DocumentoRequisito{}).Where("pedido_id = ?", pedidoID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindFisicos lista as linhas físicas do documento com o tipo de recurso carregado
func (r *RequisitoRepository) FindFisicos(ctx context.Context, documentoID string) ([]entity.RequisitoFisico, error) {
	var linhas []entity.RequisitoFisico
	err := r.db.WithContext(ctx).
		Preload("TipoRecurso").
		Where("documento_id = ?", documentoID).
		Order("tipo_recurso_id").
		Find(&linhas).Error
	if err != nil {
		return nil, err
	}
	return linhas, nil
}

// FindHumanos lista as linhas humanas do documento
func (r *RequisitoRepository) FindHumanos(ctx context.Context, documentoID string) ([]entity.RequisitoHumano, error) {
	var linhas []entity.RequisitoHumano
	err := r.db.WithContext(ctx).
		Where("documento_id = ?", documentoID).
		Order("profissao").
		Find(&linhas).Error
	if err != nil {
		return nil, err
	}
	return linhas, nil
}

// DeleteFisico remove uma linha física; devolve as linhas afetadas
func (r *RequisitoRepository) DeleteFisico(ctx context.Context, documentoID, tipoRecursoID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("documento_id = ? AND tipo_recurso_id = ?", documentoID, tipoRecursoID).
		Delete(&entity.RequisitoFisico{})
	return result.RowsAffected, result.Error
}

// DeleteHumano remove uma linha humana; devolve as linhas afetadas
func (r *RequisitoRepository) DeleteHumano(ctx context.Context, documentoID, profissao string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("documento_id = ? AND profissao = ?", documentoID, profissao).
		Delete(&entity.RequisitoHumano{})
	return result.RowsAffected, result.Error
}
