package repository

import (
	"context"
	"time"

	"github.com/arenalog/sge/internal/sge/entity"
	"gorm.io/gorm"
)

// EventoRepository eventos efetivados
type EventoRepository struct {
	db *gorm.DB
}

func NewEventoRepository(db *gorm.DB) *EventoRepository {
	return &EventoRepository{db: db}
}

// Create insere um evento
func (r *EventoRepository) Create(ctx context.Context, evento *entity.Evento) error {
	return r.db.WithContext(ctx).Create(evento).Error
}

// Exists verifica se o evento existe pela chave composta (nome, data de início)
func (r *EventoRepository) Exists(ctx context.Context, nome string, dataInicio time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Evento{}).
		Where("nome = ? AND data_inicio = ?", nome, dataInicio).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AlocacaoRepository alocações de itens a eventos
type AlocacaoRepository struct {
	db *gorm.DB
}

func NewAlocacaoRepository(db *gorm.DB) *AlocacaoRepository {
	return &AlocacaoRepository{db: db}
}

// Create insere uma alocação
func (r *AlocacaoRepository) Create(ctx context.Context, alocacao *entity.Alocacao) error {
	return r.db.WithContext(ctx).Create(alocacao).Error
}
