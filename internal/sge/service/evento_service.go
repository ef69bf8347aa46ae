package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arenalog/sge/internal/apperr"
	"github.com/arenalog/sge/internal/sge/entity"
	"github.com/arenalog/sge/internal/sge/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateEventoRequest payload de criação de evento a partir de um pedido
type CreateEventoRequest struct {
	Nome       string  `json:"nome" binding:"required"`
	DataInicio string  `json:"data_inicio" binding:"required"`
	DataFim    *string `json:"data_fim"`
	Local      *string `json:"local"`
	Status     *string `json:"status"`
	IDPedido   string  `json:"id_pedido" binding:"required"`
}

// CreateAlocacaoRequest payload de alocação de item a evento
type CreateAlocacaoRequest struct {
	EventoNome string  `json:"evento_nome" binding:"required"`
	EventoData string  `json:"evento_data" binding:"required"`
	ItemID     string  `json:"item_id" binding:"required"`
	DiaEntrada *string `json:"dia_entrada"`
	DiaSaida   *string `json:"dia_saida"`
}

// EventoService efetivação de eventos e alocação de patrimônio
type EventoService struct {
	eventoRepo   *repository.EventoRepository
	alocacaoRepo *repository.AlocacaoRepository
	pedidoRepo   *repository.PedidoRepository
	itemRepo     *repository.ItemRepository
	logger       *zap.Logger
}

func NewEventoService(eventoRepo *repository.EventoRepository, alocacaoRepo *repository.AlocacaoRepository,
	pedidoRepo *repository.PedidoRepository, itemRepo *repository.ItemRepository, logger *zap.Logger) *EventoService {
	return &EventoService{
		eventoRepo:   eventoRepo,
		alocacaoRepo: alocacaoRepo,
		pedidoRepo:   pedidoRepo,
		itemRepo:     itemRepo,
		logger:       logger,
	}
}

// CreateEvento valida o pedido de origem e efetiva o evento.
// A chave (nome, data de início) duplicada é rejeitada como conflito.
func (s *EventoService) CreateEvento(ctx context.Context, req *CreateEventoRequest) error {
	dataInicio, err := ParseData(req.DataInicio)
	if err != nil {
		return err
	}

	var dataFim *time.Time
	if req.DataFim != nil && *req.DataFim != "" {
		data, err := ParseData(*req.DataFim)
		if err != nil {
			return err
		}
		dataFim = &data
	}

	exists, err := s.pedidoRepo.Exists(ctx, req.IDPedido)
	if err != nil {
		return fmt.Errorf("verificar pedido: %w", err)
	}
	if !exists {
		return apperr.NotFound("Pedido não encontrado.")
	}

	status := entity.EventoStatusConfirmado
	if req.Status != nil && *req.Status != "" {
		status = *req.Status
	}

	evento := &entity.Evento{
		Nome:       req.Nome,
		DataInicio: dataInicio,
		DataFim:    dataFim,
		Status:     status,
		Local:      req.Local,
		PedidoID:   req.IDPedido,
	}

	if err := s.eventoRepo.Create(ctx, evento); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("Erro de integridade (Evento já existe?)")
		}
		return fmt.Errorf("criar evento: %w", err)
	}

	s.logger.Info("Evento criado",
		zap.String("nome", evento.Nome),
		zap.String("data_inicio", evento.DataInicio.Format(dateLayout)),
		zap.String("id_pedido", evento.PedidoID))

	return nil
}

// CreateAlocacao valida evento e item e registra a alocação.
// Item já alocado ao mesmo evento é rejeitado como conflito.
func (s *EventoService) CreateAlocacao(ctx context.Context, req *CreateAlocacaoRequest) error {
	eventoData, err := ParseData(req.EventoData)
	if err != nil {
		return err
	}

	var entrada, saida *time.Time
	if req.DiaEntrada != nil && *req.DiaEntrada != "" {
		data, err := ParseData(*req.DiaEntrada)
		if err != nil {
			return err
		}
		entrada = &data
	}
	if req.DiaSaida != nil && *req.DiaSaida != "" {
		data, err := ParseData(*req.DiaSaida)
		if err != nil {
			return err
		}
		saida = &data
	}

	exists, err := s.eventoRepo.Exists(ctx, req.EventoNome, eventoData)
	if err != nil {
		return fmt.Errorf("verificar evento: %w", err)
	}
	if !exists {
		return apperr.NotFound("Evento não encontrado.")
	}

	exists, err = s.itemRepo.Exists(ctx, req.ItemID)
	if err != nil {
		return fmt.Errorf("verificar item: %w", err)
	}
	if !exists {
		return apperr.NotFound("Item não encontrado.")
	}

	alocacao := &entity.Alocacao{
		EventoNome:       req.EventoNome,
		EventoDataInicio: eventoData,
		ItemID:           req.ItemID,
		DiaEntrada:       entrada,
		DiaSaida:         saida,
	}

	if err := s.alocacaoRepo.Create(ctx, alocacao); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("Erro de alocação (Item já alocado?)")
		}
		return fmt.Errorf("criar alocação: %w", err)
	}

	s.logger.Info("Item alocado",
		zap.String("evento", req.EventoNome),
		zap.String("item", req.ItemID))

	return nil
}
