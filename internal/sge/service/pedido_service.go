package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/arenalog/sge/internal/apperr"
	"github.com/arenalog/sge/internal/sge/entity"
	"github.com/arenalog/sge/internal/sge/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Política de atribuição de responsáveis na criação de pedidos
const (
	AssignmentPolicyAuto     = "auto"
	AssignmentPolicyExplicit = "explicit"
)

// Tentativas de geração de id quando criações concorrentes colidem
const maxIDAttempts = 3

// CreatePedidoRequest payload de criação de pedido
type CreatePedidoRequest struct {
	NomeEventoProposto *string `json:"nomeeventoproposto"`
	LocalProposto      *string `json:"localproposto"`
	DataInicioProposto *string `json:"datainicioproposto"`
	DataFimProposto    *string `json:"datafimproposto"`
	Descricao          *string `json:"descricao"`
	Usuario            string  `json:"usuario" binding:"required"`

	// Usados apenas com a política de atribuição "explicit"
	Analista *string `json:"analista"`
	Gerente  *string `json:"gerente"`
}

// UpdateStatusRequest payload de atualização de status de pedido
type UpdateStatusRequest struct {
	Status   string `json:"status" binding:"required"`
	Analista string `json:"analista" binding:"required"`
	Gerente  string `json:"gerente" binding:"required"`
}

// RequisitoLinha linha de requisito recebida no lote
type RequisitoLinha struct {
	ID  string `json:"id" binding:"required"`
	Qtd int    `json:"qtd"`
}

// AddRequisitosRequest lote de requisitos de um pedido
type AddRequisitosRequest struct {
	TiposRecurso    []RequisitoLinha `json:"tipos_recurso"`
	RecursosHumanos []RequisitoLinha `json:"recursos_humanos"`
}

// RequisitoRow linha da listagem de requisitos
type RequisitoRow struct {
	Nome       string `json:"nome"`
	Quantidade int    `json:"quantidade"`
	Tipo       string `json:"tipo"` // fisico/humano
}

// PedidoListRow linha da listagem de pedidos, com datas já formatadas
type PedidoListRow struct {
	IDPedido           string  `json:"idpedido"`
	NomeEventoProposto *string `json:"nomeeventoproposto"`
	Status             string  `json:"status"`
	LocalProposto      *string `json:"localproposto"`
	DataInicioProposto *string `json:"datainicioproposto"`
	DataFimProposto    *string `json:"datafimproposto"`
	DataSubmissao      string  `json:"datasubmissao"`
	UsuarioNome        *string `json:"usuario_nome"`
	AnalistaNome       *string `json:"analista_nome"`
	GerenteNome        *string `json:"gerente_nome"`
	Descricao          *string `json:"descricao"`
}

// PedidoService fluxo de pedidos: criação, status e requisitos
type PedidoService struct {
	pedidoRepo    *repository.PedidoRepository
	usuarioRepo   *repository.UsuarioRepository
	analistaRepo  *repository.AnalistaRepository
	gerenteRepo   *repository.GerenteRepository
	requisitoRepo *repository.RequisitoRepository
	db            *gorm.DB
	logger        *zap.Logger
	policy        string
}

func NewPedidoService(pedidoRepo *repository.PedidoRepository, usuarioRepo *repository.UsuarioRepository,
	analistaRepo *repository.AnalistaRepository, gerenteRepo *repository.GerenteRepository,
	requisitoRepo *repository.RequisitoRepository, db *gorm.DB, logger *zap.Logger, policy string) *PedidoService {
	return &PedidoService{
		pedidoRepo:    pedidoRepo,
		usuarioRepo:   usuarioRepo,
		analistaRepo:  analistaRepo,
		gerenteRepo:   gerenteRepo,
		requisitoRepo: requisitoRepo,
		db:            db,
		logger:        logger,
		policy:        policy,
	}
}

// CreatePedido valida, atribui responsáveis, gera o id sequencial do ano e
// insere o pedido. Colisão de id com criação concorrente gera de novo, até
// maxIDAttempts vezes. Devolve o id criado.
func (s *PedidoService) CreatePedido(ctx context.Context, req *CreatePedidoRequest) (string, error) {
	hoje := Hoje()

	var inicio, fim *time.Time
	if req.DataInicioProposto != nil && *req.DataInicioProposto != "" {
		data, err := ParseData(*req.DataInicioProposto)
		if err != nil {
			return "", err
		}
		inicio = &data
	}
	if req.DataFimProposto != nil && *req.DataFimProposto != "" {
		data, err := ParseData(*req.DataFimProposto)
		if err != nil {
			return "", err
		}
		fim = &data
	}
	if err := ValidarDatasPedido(inicio, fim, hoje); err != nil {
		return "", err
	}

	ndoc := NormalizarDocumento(req.Usuario)
	exists, err := s.usuarioRepo.Exists(ctx, ndoc)
	if err != nil {
		return "", fmt.Errorf("verificar usuário: %w", err)
	}
	if !exists {
		return "", apperr.NotFound("Usuário com documento '%s' não encontrado.", req.Usuario)
	}

	analista, gerente, err := s.atribuirResponsaveis(ctx, req)
	if err != nil {
		return "", err
	}

	ano := strconv.Itoa(hoje.Year())
	var idPedido string
	for tentativa := 0; tentativa < maxIDAttempts; tentativa++ {
		id, err := s.pedidoRepo.GenerateID(ctx, ano)
		if err != nil {
			return "", fmt.Errorf("gerar id do pedido: %w", err)
		}

		pedido := &entity.Pedido{
			ID:                 id,
			NomeEventoProposto: req.NomeEventoProposto,
			Status:             entity.PedidoStatusEmAnalise,
			LocalProposto:      req.LocalProposto,
			DataInicioProposto: inicio,
			DataFimProposto:    fim,
			DataSubmissao:      hoje,
			Descricao:          req.Descricao,
			Usuario:            ndoc,
			Analista:           analista,
			Gerente:            gerente,
		}

		err = s.pedidoRepo.Create(ctx, pedido)
		if err == nil {
			idPedido = id
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", fmt.Errorf("criar pedido: %w", err)
		}
		// Outro pedido levou o id, tenta o próximo
	}
	if idPedido == "" {
		return "", apperr.Conflict("Não foi possível gerar um id único para o pedido. Tente novamente.")
	}

	s.logger.Info("Pedido criado",
		zap.String("idpedido", idPedido),
		zap.String("usuario", ndoc),
		zap.String("analista", analista),
		zap.String("gerente", gerente))

	return idPedido, nil
}

// atribuirResponsaveis escolhe analista e gerente conforme a política:
// auto pega os de menor carga; explicit exige os CPFs na requisição.
func (s *PedidoService) atribuirResponsaveis(ctx context.Context, req *CreatePedidoRequest) (string, string, error) {
	if s.policy == AssignmentPolicyExplicit {
		if req.Analista == nil || *req.Analista == "" || req.Gerente == nil || *req.Gerente == "" {
			return "", "", apperr.Validation("Analista e gerente são obrigatórios na atribuição explícita.")
		}

		exists, err := s.analistaRepo.Exists(ctx, *req.Analista)
		if err != nil {
			return "", "", fmt.Errorf("verificar analista: %w", err)
		}
		if !exists {
			return "", "", apperr.NotFound("Analista não encontrado.")
		}

		exists, err = s.gerenteRepo.Exists(ctx, *req.Gerente)
		if err != nil {
			return "", "", fmt.Errorf("verificar gerente: %w", err)
		}
		if !exists {
			return "", "", apperr.NotFound("Gerente não encontrado.")
		}

		return *req.Analista, *req.Gerente, nil
	}

	analista, err := s.analistaRepo.LeastLoaded(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", "", apperr.Internal("Não há analistas cadastrados para atribuir ao pedido.")
		}
		return "", "", fmt.Errorf("selecionar analista: %w", err)
	}

	gerente, err := s.gerenteRepo.LeastLoaded(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", "", apperr.Internal("Não há gerentes cadastrados para atribuir ao pedido.")
		}
		return "", "", fmt.Errorf("selecionar gerente: %w", err)
	}

	return analista, gerente, nil
}

// UpdateStatus valida os responsáveis e aplica o novo status ao pedido
func (s *PedidoService) UpdateStatus(ctx context.Context, id string, req *UpdateStatusRequest) error {
	exists, err := s.analistaRepo.Exists(ctx, req.Analista)
	if err != nil {
		return fmt.Errorf("verificar analista: %w", err)
	}
	if !exists {
		return apperr.NotFound("Analista não encontrado.")
	}

	exists, err = s.gerenteRepo.Exists(ctx, req.Gerente)
	if err != nil {
		return fmt.Errorf("verificar gerente: %w", err)
	}
	if !exists {
		return apperr.NotFound("Gerente não encontrado.")
	}

	rows, err := s.pedidoRepo.UpdateStatus(ctx, id, req.Status, req.Analista, req.Gerente)
	if err != nil {
		return fmt.Errorf("atualizar status: %w", err)
	}
	if rows == 0 {
		return apperr.NotFound("Pedido não encontrado.")
	}

	s.logger.Info("Status do pedido atualizado",
		zap.String("idpedido", id),
		zap.String("status", req.Status))

	return nil
}

// AddRequisitos insere o lote de requisitos do pedido numa única transação:
// qualquer linha inválida desfaz o lote inteiro, inclusive o documento 1:1
// criado sob demanda.
func (s *PedidoService) AddRequisitos(ctx context.Context, pedidoID string, req *AddRequisitosRequest) error {
	exists, err := s.pedidoRepo.Exists(ctx, pedidoID)
	if err != nil {
		return fmt.Errorf("verificar pedido: %w", err)
	}
	if !exists {
		return apperr.NotFound("Pedido não encontrado.")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc := &entity.DocumentoRequisito{PedidoID: pedidoID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(doc).Error; err != nil {
			return fmt.Errorf("garantir documento de requisitos: %w", err)
		}

		for _, linha := range req.TiposRecurso {
			var count int64
			if err := tx.Model(&entity.TipoRecurso{}).Where("id = ?", linha.ID).Count(&count).Error; err != nil {
				return fmt.Errorf("verificar tipo de recurso: %w", err)
			}
			if count == 0 {
				return apperr.NotFound("Tipo de Recurso '%s' não encontrado.", linha.ID)
			}

			requisito := &entity.RequisitoFisico{DocumentoID: pedidoID, TipoRecursoID: linha.ID, Qtd: linha.Qtd}
			if err := tx.Create(requisito).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return apperr.Conflict("Requisito físico '%s' já existe para este pedido.", linha.ID)
				}
				return fmt.Errorf("inserir requisito físico: %w", err)
			}
		}

		for _, linha := range req.RecursosHumanos {
			var count int64
			if err := tx.Model(&entity.Profissao{}).Where("nome = ?", linha.ID).Count(&count).Error; err != nil {
				return fmt.Errorf("verificar profissão: %w", err)
			}
			if count == 0 {
				return apperr.NotFound("Profissão '%s' não encontrada.", linha.ID)
			}

			requisito := &entity.RequisitoHumano{DocumentoID: pedidoID, Profissao: linha.ID, Qtd: linha.Qtd}
			if err := tx.Create(requisito).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return apperr.Conflict("Requisito humano '%s' já existe para este pedido.", linha.ID)
				}
				return fmt.Errorf("inserir requisito humano: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		s.logger.Warn("Lote de requisitos rejeitado",
			zap.String("idpedido", pedidoID),
			zap.Error(err))
		return err
	}

	return nil
}

// ListRequisitos devolve as linhas físicas e humanas do pedido.
// Pedido sem documento de requisitos devolve lista vazia.
func (s *PedidoService) ListRequisitos(ctx context.Context, pedidoID string) ([]RequisitoRow, error) {
	temDocumento, err := s.requisitoRepo.DocumentoExists(ctx, pedidoID)
	if err != nil {
		return nil, fmt.Errorf("verificar documento de requisitos: %w", err)
	}

	rows := make([]RequisitoRow, 0)
	if !temDocumento {
		return rows, nil
	}

	fisicos, err := s.requisitoRepo.FindFisicos(ctx, pedidoID)
	if err != nil {
		return nil, fmt.Errorf("listar requisitos físicos: %w", err)
	}
	for _, rf := range fisicos {
		rows = append(rows, RequisitoRow{Nome: rf.TipoRecurso.Nome, Quantidade: rf.Qtd, Tipo: "fisico"})
	}

	humanos, err := s.requisitoRepo.FindHumanos(ctx, pedidoID)
	if err != nil {
		return nil, fmt.Errorf("listar requisitos humanos: %w", err)
	}
	for _, rh := range humanos {
		rows = append(rows, RequisitoRow{Nome: rh.Profissao, Quantidade: rh.Qtd, Tipo: "humano"})
	}

	return rows, nil
}

// DeleteRequisitoFisico remove uma linha física do pedido
func (s *PedidoService) DeleteRequisitoFisico(ctx context.Context, pedidoID, tipoRecursoID string) error {
	rows, err := s.requisitoRepo.DeleteFisico(ctx, pedidoID, tipoRecursoID)
	if err != nil {
		return fmt.Errorf("remover requisito físico: %w", err)
	}
	if rows == 0 {
		return apperr.NotFound("Requisito não encontrado.")
	}
	return nil
}

// DeleteRequisitoHumano remove uma linha humana do pedido
func (s *PedidoService) DeleteRequisitoHumano(ctx context.Context, pedidoID, profissao string) error {
	rows, err := s.requisitoRepo.DeleteHumano(ctx, pedidoID, profissao)
	if err != nil {
		return fmt.Errorf("remover requisito humano: %w", err)
	}
	if rows == 0 {
		return apperr.NotFound("Requisito não encontrado.")
	}
	return nil
}

// ListPedidos lista pedidos com os filtros opcionais de status e usuário
func (s *PedidoService) ListPedidos(ctx context.Context, status, usuario string) ([]PedidoListRow, error) {
	pedidos, err := s.pedidoRepo.FindAll(ctx, status, usuario)
	if err != nil {
		return nil, fmt.Errorf("listar pedidos: %w", err)
	}

	rows := make([]PedidoListRow, 0, len(pedidos))
	for _, p := range pedidos {
		rows = append(rows, PedidoListRow{
			IDPedido:           p.ID,
			NomeEventoProposto: p.NomeEventoProposto,
			Status:             p.Status,
			LocalProposto:      p.LocalProposto,
			DataInicioProposto: formatarData(p.DataInicioProposto),
			DataFimProposto:    formatarData(p.DataFimProposto),
			DataSubmissao:      p.DataSubmissao.Format(dateLayout),
			UsuarioNome:        p.UsuarioNome,
			AnalistaNome:       p.AnalistaNome,
			GerenteNome:        p.GerenteNome,
			Descricao:          p.Descricao,
		})
	}
	return rows, nil
}

func formatarData(data *time.Time) *string {
	if data == nil {
		return nil
	}
	formatada := data.Format(dateLayout)
	return &formatada
}
