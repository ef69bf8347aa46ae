package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arenalog/sge/internal/apperr"
	"github.com/arenalog/sge/internal/sge/entity"
	"github.com/arenalog/sge/internal/sge/repository"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// CreateItemRequest payload de cadastro de item de patrimônio
type CreateItemRequest struct {
	NroPatrimonio     string   `json:"nropatrimonio" binding:"required"`
	StatusItem        *string  `json:"statusitem"`
	Qualidade         *string  `json:"qualidade"`
	Tamanho           *float64 `json:"tamanho" binding:"required"`
	TipoRecursoFisico string   `json:"tiporecursofisico" binding:"required"`
	Armazem           *string  `json:"armazem"`
}

// UpdateItemRequest payload parcial de atualização de item
type UpdateItemRequest struct {
	StatusItem        *string  `json:"statusitem"`
	Qualidade         *string  `json:"qualidade"`
	Tamanho           *float64 `json:"tamanho"`
	TipoRecursoFisico *string  `json:"tiporecursofisico"`
	Armazem           *string  `json:"armazem"`
}

// ItemRow linha da listagem de itens
type ItemRow struct {
	NroPatrimonio     string      `json:"nropatrimonio"`
	StatusItem        string      `json:"statusitem"`
	Qualidade         *string     `json:"qualidade"`
	Tamanho           float64     `json:"tamanho"`
	TipoRecursoFisico TipoNomeRow `json:"tiporecursofisico"`
	Armazem           *ArmazemRow `json:"armazem"`
}

// TipoNomeRow nome do tipo de recurso na listagem de itens
type TipoNomeRow struct {
	Nome string `json:"nome"`
}

// ArmazemRow armazém na listagem de itens
type ArmazemRow struct {
	IDArmazem string `json:"idarmazem"`
	Endereco  string `json:"endereco"`
}

// ItemService inventário de itens de patrimônio
type ItemService struct {
	itemRepo    *repository.ItemRepository
	tipoRepo    *repository.TipoRecursoRepository
	armazemRepo *repository.ArmazemRepository
}

func NewItemService(itemRepo *repository.ItemRepository, tipoRepo *repository.TipoRecursoRepository, armazemRepo *repository.ArmazemRepository) *ItemService {
	return &ItemService{
		itemRepo:    itemRepo,
		tipoRepo:    tipoRepo,
		armazemRepo: armazemRepo,
	}
}

// ListItems lista itens aplicando os filtros dinâmicos
func (s *ItemService) ListItems(ctx context.Context, filter repository.ItemFilter) ([]ItemRow, error) {
	items, err := s.itemRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listar itens: %w", err)
	}

	rows := make([]ItemRow, 0, len(items))
	for _, item := range items {
		row := ItemRow{
			NroPatrimonio:     item.NroPatrimonio,
			StatusItem:        item.StatusItem,
			Qualidade:         item.Qualidade,
			Tamanho:           item.Tamanho,
			TipoRecursoFisico: TipoNomeRow{Nome: item.TipoRecurso.Nome},
		}
		if item.Armazem != nil {
			row.Armazem = &ArmazemRow{IDArmazem: item.Armazem.ID, Endereco: item.Armazem.Endereco}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// CreateItem valida as referências e cadastra o item.
// Devolve o número de patrimônio cadastrado.
func (s *ItemService) CreateItem(ctx context.Context, req *CreateItemRequest) (string, error) {
	exists, err := s.tipoRepo.Exists(ctx, req.TipoRecursoFisico)
	if err != nil {
		return "", fmt.Errorf("verificar tipo de recurso: %w", err)
	}
	if !exists {
		return "", apperr.NotFound("Tipo de Recurso '%s' não encontrado.", req.TipoRecursoFisico)
	}

	if req.Armazem != nil && *req.Armazem != "" {
		exists, err := s.armazemRepo.Exists(ctx, *req.Armazem)
		if err != nil {
			return "", fmt.Errorf("verificar armazém: %w", err)
		}
		if !exists {
			return "", apperr.NotFound("Armazém '%s' não encontrado.", *req.Armazem)
		}
	}

	exists, err = s.itemRepo.Exists(ctx, req.NroPatrimonio)
	if err != nil {
		return "", fmt.Errorf("verificar patrimônio: %w", err)
	}
	if exists {
		return "", apperr.Conflict("Patrimônio '%s' já cadastrado.", req.NroPatrimonio)
	}

	status := entity.ItemStatusDisponivel
	if req.StatusItem != nil && *req.StatusItem != "" {
		status = *req.StatusItem
	}

	item := &entity.Item{
		NroPatrimonio: req.NroPatrimonio,
		StatusItem:    status,
		Qualidade:     req.Qualidade,
		Tamanho:       *req.Tamanho,
		TipoRecursoID: req.TipoRecursoFisico,
	}
	if req.Armazem != nil && *req.Armazem != "" {
		item.ArmazemID = req.Armazem
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", apperr.Conflict("Patrimônio '%s' já cadastrado.", req.NroPatrimonio)
		}
		return "", fmt.Errorf("cadastrar item: %w", err)
	}

	return item.NroPatrimonio, nil
}

// UpdateItem aplica os campos informados, validando referências quando presentes
func (s *ItemService) UpdateItem(ctx context.Context, nroPatrimonio string, req *UpdateItemRequest) error {
	exists, err := s.itemRepo.Exists(ctx, nroPatrimonio)
	if err != nil {
		return fmt.Errorf("verificar item: %w", err)
	}
	if !exists {
		return apperr.NotFound("Item não encontrado.")
	}

	updates := map[string]interface{}{}
	if req.StatusItem != nil {
		updates["status_item"] = *req.StatusItem
	}
	if req.Qualidade != nil {
		updates["qualidade"] = *req.Qualidade
	}
	if req.Tamanho != nil {
		updates["tamanho"] = *req.Tamanho
	}
	if req.TipoRecursoFisico != nil && *req.TipoRecursoFisico != "" {
		exists, err := s.tipoRepo.Exists(ctx, *req.TipoRecursoFisico)
		if err != nil {
			return fmt.Errorf("verificar tipo de recurso: %w", err)
		}
		if !exists {
			return apperr.NotFound("Tipo de Recurso '%s' não encontrado.", *req.TipoRecursoFisico)
		}
		updates["tipo_recurso_id"] = *req.TipoRecursoFisico
	}
	if req.Armazem != nil && *req.Armazem != "" {
		exists, err := s.armazemRepo.Exists(ctx, *req.Armazem)
		if err != nil {
			return fmt.Errorf("verificar armazém: %w", err)
		}
		if !exists {
			return apperr.NotFound("Armazém '%s' não encontrado.", *req.Armazem)
		}
		updates["armazem_id"] = *req.Armazem
	}

	if len(updates) == 0 {
		return nil
	}

	if err := s.itemRepo.Update(ctx, nroPatrimonio, updates); err != nil {
		return fmt.Errorf("atualizar item: %w", err)
	}
	return nil
}

// DeleteItem remove o item; vínculos com alocações impedem a exclusão
func (s *ItemService) DeleteItem(ctx context.Context, nroPatrimonio string) error {
	exists, err := s.itemRepo.Exists(ctx, nroPatrimonio)
	if err != nil {
		return fmt.Errorf("verificar item: %w", err)
	}
	if !exists {
		return apperr.NotFound("Item não encontrado.")
	}

	if err := s.itemRepo.Delete(ctx, nroPatrimonio); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return apperr.Conflict("Não é possível excluir este item pois ele está vinculado a outros registros (ex: Alocações).")
		}
		return fmt.Errorf("excluir item: %w", err)
	}
	return nil
}

var itemExportHeaders = []string{
	"Patrimônio", "Status", "Qualidade", "Tamanho", "Tipo de Recurso", "Armazém", "Endereço",
}

// ExportItems monta a planilha do inventário filtrado
func (s *ItemService) ExportItems(ctx context.Context, filter repository.ItemFilter) (*excelize.File, string, error) {
	items, err := s.itemRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, "", fmt.Errorf("listar itens: %w", err)
	}

	f := excelize.NewFile()
	sheet := "Itens"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range itemExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx, item := range items {
		row := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.NroPatrimonio)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.StatusItem)
		if item.Qualidade != nil {
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), *item.Qualidade)
		}
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), item.Tamanho)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), item.TipoRecurso.Nome)
		if item.Armazem != nil {
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), item.Armazem.ID)
			f.SetCellValue(sheet, fmt.Sprintf("G%d", row), item.Armazem.Endereco)
		}
	}

	summaryRow := len(items) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow), fmt.Sprintf("Itens: %d", len(items)))
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("G%d", summaryRow), summaryStyle)

	colWidths := []float64{16, 14, 12, 10, 22, 12, 30}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	filename := fmt.Sprintf("Inventario_%s.xlsx", time.Now().Format("2006-01-02"))
	return f, filename, nil
}
