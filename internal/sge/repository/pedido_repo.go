package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/arenalog/sge/internal/sge/entity"
	"gorm.io/gorm"
)

// PedidoRepository pedidos de evento
type PedidoRepository struct {
	db *gorm.DB
}

func NewPedidoRepository(db *gorm.DB) *PedidoRepository {
	return &PedidoRepository{db: db}
}

// GenerateID gera o próximo id sequencial do ano: PED-{ano}-{seq}.
// O máximo é tomado numericamente, então a sequência segue crescendo
// além de 999 (PED-2024-999 → PED-2024-1000).
func (r *PedidoRepository) GenerateID(ctx context.Context, year string) (string, error) {
	prefix := fmt.Sprintf("PED-%s-", year)

	var maxSeq int
	err := r.db.WithContext(ctx).
		Model(&entity.Pedido{}).
		Select("COALESCE(MAX(CAST(SPLIT_PART(id, '-', 3) AS INTEGER)), 0)").
		Where("id LIKE ?", prefix+"%").
		Scan(&maxSeq).Error
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("PED-%s-%03d", year, maxSeq+1), nil
}

// Create insere um pedido
func (r *PedidoRepository) Create(ctx context.Context, pedido *entity.Pedido) error {
	return r.db.WithContext(ctx).Create(pedido).Error
}

// Exists verifica se o pedido existe
func (r *PedidoRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Pedido{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateStatus aplica status e responsáveis; devolve as linhas afetadas
func (r *PedidoRepository) UpdateStatus(ctx context.Context, id, status, analista, gerente string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.Pedido{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":   status,
			"analista": analista,
			"gerente":  gerente,
		})
	return result.RowsAffected, result.Error
}

// PedidoRow linha de listagem com os nomes de usuário e responsáveis
type PedidoRow struct {
	ID                 string
	NomeEventoProposto *string
	Status             string
	LocalProposto      *string
	DataInicioProposto *time.Time
	DataFimProposto    *time.Time
	DataSubmissao      time.Time
	UsuarioNome        *string
	AnalistaNome       *string
	GerenteNome        *string
	Descricao          *string
}

// FindAll lista pedidos, opcionalmente filtrados por status e usuário
func (r *PedidoRepository) FindAll(ctx context.Context, status, usuario string) ([]PedidoRow, error) {
	query := r.db.WithContext(ctx).
		Table("pedidos p").
		Select(`p.id, p.nome_evento_proposto, p.status, p.local_proposto,
			p.data_inicio_proposto, p.data_fim_proposto, p.data_submissao,
			COALESCE(u.nome, u.razao_social) AS usuario_nome,
			a.nome AS analista_nome, g.nome AS gerente_nome, p.descricao`).
		Joins("LEFT JOIN usuarios u ON u.n_doc = p.usuario").
		Joins("LEFT JOIN analistas a ON a.cpf = p.analista").
		Joins("LEFT JOIN gerentes g ON g.cpf = p.gerente")

	if status != "" {
		query = query.Where("p.status = ?", status)
	}
	if usuario != "" {
		query = query.Where("p.usuario = ?", usuario)
	}

	rows := make([]PedidoRow, 0)
	if err := query.Order("p.id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
