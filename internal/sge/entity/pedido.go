package entity

import "time"

// Pedido proposta de evento submetida por um usuário
type Pedido struct {
	ID                 string     `json:"idpedido" gorm:"primaryKey;size:16"` // PED-{ano}-{seq}
	NomeEventoProposto *string    `json:"nomeeventoproposto" gorm:"size:255"`
	Status             string     `json:"status" gorm:"size:20;not null;default:'Em Análise'"`
	LocalProposto      *string    `json:"localproposto" gorm:"size:255"`
	DataInicioProposto *time.Time `json:"datainicioproposto" gorm:"type:date"`
	DataFimProposto    *time.Time `json:"datafimproposto" gorm:"type:date"`
	DataSubmissao      time.Time  `json:"datasubmissao" gorm:"type:date;not null"`
	Descricao          *string    `json:"descricao" gorm:"type:text"`

	// Responsáveis
	Usuario  string `json:"usuario" gorm:"size:14;not null;index"`
	Analista string `json:"analista" gorm:"size:11;not null"`
	Gerente  string `json:"gerente" gorm:"size:11;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Pedido) TableName() string {
	return "pedidos"
}

// Status do pedido
const (
	PedidoStatusEmAnalise = "Em Análise"
	PedidoStatusAprovado  = "Aprovado"
	PedidoStatusRecusado  = "Recusado"
)

// DocumentoRequisito agrupa os requisitos de um pedido (1:1, criado sob demanda)
type DocumentoRequisito struct {
	PedidoID string `json:"pedido_id" gorm:"primaryKey;size:16"`
}

func (DocumentoRequisito) TableName() string {
	return "documentos_requisito"
}

// RequisitoFisico linha de recurso físico exigido por um pedido
type RequisitoFisico struct {
	DocumentoID   string `json:"documento_id" gorm:"primaryKey;size:16"`
	TipoRecursoID string `json:"tipo_recurso_id" gorm:"primaryKey;size:32"`
	Qtd           int    `json:"qtd" gorm:"not null"`

	TipoRecurso TipoRecurso `json:"-" gorm:"foreignKey:TipoRecursoID"`
}

func (RequisitoFisico) TableName() string {
	return "requisitos_fisicos"
}

// RequisitoHumano linha de profissional exigido por um pedido
type RequisitoHumano struct {
	DocumentoID string `json:"documento_id" gorm:"primaryKey;size:16"`
	Profissao   string `json:"profissao" gorm:"primaryKey;size:64"`
	Qtd         int    `json:"qtd" gorm:"not null"`
}

func (RequisitoHumano) TableName() string {
	return "requisitos_humanos"
}
