package entity

import "time"

// Evento evento efetivado a partir de um pedido aprovado
type Evento struct {
	Nome       string     `json:"nome" gorm:"primaryKey;size:255"`
	DataInicio time.Time  `json:"data_inicio" gorm:"primaryKey;type:date"`
	DataFim    *time.Time `json:"data_fim" gorm:"type:date"`
	Status     string     `json:"status" gorm:"size:20;not null;default:'Confirmado'"`
	Local      *string    `json:"local" gorm:"size:255"`
	PedidoID   string     `json:"id_pedido" gorm:"size:16;not null;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Evento) TableName() string {
	return "eventos"
}

// Status do evento
const EventoStatusConfirmado = "Confirmado"

// Alocacao vínculo de um item de patrimônio a um evento num período
type Alocacao struct {
	EventoNome       string     `json:"evento_nome" gorm:"primaryKey;size:255"`
	EventoDataInicio time.Time  `json:"evento_data" gorm:"primaryKey;type:date"`
	ItemID           string     `json:"item_id" gorm:"primaryKey;size:32"`
	DiaEntrada       *time.Time `json:"dia_entrada" gorm:"type:date"`
	DiaSaida         *time.Time `json:"dia_saida" gorm:"type:date"`

	Item Item `json:"-" gorm:"foreignKey:ItemID;references:NroPatrimonio"`
}

func (Alocacao) TableName() string {
	return "alocacoes"
}
