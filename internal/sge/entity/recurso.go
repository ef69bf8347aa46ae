package entity

import "time"

// TipoRecurso categoria de recurso físico (ex: som, iluminação)
type TipoRecurso struct {
	ID   string `json:"idtiporecurso" gorm:"primaryKey;size:32"`
	Nome string `json:"nome" gorm:"size:255;not null"`
}

func (TipoRecurso) TableName() string {
	return "tipos_recurso"
}

// Profissao categoria de recurso humano (ex: segurança, técnico de som)
type Profissao struct {
	Nome string `json:"nome" gorm:"primaryKey;size:64"`
}

func (Profissao) TableName() string {
	return "profissoes"
}

// Armazem local de guarda dos itens de patrimônio
type Armazem struct {
	ID       string `json:"idarmazem" gorm:"primaryKey;size:32"`
	Endereco string `json:"endereco" gorm:"size:255;not null"`
}

func (Armazem) TableName() string {
	return "armazens"
}

// Item unidade física do patrimônio, identificada pelo número de tombamento
type Item struct {
	NroPatrimonio string  `json:"nropatrimonio" gorm:"primaryKey;size:32"`
	StatusItem    string  `json:"statusitem" gorm:"size:30;not null;default:'Disponível'"`
	Qualidade     *string `json:"qualidade" gorm:"size:30"`
	Tamanho       float64 `json:"tamanho"`

	TipoRecursoID string  `json:"-" gorm:"size:32;not null;index"`
	ArmazemID     *string `json:"-" gorm:"size:32"`

	TipoRecurso TipoRecurso `json:"tiporecursofisico" gorm:"foreignKey:TipoRecursoID"`
	Armazem     *Armazem    `json:"armazem" gorm:"foreignKey:ArmazemID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Item) TableName() string {
	return "itens"
}

// Status do item
const ItemStatusDisponivel = "Disponível"
