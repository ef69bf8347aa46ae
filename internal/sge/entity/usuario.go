package entity

import "time"

// Usuario solicitante de eventos: pessoa física (CPF) ou jurídica (CNPJ)
type Usuario struct {
	NDoc    string `json:"ndoc" gorm:"primaryKey;size:14"` // somente dígitos
	TipoDoc string `json:"tipodoc" gorm:"size:4;not null"` // CPF/CNPJ
	Email   string `json:"email" gorm:"size:255;uniqueIndex;not null"`

	// Pessoa física
	Nome     *string    `json:"nome" gorm:"size:255"`
	DataNasc *time.Time `json:"datanasc" gorm:"type:date"`
	RG       *string    `json:"rg" gorm:"size:9"`

	// Pessoa jurídica
	RazaoSocial *string `json:"razaosocial" gorm:"size:255"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Usuario) TableName() string {
	return "usuarios"
}

// Tipo de documento
const (
	TipoDocCPF  = "CPF"
	TipoDocCNPJ = "CNPJ"
)

// Analista responsável pela análise técnica de pedidos
type Analista struct {
	CPF  string `json:"cpf" gorm:"primaryKey;size:11"`
	Nome string `json:"nome" gorm:"size:255;not null"`
}

func (Analista) TableName() string {
	return "analistas"
}

// Gerente responsável pela aprovação de pedidos
type Gerente struct {
	CPF  string `json:"cpf" gorm:"primaryKey;size:11"`
	Nome string `json:"nome" gorm:"size:255;not null"`
}

func (Gerente) TableName() string {
	return "gerentes"
}
