package service

import (
	"strings"
	"time"

	"github.com/arenalog/sge/internal/apperr"
	"github.com/arenalog/sge/internal/sge/entity"
)

// Datas da API trafegam como "AAAA-MM-DD"
const dateLayout = "2006-01-02"

// NormalizarDocumento remove tudo que não é dígito (pontos, traços, barras).
func NormalizarDocumento(doc string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, doc)
}

// ParseData converte uma data da API; valores malformados viram erro de validação.
func ParseData(valor string) (time.Time, error) {
	data, err := time.Parse(dateLayout, valor)
	if err != nil {
		return time.Time{}, apperr.Validation("Data inválida: '%s'. Use o formato AAAA-MM-DD.", valor)
	}
	return data, nil
}

// Hoje devolve a data corrente do calendário local, à meia-noite UTC,
// na mesma representação das datas vindas da API.
func Hoje() time.Time {
	ano, mes, dia := time.Now().Date()
	return time.Date(ano, mes, dia, 0, 0, 0, 0, time.UTC)
}

// Idade em anos completos na data de referência. Quem ainda não fez
// aniversário no ano corrente conta um ano a menos.
func Idade(nascimento, hoje time.Time) int {
	idade := hoje.Year() - nascimento.Year()
	if hoje.Month() < nascimento.Month() ||
		(hoje.Month() == nascimento.Month() && hoje.Day() < nascimento.Day()) {
		idade--
	}
	return idade
}

// ValidarUsuario aplica as regras de cadastro e devolve a entidade com os
// documentos normalizados para dígitos. hoje é a referência da idade mínima.
func ValidarUsuario(req *CreateUsuarioRequest, hoje time.Time) (*entity.Usuario, error) {
	if req.TipoDoc != entity.TipoDocCPF && req.TipoDoc != entity.TipoDocCNPJ {
		return nil, apperr.Validation("Tipo de documento deve ser CPF ou CNPJ.")
	}

	ndoc := NormalizarDocumento(req.NDoc)

	usuario := &entity.Usuario{
		NDoc:        ndoc,
		TipoDoc:     req.TipoDoc,
		Email:       req.Email,
		Nome:        req.Nome,
		RazaoSocial: req.RazaoSocial,
	}

	switch req.TipoDoc {
	case entity.TipoDocCPF:
		if len(ndoc) != 11 {
			return nil, apperr.Validation("CPF deve conter 11 dígitos.")
		}
		if req.Nome == nil || *req.Nome == "" {
			return nil, apperr.Validation("Nome é obrigatório para CPF.")
		}
	case entity.TipoDocCNPJ:
		if len(ndoc) != 14 {
			return nil, apperr.Validation("CNPJ deve conter 14 dígitos.")
		}
		if req.RazaoSocial == nil || *req.RazaoSocial == "" {
			return nil, apperr.Validation("Razão Social é obrigatória para CNPJ.")
		}
	}

	if req.RG != nil && *req.RG != "" {
		rg := NormalizarDocumento(*req.RG)
		if len(rg) < 7 || len(rg) > 9 {
			return nil, apperr.Validation("RG deve conter entre 7 e 9 dígitos.")
		}
		usuario.RG = &rg
	}

	if req.DataNasc != nil && *req.DataNasc != "" {
		nascimento, err := ParseData(*req.DataNasc)
		if err != nil {
			return nil, err
		}
		if Idade(nascimento, hoje) < 18 {
			return nil, apperr.Validation("Usuário deve ter pelo menos 18 anos.")
		}
		usuario.DataNasc = &nascimento
	}

	return usuario, nil
}

// ValidarDatasPedido garante início não-passado e fim igual ou após o início.
func ValidarDatasPedido(inicio, fim *time.Time, hoje time.Time) error {
	if inicio != nil && inicio.Before(hoje) {
		return apperr.Validation("A data de início não pode ser no passado.")
	}
	if inicio != nil && fim != nil && fim.Before(*inicio) {
		return apperr.Validation("A data de fim deve ser após a data de início.")
	}
	return nil
}
