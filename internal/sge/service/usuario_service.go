package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/arenalog/sge/internal/apperr"
	"github.com/arenalog/sge/internal/sge/repository"
	"gorm.io/gorm"
)

// CreateUsuarioRequest payload de cadastro de usuário
type CreateUsuarioRequest struct {
	NDoc        string  `json:"ndoc" binding:"required"`
	TipoDoc     string  `json:"tipodoc" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	Nome        *string `json:"nome"`
	DataNasc    *string `json:"datanasc"`
	RG          *string `json:"rg"`
	RazaoSocial *string `json:"razaosocial"`
}

// UsuarioRow linha da listagem de usuários
type UsuarioRow struct {
	NDoc  string  `json:"ndoc"`
	Nome  *string `json:"nome"`
	Email string  `json:"email"`
}

// EquipeRow linha das listagens de analistas e gerentes
type EquipeRow struct {
	CPF  string `json:"cpf"`
	Nome string `json:"nome"`
}

// UsuarioService cadastro e listagem de usuários e equipe
type UsuarioService struct {
	usuarioRepo  *repository.UsuarioRepository
	analistaRepo *repository.AnalistaRepository
	gerenteRepo  *repository.GerenteRepository
}

func NewUsuarioService(usuarioRepo *repository.UsuarioRepository, analistaRepo *repository.AnalistaRepository, gerenteRepo *repository.GerenteRepository) *UsuarioService {
	return &UsuarioService{
		usuarioRepo:  usuarioRepo,
		analistaRepo: analistaRepo,
		gerenteRepo:  gerenteRepo,
	}
}

// CreateUsuario valida, checa unicidade e cadastra o usuário.
// Devolve o ndoc normalizado que foi persistido.
func (s *UsuarioService) CreateUsuario(ctx context.Context, req *CreateUsuarioRequest) (string, error) {
	usuario, err := ValidarUsuario(req, Hoje())
	if err != nil {
		return "", err
	}

	exists, err := s.usuarioRepo.Exists(ctx, usuario.NDoc)
	if err != nil {
		return "", fmt.Errorf("verificar documento: %w", err)
	}
	if exists {
		return "", apperr.Conflict("Documento '%s' já cadastrado.", req.NDoc)
	}

	exists, err = s.usuarioRepo.EmailExists(ctx, usuario.Email)
	if err != nil {
		return "", fmt.Errorf("verificar e-mail: %w", err)
	}
	if exists {
		return "", apperr.Conflict("E-mail '%s' já cadastrado.", req.Email)
	}

	if err := s.usuarioRepo.Create(ctx, usuario); err != nil {
		// Corrida entre a checagem e o insert
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", apperr.Conflict("Documento '%s' já cadastrado.", req.NDoc)
		}
		return "", fmt.Errorf("cadastrar usuário: %w", err)
	}

	return usuario.NDoc, nil
}

// ListUsuarios lista os usuários cadastrados
func (s *UsuarioService) ListUsuarios(ctx context.Context) ([]UsuarioRow, error) {
	usuarios, err := s.usuarioRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]UsuarioRow, 0, len(usuarios))
	for _, u := range usuarios {
		rows = append(rows, UsuarioRow{NDoc: u.NDoc, Nome: u.Nome, Email: u.Email})
	}
	return rows, nil
}

// ListAnalistas lista os analistas cadastrados
func (s *UsuarioService) ListAnalistas(ctx context.Context) ([]EquipeRow, error) {
	analistas, err := s.analistaRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]EquipeRow, 0, len(analistas))
	for _, a := range analistas {
		rows = append(rows, EquipeRow{CPF: a.CPF, Nome: a.Nome})
	}
	return rows, nil
}

// ListGerentes lista os gerentes cadastrados
func (s *UsuarioService) ListGerentes(ctx context.Context) ([]EquipeRow, error) {
	gerentes, err := s.gerenteRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]EquipeRow, 0, len(gerentes))
	for _, g := range gerentes {
		rows = append(rows, EquipeRow{CPF: g.CPF, Nome: g.Nome})
	}
	return rows, nil
}
