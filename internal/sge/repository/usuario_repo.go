package repository

import (
	"context"
	"errors"

	"github.com/arenalog/sge/internal/sge/entity"
	"gorm.io/gorm"
)

// UsuarioRepository usuários solicitantes
type UsuarioRepository struct {
	db *gorm.DB
}

func NewUsuarioRepository(db *gorm.DB) *UsuarioRepository {
	return &UsuarioRepository{db: db}
}

// Create insere um usuário
func (r *UsuarioRepository) Create(ctx context.Context, usuario *entity.Usuario) error {
	return r.db.WithContext(ctx).Create(usuario).Error
}

// FindByNDoc busca um usuário pelo número de documento normalizado
func (r *UsuarioRepository) FindByNDoc(ctx context.Context, ndoc string) (*entity.Usuario, error) {
	var usuario entity.Usuario
	if err := r.db.WithContext(ctx).Where("n_doc = ?", ndoc).First(&usuario).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &usuario, nil
}

// Exists verifica se o documento já está cadastrado
func (r *UsuarioRepository) Exists(ctx context.Context, ndoc string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Usuario{}).Where("n_doc = ?", ndoc).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// EmailExists verifica se o e-mail já está cadastrado
func (r *UsuarioRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Usuario{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAll lista todos os usuários
func (r *UsuarioRepository) FindAll(ctx context.Context) ([]entity.Usuario, error) {
	var usuarios []entity.Usuario
	if err := r.db.WithContext(ctx).Order("n_doc").Find(&usuarios).Error; err != nil {
		return nil, err
	}
	return usuarios, nil
}
