package database

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rlirio/mural-digital/internal/domain/model"
	"github.com/rlirio/mural-digital/internal/domain/repository"
)

// UserRepository implementa repository.UserRepository
type UserRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewUserRepository cria um novo repositório de usuários
func NewUserRepository(db *gorm.DB, logger *zap.Logger) repository.UserRepository {
	return &UserRepository{db: db, logger: logger}
}

// CreateUser insere um novo usuário; o campo Password deve conter a senha
// em texto plano e é armazenado como hash bcrypt
func (r *UserRepository) CreateUser(ctx context.Context, u *model.UserEntity) error {
	var existente model.UserEntity
	result := r.db.WithContext(ctx).Where("username = ?", u.Username).First(&existente)
	if result.Error == nil {
		return repository.ErrUserExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("falha ao verificar usuário existente: %w", result.Error)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		r.logger.Error("falha ao gerar hash da senha", zap.Error(err))
		return err
	}
	u.Password = string(hash)

	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		r.logger.Error("falha ao criar usuário",
			zap.String("username", u.Username),
			zap.Error(err))
		return fmt.Errorf("falha ao criar usuário: %w", err)
	}

	return nil
}

// GetUserByCredentials busca o usuário pelo username e verifica a senha
func (r *UserRepository) GetUserByCredentials(ctx context.Context, username, password string) (*model.User, error) {
	var user model.UserEntity

	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("falha ao buscar usuário: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errors.New("senha inválida")
	}

	return user.ToModel(), nil
}

// GetUserByID obtém um usuário pelo id
func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var user model.UserEntity
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("falha ao buscar usuário: %w", err)
	}

	return user.ToModel(), nil
}

// DeleteUser remove o usuário e tudo que ele possui em uma única transação:
// cada comunicado do usuário leva junto seus comentários e reações (inclusive
// de outros usuários), e os comentários e reações do próprio usuário em
// comunicados de terceiros também são removidos.
func (r *UserRepository) DeleteUser(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existe int64
		if err := tx.Model(&model.UserEntity{}).
			Where("id = ?", id).
			Count(&existe).Error; err != nil {
			return fmt.Errorf("falha ao verificar usuário: %w", err)
		}
		if existe == 0 {
			return repository.ErrUserNotFound
		}

		var comunicadoIDs []string
		if err := tx.Model(&model.ComunicadoEntity{}).
			Where("usuario_id = ?", id).
			Pluck("id", &comunicadoIDs).Error; err != nil {
			return fmt.Errorf("falha ao buscar comunicados do usuário: %w", err)
		}

		if len(comunicadoIDs) > 0 {
			if err := tx.Where("comunicado_id IN ?", comunicadoIDs).
				Delete(&model.ComentarioEntity{}).Error; err != nil {
				return fmt.Errorf("falha ao remover comentários dos comunicados: %w", err)
			}
			if err := tx.Where("comunicado_id IN ?", comunicadoIDs).
				Delete(&model.ReacaoEntity{}).Error; err != nil {
				return fmt.Errorf("falha ao remover reações dos comunicados: %w", err)
			}
			if err := tx.Where("id IN ?", comunicadoIDs).
				Delete(&model.ComunicadoEntity{}).Error; err != nil {
				return fmt.Errorf("falha ao remover comunicados: %w", err)
			}
		}

		// Comentários e reações do usuário em comunicados de terceiros
		if err := tx.Where("usuario_id = ?", id).
			Delete(&model.ComentarioEntity{}).Error; err != nil {
			return fmt.Errorf("falha ao remover comentários do usuário: %w", err)
		}
		if err := tx.Where("usuario_id = ?", id).
			Delete(&model.ReacaoEntity{}).Error; err != nil {
			return fmt.Errorf("falha ao remover reações do usuário: %w", err)
		}

		if err := tx.Delete(&model.UserEntity{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("falha ao remover usuário: %w", err)
		}

		return nil
	})

	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			r.logger.Error("falha ao excluir usuário",
				zap.String("id", id),
				zap.Error(err))
		}
		return err
	}

	return nil
}
