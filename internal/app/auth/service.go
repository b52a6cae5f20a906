package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rlirio/mural-digital/internal/domain/model"
	"github.com/rlirio/mural-digital/internal/domain/repository"
	"github.com/rlirio/mural-digital/pkg/security"
)

// ErrSenhaCurta indica que a senha não atinge o tamanho mínimo configurado
var ErrSenhaCurta = errors.New("senha muito curta")

// AuthService gerencia operações de autenticação
type AuthService struct {
	keyManager      *security.KeyManager
	userRepo        repository.UserRepository
	tokenExpiration time.Duration
	passwordMinLen  int
	logger          *zap.Logger
}

// NewAuthService cria um novo serviço de autenticação
func NewAuthService(keyManager *security.KeyManager, userRepo repository.UserRepository, tokenExpiration time.Duration, passwordMinLen int, logger *zap.Logger) *AuthService {
	if tokenExpiration <= 0 {
		tokenExpiration = 24 * time.Hour
	}
	if passwordMinLen <= 0 {
		passwordMinLen = 8
	}
	return &AuthService{
		keyManager:      keyManager,
		userRepo:        userRepo,
		tokenExpiration: tokenExpiration,
		passwordMinLen:  passwordMinLen,
		logger:          logger,
	}
}

// Register cria uma nova conta no mural. O username deve ser único e a
// senha respeitar o tamanho mínimo configurado.
func (s *AuthService) Register(ctx context.Context, username, password, nome string, isAdmin bool) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("username é obrigatório")
	}
	if len(password) < s.passwordMinLen {
		return nil, fmt.Errorf("%w: mínimo de %d caracteres", ErrSenhaCurta, s.passwordMinLen)
	}

	entity := &model.UserEntity{
		ID:       uuid.New().String(),
		Username: username,
		Password: password,
		Nome:     strings.TrimSpace(nome),
		IsAdmin:  isAdmin,
	}

	if err := s.userRepo.CreateUser(ctx, entity); err != nil {
		return nil, err
	}

	s.logger.Info("Usuário registrado",
		zap.String("user_id", entity.ID),
		zap.String("username", username),
		zap.Bool("is_admin", isAdmin))

	return entity.ToModel(), nil
}

// Login autentica um usuário e gera um token JWT
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	user, err := s.userRepo.GetUserByCredentials(ctx, username, password)
	if err != nil {
		s.logger.Warn("Falha na autenticação", zap.String("username", username), zap.Error(err))
		return "", nil, errors.New("credenciais inválidas")
	}

	token, err := s.keyManager.GenerateToken(user.ID, user.IsAdmin, s.tokenExpiration)
	if err != nil {
		s.logger.Error("Falha ao gerar token", zap.String("user_id", user.ID), zap.Error(err))
		return "", nil, err
	}

	s.logger.Info("Login bem-sucedido", zap.String("user_id", user.ID))
	return token, user, nil
}

// ValidateToken valida um token JWT e retorna o usuário correspondente
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*model.User, error) {
	claims, err := s.keyManager.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		s.logger.Error("Usuário do token não encontrado", zap.String("user_id", claims.UserID), zap.Error(err))
		return nil, errors.New("usuário inválido")
	}

	return user, nil
}

// IsAdmin verifica se um usuário tem permissão administrativa
func (s *AuthService) IsAdmin(user *model.User) bool {
	return user != nil && user.IsAdmin
}
