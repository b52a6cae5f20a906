package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rlirio/mural-digital/internal/app/auth"
	"github.com/rlirio/mural-digital/internal/domain/model"
	"github.com/rlirio/mural-digital/internal/domain/repository"
	"github.com/rlirio/mural-digital/internal/mocks"
	"github.com/rlirio/mural-digital/internal/testutils"
	"github.com/rlirio/mural-digital/pkg/security"
)

func newAuthService(t *testing.T, users *mocks.MockUserRepository) *auth.AuthService {
	t.Helper()

	t.Setenv("JWT_SECRET_KEY", "segredo-de-teste-com-tamanho-suficiente-1234")

	km, err := security.NewKeyManager(testutils.TestLogger(t))
	require.NoError(t, err)

	return auth.NewAuthService(km, users, time.Hour, 8, testutils.TestLogger(t))
}

func TestAuthService_Login(t *testing.T) {
	t.Run("credenciais válidas geram token verificável", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		service := newAuthService(t, users)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		expected := &model.User{ID: "user-1", Username: "joao", IsAdmin: true}
		users.On("GetUserByCredentials", mock.Anything, "joao", "senha-forte").
			Return(expected, nil).Once()
		users.On("GetUserByID", mock.Anything, "user-1").Return(expected, nil).Once()

		token, user, err := service.Login(ctx, "joao", "senha-forte")

		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, expected, user)

		// O token emitido resolve de volta para o mesmo usuário
		validado, err := service.ValidateToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", validado.ID)
	})

	t.Run("credenciais inválidas", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		service := newAuthService(t, users)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		users.On("GetUserByCredentials", mock.Anything, "joao", "senha-errada").
			Return(nil, repository.ErrUserNotFound).Once()

		token, user, err := service.Login(ctx, "joao", "senha-errada")

		assert.Error(t, err)
		assert.Empty(t, token)
		assert.Nil(t, user)
	})
}

func TestAuthService_ValidateToken(t *testing.T) {
	users := new(mocks.MockUserRepository)
	service := newAuthService(t, users)
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	_, err := service.ValidateToken(ctx, "token-malformado")
	assert.Error(t, err)
}

func TestAuthService_Register(t *testing.T) {
	t.Run("registro válido", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		service := newAuthService(t, users)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		var created *model.UserEntity
		users.On("CreateUser", mock.Anything, mock.AnythingOfType("*model.UserEntity")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*model.UserEntity)
			}).
			Return(nil).Once()

		user, err := service.Register(ctx, "  maria  ", "senha-forte", "Maria Silva", false)

		require.NoError(t, err)
		assert.Equal(t, "maria", user.Username)
		assert.False(t, user.IsAdmin)
		require.NotNil(t, created)
		assert.NotEmpty(t, created.ID)
	})

	t.Run("senha curta", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		service := newAuthService(t, users)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		_, err := service.Register(ctx, "maria", "curta", "", false)

		assert.ErrorIs(t, err, auth.ErrSenhaCurta)
		users.AssertNotCalled(t, "CreateUser")
	})

	t.Run("username vazio", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		service := newAuthService(t, users)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		_, err := service.Register(ctx, "   ", "senha-forte", "", false)

		assert.Error(t, err)
		users.AssertNotCalled(t, "CreateUser")
	})

	t.Run("username duplicado propaga o erro", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		service := newAuthService(t, users)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		users.On("CreateUser", mock.Anything, mock.Anything).
			Return(repository.ErrUserExists).Once()

		_, err := service.Register(ctx, "maria", "senha-forte", "", false)

		assert.ErrorIs(t, err, repository.ErrUserExists)
	})
}
