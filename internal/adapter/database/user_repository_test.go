package database

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlirio/mural-digital/internal/domain/model"
	"github.com/rlirio/mural-digital/internal/domain/repository"
	"github.com/rlirio/mural-digital/internal/testutils"
)

func TestUserRepository_CreateUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, testutils.TestLogger(t))
	ctx := context.Background()

	u := &model.UserEntity{
		ID:       uuid.New().String(),
		Username: "maria",
		Password: "senha-secreta",
		Nome:     "Maria Silva",
	}
	require.NoError(t, repo.CreateUser(ctx, u))

	// A senha nunca é armazenada em texto plano
	var salvo model.UserEntity
	require.NoError(t, db.First(&salvo, "username = ?", "maria").Error)
	assert.NotEqual(t, "senha-secreta", salvo.Password)
	assert.NotEmpty(t, salvo.Password)

	// Username duplicado é rejeitado antes do insert
	duplicado := &model.UserEntity{
		ID:       uuid.New().String(),
		Username: "maria",
		Password: "outra-senha",
	}
	err := repo.CreateUser(ctx, duplicado)
	assert.ErrorIs(t, err, repository.ErrUserExists)
}

func TestUserRepository_GetUserByCredentials(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, testutils.TestLogger(t))
	ctx := context.Background()

	u := &model.UserEntity{
		ID:       uuid.New().String(),
		Username: "joao",
		Password: "senha-correta",
		IsAdmin:  true,
	}
	require.NoError(t, repo.CreateUser(ctx, u))

	t.Run("credenciais corretas", func(t *testing.T) {
		user, err := repo.GetUserByCredentials(ctx, "joao", "senha-correta")

		require.NoError(t, err)
		assert.Equal(t, u.ID, user.ID)
		assert.True(t, user.IsAdmin)
	})

	t.Run("senha incorreta", func(t *testing.T) {
		user, err := repo.GetUserByCredentials(ctx, "joao", "senha-errada")

		assert.Error(t, err)
		assert.Nil(t, user)
	})

	t.Run("usuário inexistente", func(t *testing.T) {
		_, err := repo.GetUserByCredentials(ctx, "ninguem", "qualquer")
		assert.ErrorIs(t, err, repository.ErrUserNotFound)
	})
}

func TestUserRepository_DeleteUser(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db, testutils.TestLogger(t))
	comunicados := NewComunicadoRepository(db, testutils.TestLogger(t))
	reacoes := NewReacaoRepository(db, testutils.TestLogger(t))
	ctx := context.Background()

	alvo := seedUser(t, db, "alvo", true)
	outro := seedUser(t, db, "outro", true)

	// Comunicado do alvo, com comentário e reação de terceiro
	postDoAlvo := seedComunicado(t, db, alvo.ID, "Do alvo")
	seedComentario(t, db, outro.ID, postDoAlvo.ID, "Comentário de terceiro")
	_, err := reacoes.Toggle(ctx, outro.ID, postDoAlvo.ID, model.ReacaoLike)
	require.NoError(t, err)

	// Comunicado de terceiro, com comentário e reação do alvo
	postDoOutro := seedComunicado(t, db, outro.ID, "Do outro")
	comentarioDoAlvo := seedComentario(t, db, alvo.ID, postDoOutro.ID, "Comentário do alvo")
	_, err = reacoes.Toggle(ctx, alvo.ID, postDoOutro.ID, model.ReacaoDislike)
	require.NoError(t, err)

	require.NoError(t, users.DeleteUser(ctx, alvo.ID))

	// A conta some
	_, err = users.GetUserByID(ctx, alvo.ID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	// O comunicado do alvo cai em cascata com tudo que pendurava nele
	_, err = comunicados.GetComunicadoByID(ctx, postDoAlvo.ID)
	assert.ErrorIs(t, err, repository.ErrComunicadoNotFound)

	var sobras int64
	require.NoError(t, db.Model(&model.ComentarioEntity{}).
		Where("comunicado_id = ?", postDoAlvo.ID).Count(&sobras).Error)
	assert.Zero(t, sobras)
	require.NoError(t, db.Model(&model.ReacaoEntity{}).
		Where("comunicado_id = ?", postDoAlvo.ID).Count(&sobras).Error)
	assert.Zero(t, sobras)

	// Os rastros do alvo em comunicados de terceiros também somem
	_, err = comunicados.GetComentarioByID(ctx, comentarioDoAlvo.ID)
	assert.ErrorIs(t, err, repository.ErrComentarioNotFound)

	likes, dislikes, err := reacoes.CountByComunicado(ctx, postDoOutro.ID)
	require.NoError(t, err)
	assert.Zero(t, likes)
	assert.Zero(t, dislikes)

	// O comunicado do terceiro continua no mural
	mantido, err := comunicados.GetComunicadoByID(ctx, postDoOutro.ID)
	require.NoError(t, err)
	assert.Equal(t, "Do outro", mantido.Titulo)

	// Conta inexistente
	err = users.DeleteUser(ctx, uuid.New().String())
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
