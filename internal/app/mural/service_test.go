package mural_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rlirio/mural-digital/internal/app/mural"
	"github.com/rlirio/mural-digital/internal/domain/model"
	"github.com/rlirio/mural-digital/internal/domain/repository"
	"github.com/rlirio/mural-digital/internal/mocks"
	"github.com/rlirio/mural-digital/internal/testutils"
)

func newTestService(t *testing.T) (*mural.Service, *mocks.MockComunicadoRepository, *mocks.MockReacaoRepository, *mocks.MockUserRepository, *mocks.MockCache) {
	t.Helper()

	comunicados := new(mocks.MockComunicadoRepository)
	reacoes := new(mocks.MockReacaoRepository)
	users := new(mocks.MockUserRepository)
	cache := new(mocks.MockCache)

	service := mural.NewService(comunicados, reacoes, users, cache, nil, testutils.TestLogger(t))
	return service, comunicados, reacoes, users, cache
}

func TestService_CreatePost(t *testing.T) {
	admin := &model.User{ID: "admin-1", Username: "admin", IsAdmin: true}
	comum := &model.User{ID: "user-1", Username: "joao", IsAdmin: false}

	t.Run("admin publica com sucesso", func(t *testing.T) {
		service, comunicados, _, users, cache := newTestService(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		users.On("GetUserByID", mock.Anything, "admin-1").Return(admin, nil).Once()
		comunicados.On("CreateComunicado", mock.Anything, mock.AnythingOfType("*model.ComunicadoEntity")).
			Return(nil).Once()
		cache.On("Delete", mock.Anything, "mural:comunicados").Return(nil).Once()

		post, err := service.CreatePost(ctx, "admin-1", "Manutenção", "O sistema ficará fora do ar no sábado.", "alta", "comunicado")

		require.NoError(t, err)
		assert.Equal(t, "Manutenção", post.Titulo)
		assert.Equal(t, model.PrioridadeAlta, post.Prioridade)
		assert.NotEmpty(t, post.ID)
		assert.Equal(t, "admin-1", post.UsuarioID)
		comunicados.AssertExpectations(t)
		users.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("não administrador é rejeitado antes de qualquer escrita", func(t *testing.T) {
		service, comunicados, _, users, _ := newTestService(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		users.On("GetUserByID", mock.Anything, "user-1").Return(comum, nil).Once()

		post, err := service.CreatePost(ctx, "user-1", "Título válido", "Conteúdo válido e longo o bastante.", "", "")

		assert.ErrorIs(t, err, mural.ErrPermissaoNegada)
		assert.Nil(t, post)
		comunicados.AssertNotCalled(t, "CreateComunicado")
	})

	t.Run("título curto falha na validação", func(t *testing.T) {
		service, comunicados, _, users, _ := newTestService(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		users.On("GetUserByID", mock.Anything, "admin-1").Return(admin, nil).Once()

		post, err := service.CreatePost(ctx, "admin-1", "ab", "Conteúdo válido e longo o bastante.", "", "")

		assert.ErrorIs(t, err, model.ErrTituloInvalido)
		assert.Nil(t, post)
		comunicados.AssertNotCalled(t, "CreateComunicado")
	})

	t.Run("prioridade e categoria desconhecidas caem para o padrão", func(t *testing.T) {
		service, comunicados, _, users, cache := newTestService(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		users.On("GetUserByID", mock.Anything, "admin-1").Return(admin, nil).Once()

		var created *model.ComunicadoEntity
		comunicados.On("CreateComunicado", mock.Anything, mock.AnythingOfType("*model.ComunicadoEntity")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*model.ComunicadoEntity)
			}).
			Return(nil).Once()
		cache.On("Delete", mock.Anything, "mural:comunicados").Return(nil).Once()

		_, err := service.CreatePost(ctx, "admin-1", "Título válido", "Conteúdo válido e longo o bastante.", "urgentíssima", "propaganda")

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, model.PrioridadeNormal, created.Prioridade)
		assert.Equal(t, model.CategoriaComunicado, created.Categoria)
	})
}

func TestService_DeletePost(t *testing.T) {
	post := &model.Comunicado{ID: "post-1", Titulo: "Aviso", UsuarioID: "dono-1"}

	t.Run("dono exclui o próprio comunicado", func(t *testing.T) {
		service, comunicados, _, _, cache := newTestService(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		comunicados.On("GetComunicadoByID", mock.Anything, "post-1").Return(post, nil).Once()
		comunicados.On("DeleteComunicado", mock.Anything, "post-1").Return(nil).Once()
		cache.On("Delete", mock.Anything, "mural:comunicados").Return(nil).Once()

		err := service.DeletePost(ctx, "dono-1", "post-1")

		require.NoError(t, err)
		comunicados.AssertExpectations(t)
	})

	t.Run("admin exclui comunicado de terceiro", func(t *testing.T) {
		service, comunicados, _, users, cache := newTestService(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		comunicados.On("GetComunicadoByID", mock.Anything, "post-1").Return(post, nil).Once()
		users.On("GetUserByID", mock.Anything, "admin-1").
			Return(&model.User{ID: "admin-1", IsAdmin: true}, nil).Once()
		comunicados.On("DeleteComunicado", mock.Anything, "post-1").Return(nil).Once()
		cache.On("Delete", mock.Anything, "mural:comunicados").Return(nil).Once()

		err := service.DeletePost(ctx, "admin-1", "post-1")

		require.NoError(t, err)
		comunicados.AssertExpectations(t)
	})

	t.Run("terceiro sem permissão é rejeitado", func(t *testing.T) {
		service, comunicados, _, users, _ := newTestService(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		comunicados.On("GetComunicadoByID", mock.Anything, "post-1").Return(post, nil).Once()
		users.On("GetUserByID", mock.Anything, "intruso-1").
			Return(&model.User{ID: "intruso-1", IsAdmin: false}, nil).Once()

		err := service.DeletePost(ctx, "intruso-1", "post-1")

		assert.ErrorIs(t, err, mural.ErrPermissaoNegada)
		comunicados.AssertNotCalled(t, "DeleteComunicado")
	})

	t.Run("comunicado inexistente", func(t *testing.T) {
		service, comunicados, _, _, _ := newTestService(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		comunicados.On("GetComunicadoByID", mock.Anything, "nada").
			Return(nil, repository.ErrComunicadoNotFound).Once()

		err := service.DeletePost(ctx, "dono-1", "nada")

		assert.ErrorIs(t, err, repository.ErrComunicadoNotFound)
	})
}

func TestService_AddComment(t *testing.T) {
	t.Run("comentário válido é criado", func(t *testing.T) {
		service, comunicados, _, _, _ := newTestService(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		comunicados.On("CreateComentario", mock.Anything, mock.AnythingOfType("*model.ComentarioEntity")).
			Return(nil).Once()

		comentario, err := service.AddComment(ctx, "user-1", "post-1", "Obrigado pelo aviso!")

		require.NoError(t, err)
		assert.Equal(t, "post-1", comentario.ComunicadoID)
		assert.Equal(t, "user-1", comentario.UsuarioID)
		assert.NotEmpty(t, comentario.ID)
	})

	t.Run("comentário vazio é rejeitado", func(t *testing.T) {
		service, comunicados, _, _, _ := newTestService(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		comentario, err := service.AddComment(ctx, "user-1", "post-1", "   ")

		assert.ErrorIs(t, err, model.ErrConteudoInvalido)
		assert.Nil(t, comentario)
		comunicados.AssertNotCalled(t, "CreateComentario")
	})

	t.Run("comunicado inexistente propaga o erro do repositório", func(t *testing.T) {
		service, comunicados, _, _, _ := newTestService(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		comunicados.On("CreateComentario", mock.Anything, mock.AnythingOfType("*model.ComentarioEntity")).
			Return(repository.ErrComunicadoNotFound).Once()

		_, err := service.AddComment(ctx, "user-1", "fantasma", "Comentário em post inexistente")

		assert.ErrorIs(t, err, repository.ErrComunicadoNotFound)
	})
}

func TestService_DeleteComment(t *testing.T) {
	comentario := &model.Comentario{ID: "c-1", UsuarioID: "autor-1", ComunicadoID: "post-1"}

	t.Run("autor remove o próprio comentário", func(t *testing.T) {
		service, comunicados, _, _, _ := newTestService(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		comunicados.On("GetComentarioByID", mock.Anything, "c-1").Return(comentario, nil).Once()
		comunicados.On("DeleteComentario", mock.Anything, "c-1").Return(nil).Once()

		require.NoError(t, service.DeleteComment(ctx, "autor-1", "c-1"))
		comunicados.AssertExpectations(t)
	})

	t.Run("terceiro comum não remove comentário alheio", func(t *testing.T) {
		service, comunicados, _, users, _ := newTestService(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		comunicados.On("GetComentarioByID", mock.Anything, "c-1").Return(comentario, nil).Once()
		users.On("GetUserByID", mock.Anything, "outro-1").
			Return(&model.User{ID: "outro-1", IsAdmin: false}, nil).Once()

		err := service.DeleteComment(ctx, "outro-1", "c-1")

		assert.ErrorIs(t, err, mural.ErrPermissaoNegada)
		comunicados.AssertNotCalled(t, "DeleteComentario")
	})
}

func TestService_ToggleReaction(t *testing.T) {
	t.Run("tipo inválido nunca chega ao repositório", func(t *testing.T) {
		service, _, reacoes, _, _ := newTestService(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		state, err := service.ToggleReaction(ctx, "user-1", "post-1", "amei")

		assert.ErrorIs(t, err, model.ErrTipoReacao)
		assert.Nil(t, state)
		reacoes.AssertNotCalled(t, "Toggle")
	})

	t.Run("delega o ciclo ao repositório e devolve o estado", func(t *testing.T) {
		service, _, reacoes, _, _ := newTestService(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		expected := &model.ReactionState{Current: model.ReacaoLike, Likes: 3, Dislikes: 1}
		reacoes.On("Toggle", mock.Anything, "user-1", "post-1", model.ReacaoLike).
			Return(expected, nil).Once()

		state, err := service.ToggleReaction(ctx, "user-1", "post-1", model.ReacaoLike)

		require.NoError(t, err)
		assert.Equal(t, expected, state)
		reacoes.AssertExpectations(t)
	})

	t.Run("erro do repositório é propagado", func(t *testing.T) {
		service, _, reacoes, _, _ := newTestService(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		reacoes.On("Toggle", mock.Anything, "user-1", "fantasma", model.ReacaoDislike).
			Return(nil, repository.ErrComunicadoNotFound).Once()

		_, err := service.ToggleReaction(ctx, "user-1", "fantasma", model.ReacaoDislike)

		assert.ErrorIs(t, err, repository.ErrComunicadoNotFound)
	})
}

func TestService_ListPosts(t *testing.T) {
	expected := []*model.Comunicado{
		{ID: "post-2", Titulo: "Mais novo"},
		{ID: "post-1", Titulo: "Mais antigo"},
	}

	t.Run("cache miss busca do repositório e preenche o cache", func(t *testing.T) {
		service, comunicados, _, _, cache := newTestService(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		cache.On("Get", mock.Anything, "mural:comunicados", mock.AnythingOfType("*[]*model.Comunicado")).
			Return(false, nil).Once()
		comunicados.On("ListComunicados", mock.Anything, 0).Return(expected, nil).Once()
		cache.On("Set", mock.Anything, "mural:comunicados", expected, 1*time.Minute).
			Return(nil).Once()

		posts, err := service.ListPosts(ctx, 0)

		require.NoError(t, err)
		assert.Equal(t, expected, posts)
		cache.AssertExpectations(t)
		comunicados.AssertExpectations(t)
	})

	t.Run("listagem com limite ignora o cache", func(t *testing.T) {
		service, comunicados, _, _, cache := newTestService(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		comunicados.On("ListComunicados", mock.Anything, 5).Return(expected[:1], nil).Once()

		posts, err := service.ListPosts(ctx, 5)

		require.NoError(t, err)
		assert.Len(t, posts, 1)
		cache.AssertNotCalled(t, "Get")
		cache.AssertNotCalled(t, "Set")
	})

	t.Run("erro de cache não impede a listagem", func(t *testing.T) {
		service, comunicados, _, _, cache := newTestService(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		cache.On("Get", mock.Anything, "mural:comunicados", mock.AnythingOfType("*[]*model.Comunicado")).
			Return(false, errors.New("redis indisponível")).Once()
		comunicados.On("ListComunicados", mock.Anything, 0).Return(expected, nil).Once()
		cache.On("Set", mock.Anything, "mural:comunicados", expected, 1*time.Minute).
			Return(nil).Once()

		posts, err := service.ListPosts(ctx, 0)

		require.NoError(t, err)
		assert.Equal(t, expected, posts)
	})
}

func TestService_GetPost(t *testing.T) {
	service, comunicados, reacoes, _, _ := newTestService(t)
	ctx, cancel := testutils.ContextWithTimeout(t)
	defer cancel()

	post := &model.Comunicado{ID: "post-1", Titulo: "Aviso", UsuarioID: "dono-1"}
	comentarios := []*model.Comentario{
		{ID: "c-1", Conteudo: "Primeiro", ComunicadoID: "post-1"},
		{ID: "c-2", Conteudo: "Segundo", ComunicadoID: "post-1"},
	}

	comunicados.On("GetComunicadoByID", mock.Anything, "post-1").Return(post, nil).Once()
	comunicados.On("ListComentarios", mock.Anything, "post-1").Return(comentarios, nil).Once()
	reacoes.On("CountByComunicado", mock.Anything, "post-1").
		Return(int64(4), int64(2), nil).Once()

	detail, err := service.GetPost(ctx, "post-1")

	require.NoError(t, err)
	assert.Equal(t, post, detail.Comunicado)
	assert.Len(t, detail.Comentarios, 2)
	assert.Equal(t, int64(4), detail.Likes)
	assert.Equal(t, int64(2), detail.Dislikes)
}

func TestService_DeleteUser(t *testing.T) {
	t.Run("apenas administradores excluem contas", func(t *testing.T) {
		service, _, _, users, _ := newTestService(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		users.On("GetUserByID", mock.Anything, "user-1").
			Return(&model.User{ID: "user-1", IsAdmin: false}, nil).Once()

		err := service.DeleteUser(ctx, "user-1", "outro-1")

		assert.ErrorIs(t, err, mural.ErrPermissaoNegada)
		users.AssertNotCalled(t, "DeleteUser")
	})

	t.Run("admin exclui conta e invalida o cache da lista", func(t *testing.T) {
		service, _, _, users, cache := newTestService(t)
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		users.On("GetUserByID", mock.Anything, "admin-1").
			Return(&model.User{ID: "admin-1", IsAdmin: true}, nil).Once()
		users.On("DeleteUser", mock.Anything, "user-1").Return(nil).Once()
		cache.On("Delete", mock.Anything, "mural:comunicados").Return(nil).Once()

		require.NoError(t, service.DeleteUser(ctx, "admin-1", "user-1"))
		users.AssertExpectations(t)
		cache.AssertExpectations(t)
	})
}
