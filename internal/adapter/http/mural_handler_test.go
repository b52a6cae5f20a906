package http_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	muralhttp "github.com/rlirio/mural-digital/internal/adapter/http"
	"github.com/rlirio/mural-digital/internal/app/mural"
	"github.com/rlirio/mural-digital/internal/domain/model"
	"github.com/rlirio/mural-digital/internal/domain/repository"
	"github.com/rlirio/mural-digital/internal/mocks"
	"github.com/rlirio/mural-digital/internal/testutils"
)

type handlerFixture struct {
	router      *gin.Engine
	comunicados *mocks.MockComunicadoRepository
	reacoes     *mocks.MockReacaoRepository
	users       *mocks.MockUserRepository
	cache       *mocks.MockCache
}

// setupHandler monta o handler sobre um service com repositórios mockados.
// O usuário informado é injetado no contexto como se tivesse passado pela
// autenticação.
func setupHandler(t *testing.T, user *model.User) *handlerFixture {
	t.Helper()

	f := &handlerFixture{
		comunicados: new(mocks.MockComunicadoRepository),
		reacoes:     new(mocks.MockReacaoRepository),
		users:       new(mocks.MockUserRepository),
		cache:       new(mocks.MockCache),
	}

	logger := testutils.TestLogger(t)
	service := mural.NewService(f.comunicados, f.reacoes, f.users, f.cache, nil, logger)
	handler := muralhttp.NewMuralHandler(service, logger)

	f.router = testutils.SetupTestRouter(t)
	if user != nil {
		f.router.Use(func(c *gin.Context) {
			c.Set("user", user)
			c.Next()
		})
	}

	f.router.GET("/comunicados", handler.ListPosts)
	f.router.GET("/comunicados/:id", handler.GetPost)
	f.router.GET("/comunicados/:id/reacoes", handler.CountReactions)
	f.router.POST("/comunicados", handler.CreatePost)
	f.router.DELETE("/comunicados/:id", handler.DeletePost)
	f.router.POST("/comunicados/:id/comentarios", handler.AddComment)
	f.router.DELETE("/comentarios/:commentID", handler.DeleteComment)
	f.router.POST("/comunicados/:id/reacoes", handler.ToggleReaction)

	return f
}

func TestMuralHandler_ListPosts(t *testing.T) {
	f := setupHandler(t, nil)

	posts := []*model.Comunicado{
		{ID: "post-1", Titulo: "Aviso"},
	}
	f.cache.On("Get", mock.Anything, "mural:comunicados", mock.Anything).Return(false, nil).Once()
	f.comunicados.On("ListComunicados", mock.Anything, 0).Return(posts, nil).Once()
	f.cache.On("Set", mock.Anything, "mural:comunicados", posts, mock.Anything).Return(nil).Once()

	resp := testutils.MakeRequest(t, f.router, http.MethodGet, "/comunicados", nil, nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	var body struct {
		Comunicados []*model.Comunicado `json:"comunicados"`
		Total       int                 `json:"total"`
	}
	testutils.ParseResponse(t, resp, &body)
	assert.Equal(t, 1, body.Total)
	assert.Equal(t, "Aviso", body.Comunicados[0].Titulo)
}

func TestMuralHandler_ListPosts_LimitInvalido(t *testing.T) {
	f := setupHandler(t, nil)

	resp := testutils.MakeRequest(t, f.router, http.MethodGet, "/comunicados?limit=xyz", nil, nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	f.comunicados.AssertNotCalled(t, "ListComunicados")
}

func TestMuralHandler_GetPost_NaoEncontrado(t *testing.T) {
	f := setupHandler(t, nil)

	f.comunicados.On("GetComunicadoByID", mock.Anything, "fantasma").
		Return(nil, repository.ErrComunicadoNotFound).Once()

	resp := testutils.MakeRequest(t, f.router, http.MethodGet, "/comunicados/fantasma", nil, nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)
}

func TestMuralHandler_CreatePost(t *testing.T) {
	admin := &model.User{ID: "admin-1", Username: "admin", IsAdmin: true}

	t.Run("admin publica", func(t *testing.T) {
		f := setupHandler(t, admin)

		f.users.On("GetUserByID", mock.Anything, "admin-1").Return(admin, nil).Once()
		f.comunicados.On("CreateComunicado", mock.Anything, mock.Anything).Return(nil).Once()
		f.cache.On("Delete", mock.Anything, "mural:comunicados").Return(nil).Once()

		body := gin.H{"titulo": "Manutenção", "conteudo": "Sistema fora do ar no sábado.", "prioridade": "alta"}
		resp := testutils.MakeRequest(t, f.router, http.MethodPost, "/comunicados", body, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusCreated)

		var criado model.Comunicado
		testutils.ParseResponse(t, resp, &criado)
		assert.Equal(t, model.PrioridadeAlta, criado.Prioridade)
		assert.NotEmpty(t, criado.ID)
	})

	t.Run("usuário comum recebe 403", func(t *testing.T) {
		comum := &model.User{ID: "user-1", Username: "joao", IsAdmin: false}
		f := setupHandler(t, comum)

		f.users.On("GetUserByID", mock.Anything, "user-1").Return(comum, nil).Once()

		body := gin.H{"titulo": "Tentativa", "conteudo": "Conteúdo longo o bastante."}
		resp := testutils.MakeRequest(t, f.router, http.MethodPost, "/comunicados", body, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusForbidden)
		f.comunicados.AssertNotCalled(t, "CreateComunicado")
	})

	t.Run("sem usuário no contexto recebe 401", func(t *testing.T) {
		f := setupHandler(t, nil)

		body := gin.H{"titulo": "Aviso", "conteudo": "Conteúdo longo o bastante."}
		resp := testutils.MakeRequest(t, f.router, http.MethodPost, "/comunicados", body, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusUnauthorized)
	})

	t.Run("título inválido recebe 400", func(t *testing.T) {
		f := setupHandler(t, admin)

		f.users.On("GetUserByID", mock.Anything, "admin-1").Return(admin, nil).Once()

		body := gin.H{"titulo": "ab", "conteudo": "Conteúdo longo o bastante."}
		resp := testutils.MakeRequest(t, f.router, http.MethodPost, "/comunicados", body, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	})
}

func TestMuralHandler_ToggleReaction(t *testing.T) {
	leitor := &model.User{ID: "user-1", Username: "leitor"}

	t.Run("reação aplicada", func(t *testing.T) {
		f := setupHandler(t, leitor)

		f.reacoes.On("Toggle", mock.Anything, "user-1", "post-1", model.ReacaoLike).
			Return(&model.ReactionState{Current: model.ReacaoLike, Likes: 1}, nil).Once()

		body := gin.H{"tipo": "like"}
		resp := testutils.MakeRequest(t, f.router, http.MethodPost, "/comunicados/post-1/reacoes", body, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusOK)

		var state model.ReactionState
		testutils.ParseResponse(t, resp, &state)
		assert.Equal(t, model.ReacaoLike, state.Current)
		assert.Equal(t, int64(1), state.Likes)
	})

	t.Run("tipo desconhecido recebe 400", func(t *testing.T) {
		f := setupHandler(t, leitor)

		body := gin.H{"tipo": "amei"}
		resp := testutils.MakeRequest(t, f.router, http.MethodPost, "/comunicados/post-1/reacoes", body, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
		f.reacoes.AssertNotCalled(t, "Toggle")
	})

	t.Run("comunicado inexistente recebe 404", func(t *testing.T) {
		f := setupHandler(t, leitor)

		f.reacoes.On("Toggle", mock.Anything, "user-1", "fantasma", model.ReacaoDislike).
			Return(nil, repository.ErrComunicadoNotFound).Once()

		body := gin.H{"tipo": "dislike"}
		resp := testutils.MakeRequest(t, f.router, http.MethodPost, "/comunicados/fantasma/reacoes", body, nil)

		testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)
	})
}

func TestMuralHandler_AddComment(t *testing.T) {
	leitor := &model.User{ID: "user-1", Username: "leitor"}
	f := setupHandler(t, leitor)

	f.comunicados.On("CreateComentario", mock.Anything, mock.Anything).Return(nil).Once()

	body := gin.H{"conteudo": "Obrigado pelo aviso!"}
	resp := testutils.MakeRequest(t, f.router, http.MethodPost, "/comunicados/post-1/comentarios", body, nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)

	var criado model.Comentario
	testutils.ParseResponse(t, resp, &criado)
	require.Equal(t, "post-1", criado.ComunicadoID)
	require.Equal(t, "user-1", criado.UsuarioID)
}

func TestMuralHandler_DeletePost(t *testing.T) {
	dono := &model.User{ID: "dono-1", Username: "dono"}
	f := setupHandler(t, dono)

	f.comunicados.On("GetComunicadoByID", mock.Anything, "post-1").
		Return(&model.Comunicado{ID: "post-1", UsuarioID: "dono-1"}, nil).Once()
	f.comunicados.On("DeleteComunicado", mock.Anything, "post-1").Return(nil).Once()
	f.cache.On("Delete", mock.Anything, "mural:comunicados").Return(nil).Once()

	resp := testutils.MakeRequest(t, f.router, http.MethodDelete, "/comunicados/post-1", nil, nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	f.comunicados.AssertExpectations(t)
}
