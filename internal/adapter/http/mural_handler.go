package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rlirio/mural-digital/internal/app/mural"
	"github.com/rlirio/mural-digital/internal/domain/model"
	"github.com/rlirio/mural-digital/internal/domain/repository"
	"github.com/rlirio/mural-digital/internal/infra/metrics"
	"github.com/rlirio/mural-digital/internal/infra/middleware"
	apierrors "github.com/rlirio/mural-digital/pkg/errors"
)

// MuralHandler implementa os handlers do mural de comunicados
type MuralHandler struct {
	service *mural.Service
	logger  *zap.Logger
	metrics *metrics.MuralMetrics
}

// NewMuralHandler cria um novo handler do mural
func NewMuralHandler(service *mural.Service, logger *zap.Logger) *MuralHandler {
	return &MuralHandler{
		service: service,
		logger:  logger,
	}
}

// SetMetrics configura o objeto de métricas
func (h *MuralHandler) SetMetrics(metrics *metrics.MuralMetrics) {
	h.metrics = metrics
}

type createPostRequest struct {
	Titulo     string `json:"titulo" binding:"required"`
	Conteudo   string `json:"conteudo" binding:"required"`
	Prioridade string `json:"prioridade"`
	Categoria  string `json:"categoria"`
}

type addCommentRequest struct {
	Conteudo string `json:"conteudo" binding:"required"`
}

type toggleReactionRequest struct {
	Tipo string `json:"tipo" binding:"required"`
}

// ListPosts lista os comunicados do mural, mais recentes primeiro.
// Aceita ?limit=N para paginar.
func (h *MuralHandler) ListPosts(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.respondError(c, apierrors.Validation("Parâmetro 'limit' deve ser um inteiro não negativo", err))
			return
		}
		limit = parsed
	}

	posts, err := h.service.ListPosts(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("Falha ao listar comunicados", zap.Error(err))
		h.countError(c, "list_posts_error")
		h.respondError(c, apierrors.InternalServer("Falha ao listar comunicados", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"comunicados": posts, "total": len(posts)})
}

// GetPost retorna um comunicado com seus comentários e contagens de reação
func (h *MuralHandler) GetPost(c *gin.Context) {
	detail, err := h.service.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrComunicadoNotFound) {
			h.respondError(c, apierrors.NotFound("comunicado", err))
			return
		}
		h.logger.Error("Falha ao buscar comunicado", zap.String("id", c.Param("id")), zap.Error(err))
		h.countError(c, "get_post_error")
		h.respondError(c, apierrors.InternalServer("Falha ao buscar comunicado", err))
		return
	}

	c.JSON(http.StatusOK, detail)
}

// CreatePost publica um novo comunicado (apenas administradores)
func (h *MuralHandler) CreatePost(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		h.respondError(c, apierrors.Unauthorized("Autenticação necessária", nil))
		return
	}

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apierrors.Validation("Dados inválidos: "+err.Error(), err))
		return
	}

	post, err := h.service.CreatePost(c.Request.Context(), user.ID, req.Titulo, req.Conteudo, req.Prioridade, req.Categoria)
	if err != nil {
		switch {
		case errors.Is(err, mural.ErrPermissaoNegada):
			h.respondError(c, apierrors.Forbidden("Apenas administradores podem publicar comunicados", err))
		case errors.Is(err, model.ErrTituloInvalido), errors.Is(err, model.ErrConteudoInvalido):
			h.respondError(c, apierrors.Validation(err.Error(), err))
		default:
			h.logger.Error("Falha ao publicar comunicado", zap.Error(err))
			h.countError(c, "create_post_error")
			h.respondError(c, apierrors.InternalServer("Falha ao publicar comunicado", err))
		}
		return
	}

	c.JSON(http.StatusCreated, post)
}

// DeletePost remove um comunicado junto com comentários e reações
// associados. Permitido ao dono do comunicado e a administradores.
func (h *MuralHandler) DeletePost(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		h.respondError(c, apierrors.Unauthorized("Autenticação necessária", nil))
		return
	}

	if err := h.service.DeletePost(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, repository.ErrComunicadoNotFound):
			h.respondError(c, apierrors.NotFound("comunicado", err))
		case errors.Is(err, mural.ErrPermissaoNegada):
			h.respondError(c, apierrors.Forbidden("Sem permissão para excluir este comunicado", err))
		default:
			h.logger.Error("Falha ao excluir comunicado", zap.String("id", c.Param("id")), zap.Error(err))
			h.countError(c, "delete_post_error")
			h.respondError(c, apierrors.InternalServer("Falha ao excluir comunicado", err))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comunicado excluído com sucesso"})
}

// AddComment adiciona um comentário a um comunicado
func (h *MuralHandler) AddComment(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		h.respondError(c, apierrors.Unauthorized("Autenticação necessária", nil))
		return
	}

	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apierrors.Validation("Dados inválidos: "+err.Error(), err))
		return
	}

	comentario, err := h.service.AddComment(c.Request.Context(), user.ID, c.Param("id"), req.Conteudo)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrComunicadoNotFound):
			h.respondError(c, apierrors.NotFound("comunicado", err))
		case errors.Is(err, model.ErrConteudoInvalido):
			h.respondError(c, apierrors.Validation(err.Error(), err))
		default:
			h.logger.Error("Falha ao comentar", zap.String("comunicado_id", c.Param("id")), zap.Error(err))
			h.countError(c, "add_comment_error")
			h.respondError(c, apierrors.InternalServer("Falha ao adicionar comentário", err))
		}
		return
	}

	c.JSON(http.StatusCreated, comentario)
}

// DeleteComment remove um comentário. Permitido ao autor e a administradores.
func (h *MuralHandler) DeleteComment(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		h.respondError(c, apierrors.Unauthorized("Autenticação necessária", nil))
		return
	}

	if err := h.service.DeleteComment(c.Request.Context(), user.ID, c.Param("commentID")); err != nil {
		switch {
		case errors.Is(err, repository.ErrComentarioNotFound):
			h.respondError(c, apierrors.NotFound("comentário", err))
		case errors.Is(err, mural.ErrPermissaoNegada):
			h.respondError(c, apierrors.Forbidden("Sem permissão para excluir este comentário", err))
		default:
			h.logger.Error("Falha ao excluir comentário", zap.String("id", c.Param("commentID")), zap.Error(err))
			h.countError(c, "delete_comment_error")
			h.respondError(c, apierrors.InternalServer("Falha ao excluir comentário", err))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comentário excluído com sucesso"})
}

// ToggleReaction alterna a reação do usuário sobre um comunicado.
// Repetir o mesmo tipo remove a reação; um tipo diferente substitui a atual.
func (h *MuralHandler) ToggleReaction(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		h.respondError(c, apierrors.Unauthorized("Autenticação necessária", nil))
		return
	}

	var req toggleReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apierrors.Validation("Dados inválidos: "+err.Error(), err))
		return
	}

	state, err := h.service.ToggleReaction(c.Request.Context(), user.ID, c.Param("id"), req.Tipo)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrComunicadoNotFound):
			h.respondError(c, apierrors.NotFound("comunicado", err))
		case errors.Is(err, model.ErrTipoReacao):
			h.respondError(c, apierrors.Validation("Tipo de reação deve ser 'like' ou 'dislike'", err))
		default:
			h.logger.Error("Falha ao registrar reação",
				zap.String("comunicado_id", c.Param("id")),
				zap.String("tipo", req.Tipo),
				zap.Error(err))
			h.countError(c, "toggle_reaction_error")
			h.respondError(c, apierrors.InternalServer("Falha ao registrar reação", err))
		}
		return
	}

	c.JSON(http.StatusOK, state)
}

// CountReactions retorna apenas as contagens de like/dislike de um comunicado
func (h *MuralHandler) CountReactions(c *gin.Context) {
	likes, dislikes, err := h.service.CountReactions(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrComunicadoNotFound) {
			h.respondError(c, apierrors.NotFound("comunicado", err))
			return
		}
		h.logger.Error("Falha ao contar reações", zap.String("id", c.Param("id")), zap.Error(err))
		h.countError(c, "count_reactions_error")
		h.respondError(c, apierrors.InternalServer("Falha ao contar reações", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": likes, "dislikes": dislikes})
}

func (h *MuralHandler) respondError(c *gin.Context, apiErr *apierrors.APIError) {
	c.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
}

func (h *MuralHandler) countError(c *gin.Context, kind string) {
	if h.metrics != nil {
		h.metrics.RequestError(c.FullPath(), c.Request.Method, kind)
	}
}
