package mural

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rlirio/mural-digital/internal/domain/model"
	"github.com/rlirio/mural-digital/internal/domain/repository"
	"github.com/rlirio/mural-digital/internal/infra/metrics"
	"github.com/rlirio/mural-digital/pkg/cache"
	"github.com/rlirio/mural-digital/pkg/logging"
)

// ErrPermissaoNegada indica que o ator não é dono do recurso nem administrador
var ErrPermissaoNegada = errors.New("acesso negado: apenas o dono ou um administrador")

const (
	cacheKeyComunicados = "mural:comunicados"
	cacheTTL            = 1 * time.Minute
)

// Service implementa as operações do mural sobre os repositórios
type Service struct {
	comunicados repository.ComunicadoRepository
	reacoes     repository.ReacaoRepository
	users       repository.UserRepository
	cache       cache.Cache
	metrics     *metrics.MuralMetrics
	logger      *logging.ContextLogger
}

// NewService cria um novo serviço do mural
func NewService(
	comunicados repository.ComunicadoRepository,
	reacoes repository.ReacaoRepository,
	users repository.UserRepository,
	cache cache.Cache,
	metrics *metrics.MuralMetrics,
	logger *zap.Logger,
) *Service {
	return &Service{
		comunicados: comunicados,
		reacoes:     reacoes,
		users:       users,
		cache:       cache,
		metrics:     metrics,
		logger:      logging.NewContextLogger(logger),
	}
}

// PostDetail agrega um comunicado com seus comentários e contagens de reação
type PostDetail struct {
	Comunicado  *model.Comunicado   `json:"comunicado"`
	Comentarios []*model.Comentario `json:"comentarios"`
	Likes       int64               `json:"likes"`
	Dislikes    int64               `json:"dislikes"`
}

// CreatePost publica um novo comunicado. Apenas administradores podem
// publicar; validação acontece antes de qualquer escrita. Prioridade e
// categoria desconhecidas caem silenciosamente para os valores padrão.
func (s *Service) CreatePost(ctx context.Context, ownerID, titulo, conteudo, prioridade, categoria string) (*model.Comunicado, error) {
	owner, err := s.users.GetUserByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !owner.IsAdmin {
		s.logger.WarnCtx(ctx, "tentativa de publicação por usuário não administrador",
			zap.String("usuario_id", ownerID))
		return nil, ErrPermissaoNegada
	}

	if err := model.ValidarComunicado(titulo, conteudo); err != nil {
		return nil, err
	}

	entity := &model.ComunicadoEntity{
		ID:         uuid.New().String(),
		Titulo:     titulo,
		Conteudo:   conteudo,
		Prioridade: model.NormalizarPrioridade(prioridade),
		Categoria:  model.NormalizarCategoria(categoria),
		UsuarioID:  ownerID,
	}

	if err := s.comunicados.CreateComunicado(ctx, entity); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)
	if s.metrics != nil {
		s.metrics.ComunicadoPublicado()
	}

	s.logger.InfoCtx(ctx, "comunicado publicado",
		zap.String("id", entity.ID),
		zap.String("prioridade", entity.Prioridade),
		zap.String("categoria", entity.Categoria))

	return entity.ToModel(), nil
}

// DeletePost exclui um comunicado com todos os seus comentários e reações.
// Permitido apenas ao dono ou a um administrador.
func (s *Service) DeletePost(ctx context.Context, actorID, postID string) error {
	post, err := s.comunicados.GetComunicadoByID(ctx, postID)
	if err != nil {
		return err
	}

	ok, err := s.IsOwnerOrAdmin(ctx, actorID, post.UsuarioID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPermissaoNegada
	}

	if err := s.comunicados.DeleteComunicado(ctx, postID); err != nil {
		return err
	}

	s.invalidateListCache(ctx)
	s.logger.InfoCtx(ctx, "comunicado removido",
		zap.String("id", postID),
		zap.String("actor_id", actorID))
	return nil
}

// AddComment adiciona um comentário a um comunicado existente
func (s *Service) AddComment(ctx context.Context, ownerID, postID, conteudo string) (*model.Comentario, error) {
	if err := model.ValidarComentario(conteudo); err != nil {
		return nil, err
	}

	entity := &model.ComentarioEntity{
		ID:           uuid.New().String(),
		Conteudo:     conteudo,
		UsuarioID:    ownerID,
		ComunicadoID: postID,
	}

	if err := s.comunicados.CreateComentario(ctx, entity); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ComentarioCriado()
	}

	return entity.ToModel(), nil
}

// DeleteComment exclui um comentário individual. Permitido apenas ao autor
// ou a um administrador.
func (s *Service) DeleteComment(ctx context.Context, actorID, commentID string) error {
	comentario, err := s.comunicados.GetComentarioByID(ctx, commentID)
	if err != nil {
		return err
	}

	ok, err := s.IsOwnerOrAdmin(ctx, actorID, comentario.UsuarioID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPermissaoNegada
	}

	return s.comunicados.DeleteComentario(ctx, commentID)
}

// ToggleReaction aplica o ciclo de três estados da reação e retorna o novo
// estado do usuário no comunicado junto com as contagens agregadas
func (s *Service) ToggleReaction(ctx context.Context, userID, postID, tipo string) (*model.ReactionState, error) {
	if !model.TipoReacaoValido(tipo) {
		return nil, model.ErrTipoReacao
	}

	state, err := s.reacoes.Toggle(ctx, userID, postID, tipo)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		resultado := "aplicada"
		if state.Current == model.ReacaoNenhuma {
			resultado = "removida"
		}
		s.metrics.ReacaoRegistrada(tipo, resultado)
	}

	return state, nil
}

// ListPosts retorna os comunicados mais recentes primeiro
func (s *Service) ListPosts(ctx context.Context, limit int) ([]*model.Comunicado, error) {
	var comunicados []*model.Comunicado

	// A lista completa (sem limite) é servida do cache quando possível;
	// contagens de reação nunca passam por aqui
	if limit <= 0 {
		found, err := s.cache.Get(ctx, cacheKeyComunicados, &comunicados)
		if err != nil {
			s.logger.WarnCtx(ctx, "erro ao buscar comunicados do cache", zap.Error(err))
		} else if found {
			return comunicados, nil
		}
	}

	comunicados, err := s.comunicados.ListComunicados(ctx, limit)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		if err := s.cache.Set(ctx, cacheKeyComunicados, comunicados, cacheTTL); err != nil {
			s.logger.WarnCtx(ctx, "erro ao armazenar comunicados no cache", zap.Error(err))
		}
	}

	return comunicados, nil
}

// GetPost retorna um comunicado com seus comentários e contagens de reação.
// As contagens são sempre lidas do banco para refletir o estado confirmado.
func (s *Service) GetPost(ctx context.Context, postID string) (*PostDetail, error) {
	post, err := s.comunicados.GetComunicadoByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comentarios, err := s.comunicados.ListComentarios(ctx, postID)
	if err != nil {
		return nil, err
	}

	likes, dislikes, err := s.reacoes.CountByComunicado(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &PostDetail{
		Comunicado:  post,
		Comentarios: comentarios,
		Likes:       likes,
		Dislikes:    dislikes,
	}, nil
}

// CountReactions retorna as contagens de likes e dislikes de um comunicado
func (s *Service) CountReactions(ctx context.Context, postID string) (int64, int64, error) {
	return s.reacoes.CountByComunicado(ctx, postID)
}

// IsOwnerOrAdmin verifica se o ator é o dono do recurso ou um administrador
func (s *Service) IsOwnerOrAdmin(ctx context.Context, actorID, ownerID string) (bool, error) {
	if actorID == ownerID {
		return true, nil
	}

	actor, err := s.users.GetUserByID(ctx, actorID)
	if err != nil {
		return false, err
	}

	return actor.IsAdmin, nil
}

// DeleteUser exclui uma conta e tudo que ela possui. Apenas administradores.
func (s *Service) DeleteUser(ctx context.Context, actorID, userID string) error {
	actor, err := s.users.GetUserByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin {
		return ErrPermissaoNegada
	}

	if err := s.users.DeleteUser(ctx, userID); err != nil {
		return err
	}

	s.invalidateListCache(ctx)
	s.logger.InfoCtx(ctx, "usuário removido",
		zap.String("id", userID),
		zap.String("actor_id", actorID))
	return nil
}

func (s *Service) invalidateListCache(ctx context.Context) {
	if err := s.cache.Delete(ctx, cacheKeyComunicados); err != nil {
		s.logger.WarnCtx(ctx, "erro ao invalidar cache de comunicados", zap.Error(err))
	}
}
