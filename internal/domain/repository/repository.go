package repository

import (
	"context"
	"errors"

	"github.com/rlirio/mural-digital/internal/domain/model"
)

var (
	ErrComunicadoNotFound = errors.New("comunicado não encontrado")
	ErrComentarioNotFound = errors.New("comentário não encontrado")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrUserExists         = errors.New("nome de usuário já existe")
)

// ComunicadoRepository define a interface para armazenamento de comunicados
// e seus comentários
type ComunicadoRepository interface {
	// CreateComunicado insere um novo comunicado
	CreateComunicado(ctx context.Context, c *model.ComunicadoEntity) error

	// GetComunicadoByID obtém um comunicado pelo id
	GetComunicadoByID(ctx context.Context, id string) (*model.Comunicado, error)

	// ListComunicados retorna os comunicados mais recentes primeiro
	ListComunicados(ctx context.Context, limit int) ([]*model.Comunicado, error)

	// DeleteComunicado remove o comunicado e, na mesma transação,
	// todos os comentários e reações que o referenciam
	DeleteComunicado(ctx context.Context, id string) error

	// CreateComentario insere um comentário em um comunicado existente
	CreateComentario(ctx context.Context, c *model.ComentarioEntity) error

	// GetComentarioByID obtém um comentário pelo id
	GetComentarioByID(ctx context.Context, id string) (*model.Comentario, error)

	// ListComentarios retorna os comentários de um comunicado, mais antigos primeiro
	ListComentarios(ctx context.Context, comunicadoID string) ([]*model.Comentario, error)

	// DeleteComentario remove um comentário individual
	DeleteComentario(ctx context.Context, id string) error
}

// ReacaoRepository define a interface para o armazenamento de reações
type ReacaoRepository interface {
	// Toggle executa o ciclo de três estados para (usuário, comunicado):
	// sem reação -> insere; mesma reação -> remove; reação diferente -> troca.
	// Tudo em uma única transação, retornando o estado resultante.
	Toggle(ctx context.Context, usuarioID, comunicadoID, tipo string) (*model.ReactionState, error)

	// CountByComunicado retorna as contagens de likes e dislikes de um comunicado
	CountByComunicado(ctx context.Context, comunicadoID string) (likes, dislikes int64, err error)
}

// UserRepository define a interface para acesso a dados de usuário
type UserRepository interface {
	CreateUser(ctx context.Context, u *model.UserEntity) error
	GetUserByCredentials(ctx context.Context, username, password string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)

	// DeleteUser remove o usuário e, na mesma transação, todos os comunicados
	// que ele possui (com seus comentários e reações) além dos comentários e
	// reações do próprio usuário em comunicados de terceiros
	DeleteUser(ctx context.Context, id string) error
}
