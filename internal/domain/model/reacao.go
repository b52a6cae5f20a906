package model

import "time"

// Tipos reconhecidos de reação
const (
	ReacaoLike    = "like"
	ReacaoDislike = "dislike"
	ReacaoNenhuma = "nenhuma"
)

// ReacaoEntity é a representação de banco de dados de uma reação.
// O índice único composto (usuario_id, comunicado_id) garante no máximo
// uma reação por usuário em cada comunicado, mesmo sob requisições
// concorrentes que passem pela verificação de aplicação.
type ReacaoEntity struct {
	ID           string    `gorm:"primaryKey;type:uuid"`
	Tipo         string    `gorm:"not null;size:10"`
	UsuarioID    string    `gorm:"not null;type:uuid;uniqueIndex:idx_reacao_usuario_comunicado"`
	ComunicadoID string    `gorm:"not null;type:uuid;uniqueIndex:idx_reacao_usuario_comunicado"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

// TableName define o nome da tabela
func (ReacaoEntity) TableName() string {
	return "reacoes"
}

// ReactionState é o estado resultante de um toggle de reação: a reação
// atual do usuário no comunicado e as contagens agregadas de todos os usuários.
type ReactionState struct {
	Current  string `json:"current"`
	Likes    int64  `json:"likes"`
	Dislikes int64  `json:"dislikes"`
}

// TipoReacaoValido verifica se o tipo informado é um dos dois reconhecidos
func TipoReacaoValido(tipo string) bool {
	return tipo == ReacaoLike || tipo == ReacaoDislike
}
