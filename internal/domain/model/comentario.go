package model

import (
	"strings"
	"time"
)

// Comentario representa um comentário em um comunicado
type Comentario struct {
	ID           string    `json:"id"`
	Conteudo     string    `json:"conteudo"`
	DataCriacao  time.Time `json:"data_criacao"`
	UsuarioID    string    `json:"usuario_id"`
	ComunicadoID string    `json:"comunicado_id"`
}

// ComentarioEntity é a representação de banco de dados de um comentário
type ComentarioEntity struct {
	ID           string    `gorm:"primaryKey;type:uuid"`
	Conteudo     string    `gorm:"not null;type:text"`
	DataCriacao  time.Time `gorm:"not null;autoCreateTime"`
	UsuarioID    string    `gorm:"not null;type:uuid;index"`
	ComunicadoID string    `gorm:"not null;type:uuid;index"`
}

// TableName define o nome da tabela
func (ComentarioEntity) TableName() string {
	return "comentarios"
}

// ToModel converte a entidade para o modelo exposto pela API
func (c *ComentarioEntity) ToModel() *Comentario {
	return &Comentario{
		ID:           c.ID,
		Conteudo:     c.Conteudo,
		DataCriacao:  c.DataCriacao,
		UsuarioID:    c.UsuarioID,
		ComunicadoID: c.ComunicadoID,
	}
}

// ValidarComentario verifica o conteúdo antes de qualquer escrita
func ValidarComentario(conteudo string) error {
	if strings.TrimSpace(conteudo) == "" {
		return ErrConteudoInvalido
	}
	return nil
}
