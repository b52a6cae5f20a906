package model

import (
	"strings"
	"time"
)

// Prioridades reconhecidas de um comunicado
const (
	PrioridadeAlta   = "alta"
	PrioridadeNormal = "normal"
	PrioridadeBaixa  = "baixa"
)

// Categorias reconhecidas de um comunicado
const (
	CategoriaComunicado  = "comunicado"
	CategoriaAtualizacao = "atualizacao"
	CategoriaCampanha    = "campanha"
)

const (
	TituloMinLen   = 3
	ConteudoMinLen = 10
)

// Comunicado representa um comunicado publicado no mural
type Comunicado struct {
	ID             string    `json:"id"`
	Titulo         string    `json:"titulo"`
	Conteudo       string    `json:"conteudo"`
	DataPublicacao time.Time `json:"data_publicacao"`
	Prioridade     string    `json:"prioridade"`
	Categoria      string    `json:"categoria"`
	UsuarioID      string    `json:"usuario_id"`
}

// ComunicadoEntity é a representação de banco de dados de um comunicado
type ComunicadoEntity struct {
	ID             string    `gorm:"primaryKey;type:uuid"`
	Titulo         string    `gorm:"not null;size:100"`
	Conteudo       string    `gorm:"not null;type:text"`
	DataPublicacao time.Time `gorm:"not null;autoCreateTime"`
	Prioridade     string    `gorm:"not null;default:normal;size:20"`
	Categoria      string    `gorm:"not null;default:comunicado;size:50"`
	UsuarioID      string    `gorm:"not null;type:uuid;index"`
}

// TableName define o nome da tabela
func (ComunicadoEntity) TableName() string {
	return "comunicados"
}

// ToModel converte a entidade para o modelo exposto pela API
func (c *ComunicadoEntity) ToModel() *Comunicado {
	return &Comunicado{
		ID:             c.ID,
		Titulo:         c.Titulo,
		Conteudo:       c.Conteudo,
		DataPublicacao: c.DataPublicacao,
		Prioridade:     c.Prioridade,
		Categoria:      c.Categoria,
		UsuarioID:      c.UsuarioID,
	}
}

// NormalizarPrioridade converte a entrada para uma prioridade reconhecida.
// Valores desconhecidos caem silenciosamente para "normal".
func NormalizarPrioridade(p string) string {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case PrioridadeAlta:
		return PrioridadeAlta
	case PrioridadeBaixa:
		return PrioridadeBaixa
	default:
		return PrioridadeNormal
	}
}

// NormalizarCategoria converte a entrada para uma categoria reconhecida.
// Valores desconhecidos caem silenciosamente para "comunicado".
func NormalizarCategoria(c string) string {
	switch strings.ToLower(strings.TrimSpace(c)) {
	case CategoriaAtualizacao:
		return CategoriaAtualizacao
	case CategoriaCampanha:
		return CategoriaCampanha
	default:
		return CategoriaComunicado
	}
}

// ValidarComunicado verifica os campos obrigatórios antes de qualquer escrita
func ValidarComunicado(titulo, conteudo string) error {
	if len(strings.TrimSpace(titulo)) < TituloMinLen {
		return ErrTituloInvalido
	}
	if len(strings.TrimSpace(conteudo)) < ConteudoMinLen {
		return ErrConteudoInvalido
	}
	return nil
}
