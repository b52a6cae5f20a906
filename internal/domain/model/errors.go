package model

import "errors"

// Erros de validação do domínio
var (
	ErrTituloInvalido   = errors.New("título deve ter pelo menos 3 caracteres")
	ErrConteudoInvalido = errors.New("conteúdo não pode ser vazio")
	ErrTipoReacao       = errors.New("tipo de reação deve ser like ou dislike")
)
