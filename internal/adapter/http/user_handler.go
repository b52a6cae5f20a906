package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rlirio/mural-digital/internal/app/auth"
	"github.com/rlirio/mural-digital/internal/app/mural"
	"github.com/rlirio/mural-digital/internal/domain/repository"
	"github.com/rlirio/mural-digital/internal/infra/middleware"
)

// UserHandler implementa os handlers de contas do mural
type UserHandler struct {
	authService  *auth.AuthService
	muralService *mural.Service
	logger       *zap.Logger
}

// NewUserHandler cria um novo handler de usuários
func NewUserHandler(authService *auth.AuthService, muralService *mural.Service, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		authService:  authService,
		muralService: muralService,
		logger:       logger,
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Nome     string `json:"nome"`
	IsAdmin  bool   `json:"is_admin"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register cria uma nova conta. A rota é protegida por AuthenticateAdmin,
// então apenas administradores chegam aqui.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Username, req.Password, req.Nome, req.IsAdmin)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserExists):
			c.JSON(http.StatusConflict, gin.H{"error": "Nome de usuário já existe"})
		case errors.Is(err, auth.ErrSenhaCurta):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Falha ao registrar usuário", zap.String("username", req.Username), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao registrar usuário"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Usuário registrado com sucesso",
		"user":    user,
	})
}

// Login autentica o usuário e retorna um token JWT
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos: " + err.Error()})
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciais inválidas"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// Me retorna os dados do usuário autenticado
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Autenticação necessária"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser remove uma conta e todo o conteúdo publicado por ela.
// Apenas administradores; a rota é protegida por AuthenticateAdmin.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Autenticação necessária"})
		return
	}

	if err := h.muralService.DeleteUser(c.Request.Context(), actor.ID, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
		case errors.Is(err, mural.ErrPermissaoNegada):
			c.JSON(http.StatusForbidden, gin.H{"error": "Apenas administradores podem excluir contas"})
		default:
			h.logger.Error("Falha ao excluir usuário", zap.String("id", c.Param("id")), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao excluir usuário"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Usuário excluído com sucesso"})
}
