package database

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rlirio/mural-digital/internal/domain/model"
)

// setupTestDB abre um banco SQLite em memória com o schema completo
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "falha ao abrir SQLite em memória")

	err = db.AutoMigrate(
		&model.UserEntity{},
		&model.ComunicadoEntity{},
		&model.ComentarioEntity{},
		&model.ReacaoEntity{},
	)
	require.NoError(t, err, "falha ao migrar schema de teste")

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, isAdmin bool) *model.UserEntity {
	t.Helper()

	u := &model.UserEntity{
		ID:       uuid.New().String(),
		Username: username,
		Password: "hash-irrelevante",
		Nome:     username,
		IsAdmin:  isAdmin,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedComunicado(t *testing.T, db *gorm.DB, usuarioID, titulo string) *model.ComunicadoEntity {
	t.Helper()

	c := &model.ComunicadoEntity{
		ID:         uuid.New().String(),
		Titulo:     titulo,
		Conteudo:   "Conteúdo de teste longo o bastante.",
		Prioridade: model.PrioridadeNormal,
		Categoria:  model.CategoriaComunicado,
		UsuarioID:  usuarioID,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func seedComentario(t *testing.T, db *gorm.DB, usuarioID, comunicadoID, conteudo string) *model.ComentarioEntity {
	t.Helper()

	c := &model.ComentarioEntity{
		ID:           uuid.New().String(),
		Conteudo:     conteudo,
		UsuarioID:    usuarioID,
		ComunicadoID: comunicadoID,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}
