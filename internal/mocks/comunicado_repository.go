package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rlirio/mural-digital/internal/domain/model"
)

// MockComunicadoRepository é um mock para o repository.ComunicadoRepository
type MockComunicadoRepository struct {
	mock.Mock
}

func (m *MockComunicadoRepository) CreateComunicado(ctx context.Context, c *model.ComunicadoEntity) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockComunicadoRepository) GetComunicadoByID(ctx context.Context, id string) (*model.Comunicado, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comunicado), args.Error(1)
}

func (m *MockComunicadoRepository) ListComunicados(ctx context.Context, limit int) ([]*model.Comunicado, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Comunicado), args.Error(1)
}

func (m *MockComunicadoRepository) DeleteComunicado(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockComunicadoRepository) CreateComentario(ctx context.Context, c *model.ComentarioEntity) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockComunicadoRepository) GetComentarioByID(ctx context.Context, id string) (*model.Comentario, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comentario), args.Error(1)
}

func (m *MockComunicadoRepository) ListComentarios(ctx context.Context, comunicadoID string) ([]*model.Comentario, error) {
	args := m.Called(ctx, comunicadoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Comentario), args.Error(1)
}

func (m *MockComunicadoRepository) DeleteComentario(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
