package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rlirio/mural-digital/internal/domain/model"
)

// MockReacaoRepository é um mock para o repository.ReacaoRepository
type MockReacaoRepository struct {
	mock.Mock
}

func (m *MockReacaoRepository) Toggle(ctx context.Context, usuarioID, comunicadoID, tipo string) (*model.ReactionState, error) {
	args := m.Called(ctx, usuarioID, comunicadoID, tipo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReactionState), args.Error(1)
}

func (m *MockReacaoRepository) CountByComunicado(ctx context.Context, comunicadoID string) (int64, int64, error) {
	args := m.Called(ctx, comunicadoID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}
