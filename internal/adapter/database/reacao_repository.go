package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rlirio/mural-digital/internal/domain/model"
	"github.com/rlirio/mural-digital/internal/domain/repository"
)

// ReacaoRepository implementa repository.ReacaoRepository
type ReacaoRepository struct {
	db     *gorm.DB
	logger *zap.Logger
	tracer trace.Tracer
}

// NewReacaoRepository cria um novo repositório de reações
func NewReacaoRepository(db *gorm.DB, logger *zap.Logger) repository.ReacaoRepository {
	tracer := otel.GetTracerProvider().Tracer("mural-digital.repository.reacao")

	return &ReacaoRepository{
		db:     db,
		logger: logger,
		tracer: tracer,
	}
}

// Toggle executa o ciclo de três estados da reação em uma única transação.
// A linha existente é lida com bloqueio de escrita e o índice único em
// (usuario_id, comunicado_id) impede que duas requisições concorrentes do
// mesmo usuário insiram linhas duplicadas.
func (r *ReacaoRepository) Toggle(ctx context.Context, usuarioID, comunicadoID, tipo string) (*model.ReactionState, error) {
	ctx, span := r.tracer.Start(
		ctx,
		"ReacaoRepository.Toggle",
		trace.WithAttributes(
			attribute.String("db.table", "reacoes"),
			attribute.String("reacao.tipo", tipo),
			attribute.String("comunicado.id", comunicadoID),
		),
	)
	defer span.End()

	state := &model.ReactionState{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// O comunicado alvo precisa existir
		var existe int64
		if err := tx.Model(&model.ComunicadoEntity{}).
			Where("id = ?", comunicadoID).
			Count(&existe).Error; err != nil {
			return fmt.Errorf("falha ao verificar comunicado: %w", err)
		}
		if existe == 0 {
			return repository.ErrComunicadoNotFound
		}

		query := tx.Where("usuario_id = ? AND comunicado_id = ?", usuarioID, comunicadoID)
		// SQLite serializa escritores por conta própria e não aceita FOR UPDATE
		if tx.Dialector.Name() != "sqlite" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var atual model.ReacaoEntity
		err := query.First(&atual).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Sem reação anterior: insere a nova
			nova := model.ReacaoEntity{
				ID:           uuid.New().String(),
				Tipo:         tipo,
				UsuarioID:    usuarioID,
				ComunicadoID: comunicadoID,
			}
			if err := tx.Create(&nova).Error; err != nil {
				return fmt.Errorf("falha ao criar reação: %w", err)
			}
			state.Current = tipo

		case err != nil:
			return fmt.Errorf("falha ao buscar reação existente: %w", err)

		case atual.Tipo == tipo:
			// Mesmo tipo: segundo clique cancela a reação
			if err := tx.Delete(&model.ReacaoEntity{}, "id = ?", atual.ID).Error; err != nil {
				return fmt.Errorf("falha ao remover reação: %w", err)
			}
			state.Current = model.ReacaoNenhuma

		default:
			// Tipo diferente: troca no lugar, nunca há duas linhas para o par
			if err := tx.Model(&model.ReacaoEntity{}).
				Where("id = ?", atual.ID).
				Update("tipo", tipo).Error; err != nil {
				return fmt.Errorf("falha ao trocar reação: %w", err)
			}
			state.Current = tipo
		}

		// Contagens lidas na mesma transação para refletir o estado confirmado
		likes, dislikes, err := countReacoes(tx, comunicadoID)
		if err != nil {
			return err
		}
		state.Likes = likes
		state.Dislikes = dislikes

		return nil
	})

	if err != nil {
		if !errors.Is(err, repository.ErrComunicadoNotFound) {
			r.logger.Error("falha no toggle de reação",
				zap.String("comunicado_id", comunicadoID),
				zap.String("tipo", tipo),
				zap.Error(err))
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("reacao.current", state.Current),
		attribute.Int64("reacao.likes", state.Likes),
		attribute.Int64("reacao.dislikes", state.Dislikes),
	)
	span.SetStatus(codes.Ok, "")
	return state, nil
}

// CountByComunicado retorna as contagens de likes e dislikes de um comunicado
func (r *ReacaoRepository) CountByComunicado(ctx context.Context, comunicadoID string) (int64, int64, error) {
	ctx, span := r.tracer.Start(
		ctx,
		"ReacaoRepository.CountByComunicado",
		trace.WithAttributes(
			attribute.String("db.table", "reacoes"),
			attribute.String("comunicado.id", comunicadoID),
		),
	)
	defer span.End()

	likes, dislikes, err := countReacoes(r.db.WithContext(ctx), comunicadoID)
	if err != nil {
		r.logger.Error("falha ao contar reações",
			zap.String("comunicado_id", comunicadoID),
			zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return 0, 0, err
	}

	span.SetStatus(codes.Ok, "")
	return likes, dislikes, nil
}

func countReacoes(db *gorm.DB, comunicadoID string) (int64, int64, error) {
	var likes, dislikes int64

	if err := db.Model(&model.ReacaoEntity{}).
		Where("comunicado_id = ? AND tipo = ?", comunicadoID, model.ReacaoLike).
		Count(&likes).Error; err != nil {
		return 0, 0, fmt.Errorf("falha ao contar likes: %w", err)
	}

	if err := db.Model(&model.ReacaoEntity{}).
		Where("comunicado_id = ? AND tipo = ?", comunicadoID, model.ReacaoDislike).
		Count(&dislikes).Error; err != nil {
		return 0, 0, fmt.Errorf("falha ao contar dislikes: %w", err)
	}

	return likes, dislikes, nil
}
