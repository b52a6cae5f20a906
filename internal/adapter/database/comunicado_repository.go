package database

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rlirio/mural-digital/internal/domain/model"
	"github.com/rlirio/mural-digital/internal/domain/repository"
)

// ComunicadoRepository implementa repository.ComunicadoRepository
type ComunicadoRepository struct {
	db     *gorm.DB
	logger *zap.Logger
	tracer trace.Tracer
}

// NewComunicadoRepository cria um novo repositório de comunicados
func NewComunicadoRepository(db *gorm.DB, logger *zap.Logger) repository.ComunicadoRepository {
	tracer := otel.GetTracerProvider().Tracer("mural-digital.repository.comunicado")

	return &ComunicadoRepository{
		db:     db,
		logger: logger,
		tracer: tracer,
	}
}

// CreateComunicado insere um novo comunicado
func (r *ComunicadoRepository) CreateComunicado(ctx context.Context, c *model.ComunicadoEntity) error {
	ctx, span := r.tracer.Start(
		ctx,
		"ComunicadoRepository.CreateComunicado",
		trace.WithAttributes(
			attribute.String("db.operation", "insert"),
			attribute.String("db.table", "comunicados"),
		),
	)
	defer span.End()

	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		r.logger.Error("falha ao criar comunicado", zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return fmt.Errorf("falha ao criar comunicado: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// GetComunicadoByID obtém um comunicado pelo id
func (r *ComunicadoRepository) GetComunicadoByID(ctx context.Context, id string) (*model.Comunicado, error) {
	ctx, span := r.tracer.Start(
		ctx,
		"ComunicadoRepository.GetComunicadoByID",
		trace.WithAttributes(
			attribute.String("db.operation", "select"),
			attribute.String("db.table", "comunicados"),
			attribute.String("comunicado.id", id),
		),
	)
	defer span.End()

	var entity model.ComunicadoEntity
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "comunicado not found")
			return nil, repository.ErrComunicadoNotFound
		}
		r.logger.Error("falha ao buscar comunicado",
			zap.String("id", id),
			zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao buscar comunicado: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return entity.ToModel(), nil
}

// ListComunicados retorna os comunicados mais recentes primeiro
func (r *ComunicadoRepository) ListComunicados(ctx context.Context, limit int) ([]*model.Comunicado, error) {
	ctx, span := r.tracer.Start(
		ctx,
		"ComunicadoRepository.ListComunicados",
		trace.WithAttributes(
			attribute.String("db.operation", "select"),
			attribute.String("db.table", "comunicados"),
			attribute.Int("limit", limit),
		),
	)
	defer span.End()

	query := r.db.WithContext(ctx).Order("data_publicacao DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var entities []model.ComunicadoEntity
	if err := query.Find(&entities).Error; err != nil {
		r.logger.Error("falha ao listar comunicados", zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao listar comunicados: %w", err)
	}

	comunicados := make([]*model.Comunicado, 0, len(entities))
	for i := range entities {
		comunicados = append(comunicados, entities[i].ToModel())
	}

	span.SetAttributes(attribute.Int("comunicados.count", len(comunicados)))
	span.SetStatus(codes.Ok, "")
	return comunicados, nil
}

// DeleteComunicado remove o comunicado e todos os comentários e reações
// que o referenciam, em uma única transação. Qualquer erro desfaz as três
// exclusões juntas.
func (r *ComunicadoRepository) DeleteComunicado(ctx context.Context, id string) error {
	ctx, span := r.tracer.Start(
		ctx,
		"ComunicadoRepository.DeleteComunicado",
		trace.WithAttributes(
			attribute.String("db.operation", "delete"),
			attribute.String("db.table", "comunicados"),
			attribute.String("comunicado.id", id),
		),
	)
	defer span.End()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existe int64
		if err := tx.Model(&model.ComunicadoEntity{}).
			Where("id = ?", id).
			Count(&existe).Error; err != nil {
			return fmt.Errorf("falha ao verificar comunicado: %w", err)
		}
		if existe == 0 {
			return repository.ErrComunicadoNotFound
		}

		if err := tx.Where("comunicado_id = ?", id).
			Delete(&model.ComentarioEntity{}).Error; err != nil {
			return fmt.Errorf("falha ao remover comentários: %w", err)
		}

		if err := tx.Where("comunicado_id = ?", id).
			Delete(&model.ReacaoEntity{}).Error; err != nil {
			return fmt.Errorf("falha ao remover reações: %w", err)
		}

		if err := tx.Delete(&model.ComunicadoEntity{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("falha ao remover comunicado: %w", err)
		}

		return nil
	})

	if err != nil {
		if !errors.Is(err, repository.ErrComunicadoNotFound) {
			r.logger.Error("falha ao excluir comunicado",
				zap.String("id", id),
				zap.Error(err))
		}
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// CreateComentario insere um comentário em um comunicado existente
func (r *ComunicadoRepository) CreateComentario(ctx context.Context, c *model.ComentarioEntity) error {
	ctx, span := r.tracer.Start(
		ctx,
		"ComunicadoRepository.CreateComentario",
		trace.WithAttributes(
			attribute.String("db.operation", "insert"),
			attribute.String("db.table", "comentarios"),
			attribute.String("comunicado.id", c.ComunicadoID),
		),
	)
	defer span.End()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// O comunicado pai precisa existir
		var existe int64
		if err := tx.Model(&model.ComunicadoEntity{}).
			Where("id = ?", c.ComunicadoID).
			Count(&existe).Error; err != nil {
			return fmt.Errorf("falha ao verificar comunicado: %w", err)
		}
		if existe == 0 {
			return repository.ErrComunicadoNotFound
		}

		if err := tx.Create(c).Error; err != nil {
			return fmt.Errorf("falha ao criar comentário: %w", err)
		}
		return nil
	})

	if err != nil {
		if !errors.Is(err, repository.ErrComunicadoNotFound) {
			r.logger.Error("falha ao criar comentário", zap.Error(err))
		}
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// GetComentarioByID obtém um comentário pelo id
func (r *ComunicadoRepository) GetComentarioByID(ctx context.Context, id string) (*model.Comentario, error) {
	var entity model.ComentarioEntity
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrComentarioNotFound
		}
		r.logger.Error("falha ao buscar comentário",
			zap.String("id", id),
			zap.Error(err))
		return nil, fmt.Errorf("falha ao buscar comentário: %w", err)
	}

	return entity.ToModel(), nil
}

// ListComentarios retorna os comentários de um comunicado, mais antigos primeiro
func (r *ComunicadoRepository) ListComentarios(ctx context.Context, comunicadoID string) ([]*model.Comentario, error) {
	var entities []model.ComentarioEntity
	if err := r.db.WithContext(ctx).
		Where("comunicado_id = ?", comunicadoID).
		Order("data_criacao ASC").
		Find(&entities).Error; err != nil {
		r.logger.Error("falha ao listar comentários",
			zap.String("comunicado_id", comunicadoID),
			zap.Error(err))
		return nil, fmt.Errorf("falha ao listar comentários: %w", err)
	}

	comentarios := make([]*model.Comentario, 0, len(entities))
	for i := range entities {
		comentarios = append(comentarios, entities[i].ToModel())
	}

	return comentarios, nil
}

// DeleteComentario remove um comentário individual
func (r *ComunicadoRepository) DeleteComentario(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&model.ComentarioEntity{}, "id = ?", id)
	if result.Error != nil {
		r.logger.Error("falha ao remover comentário",
			zap.String("id", id),
			zap.Error(result.Error))
		return fmt.Errorf("falha ao remover comentário: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrComentarioNotFound
	}

	return nil
}
