package dashboard

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rpupo63/catalog-admin/models"
)

// Mutator is the write side of one catalog resource. *catalog.Resource
// satisfies it.
type Mutator interface {
	Create(ctx context.Context, record any) (models.MutationResult, error)
	Update(ctx context.Context, id int64, record any) (models.MutationResult, error)
	Delete(ctx context.Context, id int64) (models.MutationResult, error)
}

// MutationGateway sends create, update and delete requests and refetches the
// list after each success. There is no optimistic update and no retry. A
// failure is logged and returned, and nothing local changes.
type MutationGateway struct {
	backend Mutator
	refetch func(ctx context.Context) error
	logger  zerolog.Logger
}

func NewMutationGateway(backend Mutator, refetch func(ctx context.Context) error, logger zerolog.Logger) *MutationGateway {
	return &MutationGateway{backend: backend, refetch: refetch, logger: logger}
}

// Create posts a record without an id.
func (g *MutationGateway) Create(ctx context.Context, record map[string]any) (models.MutationResult, error) {
	delete(record, "id")
	result, err := g.backend.Create(ctx, record)
	if err != nil {
		g.logger.Error().Err(err).Msg("error creating record")
		return result, err
	}
	g.logger.Info().Int64("id", result.ID).Msg("record created")
	g.settle(ctx)
	return result, nil
}

// Update sends the complete record, id included, to {endpoint}/{id}.
func (g *MutationGateway) Update(ctx context.Context, id int64, record map[string]any) (models.MutationResult, error) {
	record["id"] = id
	result, err := g.backend.Update(ctx, id, record)
	if err != nil {
		g.logger.Error().Err(err).Int64("id", id).Msg("error updating record")
		return result, err
	}
	g.logger.Info().Int64("id", id).Msg("record updated")
	g.settle(ctx)
	return result, nil
}

// Delete removes the record with the given id.
func (g *MutationGateway) Delete(ctx context.Context, id int64) (models.MutationResult, error) {
	result, err := g.backend.Delete(ctx, id)
	if err != nil {
		g.logger.Error().Err(err).Int64("id", id).Msg("error deleting record")
		return result, err
	}
	g.logger.Info().Int64("id", id).Msg("record deleted")
	g.settle(ctx)
	return result, nil
}

// settle refetches after a successful mutation. A refetch failure is reported
// by the refetch itself; the mutation still succeeded.
func (g *MutationGateway) settle(ctx context.Context) {
	if g.refetch == nil {
		return
	}
	_ = g.refetch(ctx)
}
