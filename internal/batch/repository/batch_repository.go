package repository

import (
	"context"
	"fmt"
	"sort"

	"allocation/internal/domain"
	"allocation/internal/errors"
)

// InMemoryBatchRepository keeps batches for the life of the process.
// It is not safe for concurrent use.
type InMemoryBatchRepository struct {
	batches map[string]*domain.Batch
}

func NewInMemoryBatchRepository() *InMemoryBatchRepository {
	return &InMemoryBatchRepository{batches: make(map[string]*domain.Batch)}
}

func (r *InMemoryBatchRepository) Add(ctx context.Context, batch *domain.Batch) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, exists := r.batches[batch.Reference]; exists {
		return errors.NewConflictError(fmt.Sprintf("batch with reference %q already exists", batch.Reference))
	}

	r.batches[batch.Reference] = batch
	return nil
}

func (r *InMemoryBatchRepository) Get(ctx context.Context, reference string) (*domain.Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	batch, ok := r.batches[reference]
	if !ok {
		return nil, errors.NewNotFoundError(fmt.Sprintf("batch with reference %q not found", reference))
	}

	return batch, nil
}

func (r *InMemoryBatchRepository) List(ctx context.Context) ([]*domain.Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	batches := make([]*domain.Batch, 0, len(r.batches))
	for _, b := range r.batches {
		batches = append(batches, b)
	}
	sort.Slice(batches, func(i, j int) bool { return batches[i].Reference < batches[j].Reference })

	return batches, nil
}
