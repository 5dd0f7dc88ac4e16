package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"allocation/internal/domain"
	"allocation/internal/dto"
	apperrors "allocation/internal/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BatchRepository interface {
	Add(ctx context.Context, batch *domain.Batch) error
	Get(ctx context.Context, reference string) (*domain.Batch, error)
	List(ctx context.Context) ([]*domain.Batch, error)
}

// AllocationService allocates order lines to batches chosen by the caller.
// It never picks a batch on its own.
type AllocationService struct {
	repo            BatchRepository
	logger          *zap.Logger
	maxLineQuantity int
}

func NewAllocationService(repo BatchRepository, logger *zap.Logger, maxLineQuantity int) *AllocationService {
	return &AllocationService{
		repo:            repo,
		logger:          logger,
		maxLineQuantity: maxLineQuantity,
	}
}

func (s *AllocationService) AddBatch(
	ctx context.Context,
	reference string,
	sku string,
	purchasedQuantity int,
	eta *time.Time,
) (*dto.BatchView, error) {
	logger := s.logger.With(zap.String("traceId", uuid.NewString()), zap.String("batchRef", reference))

	if err := validateBatch(reference, sku, purchasedQuantity); err != nil {
		logger.Warn("invalid batch", zap.Error(err))
		return nil, err
	}

	batch := domain.NewBatch(reference, sku, purchasedQuantity, eta)
	if err := s.repo.Add(ctx, batch); err != nil {
		logger.Warn("failed to add batch", zap.Error(err))
		return nil, wrapRepositoryError("failed to add batch", err)
	}

	logger.Info("batch added", zap.String("sku", sku), zap.Int("purchasedQuantity", purchasedQuantity))
	view := toBatchView(batch)
	return &view, nil
}

func (s *AllocationService) Allocate(ctx context.Context, batchRef string, line domain.OrderLine) (*dto.AllocationResult, error) {
	traceID := uuid.NewString()
	logger := s.logger.With(zap.String("traceId", traceID), zap.String("batchRef", batchRef), zap.String("orderId", line.OrderID))

	if err := s.validateLine(batchRef, line); err != nil {
		logger.Warn("invalid allocation request", zap.Error(err))
		return nil, err
	}

	batch, err := s.repo.Get(ctx, batchRef)
	if err != nil {
		logger.Warn("batch lookup failed", zap.Error(err))
		return nil, wrapRepositoryError("failed to load batch", err)
	}

	result := &dto.AllocationResult{
		TraceID:  traceID,
		BatchRef: batchRef,
		Line:     toOrderLineDTO(line),
	}

	switch {
	case batch.IsAllocated(line):
		result.Status = dto.AllocationAlreadyAllocated
		logger.Debug("line already allocated")
	case line.SKU != batch.SKU:
		result.Status = dto.AllocationRejected
		result.Reason = dto.ReasonSKUMismatch
	case !batch.CanAllocate(line):
		result.Status = dto.AllocationRejected
		result.Reason = dto.ReasonInsufficientAvailable
	default:
		batch.Allocate(line)
		result.Status = dto.AllocationAllocated
		logger.Info("line allocated", zap.String("sku", line.SKU), zap.Int("quantity", line.Quantity))
	}

	if result.Status == dto.AllocationRejected {
		logger.Warn("allocation rejected",
			zap.String("sku", line.SKU),
			zap.String("batchSku", batch.SKU),
			zap.Int("quantity", line.Quantity),
			zap.Int("available", batch.AvailableQuantity()),
			zap.String("reason", string(result.Reason)),
		)
	}

	result.AvailableQuantity = batch.AvailableQuantity()
	return result, nil
}

func (s *AllocationService) Deallocate(ctx context.Context, batchRef string, line domain.OrderLine) (*dto.DeallocationResult, error) {
	traceID := uuid.NewString()
	logger := s.logger.With(zap.String("traceId", traceID), zap.String("batchRef", batchRef), zap.String("orderId", line.OrderID))

	batch, err := s.repo.Get(ctx, batchRef)
	if err != nil {
		logger.Warn("batch lookup failed", zap.Error(err))
		return nil, wrapRepositoryError("failed to load batch", err)
	}

	deallocated := batch.IsAllocated(line)
	batch.Deallocate(line)

	if deallocated {
		logger.Info("line deallocated", zap.String("sku", line.SKU), zap.Int("quantity", line.Quantity))
	} else {
		logger.Debug("line was not allocated, nothing to deallocate")
	}

	return &dto.DeallocationResult{
		TraceID:           traceID,
		BatchRef:          batchRef,
		Line:              toOrderLineDTO(line),
		Deallocated:       deallocated,
		AvailableQuantity: batch.AvailableQuantity(),
	}, nil
}

func (s *AllocationService) AvailableQuantity(ctx context.Context, batchRef string) (int, error) {
	batch, err := s.repo.Get(ctx, batchRef)
	if err != nil {
		return 0, wrapRepositoryError("failed to load batch", err)
	}
	return batch.AvailableQuantity(), nil
}

func (s *AllocationService) GetBatch(ctx context.Context, batchRef string) (*dto.BatchView, error) {
	batch, err := s.repo.Get(ctx, batchRef)
	if err != nil {
		return nil, wrapRepositoryError("failed to load batch", err)
	}
	view := toBatchView(batch)
	return &view, nil
}

func (s *AllocationService) ListBatches(ctx context.Context) ([]dto.BatchView, error) {
	batches, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list batches", zap.Error(err))
		return nil, wrapRepositoryError("failed to list batches", err)
	}

	views := make([]dto.BatchView, 0, len(batches))
	for _, b := range batches {
		views = append(views, toBatchView(b))
	}
	return views, nil
}

func validateBatch(reference, sku string, purchasedQuantity int) error {
	var details []apperrors.ValidationDetail

	if reference == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "reference",
			Message: "reference is required",
		})
	}

	if sku == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "sku",
			Message: "sku is required",
		})
	}

	if purchasedQuantity < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "purchasedQuantity",
			Message: "purchasedQuantity must be non-negative",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

func (s *AllocationService) validateLine(batchRef string, line domain.OrderLine) error {
	var details []apperrors.ValidationDetail

	if batchRef == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "batchRef",
			Message: "batchRef is required",
		})
	}

	if err := line.Validate(); err != nil {
		details = append(details, apperrors.ValidationDetail{
			Field:   lineField(err),
			Message: err.Error(),
		})
	} else if line.Quantity > s.maxLineQuantity {
		details = append(details, apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must not exceed " + strconv.Itoa(s.maxLineQuantity),
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

func lineField(err error) string {
	switch {
	case errors.Is(err, domain.ErrOrderIDRequired):
		return "orderId"
	case errors.Is(err, domain.ErrSKURequired):
		return "sku"
	default:
		return "quantity"
	}
}

// wrapRepositoryError keeps typed and context errors as they are and turns
// anything else into an InternalError.
func wrapRepositoryError(message string, err error) error {
	if _, ok := apperrors.IsNotFoundError(err); ok {
		return err
	}
	if _, ok := apperrors.IsConflictError(err); ok {
		return err
	}
	if _, ok := apperrors.IsValidationError(err); ok {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return apperrors.NewInternalError(message, err)
}

func toOrderLineDTO(line domain.OrderLine) dto.OrderLine {
	return dto.OrderLine{
		OrderID:  line.OrderID,
		SKU:      line.SKU,
		Quantity: line.Quantity,
	}
}

func toBatchView(b *domain.Batch) dto.BatchView {
	lines := b.Allocations()
	allocations := make([]dto.OrderLine, len(lines))
	for i, line := range lines {
		allocations[i] = toOrderLineDTO(line)
	}

	return dto.BatchView{
		Reference:         b.Reference,
		SKU:               b.SKU,
		PurchasedQuantity: b.PurchasedQuantity,
		AllocatedQuantity: b.AllocatedQuantity(),
		AvailableQuantity: b.AvailableQuantity(),
		ETA:               b.ETA,
		Allocations:       allocations,
	}
}
