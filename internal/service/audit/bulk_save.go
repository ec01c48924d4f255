package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/heartmarshall/regaudit-backend/internal/domain"
)

// BulkItem is one entry of a batch save. DecodeErr is set by the transport
// when the raw item could not be read; such items fail in place.
type BulkItem struct {
	Input     SaveInput
	DecodeErr error
}

// BulkFailure describes an item that was not saved.
type BulkFailure struct {
	Index  int
	Input  SaveInput
	Reason string
}

// BulkResult lists the saved records and the rejected items of a batch.
type BulkResult struct {
	Succeeded []domain.AuditRecord
	Failed    []BulkFailure
}

// BulkSave upserts every item independently. A failing item is recorded in
// Failed and does not stop the remaining ones, so there is no wrapping
// transaction. Resubmitting the same batch converges to the same state.
// Only an oversized batch, a missing requester or a cancelled context fail
// the call as a whole.
func (s *Service) BulkSave(ctx context.Context, items []BulkItem) (BulkResult, error) {
	req, err := requester(ctx)
	if err != nil {
		return BulkResult{}, err
	}
	if len(items) > s.cfg.BulkMaxItems {
		return BulkResult{}, domain.NewValidationError("items", fmt.Sprintf("max %d items per batch", s.cfg.BulkMaxItems))
	}

	ctx, span := tracer.Start(ctx, "audit.BulkSave", trace.WithAttributes(attribute.Int("batch.size", len(items))))
	defer func() { endSpan(span, err) }()

	result := BulkResult{
		Succeeded: make([]domain.AuditRecord, 0, len(items)),
		Failed:    []BulkFailure{},
	}

	for i, item := range items {
		if err = ctx.Err(); err != nil {
			return BulkResult{}, fmt.Errorf("bulk save interrupted at item %d: %w", i, err)
		}

		rec, itemErr := s.bulkItem(ctx, req, item)
		if itemErr != nil {
			result.Failed = append(result.Failed, BulkFailure{
				Index:  i,
				Input:  item.Input,
				Reason: s.failureReason(ctx, i, itemErr),
			})
			continue
		}
		result.Succeeded = append(result.Succeeded, rec)
	}

	s.metrics.observeBulk(len(result.Succeeded), len(result.Failed))
	s.log.InfoContext(ctx, "bulk save finished",
		slog.String("user_id", req.ID.String()),
		slog.Int("succeeded", len(result.Succeeded)),
		slog.Int("failed", len(result.Failed)),
	)

	return result, nil
}

func (s *Service) bulkItem(ctx context.Context, req domain.Requester, item BulkItem) (domain.AuditRecord, error) {
	if item.DecodeErr != nil {
		return domain.AuditRecord{}, domain.NewValidationError("item", "malformed: "+item.DecodeErr.Error())
	}
	if err := item.Input.Validate(); err != nil {
		return domain.AuditRecord{}, err
	}
	return s.save(ctx, req, item.Input)
}

// failureReason turns an item error into a message safe to return to the
// client. Unexpected errors are logged and reported generically.
func (s *Service) failureReason(ctx context.Context, index int, err error) string {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, domain.ErrNotFound):
		return "regulation not found"
	default:
		s.log.ErrorContext(ctx, "bulk save item failed",
			slog.Int("index", index),
			slog.String("error", err.Error()),
		)
		return "could not save audit"
	}
}
