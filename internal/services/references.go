package services

import (
	"context"
	"errors"
	"fmt"

	"job-board-backend/internal/apperror"
	"job-board-backend/internal/metrics"
	"job-board-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

// Relations kept consistent by paired writes
const (
	relationUserJobs      = "user_jobs"
	relationUserFriends   = "user_friends"
	relationJobApplicants = "job_applicants"
)

type step func(ctx context.Context) error

// pairedWrite runs first then second. When second fails, undo reverts first.
// A failed undo leaves a dangling reference that is logged and counted.
func pairedWrite(ctx context.Context, relation string, first, second, undo step) error {
	if err := first(ctx); err != nil {
		return err
	}

	err := second(ctx)
	if err == nil {
		return nil
	}

	if undoErr := undo(context.WithoutCancel(ctx)); undoErr != nil {
		metrics.IntegrityViolationsTotal.WithLabelValues(relation).Inc()
		log.Error().
			Err(undoErr).
			AnErr("cause", err).
			Str("relation", relation).
			Msg("Failed to compensate partial reference update")
	}
	return err
}

// notFound turns repository.ErrNotFound into a NotFound error with message
// and wraps anything else.
func notFound(err error, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound(message)
	}
	return fmt.Errorf("failed to load record: %w", err)
}
