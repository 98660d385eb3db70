package http

import (
	"errors"
	"fmt"
	"net/http"

	"roundplanner/internal/core/application/usecases/commands"
	"roundplanner/internal/core/domain/model/tenant"
	"roundplanner/internal/core/domain/services"
	"roundplanner/internal/pkg/errs"
)

// outcomeMessage gives each outcome its own user-facing sentence.
func outcomeMessage(r services.RedistributionResult) string {
	week := r.Week.Start().String()
	switch r.Outcome {
	case services.OutcomeNothingToDo:
		return fmt.Sprintf("Nothing to do: week %s has no jobs to lay out", week)
	case services.OutcomeNoCapacity:
		return fmt.Sprintf("Nothing to do: week %s has no available capacity", week)
	case services.OutcomeSkippedCurrentWeek:
		return fmt.Sprintf("Week %s is the current operating week and was left as is; use force to re-plan it", week)
	case services.OutcomeCompletedWithWarnings:
		return fmt.Sprintf("Moved %d jobs in week %s with %d warnings", r.MovedJobs, week, len(r.Warnings))
	default:
		return fmt.Sprintf("Moved %d jobs in week %s", r.MovedJobs, week)
	}
}

func failureMessage(err error) string {
	_, message := classify(err)
	return message
}

// classify maps a use case error to a status code and a specific message.
func classify(err error) (int, string) {
	var (
		readErr  *errs.StoreReadError
		writeErr *errs.StoreWriteError
	)
	switch {
	case errors.Is(err, tenant.ErrNotAuthenticated):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, commands.ErrConcurrentModification):
		return http.StatusConflict, "the week was changed by someone else; nothing was saved, please retry"
	case errors.As(err, &readErr):
		return http.StatusServiceUnavailable, fmt.Sprintf("could not read %s; nothing was changed", readErr.Source)
	case errors.As(err, &writeErr):
		return http.StatusServiceUnavailable, fmt.Sprintf("could not save %s; nothing was changed", writeErr.Operation)
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "unexpected error"
	}
}
