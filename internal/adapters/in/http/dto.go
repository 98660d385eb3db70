package http

import (
	"roundplanner/internal/core/application/usecases/commands"
	"roundplanner/internal/core/application/usecases/queries"
	"roundplanner/internal/core/domain/services"

	"github.com/shopspring/decimal"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func errorResponse(code int, message string) Error {
	return Error{Code: code, Message: message}
}

type RedistributionResponse struct {
	WeekStart    string   `json:"week_start"`
	Outcome      string   `json:"outcome"`
	Message      string   `json:"message"`
	MovedJobs    int      `json:"moved_jobs"`
	ModifiedDays []string `json:"modified_days"`
	Warnings     []string `json:"warnings"`
}

func toRedistributionResponse(r services.RedistributionResult) RedistributionResponse {
	return RedistributionResponse{
		WeekStart:    r.Week.Start().String(),
		Outcome:      r.Outcome.String(),
		Message:      outcomeMessage(r),
		MovedJobs:    r.MovedJobs,
		ModifiedDays: nonNil(r.ModifiedDays),
		Warnings:     nonNil(r.Warnings),
	}
}

type FollowUpResponse struct {
	Status string                  `json:"status"`
	Result *RedistributionResponse `json:"result,omitempty"`
	Error  string                  `json:"error,omitempty"`
}

type ResetResponse struct {
	JobsReset      int              `json:"jobs_reset"`
	DaysReset      []string         `json:"days_reset"`
	Warnings       []string         `json:"warnings"`
	Redistribution FollowUpResponse `json:"redistribution"`
}

func toResetResponse(r commands.ResetResult) ResetResponse {
	follow := FollowUpResponse{Status: string(r.Redistribution.Status)}
	switch r.Redistribution.Status {
	case commands.FollowUpCompleted:
		res := toRedistributionResponse(r.Redistribution.Result)
		follow.Result = &res
	case commands.FollowUpFailed:
		follow.Error = failureMessage(r.Redistribution.Err)
	}
	return ResetResponse{
		JobsReset:      r.JobsReset,
		DaysReset:      nonNil(r.DaysReset),
		Warnings:       nonNil(r.Warnings),
		Redistribution: follow,
	}
}

type WeekReportResponse struct {
	WeekStart string                  `json:"week_start"`
	Result    *RedistributionResponse `json:"result,omitempty"`
	Error     string                  `json:"error,omitempty"`
}

type AggregateReportResponse struct {
	Kind      string               `json:"kind"`
	MovedJobs int                  `json:"moved_jobs"`
	Failed    int                  `json:"failed"`
	Weeks     []WeekReportResponse `json:"weeks"`
	Warnings  []string             `json:"warnings"`
}

func toAggregateReportResponse(r commands.AggregateReport) AggregateReportResponse {
	weeks := make([]WeekReportResponse, 0, len(r.Weeks))
	for _, w := range r.Weeks {
		item := WeekReportResponse{WeekStart: w.Week.Start().String()}
		if w.Err != nil {
			item.Error = failureMessage(w.Err)
		} else {
			res := toRedistributionResponse(w.Result)
			item.Result = &res
		}
		weeks = append(weeks, item)
	}
	return AggregateReportResponse{
		Kind:      string(r.Kind),
		MovedJobs: r.MovedJobs(),
		Failed:    r.Failed(),
		Weeks:     weeks,
		Warnings:  nonNil(r.Warnings()),
	}
}

type DayCapacity struct {
	Date             string `json:"date"`
	Label            string `json:"label"`
	TotalCapacity    string `json:"total_capacity"`
	ConsumedValue    string `json:"consumed_value"`
	Available        string `json:"available"`
	AvailableWorkers int    `json:"available_workers"`
	Eligible         bool   `json:"eligible"`
	OverCapacity     bool   `json:"over_capacity"`
}

type WeekCapacity struct {
	WeekStart     string        `json:"week_start"`
	CurrentWeek   bool          `json:"current_week"`
	TotalCapacity string        `json:"total_capacity"`
	Days          []DayCapacity `json:"days"`
}

func toWeekCapacity(r queries.GetWeekCapacityQueryResponse) WeekCapacity {
	days := make([]DayCapacity, len(r.Days))
	for i, d := range r.Days {
		days[i] = DayCapacity{
			Date:             d.Date,
			Label:            d.Label,
			TotalCapacity:    d.TotalCapacity.StringFixed(2),
			ConsumedValue:    d.ConsumedValue.StringFixed(2),
			Available:        d.Available.StringFixed(2),
			AvailableWorkers: d.AvailableWorkers,
			Eligible:         d.Eligible,
			OverCapacity:     d.OverCapacity,
		}
	}
	return WeekCapacity{
		WeekStart:     r.WeekStart,
		CurrentWeek:   r.CurrentWeek,
		TotalCapacity: r.TotalCapacity.StringFixed(2),
		Days:          days,
	}
}

type TriggerRequest struct {
	Kind  string               `json:"kind" validate:"required,oneof=job_added availability_changed daily_capacity_changed scheduled_sweep"`
	Dates []openapi_types.Date `json:"dates"`
}

type AvailabilityRequest struct {
	Date     openapi_types.Date `json:"date"`
	WorkerID openapi_types.UUID `json:"worker_id"`
	Status   string             `json:"status" validate:"required,oneof=on off n/a"`
}

type DailyCapacityRequest struct {
	DailyCapacity decimal.Decimal    `json:"daily_capacity" validate:"non_negative"`
	Effective     openapi_types.Date `json:"effective"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
