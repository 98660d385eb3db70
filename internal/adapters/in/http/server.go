package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"roundplanner/internal/core/application/usecases/commands"
	"roundplanner/internal/core/application/usecases/queries"
	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/rota"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ResetHandler clears manual overrides of a day or a week.
type ResetHandler interface {
	HandleDay(ctx context.Context, command commands.ResetDayCommand) (commands.ResetResult, error)
	HandleWeek(ctx context.Context, command commands.ResetWeekCommand) (commands.ResetResult, error)
}

type AvailabilityHandler interface {
	Handle(ctx context.Context, command commands.SetAvailabilityCommand) (commands.AggregateReport, error)
}

type DailyCapacityHandler interface {
	Handle(ctx context.Context, command commands.SetDailyCapacityCommand) (commands.AggregateReport, error)
}

type WeekCapacityHandler interface {
	Handle(ctx context.Context, query queries.GetWeekCapacityQuery) (queries.GetWeekCapacityQueryResponse, error)
}

// Handlers groups the use cases the server exposes.
type Handlers struct {
	Redistribute  commands.WeekRedistributor
	Reset         ResetHandler
	Dispatch      commands.TriggerHandler
	Availability  AvailabilityHandler
	DailyCapacity DailyCapacityHandler
	WeekCapacity  WeekCapacityHandler
}

// Server translates HTTP requests into planner commands and queries.
type Server struct {
	handlers Handlers
	loc      *time.Location
	logger   *slog.Logger
}

// NewServer creates a server. Path and body dates are read as calendar days in loc.
func NewServer(handlers Handlers, loc *time.Location, logger *slog.Logger) *Server {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{handlers: handlers, loc: loc, logger: logger.With("component", "http")}
}

// Register mounts the API under /api/v1 behind auth. /health stays public.
// It installs a RequestValidator unless e already has a validator.
func (s *Server) Register(e *echo.Echo, auth echo.MiddlewareFunc) {
	if e.Validator == nil {
		e.Validator = NewRequestValidator()
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1", auth)
	api.POST("/weeks/:weekStart/redistribute", s.RedistributeWeek)
	api.POST("/weeks/:weekStart/reset", s.ResetWeek)
	api.GET("/weeks/:weekStart/capacity", s.GetWeekCapacity)
	api.POST("/days/:date/reset", s.ResetDay)
	api.POST("/triggers", s.DispatchTrigger)
	api.PUT("/rota", s.SetAvailability)
	api.PUT("/workers/:workerId/capacity", s.SetDailyCapacity)
}

// RedistributeWeek handles POST /api/v1/weeks/{weekStart}/redistribute?force=.
func (s *Server) RedistributeWeek(ctx echo.Context) error {
	weekStart, err := s.dateParam(ctx, "weekStart")
	if err != nil {
		return badRequest(ctx, "Invalid format for parameter weekStart")
	}

	var force bool
	if err = runtime.BindQueryParameter("form", true, false, "force", ctx.QueryParams(), &force); err != nil {
		return badRequest(ctx, "Invalid format for parameter force")
	}

	cmd, err := commands.NewRedistributeWeekCommand(tenantOf(ctx), weekStart, force)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.Redistribute.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toRedistributionResponse(result))
}

// ResetWeek handles POST /api/v1/weeks/{weekStart}/reset.
func (s *Server) ResetWeek(ctx echo.Context) error {
	weekStart, err := s.dateParam(ctx, "weekStart")
	if err != nil {
		return badRequest(ctx, "Invalid format for parameter weekStart")
	}

	cmd, err := commands.NewResetWeekCommand(tenantOf(ctx), weekStart)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.Reset.HandleWeek(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toResetResponse(result))
}

// ResetDay handles POST /api/v1/days/{date}/reset.
func (s *Server) ResetDay(ctx echo.Context) error {
	day, err := s.dateParam(ctx, "date")
	if err != nil {
		return badRequest(ctx, "Invalid format for parameter date")
	}

	cmd, err := commands.NewResetDayCommand(tenantOf(ctx), day)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.Reset.HandleDay(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toResetResponse(result))
}

// GetWeekCapacity handles GET /api/v1/weeks/{weekStart}/capacity.
func (s *Server) GetWeekCapacity(ctx echo.Context) error {
	weekStart, err := s.dateParam(ctx, "weekStart")
	if err != nil {
		return badRequest(ctx, "Invalid format for parameter weekStart")
	}

	query, err := queries.NewGetWeekCapacityQuery(tenantOf(ctx), weekStart)
	if err != nil {
		return s.fail(ctx, err)
	}

	profile, err := s.handlers.WeekCapacity.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toWeekCapacity(profile))
}

// DispatchTrigger handles POST /api/v1/triggers.
func (s *Server) DispatchTrigger(ctx echo.Context) error {
	var body TriggerRequest
	if err := s.bind(ctx, &body); err != nil {
		return badRequest(ctx, "Invalid request body: "+err.Error())
	}

	kind, err := commands.ParseTriggerKind(body.Kind)
	if err != nil {
		return s.fail(ctx, err)
	}

	dates := make([]kernel.Date, len(body.Dates))
	for i, d := range body.Dates {
		dates[i] = s.toDate(d)
	}

	cmd, err := commands.NewDispatchTriggerCommand(tenantOf(ctx), kind, dates...)
	if err != nil {
		return s.fail(ctx, err)
	}

	report, err := s.handlers.Dispatch.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toAggregateReportResponse(report))
}

// SetAvailability handles PUT /api/v1/rota.
func (s *Server) SetAvailability(ctx echo.Context) error {
	var body AvailabilityRequest
	if err := s.bind(ctx, &body); err != nil {
		return badRequest(ctx, "Invalid request body: "+err.Error())
	}

	status, err := rota.ParseStatus(body.Status)
	if err != nil {
		return s.fail(ctx, err)
	}
	workerID, err := kernel.UUIDFromBytes(body.WorkerID[:])
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewSetAvailabilityCommand(tenantOf(ctx), s.toDate(body.Date), workerID, status)
	if err != nil {
		return s.fail(ctx, err)
	}

	report, err := s.handlers.Availability.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toAggregateReportResponse(report))
}

// SetDailyCapacity handles PUT /api/v1/workers/{workerId}/capacity.
func (s *Server) SetDailyCapacity(ctx echo.Context) error {
	var rawID openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "workerId", ctx.Param("workerId"), &rawID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return badRequest(ctx, "Invalid format for parameter workerId")
	}
	workerID, err := kernel.UUIDFromBytes(rawID[:])
	if err != nil {
		return s.fail(ctx, err)
	}

	var body DailyCapacityRequest
	if err = s.bind(ctx, &body); err != nil {
		return badRequest(ctx, "Invalid request body: "+err.Error())
	}

	cmd, err := commands.NewSetDailyCapacityCommand(tenantOf(ctx), workerID, body.DailyCapacity, s.toDate(body.Effective))
	if err != nil {
		return s.fail(ctx, err)
	}

	report, err := s.handlers.DailyCapacity.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toAggregateReportResponse(report))
}

func (s *Server) bind(ctx echo.Context, body any) error {
	if err := ctx.Bind(body); err != nil {
		return err
	}
	return ctx.Validate(body)
}

func (s *Server) dateParam(ctx echo.Context, name string) (kernel.Date, error) {
	var d openapi_types.Date
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &d,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.Date{}, err
	}
	return s.toDate(d), nil
}

// toDate keeps the zero value zero so command constructors report a missing date.
func (s *Server) toDate(d openapi_types.Date) kernel.Date {
	if d.IsZero() {
		return kernel.Date{}
	}
	return kernel.NewDate(d.Year(), d.Month(), d.Day(), s.loc)
}

func (s *Server) fail(ctx echo.Context, err error) error {
	code, message := classify(err)
	if code >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
	}
	return ctx.JSON(code, errorResponse(code, message))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse(http.StatusBadRequest, message))
}
