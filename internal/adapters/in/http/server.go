package http

import (
	"errors"
	"log/slog"
	"net/http"

	"statusflow/internal/core/application/usecases/commands"
	"statusflow/internal/core/application/usecases/queries"
	"statusflow/internal/core/domain/model/kernel"
	"statusflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

var _ ServerInterface = (*Server)(nil)

// Server implements ServerInterface on top of the application use cases.
type Server struct {
	workflows []string
	logger    *slog.Logger

	// Command handlers
	requestTransitionHandler commands.RequestTransitionCommandHandler

	// Query handlers
	getWorkflowHandler     queries.GetWorkflowQueryHandler
	getStatusInfoHandler   queries.GetStatusInfoQueryHandler
	getNextStatusesHandler queries.GetNextStatusesQueryHandler
	checkTransitionHandler queries.CheckTransitionQueryHandler
	getEntityStatusHandler queries.GetEntityStatusQueryHandler
}

// NewServer creates a server listing the given workflow names.
func NewServer(
	workflows []string,
	requestTransitionHandler commands.RequestTransitionCommandHandler,
	getWorkflowHandler queries.GetWorkflowQueryHandler,
	getStatusInfoHandler queries.GetStatusInfoQueryHandler,
	getNextStatusesHandler queries.GetNextStatusesQueryHandler,
	checkTransitionHandler queries.CheckTransitionQueryHandler,
	getEntityStatusHandler queries.GetEntityStatusQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		workflows:                append([]string(nil), workflows...),
		logger:                   logger.With("component", "http_server"),
		requestTransitionHandler: requestTransitionHandler,
		getWorkflowHandler:       getWorkflowHandler,
		getStatusInfoHandler:     getStatusInfoHandler,
		getNextStatusesHandler:   getNextStatusesHandler,
		checkTransitionHandler:   checkTransitionHandler,
		getEntityStatusHandler:   getEntityStatusHandler,
	}
}

// ListWorkflows handles GET /api/v1/workflows.
func (s *Server) ListWorkflows(ctx echo.Context) error {
	response := make([]WorkflowSummary, 0, len(s.workflows))
	for _, name := range s.workflows {
		w, err := s.workflow(ctx, name)
		if err != nil {
			return s.writeError(ctx, err, nil)
		}
		response = append(response, w.WorkflowSummary)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetWorkflow handles GET /api/v1/workflows/{domain}.
func (s *Server) GetWorkflow(ctx echo.Context, domain string) error {
	w, err := s.workflow(ctx, domain)
	if err != nil {
		return s.writeError(ctx, err, nil)
	}
	return ctx.JSON(http.StatusOK, w)
}

func (s *Server) workflow(ctx echo.Context, domain string) (Workflow, error) {
	query, err := queries.NewGetWorkflowQuery(domain)
	if err != nil {
		return Workflow{}, err
	}
	resp, err := s.getWorkflowHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return Workflow{}, err
	}
	return toWorkflow(resp), nil
}

// GetStatusInfo handles GET /api/v1/workflows/{domain}/statuses/{code}.
// Unknown codes are not an error; the fallback record is returned.
func (s *Server) GetStatusInfo(ctx echo.Context, domain string, code string) error {
	query, err := queries.NewGetStatusInfoQuery(domain, code)
	if err != nil {
		return s.writeError(ctx, err, nil)
	}
	resp, err := s.getStatusInfoHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err, nil)
	}
	return ctx.JSON(http.StatusOK, toStatusInfo(resp.Info))
}

// GetNextStatuses handles GET /api/v1/workflows/{domain}/statuses/{code}/next.
func (s *Server) GetNextStatuses(ctx echo.Context, domain string, code string) error {
	query, err := queries.NewGetNextStatusesQuery(domain, code)
	if err != nil {
		return s.writeError(ctx, err, nil)
	}
	resp, err := s.getNextStatusesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err, nil)
	}
	return ctx.JSON(http.StatusOK, NextStatuses{
		Current: toStatusInfo(resp.Current),
		Actions: toActions(resp.Actions),
	})
}

// CheckTransition handles GET /api/v1/workflows/{domain}/transitions.
func (s *Server) CheckTransition(ctx echo.Context, domain string, params CheckTransitionParams) error {
	query, err := queries.NewCheckTransitionQuery(domain, params.From, params.To)
	if err != nil {
		return s.writeError(ctx, err, nil)
	}
	resp, err := s.checkTransitionHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err, nil)
	}

	check := TransitionCheck{From: query.From(), To: query.To(), Allowed: resp.Allowed, Reason: resp.Reason}
	if resp.Allowed {
		check.Kind = string(resp.Action.Kind)
	}
	return ctx.JSON(http.StatusOK, check)
}

// GetEntityStatus handles GET /api/v1/workflows/{domain}/entities/{id}.
func (s *Server) GetEntityStatus(
	ctx echo.Context,
	domain string,
	id openapi_types.UUID,
	params GetEntityStatusParams,
) error {
	entityID, err := kernel.FromGoogle(id)
	if err != nil {
		return s.writeError(ctx, err, nil)
	}

	refresh := params.Refresh != nil && *params.Refresh
	entity, err := s.entity(ctx, domain, entityID, refresh)
	if err != nil {
		return s.writeError(ctx, err, nil)
	}
	return ctx.JSON(http.StatusOK, entity)
}

// RequestTransition handles POST /api/v1/workflows/{domain}/entities/{id}/transitions.
//
// The response always reflects a fetch made after the owning service answered.
// Failures carry the entity's last known state so the dashboard can re-render.
func (s *Server) RequestTransition(ctx echo.Context, domain string, id openapi_types.UUID) error {
	var body TransitionRequest
	if err := ctx.Bind(&body); err != nil {
		return invalidRequest(ctx, "Invalid request body")
	}

	entityID, err := kernel.FromGoogle(id)
	if err != nil {
		return s.writeError(ctx, err, nil)
	}

	cmd, err := commands.NewRequestTransitionCommand(domain, entityID, body.TargetStatus, body.Notes)
	if err != nil {
		return s.writeError(ctx, err, nil)
	}

	result, err := s.requestTransitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err, s.lastKnown(ctx, domain, entityID, err))
	}

	entity, err := s.entity(ctx, domain, entityID, false)
	if err != nil {
		return s.writeError(ctx, err, nil)
	}
	return ctx.JSON(http.StatusOK, TransitionResult{Entity: entity, Resynced: result.Resynced})
}

func (s *Server) writeError(ctx echo.Context, err error, entity *EntityStatus) error {
	return writeError(ctx, s.logger, err, entity)
}

func (s *Server) entity(ctx echo.Context, domain string, id kernel.UUID, refresh bool) (EntityStatus, error) {
	query, err := queries.NewGetEntityStatusQuery(domain, id, refresh)
	if err != nil {
		return EntityStatus{}, err
	}
	resp, err := s.getEntityStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return EntityStatus{}, err
	}
	return toEntityStatus(resp), nil
}

// lastKnown renders the board entry attached to a failed request. Validation
// and not found failures have nothing worth showing.
func (s *Server) lastKnown(ctx echo.Context, domain string, id kernel.UUID, cause error) *EntityStatus {
	if errors.Is(cause, errs.ErrObjectNotFound) ||
		errors.Is(cause, errs.ErrValueIsRequired) ||
		errors.Is(cause, errs.ErrValueIsInvalid) {
		return nil
	}
	entity, err := s.entity(ctx, domain, id, false)
	if err != nil {
		return nil
	}
	return &entity
}
