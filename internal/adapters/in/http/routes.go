package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface lists the operations of the embedded OpenAPI document.
type ServerInterface interface {
	// GET /api/v1/workflows
	ListWorkflows(ctx echo.Context) error
	// GET /api/v1/workflows/{domain}
	GetWorkflow(ctx echo.Context, domain string) error
	// GET /api/v1/workflows/{domain}/statuses/{code}
	GetStatusInfo(ctx echo.Context, domain string, code string) error
	// GET /api/v1/workflows/{domain}/statuses/{code}/next
	GetNextStatuses(ctx echo.Context, domain string, code string) error
	// GET /api/v1/workflows/{domain}/transitions
	CheckTransition(ctx echo.Context, domain string, params CheckTransitionParams) error
	// GET /api/v1/workflows/{domain}/entities/{id}
	GetEntityStatus(ctx echo.Context, domain string, id openapi_types.UUID, params GetEntityStatusParams) error
	// POST /api/v1/workflows/{domain}/entities/{id}/transitions
	RequestTransition(ctx echo.Context, domain string, id openapi_types.UUID) error
}

// ServerInterfaceWrapper binds path and query parameters before calling the
// typed operation.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) ListWorkflows(ctx echo.Context) error {
	return w.Handler.ListWorkflows(ctx)
}

func (w *ServerInterfaceWrapper) GetWorkflow(ctx echo.Context) error {
	domain, err := bindPathString(ctx, "domain")
	if err != nil {
		return err
	}
	return w.Handler.GetWorkflow(ctx, domain)
}

func (w *ServerInterfaceWrapper) GetStatusInfo(ctx echo.Context) error {
	domain, err := bindPathString(ctx, "domain")
	if err != nil {
		return err
	}
	code, err := bindPathString(ctx, "code")
	if err != nil {
		return err
	}
	return w.Handler.GetStatusInfo(ctx, domain, code)
}

func (w *ServerInterfaceWrapper) GetNextStatuses(ctx echo.Context) error {
	domain, err := bindPathString(ctx, "domain")
	if err != nil {
		return err
	}
	code, err := bindPathString(ctx, "code")
	if err != nil {
		return err
	}
	return w.Handler.GetNextStatuses(ctx, domain, code)
}

func (w *ServerInterfaceWrapper) CheckTransition(ctx echo.Context) error {
	domain, err := bindPathString(ctx, "domain")
	if err != nil {
		return err
	}

	var params CheckTransitionParams
	if err = runtime.BindQueryParameter("form", true, true, "from", ctx.QueryParams(), &params.From); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter from: "+err.Error())
	}
	if err = runtime.BindQueryParameter("form", true, true, "to", ctx.QueryParams(), &params.To); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter to: "+err.Error())
	}
	return w.Handler.CheckTransition(ctx, domain, params)
}

func (w *ServerInterfaceWrapper) GetEntityStatus(ctx echo.Context) error {
	domain, err := bindPathString(ctx, "domain")
	if err != nil {
		return err
	}
	id, err := bindPathUUID(ctx, "id")
	if err != nil {
		return err
	}

	var params GetEntityStatusParams
	if err = runtime.BindQueryParameter("form", true, false, "refresh", ctx.QueryParams(), &params.Refresh); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter refresh: "+err.Error())
	}
	return w.Handler.GetEntityStatus(ctx, domain, id, params)
}

func (w *ServerInterfaceWrapper) RequestTransition(ctx echo.Context) error {
	domain, err := bindPathString(ctx, "domain")
	if err != nil {
		return err
	}
	id, err := bindPathUUID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.RequestTransition(ctx, domain, id)
}

// EchoRouter is the subset of echo used to register routes, satisfied by
// both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlersWithBaseURL adds every operation to router under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	w := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/workflows", w.ListWorkflows)
	router.GET(baseURL+"/workflows/:domain", w.GetWorkflow)
	router.GET(baseURL+"/workflows/:domain/statuses/:code", w.GetStatusInfo)
	router.GET(baseURL+"/workflows/:domain/statuses/:code/next", w.GetNextStatuses)
	router.GET(baseURL+"/workflows/:domain/transitions", w.CheckTransition)
	router.GET(baseURL+"/workflows/:domain/entities/:id", w.GetEntityStatus)
	router.POST(baseURL+"/workflows/:domain/entities/:id/transitions", w.RequestTransition)
}

func bindPathString(ctx echo.Context, name string) (string, error) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter "+name+": "+err.Error())
	}
	return value, nil
}

func bindPathUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var value openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return openapi_types.UUID{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter "+name+": "+err.Error())
	}
	return value, nil
}
