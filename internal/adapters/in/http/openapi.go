package http

import (
	"errors"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
)

// OpenAPIValidator rejects requests that do not match doc with a 400 before
// they reach a handler. Paths missing from doc are passed through so echo can
// answer them.
func OpenAPIValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{AuthenticationFunc: openapi3filter.NoopAuthenticationFunc}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()

			route, pathParams, err := router.FindRoute(req)
			switch {
			case errors.Is(err, routers.ErrPathNotFound):
				return next(ctx)
			case errors.Is(err, routers.ErrMethodNotAllowed):
				return echo.ErrMethodNotAllowed
			case err != nil:
				return invalidRequest(ctx, err.Error())
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return invalidRequest(ctx, validationMessage(err))
			}
			return next(ctx)
		}
	}, nil
}

// validationMessage drops the schema dump kin-openapi appends to request
// errors.
func validationMessage(err error) string {
	var requestErr *openapi3filter.RequestError
	if errors.As(err, &requestErr) {
		if requestErr.Parameter != nil {
			return "parameter " + requestErr.Parameter.Name + ": " + requestErr.Reason + causeSuffix(requestErr.Err)
		}
		if requestErr.RequestBody != nil {
			return "request body: " + requestErr.Reason + causeSuffix(requestErr.Err)
		}
	}
	return http.StatusText(http.StatusBadRequest) + ": " + err.Error()
}

func causeSuffix(err error) string {
	if err == nil {
		return ""
	}
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		return ": " + schemaErr.Reason
	}
	return ": " + err.Error()
}
