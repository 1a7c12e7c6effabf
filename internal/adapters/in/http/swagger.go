package http

import (
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
	echoSwagger "github.com/swaggo/echo-swagger"
)

var registerOnce sync.Once

type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string {
	return d.json
}

// RegisterSwagger serves the Swagger UI for doc under /swagger/. The swag
// registry is process wide, so only the first document registered is served.
func RegisterSwagger(e *echo.Echo, doc *openapi3.T) error {
	data, err := doc.MarshalJSON()
	if err != nil {
		return err
	}
	registerOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{json: string(data)})
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return nil
}
