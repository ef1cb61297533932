package http

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// docName is the swag instance the swagger UI reads doc.json from.
const docName = "shipping"

//go:embed openapi.yaml
var openAPISpec []byte

var registerDoc sync.Once

// LoadOpenAPI parses and validates the embedded API description.
func LoadOpenAPI() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPISpec)
	if err != nil {
		return nil, fmt.Errorf("load openapi spec: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi spec: %w", err)
	}
	return doc, nil
}

func newRouter(doc *openapi3.T) (routers.Router, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}
	return router, nil
}

// validateRequest rejects requests that do not match the API description
// before they reach a handler. Routes the description does not know pass
// through untouched.
func (s *Server) validateRequest(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		route, pathParams, err := s.router.FindRoute(req)
		if err != nil {
			return next(c)
		}

		input := &openapi3filter.RequestValidationInput{
			Request:    req,
			PathParams: pathParams,
			Route:      route,
			Options:    &openapi3filter.Options{AuthenticationFunc: openapi3filter.NoopAuthenticationFunc},
		}
		if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
			return fmt.Errorf("%w: %s", errBadRequestBody, validationMessage(err))
		}
		return next(c)
	}
}

// validationMessage names the offending field instead of dumping the schema.
func validationMessage(err error) string {
	var field []string
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) && reqErr.Parameter != nil {
		field = append(field, reqErr.Parameter.Name)
	}

	var schemaErr *openapi3.SchemaError
	if !errors.As(err, &schemaErr) {
		return err.Error()
	}
	field = append(field, schemaErr.JSONPointer()...)
	if len(field) == 0 {
		return schemaErr.Reason
	}
	return strings.Join(field, ".") + ": " + schemaErr.Reason
}

// swaggerDoc hands the API description to the swagger UI as JSON.
type swaggerDoc struct {
	doc []byte
}

func (d swaggerDoc) ReadDoc() string {
	return string(d.doc)
}

func (s *Server) swaggerHandler() (echo.HandlerFunc, error) {
	doc, err := s.doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal openapi spec: %w", err)
	}
	registerDoc.Do(func() {
		swag.Register(docName, swaggerDoc{doc: doc})
	})
	return echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(docName)), nil
}
