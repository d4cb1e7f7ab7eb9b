package http

import (
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openAPIDocument []byte

// OpenAPIDocument returns the embedded API description.
func OpenAPIDocument() []byte {
	return openAPIDocument
}

// swaggerDoc serves the embedded document as the Swagger UI's doc.json.
type swaggerDoc struct{}

func (swaggerDoc) ReadDoc() string {
	return string(openAPIDocument)
}

func init() {
	swag.Register(swag.Name, swaggerDoc{})
}

// loadRouter parses and validates the embedded document and builds a route matcher on it.
func loadRouter() (routers.Router, error) {
	doc, err := openapi3.NewLoader().LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi document: %w", err)
	}

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build openapi router: %w", err)
	}

	return router, nil
}

// requestValidator rejects requests that do not match openapi.yaml with 422 and a
// detail list naming the offending location. Paths the document does not describe
// (health, metrics) pass through untouched.
func requestValidator(router routers.Router) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options: &openapi3filter.Options{
					AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
				},
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return c.JSON(http.StatusUnprocessableEntity, ValidationError{Detail: []ValidationIssue{describe(err)}})
			}

			return next(c)
		}
	}
}

func describe(err error) ValidationIssue {
	issue := ValidationIssue{Type: "validation_error", Msg: err.Error()}

	var reqErr *openapi3filter.RequestError
	if !errors.As(err, &reqErr) {
		return issue
	}

	switch {
	case reqErr.Parameter != nil:
		issue.Type = "parameter"
		issue.Loc = []string{reqErr.Parameter.In, reqErr.Parameter.Name}
	case reqErr.RequestBody != nil:
		issue.Type = "body"
		issue.Loc = []string{"body"}
	}

	var parseErr *openapi3filter.ParseError
	if errors.As(reqErr.Err, &parseErr) {
		issue.Type = "parsing"
		issue.Msg = parseErr.Error()
		issue.Input = parseErr.Value
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(reqErr.Err, &schemaErr) {
		issue.Type = strings.ToLower(schemaErr.SchemaField)
		if issue.Type == "" {
			issue.Type = "schema"
		}
		issue.Loc = append(issue.Loc, schemaErr.JSONPointer()...)
		issue.Msg = schemaErr.Reason
		issue.Input = schemaErr.Value
	}

	if issue.Msg == "" {
		issue.Msg = reqErr.Error()
	}
	return issue
}
