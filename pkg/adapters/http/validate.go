package http

import (
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/legacy"
)

// Operation IDs declared in api/openapi.yaml.
const (
	opRegister = "register"
	opFakeAuth = "fakeAuth"
)

type rejectFunc func(w http.ResponseWriter, r *http.Request, operationID string, err error)

// newRequestValidator checks requests to documented operations against the embedded
// API document. Routes the document does not describe pass through untouched.
func newRequestValidator(reject rejectFunc) (func(http.Handler) http.Handler, error) {
	swagger, err := GetSwagger()
	if err != nil {
		return nil, fmt.Errorf("failed to load API document: %w", err)
	}
	swagger.Servers = nil

	router, err := legacy.NewRouter(swagger)
	if err != nil {
		return nil, fmt.Errorf("failed to build API router: %w", err)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route, params, err := router.FindRoute(r)
			if err != nil || route == nil {
				next.ServeHTTP(w, r)
				return
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: params,
				Route:      route,
			}
			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				reject(w, r, route.Operation.OperationID, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}, nil
}
