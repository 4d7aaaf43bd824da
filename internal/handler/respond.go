package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// writeJSON encodes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeBody decodes the JSON request body into dst. On failure it writes
// the error response itself and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		requestError(w, http.StatusRequestEntityTooLarge, "request_too_large", "request body too large")
	case errors.Is(err, io.EOF):
		requestError(w, http.StatusUnprocessableEntity, "validation_error", "request body is required")
	default:
		requestError(w, http.StatusUnprocessableEntity, "validation_error", "request body is not valid JSON")
	}
	return false
}

// pathUUID binds the named chi path parameter as a UUID, writing a 400 and
// returning false when it is malformed.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		requestError(w, http.StatusBadRequest, "invalid_parameter", "invalid format for parameter "+name)
		return uuid.Nil, false
	}
	return id, true
}

// queryParam binds an optional form-style query parameter into dest, writing
// a 400 and returning false when it is malformed.
func queryParam(w http.ResponseWriter, r *http.Request, name string, dest any) bool {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		requestError(w, http.StatusBadRequest, "invalid_parameter", "invalid format for parameter "+name)
		return false
	}
	return true
}
