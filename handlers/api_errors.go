package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/camden-git/articlesbackend/services"
)

// MsgUnprocessableJSON is returned for bodies that are not parseable JSON.
const MsgUnprocessableJSON = "Unprocessable JSON"

// APIErrorResponse is the body of every non-field error response.
type APIErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON writes v as the JSON response body with the given HTTP status.
func WriteJSON(w http.ResponseWriter, r *http.Request, httpStatus int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode JSON response", "path", r.URL.Path, "err", err)
	}
}

// WriteAPIError writes {"error": detail} with the given HTTP status.
func WriteAPIError(w http.ResponseWriter, r *http.Request, httpStatus int, detail string) {
	WriteJSON(w, r, httpStatus, APIErrorResponse{Error: detail})
}

// WriteFieldErrors writes the per-field message lists as a 400.
func WriteFieldErrors(w http.ResponseWriter, r *http.Request, fe services.FieldErrors) {
	WriteJSON(w, r, http.StatusBadRequest, fe)
}

// writeServiceError maps errors from repositories and services to a response.
func writeServiceError(w http.ResponseWriter, r *http.Request, notFound string, err error) {
	if fe, ok := services.AsFieldErrors(err); ok {
		WriteFieldErrors(w, r, fe)
		return
	}
	if isNotFound(err) {
		WriteAPIError(w, r, http.StatusNotFound, notFound)
		return
	}
	slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	WriteAPIError(w, r, http.StatusInternalServerError, "Internal server error")
}

// decodeJSON reads the request body into dst. Syntax problems become a plain error;
// a well-formed body with a wrongly typed field becomes FieldErrors.
func decodeJSON(r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return errUnprocessable
	}
	err = json.Unmarshal(body, dst)
	if err == nil {
		return nil
	}
	if fe, ok := services.AsFieldErrors(err); ok {
		return fe
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "_schema"
		}
		return services.FieldErrors{field: {typeMessage(typeErr.Type)}}
	}
	return errUnprocessable
}

// typeFieldError keys a type mismatch found while decoding a nested value under prefix.
// Anything else is passed through.
func typeFieldError(prefix string, err error) error {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		return err
	}
	field := prefix
	if typeErr.Field != "" {
		field += "." + typeErr.Field
	}
	return services.FieldErrors{field: {typeMessage(typeErr.Type)}}
}

var errUnprocessable = errors.New(MsgUnprocessableJSON)

func typeMessage(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "Invalid input type."
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "Not a valid integer."
	case reflect.String:
		return "Not a valid string."
	case reflect.Bool:
		return "Not a valid boolean."
	case reflect.Slice, reflect.Array:
		return "Not a valid list."
	default:
		return "Invalid input type."
	}
}

// writeDecodeError answers a failed decodeJSON.
func writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	if fe, ok := services.AsFieldErrors(err); ok {
		WriteFieldErrors(w, r, fe)
		return
	}
	WriteAPIError(w, r, http.StatusBadRequest, MsgUnprocessableJSON)
}
