package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Messages shared by request validation and the article writer.
const (
	MsgRequired      = "Missing data for required field."
	MsgLength        = "Length must be between 1 and 255."
	MsgAuthorMissing = "Author does not exist"
	MsgRegionMissing = "Region does not exist"
)

// FieldErrors maps a field name to every constraint it violated.
// It is returned for validation and referential failures and serializes as the 400 response body.
type FieldErrors map[string][]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(fe[k], " ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends msg to field.
func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// Merge copies every message of other into fe.
func (fe FieldErrors) Merge(other FieldErrors) {
	for field, msgs := range other {
		fe[field] = append(fe[field], msgs...)
	}
}

// Prefixed returns a copy of fe with every key nested under prefix.
func (fe FieldErrors) Prefixed(prefix string) FieldErrors {
	out := make(FieldErrors, len(fe))
	for field, msgs := range fe {
		out[prefix+"."+field] = msgs
	}
	return out
}

// Err returns nil when fe holds no messages.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// FromValidation converts an ozzo-validation result into FieldErrors, flattening
// nested errors into dotted keys (regions.0.code). Internal rule failures are returned unchanged.
func FromValidation(err error) error {
	if err == nil {
		return nil
	}
	var internal validation.InternalError
	if errors.As(err, &internal) {
		return err
	}
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return err
	}
	fe := FieldErrors{}
	flatten(fe, "", verrs)
	return fe.Err()
}

func flatten(fe FieldErrors, prefix string, verrs validation.Errors) {
	for field, ferr := range verrs {
		if ferr == nil {
			continue
		}
		key := field
		if prefix != "" {
			key = prefix + "." + field
		}
		var nested validation.Errors
		if errors.As(ferr, &nested) {
			flatten(fe, key, nested)
			continue
		}
		fe.Add(key, ferr.Error())
	}
}

// AsFieldErrors reports whether err carries FieldErrors.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
