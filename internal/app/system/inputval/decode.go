package inputval

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dalemusser/recoveryhub/internal/app/system/apperr"
	"github.com/dalemusser/recoveryhub/internal/app/system/limits"
)

// DecodeJSON reads r's body into dst. An empty body leaves dst unchanged.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, limits.MaxJSONBody))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return apperr.Invalid("Field %s has the wrong type", typeErr.Field)
		}
		return apperr.Invalid("Request body is not valid JSON")
	}
	return nil
}

// Bind decodes and validates in one step.
func Bind(r *http.Request, dst any) error {
	if err := DecodeJSON(r, dst); err != nil {
		return err
	}
	return Check(dst)
}
