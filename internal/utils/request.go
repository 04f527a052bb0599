package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// DecodeJSONRequest decodes the request body into v. On failure it writes a
// 400 response and returns the error, so callers only need to return.
func DecodeJSONRequest(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		msg := err.Error()
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			msg = "request body is empty"
		case errors.As(err, &maxErr):
			WriteErrorResponse(w, http.StatusRequestEntityTooLarge, "request_too_large", "request body too large")
			return err
		}
		WriteErrorResponse(w, http.StatusBadRequest, "invalid_request", msg)
		return err
	}
	return nil
}

// QueryInt reads a non-negative integer query parameter, falling back to def
// when absent or malformed and clamping to max when max > 0.
func QueryInt(r *http.Request, key string, def, max int) int {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	if max > 0 && n > max {
		return max
	}
	return n
}
