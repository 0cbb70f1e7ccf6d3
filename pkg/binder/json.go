package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// JSON decodes an application/json body into v. Unknown fields, trailing
// data and bodies over DefaultMaxBodyBytes are rejected.
func JSON(w http.ResponseWriter, r *http.Request, v any) error {
	if err := requireMediaType(r, "application/json"); err != nil {
		return err
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, DefaultMaxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		switch {
		case isMaxBytes(err):
			return fmt.Errorf("%w: %v", ErrBodyTooLarge, err)
		case errors.Is(err, io.EOF):
			return fmt.Errorf("%w: empty body", ErrInvalidJSON)
		default:
			return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected data after JSON value", ErrInvalidJSON)
	}
	return nil
}

func isMaxBytes(err error) bool {
	var mbErr *http.MaxBytesError
	return errors.As(err, &mbErr)
}
