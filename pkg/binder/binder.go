// Package binder decodes request bodies and query strings into structs.
//
// Form and query values are decoded with gorilla/schema using the `form` and
// `query` struct tags. JSON bodies are decoded strictly: unknown fields and
// trailing data are rejected. Every failure wraps one of the package errors so
// handlers can answer 400 or 415 with errors.Is.
package binder

import (
	"fmt"
	"mime"
	"net/http"

	"github.com/gorilla/schema"
)

// DefaultMaxBodyBytes caps request bodies read by Form and JSON.
const DefaultMaxBodyBytes int64 = 1 << 20

var (
	formDecoder  = newDecoder("form")
	queryDecoder = newDecoder("query")
)

func newDecoder(tag string) *schema.Decoder {
	d := schema.NewDecoder()
	d.SetAliasTag(tag)
	d.IgnoreUnknownKeys(true)
	return d
}

// Form decodes an application/x-www-form-urlencoded body into v.
func Form(w http.ResponseWriter, r *http.Request, v any) error {
	if err := requireMediaType(r, "application/x-www-form-urlencoded"); err != nil {
		return err
	}

	r.Body = http.MaxBytesReader(w, r.Body, DefaultMaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		if isMaxBytes(err) {
			return fmt.Errorf("%w: %v", ErrBodyTooLarge, err)
		}
		return fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}

	if err := formDecoder.Decode(v, r.PostForm); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}
	return nil
}

// Query decodes the URL query string into v.
func Query(r *http.Request, v any) error {
	if err := queryDecoder.Decode(v, r.URL.Query()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	return nil
}

func requireMediaType(r *http.Request, want string) error {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return fmt.Errorf("%w: expected %s", ErrMissingContentType, want)
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
	}
	if mediaType != want {
		return fmt.Errorf("%w: got %s, expected %s", ErrUnsupportedMediaType, mediaType, want)
	}
	return nil
}
