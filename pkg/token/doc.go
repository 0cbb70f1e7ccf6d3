// Package token generates opaque subscription tokens.
//
// A token is Length characters drawn uniformly from [A-Za-z0-9] using
// crypto/rand, giving roughly 148 bits of entropy. Tokens carry no payload:
// the server resolves them by lookup, so they are safe to put in URLs as-is.
//
// # Usage
//
//	import "github.com/dmitrymomot/newsletter/pkg/token"
//
//	tok, err := token.Generate()
//	if err != nil {
//	    return err
//	}
//
//	if !token.Valid(r.URL.Query().Get("subscription_token")) {
//	    // reject without touching storage
//	}
//
// Generate returns ErrEntropy if the system random source fails.
package token
