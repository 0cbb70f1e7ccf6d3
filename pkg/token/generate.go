package token

import (
	"crypto/rand"
	"errors"
	"io"
)

// Length is the number of characters in a generated token.
const Length = 25

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// 62*4 = 248; bytes at or above this are rejected to keep the draw uniform.
const maxUnbiased = byte(len(alphabet) * (256 / len(alphabet)))

// Generate returns a new random token.
func Generate() (string, error) {
	return generate(rand.Reader)
}

func generate(src io.Reader) (string, error) {
	out := make([]byte, 0, Length)
	buf := make([]byte, Length*2)

	for len(out) < Length {
		if _, err := io.ReadFull(src, buf); err != nil {
			return "", errors.Join(ErrEntropy, err)
		}
		for _, b := range buf {
			if b >= maxUnbiased {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == Length {
				break
			}
		}
	}

	return string(out), nil
}

// Valid reports whether s has the shape of a generated token.
// It does not check that the token exists.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9') {
			return false
		}
	}
	return true
}
