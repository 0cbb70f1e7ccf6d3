package token

import "errors"

var ErrEntropy = errors.New("failed to read random bytes")
