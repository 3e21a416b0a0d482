// Package errorspkg provides errors shared across app layers.
package errorspkg

import "errors"

// ErrInternal indicates an internal server error that must not leak details
// to the client.
var ErrInternal = errors.New("internal")
