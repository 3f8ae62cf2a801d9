// Package idgen generates short random identifiers for requests and exports.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for the kinds of IDs the service hands out.
const (
	RequestPrefix = "req-"
	ExportPrefix  = "exp-"
)

// Alphabet is the character set of the random part.
var Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length is the number of random characters, excluding the prefix.
var Length = 12

// RequestID returns a new request ID.
func RequestID() string {
	id, err := New(RequestPrefix)
	if err != nil {
		// Request IDs are best effort.
		return RequestPrefix + "unknown"
	}
	return id
}

// New returns a random ID with the given prefix.
func New(prefix string) (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}
