// Package encoder converts sequential shortlink ids to and from base62 keys.
package encoder

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const base = uint64(len(alphabet))

var (
	// ErrEmptyKey is returned when decoding an empty string.
	ErrEmptyKey = errors.New("empty key")
	// ErrInvalidCharacter is returned when a key contains a character outside the base62 alphabet.
	ErrInvalidCharacter = errors.New("invalid base62 character")
	// ErrOverflow is returned when a key does not fit into uint64.
	ErrOverflow = errors.New("key overflows uint64")
)

// Encode returns the base62 representation of id.
func Encode(id uint64) string {
	if id == 0 {
		return alphabet[:1]
	}

	var buf [11]byte
	i := len(buf)
	for id > 0 {
		i--
		buf[i] = alphabet[id%base]
		id /= base
	}

	return string(buf[i:])
}

// Decode parses a base62 key back into the id it was encoded from.
func Decode(key string) (uint64, error) {
	const op = "encoder.Decode"

	if key == "" {
		return 0, fmt.Errorf("%s: %w", op, ErrEmptyKey)
	}

	var id uint64
	for _, c := range key {
		digit := strings.IndexRune(alphabet, c)
		if digit < 0 {
			return 0, fmt.Errorf("%s: %w: %q", op, ErrInvalidCharacter, c)
		}

		if id > (math.MaxUint64-uint64(digit))/base {
			return 0, fmt.Errorf("%s: %w", op, ErrOverflow)
		}
		id = id*base + uint64(digit)
	}

	return id, nil
}
