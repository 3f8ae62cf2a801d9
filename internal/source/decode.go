package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alfredjeanlab/badges/internal/model"
)

// ErrMalformed is returned for documents that are empty, not JSON, or not an
// array/object of badges.
var ErrMalformed = errors.New("malformed badge document")

// Decode parses a badge document. Two shapes are accepted:
//
//	[ {badge}, {badge}, ... ]
//	{ "key": {badge}, "key": {badge}, ... }
//
// Both yield the badges in document order. Null entries are skipped.
func Decode(data []byte) ([]*model.Badge, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformed)
	}

	var (
		badges []*model.Badge
		err    error
	)
	switch data[0] {
	case '[':
		err = json.Unmarshal(data, &badges)
	case '{':
		badges, err = decodeObject(data)
	default:
		return nil, fmt.Errorf("%w: expected a JSON array or object", ErrMalformed)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	out := make([]*model.Badge, 0, len(badges))
	for _, b := range badges {
		if b != nil {
			out = append(out, b)
		}
	}
	return out, nil
}

// decodeObject walks the top-level object token by token so values keep the
// order they were written in.
func decodeObject(data []byte) ([]*model.Badge, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	var badges []*model.Badge
	for dec.More() {
		key, err := dec.Token()
		if err != nil {
			return nil, err
		}
		var b *model.Badge
		if err := dec.Decode(&b); err != nil {
			return nil, fmt.Errorf("value for %v: %w", key, err)
		}
		badges = append(badges, b)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("trailing data after object")
	}
	return badges, nil
}
