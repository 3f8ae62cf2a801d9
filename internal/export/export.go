// Package export writes a filtered subset of the badge catalog as JSONL.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/alfredjeanlab/badges/internal/idgen"
	"github.com/alfredjeanlab/badges/internal/model"
	"github.com/alfredjeanlab/badges/internal/source"
)

// FormatVersion is written into every export header.
const FormatVersion = "1"

// Header is the first JSONL record of an export.
type Header struct {
	Version    string            `json:"version"`
	Type       string            `json:"type"`
	ID         string            `json:"id"`
	Timestamp  time.Time         `json:"timestamp"`
	Source     string            `json:"source"`
	Filter     model.BadgeFilter `json:"filter"`
	BadgeCount int               `json:"badge_count"`
	Total      int               `json:"total"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string       `json:"type"`
	Data *model.Badge `json:"data"`
}

// ExportJSONL writes a header followed by one "badge" record for every badge
// matching filter, in input order. It returns the header that was written.
func ExportJSONL(w io.Writer, badges []*model.Badge, filter model.BadgeFilter, sourceName string) (*Header, error) {
	matched := model.FilterBadges(badges, filter)

	id, err := idgen.New(idgen.ExportPrefix)
	if err != nil {
		return nil, err
	}
	h := &Header{
		Version:    FormatVersion,
		Type:       "header",
		ID:         id,
		Timestamp:  time.Now().UTC(),
		Source:     sourceName,
		Filter:     filter,
		BadgeCount: len(matched),
		Total:      len(badges),
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(h); err != nil {
		return nil, fmt.Errorf("encode header: %w", err)
	}
	for _, b := range matched {
		if err := enc.Encode(record{Type: "badge", Data: b}); err != nil {
			return nil, fmt.Errorf("encode badge %s: %w", b.ID, err)
		}
	}
	return h, nil
}

// Run loads the catalog from src, filters it and writes the export to dest.
func Run(ctx context.Context, src source.Source, filter model.BadgeFilter, dest Destination) (*Header, error) {
	badges, err := source.Load(ctx, src)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	h, err := ExportJSONL(&buf, badges, filter, src.String())
	if err != nil {
		return nil, err
	}
	if err := dest.Write(ctx, buf.Bytes()); err != nil {
		return nil, fmt.Errorf("write %s: %w", dest, err)
	}
	return h, nil
}
