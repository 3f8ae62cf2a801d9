package model

import (
	"strings"

	"github.com/samber/lo"
)

// BadgeFilter holds criteria for narrowing the badge collection.
// An empty field matches every badge for that dimension.
type BadgeFilter struct {
	Search   string `json:"search,omitempty"`   // case-insensitive substring of the name
	Category string `json:"category,omitempty"` // exact type_category
	Cost     string `json:"cost,omitempty"`     // exact cost, compared as a string
	Level    string `json:"level,omitempty"`    // exact level
}

// IsEmpty reports whether the filter matches everything.
func (f BadgeFilter) IsEmpty() bool {
	return f.Search == "" && f.Category == "" && f.Cost == "" && f.Level == ""
}

// Matches reports whether b satisfies every non-empty criterion.
func (f BadgeFilter) Matches(b *Badge) bool {
	if b == nil {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(b.Name), strings.ToLower(f.Search)) {
		return false
	}
	if f.Category != "" && b.TypeCategory != f.Category {
		return false
	}
	if f.Cost != "" && b.Cost.String() != f.Cost {
		return false
	}
	if f.Level != "" && b.Level != f.Level {
		return false
	}
	return true
}

// FilterBadges returns the badges matching f, preserving input order. The
// result is never nil.
func FilterBadges(badges []*Badge, f BadgeFilter) []*Badge {
	return lo.Filter(badges, func(b *Badge, _ int) bool {
		return f.Matches(b)
	})
}
