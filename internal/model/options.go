package model

import "github.com/samber/lo"

// Options holds the distinct values of each filterable field, in the order
// they first appear in the collection. They populate filter controls and are
// not used for validation.
type Options struct {
	Categories []string `json:"categories"`
	Costs      []string `json:"costs"`
	Levels     []string `json:"levels"`
}

// DeriveOptions scans badges once per field and returns their distinct
// values. Absent costs and empty strings are left out, since "" is the
// "no filter" selection.
func DeriveOptions(badges []*Badge) Options {
	return Options{
		Categories: distinct(badges, func(b *Badge) string { return b.TypeCategory }),
		Costs:      distinct(badges, func(b *Badge) string { return b.Cost.String() }),
		Levels:     distinct(badges, func(b *Badge) string { return b.Level }),
	}
}

func distinct(badges []*Badge, field func(*Badge) string) []string {
	values := lo.FilterMap(badges, func(b *Badge, _ int) (string, bool) {
		if b == nil {
			return "", false
		}
		v := field(b)
		return v, v != ""
	})
	return lo.Uniq(values)
}
