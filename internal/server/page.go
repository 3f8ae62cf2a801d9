package server

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/alfredjeanlab/badges/internal/model"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// selectField is one filter control on the page.
type selectField struct {
	Name     string
	Label    string
	Values   []string
	Selected string
}

// badgeItem is a badge as rendered in the list.
type badgeItem struct {
	*model.Badge
	Lazy bool
}

type pageData struct {
	State   model.CatalogState
	Filter  model.BadgeFilter
	Selects []selectField
	Items   []badgeItem
	Total   int
}

func (p pageData) Ready() bool  { return p.State.Status == model.CatalogReady }
func (p pageData) Failed() bool { return p.State.Status == model.CatalogFailed }

// handlePage handles GET /, the filterable badge list.
func (s *BadgesServer) handlePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter := filterFromQuery(r.URL.Query())

	badges, total, err := s.store.ListBadges(ctx, filter)
	if err != nil {
		http.Error(w, "failed to list badges", http.StatusInternalServerError)
		return
	}
	opts, err := s.store.Options(ctx)
	if err != nil {
		http.Error(w, "failed to get options", http.StatusInternalServerError)
		return
	}

	data := pageData{
		State:  s.store.State(),
		Filter: filter,
		Selects: []selectField{
			{Name: "cost", Label: "cost", Values: opts.Costs, Selected: filter.Cost},
			{Name: "level", Label: "level", Values: opts.Levels, Selected: filter.Level},
			{Name: "category", Label: "category", Values: opts.Categories, Selected: filter.Category},
		},
		Items: make([]badgeItem, len(badges)),
		Total: total,
	}
	for i, b := range badges {
		data.Items[i] = badgeItem{Badge: b, Lazy: s.lazyImages}
	}

	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, "page.html", data); err != nil {
		s.logger.Error("rendering badge page", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}
