package server

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/alfredjeanlab/badges/internal/model"
	"github.com/alfredjeanlab/badges/internal/store"
)

type listBadgesResponse struct {
	Badges []*model.Badge     `json:"badges"`
	Count  int                `json:"count"`
	Total  int                `json:"total"`
	State  model.CatalogState `json:"state"`
	Filter model.BadgeFilter  `json:"filter"`
}

// filterFromQuery reads the filter from query parameters. The search text may
// be given as "search" or as "q", the page's input name.
func filterFromQuery(q url.Values) model.BadgeFilter {
	search := q.Get("search")
	if search == "" {
		search = q.Get("q")
	}
	return model.BadgeFilter{
		Search:   search,
		Category: q.Get("category"),
		Cost:     q.Get("cost"),
		Level:    q.Get("level"),
	}
}

// handleListBadges handles GET /v1/badges.
func (s *BadgesServer) handleListBadges(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r.URL.Query())

	badges, total, err := s.store.ListBadges(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list badges")
		return
	}

	writeJSON(w, http.StatusOK, listBadgesResponse{
		Badges: badges,
		Count:  len(badges),
		Total:  total,
		State:  s.store.State(),
		Filter: filter,
	})
}

// handleGetBadge handles GET /v1/badges/{id}.
func (s *BadgesServer) handleGetBadge(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	badge, err := s.store.GetBadge(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "badge not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get badge")
		return
	}

	writeJSON(w, http.StatusOK, badge)
}

// handleOptions handles GET /v1/options.
func (s *BadgesServer) handleOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.store.Options(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get options")
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

// handleStatus handles GET /v1/status.
func (s *BadgesServer) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.State())
}
