package model

import "time"

// CatalogStatus is the load state of the badge collection.
type CatalogStatus string

const (
	CatalogPending CatalogStatus = "pending"
	CatalogLoading CatalogStatus = "loading"
	CatalogReady   CatalogStatus = "ready"
	CatalogFailed  CatalogStatus = "failed"
)

// String returns the string representation of the status.
func (s CatalogStatus) String() string {
	return string(s)
}

// IsValid checks whether the status is a known value.
func (s CatalogStatus) IsValid() bool {
	switch s {
	case CatalogPending, CatalogLoading, CatalogReady, CatalogFailed:
		return true
	}
	return false
}

// Settled reports whether loading has finished, successfully or not.
func (s CatalogStatus) Settled() bool {
	return s == CatalogReady || s == CatalogFailed
}

// CatalogState is a snapshot of the collection's lifecycle.
type CatalogState struct {
	Status   CatalogStatus `json:"status"`
	Source   string        `json:"source,omitempty"`
	Count    int           `json:"count"`
	Error    string        `json:"error,omitempty"`
	LoadedAt *time.Time    `json:"loaded_at,omitempty"`
}
