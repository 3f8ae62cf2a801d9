package idgen

import (
	"regexp"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(ExportPrefix) + `[a-zA-Z0-9]{12}$`)
	for i := range 100 {
		id, err := New(ExportPrefix)
		if err != nil {
			t.Fatalf("New() error on iteration %d: %v", i, err)
		}
		if !pattern.MatchString(id) {
			t.Fatalf("New() = %q, does not match %s", id, pattern)
		}
	}
}

func TestRequestID(t *testing.T) {
	id := RequestID()
	if !strings.HasPrefix(id, RequestPrefix) {
		t.Errorf("RequestID() = %q, want prefix %q", id, RequestPrefix)
	}
	if len(id) != len(RequestPrefix)+Length {
		t.Errorf("RequestID() length = %d, want %d", len(id), len(RequestPrefix)+Length)
	}
}

func TestNew_Uniqueness(t *testing.T) {
	const count = 10_000
	seen := make(map[string]struct{}, count)
	for i := range count {
		id, err := New("")
		if err != nil {
			t.Fatalf("New() error on iteration %d: %v", i, err)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate ID %q after %d iterations", id, i)
		}
		seen[id] = struct{}{}
	}
}
