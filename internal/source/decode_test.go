package source

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecode_Array(t *testing.T) {
	badges, err := Decode([]byte(`[
		{"id": "b", "name": "Cloud Ace", "level": "Beginner", "type_category": "Cloud", "cost": null},
		{"id": "a", "name": "Cloud Architect", "level": "Expert", "type_category": "Cloud", "cost": "50"}
	]`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	var got []string
	for _, b := range badges {
		got = append(got, b.ID)
	}
	if diff := cmp.Diff([]string{"b", "a"}, got); diff != "" {
		t.Errorf("Decode() order mismatch (-want +got):\n%s", diff)
	}
	if badges[1].Cost.String() != "50" {
		t.Errorf("Cost = %q, want 50", badges[1].Cost.String())
	}
}

func TestDecode_ObjectKeepsDocumentOrder(t *testing.T) {
	badges, err := Decode([]byte(`{
		"zeta":  {"id": "z", "name": "Zeta"},
		"alpha": {"id": "a", "name": "Alpha"},
		"mid":   {"id": "m", "name": "Mid", "cost": 25}
	}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	var got []string
	for _, b := range badges {
		got = append(got, b.ID)
	}
	if diff := cmp.Diff([]string{"z", "a", "m"}, got); diff != "" {
		t.Errorf("Decode() order mismatch (-want +got):\n%s", diff)
	}
	if badges[2].Cost.String() != "25" {
		t.Errorf("numeric cost = %q, want 25", badges[2].Cost.String())
	}
}

func TestDecode_SkipsNullEntries(t *testing.T) {
	for _, doc := range []string{
		`[null, {"id": "a", "name": "A"}]`,
		`{"x": null, "y": {"id": "a", "name": "A"}}`,
	} {
		badges, err := Decode([]byte(doc))
		if err != nil {
			t.Fatalf("Decode(%s) error = %v", doc, err)
		}
		if len(badges) != 1 || badges[0].ID != "a" {
			t.Errorf("Decode(%s) = %+v, want one badge", doc, badges)
		}
	}
}

func TestDecode_EmptyCollections(t *testing.T) {
	for _, doc := range []string{`[]`, `{}`, "  [ ]\n"} {
		badges, err := Decode([]byte(doc))
		if err != nil {
			t.Fatalf("Decode(%q) error = %v", doc, err)
		}
		if badges == nil || len(badges) != 0 {
			t.Errorf("Decode(%q) = %#v, want empty slice", doc, badges)
		}
	}
}

func TestDecode_Malformed(t *testing.T) {
	for _, tc := range []struct {
		name string
		doc  string
	}{
		{"Empty", ``},
		{"Whitespace", "  \n\t"},
		{"NotJSON", `<html>404</html>`},
		{"Scalar", `42`},
		{"String", `"badges"`},
		{"TruncatedArray", `[{"id": "a"`},
		{"TruncatedObject", `{"a": {"id": "a"}`},
		{"ObjectOfScalars", `{"a": 1}`},
		{"SingleBadgeObject", `{"id": "a", "name": "A"}`},
		{"TrailingData", `{"a": {"id": "a"}} {"b": {}}`},
		{"ArrayOfScalars", `[1, 2]`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			badges, err := Decode([]byte(tc.doc))
			if err == nil {
				t.Fatalf("Decode(%q) = %+v, want error", tc.doc, badges)
			}
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("Decode(%q) error = %v, want ErrMalformed", tc.doc, err)
			}
			if badges != nil {
				t.Errorf("Decode(%q) returned badges on error", tc.doc)
			}
		})
	}
}
