package views

import (
	"strings"
	"testing"
	"time"

	"github.com/Paintersrp/curio/internal/catalog"
	"github.com/Paintersrp/curio/internal/dedupe"
	"github.com/Paintersrp/curio/internal/snapshot"
)

func TestObjectLine(t *testing.T) {
	r := NewRenderer("light")
	obj := catalog.NewObject("vacances", "", catalog.KindImage, "/photos/vacances.jpg")

	line := r.ObjectLine(obj, []string{"plage", "famille"})
	for _, want := range []string{"vacances", "[image]", "#plage", "#famille", obj.ID} {
		if !strings.Contains(line, want) {
			t.Errorf("ObjectLine missing %q in %q", want, line)
		}
	}
}

func TestObjectDetail(t *testing.T) {
	r := NewRenderer("dark")
	obj := catalog.NewObject("rapport", "bilan annuel", catalog.KindDocument, "/docs/rapport.pdf")

	detail := r.ObjectDetail(obj, []string{"travail"}, []string{"Archives"})
	for _, want := range []string{"rapport", "document", "bilan annuel", "travail", "Archives"} {
		if !strings.Contains(detail, want) {
			t.Errorf("ObjectDetail missing %q", want)
		}
	}
}

func TestObjectLineUnknownKind(t *testing.T) {
	r := NewRenderer("light")
	obj := catalog.NewObject("mystery", "", catalog.Kind("weird"), "")

	if !strings.Contains(r.ObjectLine(obj, nil), "[other]") {
		t.Error("expected unknown kinds to render as other")
	}
}

func TestTagAndCollectionLines(t *testing.T) {
	r := NewRenderer("light")

	if got := r.TagLine("animal", 3); !strings.Contains(got, "#animal") || !strings.Contains(got, "(3)") {
		t.Errorf("TagLine = %q", got)
	}

	col := &catalog.Collection{Name: "Vacances 2024", Description: "photos d'ete"}
	got := r.CollectionLine(col, 12)
	if !strings.Contains(got, "Vacances 2024") || !strings.Contains(got, "(12 objects)") {
		t.Errorf("CollectionLine = %q", got)
	}
	if !strings.Contains(got, "photos d'ete") {
		t.Errorf("CollectionLine missing description: %q", got)
	}
}

func TestDuplicateGroup(t *testing.T) {
	r := NewRenderer("light")
	g := dedupe.Group{
		Hash:  "abcdef0123456789abcdef0123456789",
		Size:  2048,
		Paths: []string{"/data/a.bin", "/data/b.bin"},
	}

	got := r.DuplicateGroup(g)
	for _, want := range []string{"2 copies", "2.0 KiB", "abcdef012345", "/data/a.bin", "/data/b.bin"} {
		if !strings.Contains(got, want) {
			t.Errorf("DuplicateGroup missing %q in %q", want, got)
		}
	}
}

func TestSnapshotLine(t *testing.T) {
	r := NewRenderer("light")
	e := snapshot.Entry{
		Hash:    "0123456789abcdef0123456789abcdef",
		Message: "before cleanup\n",
		When:    time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
	}

	got := r.SnapshotLine(e)
	for _, want := range []string{"0123456789ab", "2024-05-01 10:30", "before cleanup"} {
		if !strings.Contains(got, want) {
			t.Errorf("SnapshotLine missing %q in %q", want, got)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{3 * 1024 * 1024, "3.0 MiB"},
	}
	for _, tc := range cases {
		if got := formatBytes(tc.in); got != tc.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
