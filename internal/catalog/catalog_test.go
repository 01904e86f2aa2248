package catalog

import (
	"errors"
	"regexp"
	"testing"
)

func newTestObject(t *testing.T, name, location string) *Object {
	t.Helper()
	return NewObject(name, "", KindImage, location)
}

func TestNewID(t *testing.T) {
	t.Parallel()

	pattern := regexp.MustCompile(`^[0-4]_\d{16}$`)

	cases := []struct {
		kind   Kind
		prefix byte
	}{
		{KindImage, '1'},
		{KindVideo, '2'},
		{KindAudio, '3'},
		{KindDocument, '4'},
		{KindOther, '0'},
		{Kind("IMAGE"), '1'},
		{Kind("mystery"), '0'},
	}

	for _, tc := range cases {
		id := NewID(tc.kind)
		if !pattern.MatchString(id) {
			t.Errorf("NewID(%s) = %q, not of the form prefix_16digits", tc.kind, id)
		}
		if id[0] != tc.prefix {
			t.Errorf("NewID(%s) = %q, want prefix %c", tc.kind, id, tc.prefix)
		}
	}

	if NewID(KindImage) == NewID(KindImage) {
		t.Error("expected consecutive identifiers to differ")
	}
}

func TestIsExternal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		location string
		want     bool
	}{
		{"https://example.com/photo.jpg", true},
		{"http://example.com", true},
		{"www.example.com", true},
		{"HTTPS://EXAMPLE.COM", true},
		{"/home/user/photo.jpg", false},
		{"", false},
	}

	for _, tc := range cases {
		obj := &Object{Location: tc.location}
		if got := obj.IsExternal(); got != tc.want {
			t.Errorf("IsExternal(%q) = %v, want %v", tc.location, got, tc.want)
		}
	}
}

func TestAddObjectLocationUniqueness(t *testing.T) {
	t.Parallel()

	cat := New()
	first := newTestObject(t, "chat.jpg", "/photos/chat.jpg")
	if err := cat.AddObject(first); err != nil {
		t.Fatalf("AddObject: %v", err)
	}

	dup := newTestObject(t, "copie.jpg", "/photos/chat.jpg")
	if err := cat.AddObject(dup); !errors.Is(err, ErrDuplicateLocation) {
		t.Fatalf("expected ErrDuplicateLocation, got %v", err)
	}

	// Empty locations never collide.
	if err := cat.AddObject(newTestObject(t, "a", "")); err != nil {
		t.Fatalf("AddObject empty location: %v", err)
	}
	if err := cat.AddObject(newTestObject(t, "b", "")); err != nil {
		t.Fatalf("AddObject second empty location: %v", err)
	}
}

func TestUpdateObject(t *testing.T) {
	t.Parallel()

	cat := New()
	obj := newTestObject(t, "chat.jpg", "/photos/chat.jpg")
	other := newTestObject(t, "chien.jpg", "/photos/chien.jpg")
	if err := cat.AddObject(obj); err != nil {
		t.Fatalf("AddObject: %v", err)
	}
	if err := cat.AddObject(other); err != nil {
		t.Fatalf("AddObject: %v", err)
	}

	if err := cat.UpdateObject(obj.ID, "chat noir", "desc", KindImage, "/photos/noir.jpg"); err != nil {
		t.Fatalf("UpdateObject: %v", err)
	}
	got, _ := cat.Lookup(obj.ID)
	if got.Name != "chat noir" || got.Location != "/photos/noir.jpg" {
		t.Errorf("update not applied: %+v", got)
	}
	if got.UpdatedAt.Before(got.CreatedAt) {
		t.Error("expected UpdatedAt to advance")
	}

	// Keeping your own location is not a collision.
	if err := cat.UpdateObject(obj.ID, "chat noir", "desc", KindImage, "/photos/noir.jpg"); err != nil {
		t.Fatalf("UpdateObject same location: %v", err)
	}

	if err := cat.UpdateObject(obj.ID, "x", "", KindImage, "/photos/chien.jpg"); !errors.Is(err, ErrDuplicateLocation) {
		t.Fatalf("expected ErrDuplicateLocation, got %v", err)
	}

	if err := cat.UpdateObject("1_9999999999999999", "x", "", KindImage, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteObjectCascades(t *testing.T) {
	t.Parallel()

	cat := New()
	obj := newTestObject(t, "chat.jpg", "/photos/chat.jpg")
	if err := cat.AddObject(obj); err != nil {
		t.Fatalf("AddObject: %v", err)
	}
	if err := cat.Tag(obj.ID, "animal"); err != nil {
		t.Fatalf("Tag: %v", err)
	}
	if _, err := cat.CreateCollection("Vacances", ""); err != nil {
		t.Fatalf("CreateCollection: %v", err)
	}
	if err := cat.AddToCollection("Vacances", obj.ID); err != nil {
		t.Fatalf("AddToCollection: %v", err)
	}

	if err := cat.DeleteObject(obj.ID); err != nil {
		t.Fatalf("DeleteObject: %v", err)
	}

	if _, ok := cat.Lookup(obj.ID); ok {
		t.Error("object still present after delete")
	}
	if members := cat.TagMembers("animal"); len(members) != 0 {
		t.Errorf("tag still holds %d member(s)", len(members))
	}
	col, _ := cat.LookupCollection("Vacances")
	if len(col.Members) != 0 {
		t.Errorf("collection still holds %d member(s)", len(col.Members))
	}

	if err := cat.DeleteObject(obj.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNormalizeTag(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"animal", "animal"},
		{"#animal", "animal"},
		{"##animal", "animal"},
		{"  deux mots  ", "deux_mots"},
		{"plusieurs   espaces", "plusieurs_espaces"},
		{"Animal", "Animal"},
		{"#", ""},
		{"   ", ""},
	}

	for _, tc := range cases {
		if got := NormalizeTag(tc.in); got != tc.want {
			t.Errorf("NormalizeTag(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTagLifecycle(t *testing.T) {
	t.Parallel()

	cat := New()
	obj := newTestObject(t, "chat.jpg", "/photos/chat.jpg")
	if err := cat.AddObject(obj); err != nil {
		t.Fatalf("AddObject: %v", err)
	}

	if err := cat.Tag(obj.ID, "#animal"); err != nil {
		t.Fatalf("Tag: %v", err)
	}
	if _, ok := cat.TagMembers("animal")[obj.ID]; !ok {
		t.Fatal("expected object in tag member set")
	}

	// Untag leaves the empty tag behind.
	if err := cat.Untag(obj.ID, "animal"); err != nil {
		t.Fatalf("Untag: %v", err)
	}
	names := cat.TagNames()
	if len(names) != 1 || names[0] != "animal" {
		t.Errorf("TagNames = %v, want [animal]", names)
	}

	if err := cat.DeleteTag("animal"); err != nil {
		t.Fatalf("DeleteTag: %v", err)
	}
	if len(cat.TagNames()) != 0 {
		t.Error("tag survived DeleteTag")
	}

	if err := cat.Tag("1_9999999999999999", "animal"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := cat.Untag(obj.ID, "inconnu"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCollections(t *testing.T) {
	t.Parallel()

	cat := New()
	obj := newTestObject(t, "chat.jpg", "/photos/chat.jpg")
	if err := cat.AddObject(obj); err != nil {
		t.Fatalf("AddObject: %v", err)
	}

	if _, err := cat.CreateCollection("Vacances 2024", "photos d'ete"); err != nil {
		t.Fatalf("CreateCollection: %v", err)
	}

	// Uniqueness ignores case.
	if _, err := cat.CreateCollection("VACANCES 2024", ""); !errors.Is(err, ErrDuplicateCollection) {
		t.Fatalf("expected ErrDuplicateCollection, got %v", err)
	}

	if err := cat.AddToCollection("vacances 2024", obj.ID); err != nil {
		t.Fatalf("AddToCollection: %v", err)
	}
	if got := cat.ObjectCollections(obj.ID); len(got) != 1 || got[0] != "Vacances 2024" {
		t.Errorf("ObjectCollections = %v", got)
	}

	if err := cat.AddToCollection("Vacances 2024", "1_9999999999999999"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown object, got %v", err)
	}

	if err := cat.RemoveFromCollection("Vacances 2024", obj.ID); err != nil {
		t.Fatalf("RemoveFromCollection: %v", err)
	}
	col, _ := cat.LookupCollection("Vacances 2024")
	if len(col.Members) != 0 {
		t.Error("member survived RemoveFromCollection")
	}

	if err := cat.DeleteCollection("Vacances 2024"); err != nil {
		t.Fatalf("DeleteCollection: %v", err)
	}
	if _, ok := cat.LookupCollection("Vacances 2024"); ok {
		t.Error("collection survived DeleteCollection")
	}
}

func TestCollectionMembersSubstring(t *testing.T) {
	t.Parallel()

	cat := New()
	a := newTestObject(t, "a.jpg", "/a.jpg")
	b := newTestObject(t, "b.jpg", "/b.jpg")
	for _, obj := range []*Object{a, b} {
		if err := cat.AddObject(obj); err != nil {
			t.Fatalf("AddObject: %v", err)
		}
	}

	for name, id := range map[string]string{
		"Vacances 2024": a.ID,
		"Vacances 2025": b.ID,
	} {
		if _, err := cat.CreateCollection(name, ""); err != nil {
			t.Fatalf("CreateCollection: %v", err)
		}
		if err := cat.AddToCollection(name, id); err != nil {
			t.Fatalf("AddToCollection: %v", err)
		}
	}

	if got := cat.CollectionMembers("vacances"); len(got) != 2 {
		t.Errorf("expected aggregation across both collections, got %d", len(got))
	}
	if got := cat.CollectionMembers("2024"); len(got) != 1 {
		t.Errorf("expected single collection match, got %d", len(got))
	}
	if got := cat.CollectionMembers(""); len(got) != 0 {
		t.Errorf("expected empty needle to match nothing, got %d", len(got))
	}
}

func TestCloneIsDeep(t *testing.T) {
	t.Parallel()

	cat := New()
	obj := newTestObject(t, "chat.jpg", "/photos/chat.jpg")
	if err := cat.AddObject(obj); err != nil {
		t.Fatalf("AddObject: %v", err)
	}
	if err := cat.Tag(obj.ID, "animal"); err != nil {
		t.Fatalf("Tag: %v", err)
	}

	clone := cat.Clone()

	if err := cat.UpdateObject(obj.ID, "renamed", "", KindImage, ""); err != nil {
		t.Fatalf("UpdateObject: %v", err)
	}
	if err := cat.DeleteTag("animal"); err != nil {
		t.Fatalf("DeleteTag: %v", err)
	}

	cloned, ok := clone.Lookup(obj.ID)
	if !ok || cloned.Name != "chat.jpg" {
		t.Errorf("clone saw mutation: %+v", cloned)
	}
	if len(clone.TagMembers("animal")) != 1 {
		t.Error("clone lost tag after source mutation")
	}
}
