package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

var (
	// ErrNotFound signals a lookup for an object, tag, or collection that is
	// not present in the catalog.
	ErrNotFound = errors.New("catalog: not found")

	// ErrDuplicateLocation signals a violation of the location uniqueness
	// invariant: no two live objects may share a location.
	ErrDuplicateLocation = errors.New("catalog: location already cataloged")

	// ErrDuplicateCollection signals a collection name collision. Collection
	// names are unique ignoring case.
	ErrDuplicateCollection = errors.New("catalog: collection already exists")
)

// Collection is a named group of object identifiers.
type Collection struct {
	Name        string
	Description string
	Members     map[string]struct{}
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Catalog is the in-memory index of objects, tag member sets, and
// collections for one data directory. It owns every membership set; the
// query engine only reads it.
type Catalog struct {
	objects     map[string]*Object
	tags        map[string]map[string]struct{}
	collections map[string]*Collection
}

func New() *Catalog {
	return &Catalog{
		objects:     make(map[string]*Object),
		tags:        make(map[string]map[string]struct{}),
		collections: make(map[string]*Collection),
	}
}

var tagWhitespace = regexp.MustCompile(`\s+`)

// NormalizeTag strips an optional leading # marker, trims surrounding
// whitespace, and collapses interior whitespace to underscores. Tag names
// stay case-sensitive.
func NormalizeTag(raw string) string {
	cleaned := strings.TrimSpace(strings.TrimLeft(raw, "#"))
	if cleaned == "" {
		return ""
	}
	return tagWhitespace.ReplaceAllString(cleaned, "_")
}

// AddObject inserts an object, enforcing location uniqueness.
func (c *Catalog) AddObject(obj *Object) error {
	if obj == nil || obj.ID == "" {
		return fmt.Errorf("catalog: object must have an identifier")
	}
	if other := c.findByLocation(obj.Location, ""); other != nil {
		return fmt.Errorf("%w: %s (held by %s)", ErrDuplicateLocation, obj.Location, other.ID)
	}
	c.objects[obj.ID] = obj
	return nil
}

// UpdateObject mutates an existing object in place, subject to the location
// uniqueness invariant.
func (c *Catalog) UpdateObject(id, name, description string, kind Kind, location string) error {
	obj, ok := c.objects[id]
	if !ok {
		return fmt.Errorf("%w: object %s", ErrNotFound, id)
	}

	location = strings.TrimSpace(location)
	if other := c.findByLocation(location, id); other != nil {
		return fmt.Errorf("%w: %s (held by %s)", ErrDuplicateLocation, location, other.ID)
	}

	obj.Name = name
	obj.Description = description
	obj.Kind = kind
	obj.Location = location
	obj.UpdatedAt = time.Now().UTC()
	return nil
}

// DeleteObject removes an object and cascades the removal through every tag
// and collection member set. The identifier is never reused.
func (c *Catalog) DeleteObject(id string) error {
	if _, ok := c.objects[id]; !ok {
		return fmt.Errorf("%w: object %s", ErrNotFound, id)
	}

	for _, members := range c.tags {
		delete(members, id)
	}
	for _, col := range c.collections {
		if _, ok := col.Members[id]; ok {
			delete(col.Members, id)
			col.UpdatedAt = time.Now().UTC()
		}
	}

	delete(c.objects, id)
	return nil
}

func (c *Catalog) findByLocation(location, excludeID string) *Object {
	if location == "" {
		return nil
	}
	for _, obj := range c.objects {
		if obj.ID == excludeID {
			continue
		}
		if obj.Location == location {
			return obj
		}
	}
	return nil
}

// Tag attaches a tag to an object, creating the tag on first use.
func (c *Catalog) Tag(id, raw string) error {
	if _, ok := c.objects[id]; !ok {
		return fmt.Errorf("%w: object %s", ErrNotFound, id)
	}

	name := NormalizeTag(raw)
	if name == "" {
		return nil
	}

	members, ok := c.tags[name]
	if !ok {
		members = make(map[string]struct{})
		c.tags[name] = members
	}
	members[id] = struct{}{}
	return nil
}

// Untag removes a tag from an object. The tag itself persists, even when its
// member set becomes empty; use DeleteTag to drop it entirely.
func (c *Catalog) Untag(id, raw string) error {
	name := NormalizeTag(raw)
	members, ok := c.tags[name]
	if !ok {
		return fmt.Errorf("%w: tag %s", ErrNotFound, name)
	}
	delete(members, id)
	return nil
}

// DeleteTag removes a tag from every member object and forgets it.
func (c *Catalog) DeleteTag(raw string) error {
	name := NormalizeTag(raw)
	if _, ok := c.tags[name]; !ok {
		return fmt.Errorf("%w: tag %s", ErrNotFound, name)
	}
	delete(c.tags, name)
	return nil
}

// ObjectTags returns the sorted tag names carried by an object.
func (c *Catalog) ObjectTags(id string) []string {
	var names []string
	for name, members := range c.tags {
		if _, ok := members[id]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// ObjectCollections returns the sorted names of the collections an object
// belongs to.
func (c *Catalog) ObjectCollections(id string) []string {
	var names []string
	for _, col := range c.collections {
		if _, ok := col.Members[id]; ok {
			names = append(names, col.Name)
		}
	}
	sort.Strings(names)
	return names
}

func collectionKeyFor(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// CreateCollection adds a named collection. Names are unique ignoring case.
func (c *Catalog) CreateCollection(name, description string) (*Collection, error) {
	key := collectionKeyFor(name)
	if key == "" {
		return nil, fmt.Errorf("catalog: collection name cannot be empty")
	}
	if existing, ok := c.collections[key]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateCollection, existing.Name)
	}

	now := time.Now().UTC()
	col := &Collection{
		Name:        strings.TrimSpace(name),
		Description: description,
		Members:     make(map[string]struct{}),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	c.collections[key] = col
	return col, nil
}

// DeleteCollection drops a collection. Member identifiers are simply
// released; objects do not reference collections, so no cascade is needed.
func (c *Catalog) DeleteCollection(name string) error {
	key := collectionKeyFor(name)
	if _, ok := c.collections[key]; !ok {
		return fmt.Errorf("%w: collection %s", ErrNotFound, name)
	}
	delete(c.collections, key)
	return nil
}

// AddToCollection inserts an object into a collection by exact
// (case-insensitive) collection name.
func (c *Catalog) AddToCollection(name, id string) error {
	col, ok := c.collections[collectionKeyFor(name)]
	if !ok {
		return fmt.Errorf("%w: collection %s", ErrNotFound, name)
	}
	if _, ok := c.objects[id]; !ok {
		return fmt.Errorf("%w: object %s", ErrNotFound, id)
	}
	col.Members[id] = struct{}{}
	col.UpdatedAt = time.Now().UTC()
	return nil
}

// RemoveFromCollection removes an object from a collection.
func (c *Catalog) RemoveFromCollection(name, id string) error {
	col, ok := c.collections[collectionKeyFor(name)]
	if !ok {
		return fmt.Errorf("%w: collection %s", ErrNotFound, name)
	}
	delete(col.Members, id)
	col.UpdatedAt = time.Now().UTC()
	return nil
}

// RestoreCollection installs a loaded collection verbatim, keeping its
// persisted timestamps. Used by the store when reading a data directory.
func (c *Catalog) RestoreCollection(col *Collection) error {
	key := collectionKeyFor(col.Name)
	if key == "" {
		return fmt.Errorf("catalog: collection name cannot be empty")
	}
	if _, ok := c.collections[key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCollection, col.Name)
	}
	if col.Members == nil {
		col.Members = make(map[string]struct{})
	}
	c.collections[key] = col
	return nil
}

// RestoreTag installs a loaded tag member set verbatim.
func (c *Catalog) RestoreTag(name string, ids []string) {
	name = NormalizeTag(name)
	if name == "" {
		return
	}
	members, ok := c.tags[name]
	if !ok {
		members = make(map[string]struct{}, len(ids))
		c.tags[name] = members
	}
	for _, id := range ids {
		members[id] = struct{}{}
	}
}

// LookupCollection resolves a collection by exact name, ignoring case.
func (c *Catalog) LookupCollection(name string) (*Collection, bool) {
	col, ok := c.collections[collectionKeyFor(name)]
	return col, ok
}

// Lookup returns the object for an identifier.
func (c *Catalog) Lookup(id string) (*Object, bool) {
	obj, ok := c.objects[id]
	return obj, ok
}

// TagMembers returns a copy of the member set for a tag name. Unknown tags
// resolve to an empty set, not an error. The comparison is case-sensitive.
func (c *Catalog) TagMembers(name string) map[string]struct{} {
	return copySet(c.tags[NormalizeTag(name)])
}

// CollectionMembers aggregates the member sets of every collection whose
// name contains the given substring, compared case-insensitively. The fuzzy
// match is deliberate: @vaca finds both "Vacances 2024" and "vacations".
func (c *Catalog) CollectionMembers(substr string) map[string]struct{} {
	needle := strings.ToLower(strings.TrimSpace(substr))
	out := make(map[string]struct{})
	if needle == "" {
		return out
	}
	for key, col := range c.collections {
		if !strings.Contains(key, needle) {
			continue
		}
		for id := range col.Members {
			out[id] = struct{}{}
		}
	}
	return out
}

// AllIDs returns the identifier universe, used as the base set for unary
// negation.
func (c *Catalog) AllIDs() map[string]struct{} {
	out := make(map[string]struct{}, len(c.objects))
	for id := range c.objects {
		out[id] = struct{}{}
	}
	return out
}

// Objects returns all objects sorted by display name.
func (c *Catalog) Objects() []*Object {
	out := make([]*Object, 0, len(c.objects))
	for _, obj := range c.objects {
		out = append(out, obj)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// TagNames returns every known tag name, sorted.
func (c *Catalog) TagNames() []string {
	out := make([]string, 0, len(c.tags))
	for name := range c.tags {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Collections returns all collections sorted by name.
func (c *Catalog) Collections() []*Collection {
	out := make([]*Collection, 0, len(c.collections))
	for _, col := range c.collections {
		out = append(out, col)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// Len reports the number of live objects.
func (c *Catalog) Len() int {
	return len(c.objects)
}

// Clone produces a deep copy safe to hand to a reader while the original
// keeps mutating.
func (c *Catalog) Clone() *Catalog {
	if c == nil {
		return nil
	}

	clone := New()
	for id, obj := range c.objects {
		copied := *obj
		clone.objects[id] = &copied
	}
	for name, members := range c.tags {
		clone.tags[name] = copySet(members)
	}
	for key, col := range c.collections {
		clone.collections[key] = &Collection{
			Name:        col.Name,
			Description: col.Description,
			Members:     copySet(col.Members),
			CreatedAt:   col.CreatedAt,
			UpdatedAt:   col.UpdatedAt,
		}
	}
	return clone
}

func copySet(src map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(src))
	for id := range src {
		out[id] = struct{}{}
	}
	return out
}
