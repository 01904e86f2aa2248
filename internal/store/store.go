// Package store persists a catalog as plain JSON files in a single data
// directory: one file per object (<id>.json), one per tag
// (tag_<name>.json, an array of identifiers), and one per collection
// (collection_<slug>.json). The whole directory is loaded into memory
// before any query runs; no I/O happens during parse or evaluate.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Paintersrp/curio/internal/catalog"
)

const (
	tagPrefix        = "tag_"
	collectionPrefix = "collection_"
)

// Store reads and writes one data directory. The catalog itself stays pure
// in-memory; every disk write funnels through here.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	cleaned := filepath.Clean(strings.TrimSpace(dir))
	if cleaned == "" || cleaned == "." {
		return nil, errors.New("store: data directory cannot be empty")
	}
	if err := os.MkdirAll(cleaned, 0o755); err != nil {
		return nil, fmt.Errorf("store: create data directory: %w", err)
	}
	return &Store{dir: cleaned}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

type collectionDoc struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Members     []string  `json:"members"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Load reads every JSON file in the data directory into a fresh catalog.
// Unreadable or malformed files are skipped with a warning on stderr so one
// corrupt entry never takes the whole catalog down.
func (s *Store) Load() (*catalog.Catalog, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("store: read data directory: %w", err)
	}

	cat := catalog.New()
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		if err := s.loadFile(cat, entry.Name(), path); err != nil {
			fmt.Fprintf(os.Stderr, "curio: skipping %s: %v\n", entry.Name(), err)
		}
	}

	return cat, nil
}

func (s *Store) loadFile(cat *catalog.Catalog, name, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(name, filepath.Ext(name))
	switch {
	case strings.HasPrefix(base, tagPrefix):
		var ids []string
		if err := json.Unmarshal(data, &ids); err != nil {
			return fmt.Errorf("decode tag: %w", err)
		}
		cat.RestoreTag(strings.TrimPrefix(base, tagPrefix), ids)
	case strings.HasPrefix(base, collectionPrefix):
		var doc collectionDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("decode collection: %w", err)
		}
		members := make(map[string]struct{}, len(doc.Members))
		for _, id := range doc.Members {
			members[id] = struct{}{}
		}
		return cat.RestoreCollection(&catalog.Collection{
			Name:        doc.Name,
			Description: doc.Description,
			Members:     members,
			CreatedAt:   doc.CreatedAt,
			UpdatedAt:   doc.UpdatedAt,
		})
	default:
		var obj catalog.Object
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("decode object: %w", err)
		}
		if obj.ID == "" {
			return errors.New("object file missing id")
		}
		return cat.AddObject(&obj)
	}

	return nil
}

func (s *Store) SaveObject(obj *catalog.Object) error {
	return s.writeJSON(filepath.Join(s.dir, obj.ID+".json"), obj)
}

func (s *Store) DeleteObject(id string) error {
	return s.removeFile(filepath.Join(s.dir, id+".json"))
}

// SaveTag writes the member set for a tag as a sorted identifier array.
func (s *Store) SaveTag(name string, members map[string]struct{}) error {
	ids := make([]string, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return s.writeJSON(s.tagPath(name), ids)
}

func (s *Store) DeleteTag(name string) error {
	return s.removeFile(s.tagPath(name))
}

func (s *Store) SaveCollection(col *catalog.Collection) error {
	members := make([]string, 0, len(col.Members))
	for id := range col.Members {
		members = append(members, id)
	}
	sort.Strings(members)

	doc := collectionDoc{
		Name:        col.Name,
		Description: col.Description,
		Members:     members,
		CreatedAt:   col.CreatedAt,
		UpdatedAt:   col.UpdatedAt,
	}
	return s.writeJSON(s.collectionPath(col.Name), doc)
}

func (s *Store) DeleteCollection(name string) error {
	return s.removeFile(s.collectionPath(name))
}

func (s *Store) tagPath(name string) string {
	return filepath.Join(s.dir, tagPrefix+catalog.NormalizeTag(name)+".json")
}

func (s *Store) collectionPath(name string) string {
	return filepath.Join(s.dir, collectionPrefix+slugify(name)+".json")
}

// slugify flattens a collection name into a filesystem-safe, lowercase file
// stem. Collection names are unique ignoring case, so the mapping stays
// collision free for live collections.
func slugify(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}

func (s *Store) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("store: write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (s *Store) removeFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("store: remove %s: %w", filepath.Base(path), err)
	}
	return nil
}
