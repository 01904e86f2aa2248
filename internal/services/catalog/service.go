// Package catalog provides the workspace-scoped catalog service: it owns
// the shared in-memory catalog for one data directory, funnels every
// mutation through the JSON store, and coordinates reloads queued by the
// data directory watcher.
package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/Paintersrp/curio/internal/catalog"
	"github.com/Paintersrp/curio/internal/query"
	"github.com/Paintersrp/curio/internal/store"
)

// ErrClosed signals that the service has been shut down.
var ErrClosed = errors.New("catalog service closed")

// ErrUnavailable indicates that the catalog has not been loaded yet.
var ErrUnavailable = errors.New("catalog unavailable")

// Stats captures lightweight instrumentation about the shared catalog.
type Stats struct {
	LastReload time.Time
	Pending    int
	Objects    int
}

// Service owns the shared catalog for a data directory.
type Service struct {
	mu         sync.RWMutex
	store      *store.Store
	cat        *catalog.Catalog
	pending    map[string]struct{}
	lastReload time.Time
	closed     bool

	now    func() time.Time
	maxAge time.Duration
}

// NewService constructs a service over the provided store. The catalog is
// loaded lazily on first use.
func NewService(st *store.Store) *Service {
	return &Service{
		store:   st,
		pending: make(map[string]struct{}),
		now:     time.Now,
		maxAge:  time.Hour,
	}
}

// AcquireSnapshot returns a deep copy of the catalog, reloading from disk
// first if the in-memory state is missing, stale, or has queued updates.
func (s *Service) AcquireSnapshot() (*catalog.Catalog, error) {
	if s == nil {
		return nil, ErrUnavailable
	}

	if err := s.ensureFresh(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}
	if s.cat == nil {
		return nil, ErrUnavailable
	}
	return s.cat.Clone(), nil
}

// QueueUpdate schedules a reload after an external change to the data
// directory (typically reported by the watcher).
func (s *Service) QueueUpdate(rel string) {
	if s == nil {
		return
	}

	trimmed := strings.TrimSpace(rel)
	if trimmed == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if s.pending == nil {
		s.pending = make(map[string]struct{})
	}
	s.pending[trimmed] = struct{}{}
}

// Stats returns instrumentation about the catalog lifecycle.
func (s *Service) Stats() Stats {
	if s == nil {
		return Stats{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{LastReload: s.lastReload, Pending: len(s.pending)}
	if s.cat != nil {
		st.Objects = s.cat.Len()
	}
	return st
}

// Close releases the service. Subsequent calls return ErrClosed.
func (s *Service) Close() error {
	if s == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.cat = nil
	s.pending = nil
	return nil
}

// Search runs a boolean query against the live catalog.
func (s *Service) Search(raw string) ([]*catalog.Object, error) {
	if err := s.ensureFresh(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}
	if s.cat == nil {
		return nil, ErrUnavailable
	}
	return query.NewEngine(s.cat).Search(raw), nil
}

var inlineTags = regexp.MustCompile(`#(\w+)`)

// AddObject catalogs a new object and persists it, applying both explicit
// tags and any inline #tags found in the name or description.
func (s *Service) AddObject(name, description string, kind catalog.Kind, location string, tags []string) (*catalog.Object, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(location) == "" {
		return nil, errors.New("name and location are required")
	}
	if err := s.ensureFresh(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.usableLocked(); err != nil {
		return nil, err
	}

	obj := catalog.NewObject(name, description, kind, location)
	if err := s.cat.AddObject(obj); err != nil {
		return nil, err
	}
	if err := s.store.SaveObject(obj); err != nil {
		return nil, err
	}

	all := append([]string(nil), tags...)
	for _, match := range inlineTags.FindAllStringSubmatch(name+" "+description, -1) {
		all = append(all, match[1])
	}
	applied := make([]string, 0, len(all))
	for _, tag := range all {
		if err := s.tagLocked(obj.ID, tag); err != nil {
			s.rollbackAddLocked(obj.ID, applied)
			return nil, err
		}
		if normalized := catalog.NormalizeTag(tag); normalized != "" {
			applied = append(applied, normalized)
		}
	}

	return obj, nil
}

// rollbackAddLocked undoes a partially persisted AddObject: the object file
// is removed and every tag file written so far is rewritten without it.
func (s *Service) rollbackAddLocked(id string, appliedTags []string) {
	_ = s.cat.DeleteObject(id)
	for _, name := range appliedTags {
		_ = s.store.SaveTag(name, s.cat.TagMembers(name))
	}
	_ = s.store.DeleteObject(id)
}

// UpdateObject rewrites an object's fields, subject to the location
// uniqueness invariant.
func (s *Service) UpdateObject(id, name, description string, kind catalog.Kind, location string) error {
	if err := s.ensureFresh(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.usableLocked(); err != nil {
		return err
	}
	if err := s.cat.UpdateObject(id, name, description, kind, location); err != nil {
		return err
	}

	obj, _ := s.cat.Lookup(id)
	return s.store.SaveObject(obj)
}

// DeleteObject removes an object, cascading through every tag and
// collection file that referenced it.
func (s *Service) DeleteObject(id string) error {
	if err := s.ensureFresh(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.usableLocked(); err != nil {
		return err
	}

	tags := s.cat.ObjectTags(id)
	collections := s.cat.ObjectCollections(id)
	if err := s.cat.DeleteObject(id); err != nil {
		return err
	}

	for _, tag := range tags {
		if err := s.store.SaveTag(tag, s.cat.TagMembers(tag)); err != nil {
			return err
		}
	}
	for _, name := range collections {
		col, ok := s.cat.LookupCollection(name)
		if !ok {
			continue
		}
		if err := s.store.SaveCollection(col); err != nil {
			return err
		}
	}

	return s.store.DeleteObject(id)
}

// Tag attaches one or more tags to an object.
func (s *Service) Tag(id string, tags ...string) error {
	if err := s.ensureFresh(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.usableLocked(); err != nil {
		return err
	}
	for _, tag := range tags {
		if err := s.tagLocked(id, tag); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) tagLocked(id, tag string) error {
	name := catalog.NormalizeTag(tag)
	if name == "" {
		return nil
	}
	if err := s.cat.Tag(id, name); err != nil {
		return err
	}
	return s.store.SaveTag(name, s.cat.TagMembers(name))
}

// Untag removes a tag from an object. The tag file persists, possibly with
// an empty member list, until the tag is deleted outright.
func (s *Service) Untag(id, tag string) error {
	if err := s.ensureFresh(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.usableLocked(); err != nil {
		return err
	}
	if err := s.cat.Untag(id, tag); err != nil {
		return err
	}
	name := catalog.NormalizeTag(tag)
	return s.store.SaveTag(name, s.cat.TagMembers(name))
}

// DeleteTag removes a tag from every member object and deletes its file.
func (s *Service) DeleteTag(tag string) error {
	if err := s.ensureFresh(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.usableLocked(); err != nil {
		return err
	}
	if err := s.cat.DeleteTag(tag); err != nil {
		return err
	}
	return s.store.DeleteTag(tag)
}

// CreateCollection adds a named collection.
func (s *Service) CreateCollection(name, description string) (*catalog.Collection, error) {
	if err := s.ensureFresh(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.usableLocked(); err != nil {
		return nil, err
	}
	col, err := s.cat.CreateCollection(name, description)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveCollection(col); err != nil {
		return nil, err
	}
	return col, nil
}

// DeleteCollection drops a collection and its file.
func (s *Service) DeleteCollection(name string) error {
	if err := s.ensureFresh(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.usableLocked(); err != nil {
		return err
	}
	if err := s.cat.DeleteCollection(name); err != nil {
		return err
	}
	return s.store.DeleteCollection(name)
}

// AddToCollection inserts objects into a collection by exact name.
func (s *Service) AddToCollection(name string, ids ...string) error {
	if err := s.ensureFresh(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.usableLocked(); err != nil {
		return err
	}
	for _, id := range ids {
		if err := s.cat.AddToCollection(name, id); err != nil {
			return err
		}
	}
	col, ok := s.cat.LookupCollection(name)
	if !ok {
		return fmt.Errorf("%w: collection %s", catalog.ErrNotFound, name)
	}
	return s.store.SaveCollection(col)
}

// RemoveFromCollection removes an object from a collection.
func (s *Service) RemoveFromCollection(name, id string) error {
	if err := s.ensureFresh(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.usableLocked(); err != nil {
		return err
	}
	if err := s.cat.RemoveFromCollection(name, id); err != nil {
		return err
	}
	col, ok := s.cat.LookupCollection(name)
	if !ok {
		return fmt.Errorf("%w: collection %s", catalog.ErrNotFound, name)
	}
	return s.store.SaveCollection(col)
}

func (s *Service) usableLocked() error {
	if s.closed {
		return ErrClosed
	}
	if s.cat == nil {
		return ErrUnavailable
	}
	return nil
}

func (s *Service) ensureFresh() error {
	if s == nil {
		return ErrUnavailable
	}

	s.mu.RLock()
	closed := s.closed
	needsReload := s.cat == nil || len(s.pending) > 0
	if !needsReload && s.maxAge > 0 {
		needsReload = s.now().Sub(s.lastReload) > s.maxAge
	}
	s.mu.RUnlock()

	if closed {
		return ErrClosed
	}
	if !needsReload {
		return nil
	}
	return s.reload()
}

// reload replaces the in-memory catalog wholesale. Individual JSON files
// are small enough that per-file patching is not worth the bookkeeping.
func (s *Service) reload() error {
	cat, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	s.cat = cat
	s.pending = make(map[string]struct{})
	s.lastReload = s.now()
	return nil
}
