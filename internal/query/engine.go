package query

import (
	"sort"
	"strings"

	"github.com/Paintersrp/curio/internal/catalog"
)

// Engine evaluates boolean queries against a catalog index. It is a pure
// in-memory tree walk: no I/O, no mutation, no configuration. Callers must
// serialize catalog mutation against query execution.
type Engine struct {
	idx Index
}

func NewEngine(idx Index) *Engine {
	return &Engine{idx: idx}
}

// Search parses and evaluates a query, returning the matched object records
// sorted by display name. It never fails: an empty query returns the full
// catalog, and an evaluator fault degrades to a plain name search over the
// raw query string instead of surfacing the error.
func (e *Engine) Search(raw string) []*catalog.Object {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return e.objects(e.idx.AllIDs())
	}

	return e.objects(e.evalOrFallback(trimmed))
}

// Match reports whether a single object satisfies the query, used by list
// filters that already hold an object in hand.
func (e *Engine) Match(raw, id string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return true
	}
	_, ok := e.evalOrFallback(trimmed)[id]
	return ok
}

func (e *Engine) evalOrFallback(trimmed string) (ids map[string]struct{}) {
	// A broken query must degrade to best-effort results, never crash the
	// search, so internal faults of any sort collapse into a name scan.
	defer func() {
		if r := recover(); r != nil {
			ids = nameSearch(e.idx, trimmed)
		}
	}()

	ids, err := evaluate(e.idx, Parse(trimmed))
	if err != nil {
		return nameSearch(e.idx, trimmed)
	}
	return ids
}

func (e *Engine) objects(ids map[string]struct{}) []*catalog.Object {
	out := make([]*catalog.Object, 0, len(ids))
	for id := range ids {
		if obj, ok := e.idx.Lookup(id); ok {
			out = append(out, obj)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out
}
