package query

import (
	"strings"

	"github.com/Paintersrp/curio/internal/catalog"
)

// Index is the read-only view of the catalog the engine evaluates against.
// *catalog.Catalog satisfies it; evaluation never mutates the index.
type Index interface {
	// Lookup resolves an identifier to its object.
	Lookup(id string) (*catalog.Object, bool)
	// TagMembers returns the identifiers carrying a tag, empty when the tag
	// is unknown. Tag names compare case-sensitively.
	TagMembers(name string) map[string]struct{}
	// CollectionMembers aggregates members of every collection whose name
	// contains the substring, compared case-insensitively.
	CollectionMembers(substr string) map[string]struct{}
	// AllIDs is the identifier universe, the base set for unary NOT.
	AllIDs() map[string]struct{}
}

// resolveTerm resolves a single leaf term into a set of identifiers. The
// parser guarantees the term carries no top-level operators or parentheses.
func resolveTerm(idx Index, term string) map[string]struct{} {
	term = strings.TrimSpace(term)
	if term == "" {
		return map[string]struct{}{}
	}

	if len(term) >= 2 && strings.HasPrefix(term, `"`) && strings.HasSuffix(term, `"`) {
		return exactNameMatch(idx, term[1:len(term)-1])
	}

	if rest, ok := strings.CutPrefix(term, "#"); ok {
		return idx.TagMembers(rest)
	}

	if rest, ok := strings.CutPrefix(term, "@"); ok {
		return idx.CollectionMembers(rest)
	}

	return nameSearch(idx, term)
}

// exactNameMatch collects every object whose display name equals the quoted
// text, ignoring case. Names are not unique, so multiple hits are normal.
func exactNameMatch(idx Index, name string) map[string]struct{} {
	out := make(map[string]struct{})
	for id := range idx.AllIDs() {
		obj, ok := idx.Lookup(id)
		if !ok {
			continue
		}
		if strings.EqualFold(obj.Name, name) {
			out[id] = struct{}{}
		}
	}
	return out
}

// nameSearch treats the term as whitespace-separated fragments and keeps the
// objects whose display name contains all of them, case-insensitively.
func nameSearch(idx Index, term string) map[string]struct{} {
	fragments := strings.Fields(strings.ToLower(term))
	out := make(map[string]struct{})
	if len(fragments) == 0 {
		return out
	}

	for id := range idx.AllIDs() {
		obj, ok := idx.Lookup(id)
		if !ok {
			continue
		}
		name := strings.ToLower(obj.Name)
		matched := true
		for _, fragment := range fragments {
			if !strings.Contains(name, fragment) {
				matched = false
				break
			}
		}
		if matched {
			out[id] = struct{}{}
		}
	}
	return out
}
