package fzf

import (
	"fmt"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/Paintersrp/curio/internal/catalog"
)

// FuzzyFinder encapsulates interactive selection over a result set of
// catalog objects.
type FuzzyFinder struct {
	Header  string
	objects []*catalog.Object
	tagsOf  func(id string) []string
}

func NewFuzzyFinder(header string, tagsOf func(id string) []string) *FuzzyFinder {
	return &FuzzyFinder{Header: header, tagsOf: tagsOf}
}

// Run presents the objects for fuzzy selection and returns the chosen one.
func (f *FuzzyFinder) Run(objects []*catalog.Object, query string) (*catalog.Object, error) {
	if len(objects) == 0 {
		return nil, fmt.Errorf("no objects to select from")
	}

	f.objects = objects

	idx, err := f.fuzzySelect(query)
	if err != nil {
		if err == fuzzyfinder.ErrAbort {
			return nil, fmt.Errorf("no object selected")
		}
		return nil, err
	}

	return f.objects[idx], nil
}

func (f *FuzzyFinder) fuzzySelect(query string) (int, error) {
	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderPreview),
	}

	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}

	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	labels := make([]string, 0, len(f.objects))
	for _, obj := range f.objects {
		tags := f.lookupTags(obj.ID)
		if len(tags) == 0 {
			labels = append(labels, fmt.Sprintf("%s [No tags] ", obj.Name))
		} else {
			labels = append(labels, fmt.Sprintf(
				"%s [Tags: %s] ",
				obj.Name,
				strings.Join(tags, ", "),
			))
		}
	}

	return fuzzyfinder.Find(f.objects, func(i int) string {
		return labels[i]
	}, options...)
}

func (f *FuzzyFinder) renderPreview(i, w, h int) string {
	if i == -1 {
		return ""
	}

	obj := f.objects[i]
	lines := []string{
		obj.Name,
		"",
		"ID:       " + obj.ID,
		"Type:     " + string(obj.Kind),
		"Location: " + obj.Location,
	}
	if obj.Description != "" {
		lines = append(lines, "", obj.Description)
	}
	if tags := f.lookupTags(obj.ID); len(tags) > 0 {
		lines = append(lines, "", "Tags: "+strings.Join(tags, ", "))
	}

	return strings.Join(lines, "\n")
}

func (f *FuzzyFinder) lookupTags(id string) []string {
	if f.tagsOf == nil {
		return nil
	}
	return f.tagsOf(id)
}
