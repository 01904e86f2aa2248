// Package snapshot versions a catalog data directory with a local git
// repository, so the JSON documents can be rolled back or inspected over
// time without any remote.
package snapshot

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrNoChanges reports that the data directory matches the latest snapshot.
var ErrNoChanges = errors.New("no changes since last snapshot")

// Entry describes a single recorded snapshot.
type Entry struct {
	Hash    string
	Message string
	When    time.Time
}

type Snapshotter struct {
	dir  string
	repo *git.Repository
}

// Open returns a snapshotter for the data directory, initializing a git
// repository there on first use.
func Open(dataDir string) (*Snapshotter, error) {
	repo, err := git.PlainOpen(dataDir)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		repo, err = git.PlainInit(dataDir, false)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot repository: %w", err)
	}

	return &Snapshotter{dir: dataDir, repo: repo}, nil
}

// Take stages everything under the data directory and commits it. It returns
// ErrNoChanges when nothing differs from the previous snapshot.
func (s *Snapshotter) Take(message string) (string, error) {
	wt, err := s.repo.Worktree()
	if err != nil {
		return "", err
	}

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return "", err
	}

	status, err := wt.Status()
	if err != nil {
		return "", err
	}
	if status.IsClean() {
		return "", ErrNoChanges
	}

	if message == "" {
		message = fmt.Sprintf("snapshot %s", time.Now().Format(time.RFC3339))
	}

	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name: "curio",
			When: time.Now(),
		},
	})
	if err != nil {
		return "", err
	}

	return hash.String(), nil
}

// History returns the most recent snapshots, newest first. A limit of zero
// or less returns everything.
func (s *Snapshotter) History(limit int) ([]Entry, error) {
	iter, err := s.repo.Log(&git.LogOptions{})
	if err != nil {
		// A fresh repository has no HEAD until the first snapshot.
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, err
	}
	defer iter.Close()

	var entries []Entry
	for {
		commit, err := iter.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		entries = append(entries, Entry{
			Hash:    commit.Hash.String(),
			Message: commit.Message,
			When:    commit.Author.When,
		})

		if limit > 0 && len(entries) >= limit {
			break
		}
	}

	return entries, nil
}
