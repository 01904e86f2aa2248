// Package dedupe finds files with identical contents beneath a directory.
//
// Candidates are narrowed in three passes: by size, then by a hash of the
// first chunk, then by a hash of the full contents. Only the survivors of
// each pass are read further, so large trees with few duplicates stay cheap.
package dedupe

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

const partialChunkSize = 1 << 20

// Group is a set of paths whose contents hash identically.
type Group struct {
	Hash  string
	Size  int64
	Paths []string
}

// Scan walks root and returns groups of duplicate files, ordered by the
// bytes reclaimable if all but one copy were removed. Symlinks, empty files
// and unreadable entries are skipped.
func Scan(root string) ([]Group, error) {
	bySize := make(map[int64][]string)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return nil
			}
			return err
		}
		if d.IsDir() || d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		info, err := d.Info()
		if err != nil || info.Size() == 0 {
			return nil
		}

		bySize[info.Size()] = append(bySize[info.Size()], path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Buckets carry the file size alongside the hash so same-prefix files of
	// different lengths never land in the same group.
	type bucket struct {
		size int64
		hash string
	}

	byPartial := make(map[bucket][]string)
	for size, paths := range bySize {
		if len(paths) < 2 {
			continue
		}
		for _, path := range paths {
			sum, err := hashFile(path, partialChunkSize)
			if err != nil {
				continue
			}
			key := bucket{size: size, hash: sum}
			byPartial[key] = append(byPartial[key], path)
		}
	}

	byFull := make(map[bucket][]string)
	for partial, paths := range byPartial {
		if len(paths) < 2 {
			continue
		}
		for _, path := range paths {
			sum := partial.hash
			if partial.size > partialChunkSize {
				full, err := hashFile(path, 0)
				if err != nil {
					continue
				}
				sum = full
			}
			key := bucket{size: partial.size, hash: sum}
			byFull[key] = append(byFull[key], path)
		}
	}

	var groups []Group
	for key, paths := range byFull {
		if len(paths) < 2 {
			continue
		}
		sort.Strings(paths)
		groups = append(groups, Group{Hash: key.hash, Size: key.size, Paths: paths})
	}

	sort.Slice(groups, func(i, j int) bool {
		wi := groups[i].Size * int64(len(groups[i].Paths)-1)
		wj := groups[j].Size * int64(len(groups[j].Paths)-1)
		if wi != wj {
			return wi > wj
		}
		return groups[i].Hash < groups[j].Hash
	})

	return groups, nil
}

// Wasted reports the bytes occupied by redundant copies in the group.
func (g Group) Wasted() int64 {
	if len(g.Paths) < 2 {
		return 0
	}
	return g.Size * int64(len(g.Paths)-1)
}

func hashFile(path string, limit int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	var r io.Reader = f
	if limit > 0 {
		r = io.LimitReader(f, limit)
	}
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
