package dedupe

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name string, contents []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestScanFindsDuplicates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", []byte("same contents"))
	b := writeFile(t, dir, "sub/b.txt", []byte("same contents"))
	writeFile(t, dir, "c.txt", []byte("different contents"))

	groups, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}

	got := groups[0]
	if len(got.Paths) != 2 {
		t.Fatalf("expected 2 paths, got %v", got.Paths)
	}
	if got.Paths[0] != a || got.Paths[1] != b {
		t.Errorf("unexpected paths %v", got.Paths)
	}
	if got.Size != int64(len("same contents")) {
		t.Errorf("Size = %d, want %d", got.Size, len("same contents"))
	}
	if got.Wasted() != got.Size {
		t.Errorf("Wasted = %d, want %d", got.Wasted(), got.Size)
	}
}

func TestScanSkipsEmptyFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "empty1", nil)
	writeFile(t, dir, "empty2", nil)

	groups, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(groups) != 0 {
		t.Fatalf("expected no groups for empty files, got %v", groups)
	}
}

func TestScanSameSizeDifferentContents(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "x.bin", []byte("aaaaaaaa"))
	writeFile(t, dir, "y.bin", []byte("bbbbbbbb"))

	groups, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(groups) != 0 {
		t.Fatalf("expected no groups, got %v", groups)
	}
}

func TestScanLargeFilesUseFullHash(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	// Same first chunk, different tail. The partial pass groups them, the
	// full pass must split them again.
	prefix := bytes.Repeat([]byte{0xAB}, partialChunkSize)
	writeFile(t, dir, "one.bin", append(append([]byte{}, prefix...), 'x'))
	writeFile(t, dir, "two.bin", append(append([]byte{}, prefix...), 'y'))

	dup := append(append([]byte{}, prefix...), 'z')
	writeFile(t, dir, "dup1.bin", dup)
	writeFile(t, dir, "dup2.bin", dup)

	groups, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if len(groups[0].Paths) != 2 {
		t.Fatalf("expected 2 duplicate paths, got %v", groups[0].Paths)
	}
	for _, p := range groups[0].Paths {
		base := filepath.Base(p)
		if base != "dup1.bin" && base != "dup2.bin" {
			t.Errorf("unexpected path in group: %s", p)
		}
	}
}

func TestScanSeparatesSharedPrefixAcrossSizes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	// Two duplicate pairs whose files all start with the same chunk but have
	// different total sizes. Each pair must form its own group with its own
	// size, and the chunk-sized pair must never absorb the longer one.
	prefix := bytes.Repeat([]byte{0xCD}, partialChunkSize)
	writeFile(t, dir, "short1.bin", prefix)
	writeFile(t, dir, "short2.bin", prefix)

	long := append(append([]byte{}, prefix...), []byte("tail")...)
	writeFile(t, dir, "long1.bin", long)
	writeFile(t, dir, "long2.bin", long)

	groups, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d: %v", len(groups), groups)
	}

	bySize := map[int64]int{}
	for _, g := range groups {
		if len(g.Paths) != 2 {
			t.Errorf("group of size %d has %d paths, want 2", g.Size, len(g.Paths))
		}
		bySize[g.Size] = len(g.Paths)
	}
	if _, ok := bySize[int64(len(prefix))]; !ok {
		t.Errorf("missing group of size %d, got %v", len(prefix), bySize)
	}
	if _, ok := bySize[int64(len(long))]; !ok {
		t.Errorf("missing group of size %d, got %v", len(long), bySize)
	}
}

func TestScanOrdersByWastedBytes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	big := bytes.Repeat([]byte("big"), 100)
	writeFile(t, dir, "big1", big)
	writeFile(t, dir, "big2", big)
	writeFile(t, dir, "small1", []byte("small"))
	writeFile(t, dir, "small2", []byte("small"))

	groups, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Size <= groups[1].Size {
		t.Errorf("expected biggest group first, got sizes %d, %d", groups[0].Size, groups[1].Size)
	}
}
