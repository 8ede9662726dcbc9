package naming

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// CollisionResolver tracks output paths claimed by input files and resolves
// duplicates by appending " - dupN" suffixes. Paths are compared
// case-insensitively so "Song.mp3" and "song.mp3" also collide, which they
// do on macOS and Windows volumes. All methods are goroutine-safe.
type CollisionResolver struct {
	mu       sync.Mutex
	owners   map[string]string // folded output path → input path that owns it
	counters map[string]int    // folded requested path → next dup counter
	renamed  int
}

// NewCollisionResolver creates a ready-to-use resolver.
func NewCollisionResolver() *CollisionResolver {
	return &CollisionResolver{
		owners:   make(map[string]string),
		counters: make(map[string]int),
	}
}

// Resolve returns the final output path for input. If requestedOutput is
// unclaimed (or already owned by input) it is returned as-is; otherwise the
// first free " - dupN" variant is claimed and returned. Given the same
// sequence of calls the result is always the same.
func (cr *CollisionResolver) Resolve(input, requestedOutput string) string {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	key := fold(requestedOutput)
	if owner, exists := cr.owners[key]; !exists || owner == input {
		cr.owners[key] = input
		return requestedOutput
	}

	dir := filepath.Dir(requestedOutput)
	base := filepath.Base(requestedOutput)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	counter := cr.counters[key]
	if counter == 0 {
		counter = 1
	}

	for {
		candidate := filepath.Join(dir, fmt.Sprintf("%s - dup%d%s", stem, counter, ext))
		ck := fold(candidate)
		if owner, exists := cr.owners[ck]; !exists || owner == input {
			cr.counters[key] = counter + 1
			cr.owners[ck] = input
			cr.renamed++
			return candidate
		}
		counter++
	}
}

// Reserve marks path as owned by owner without counting a rename. Source
// files that sit where outputs are written are reserved first so no other
// input's output can overwrite them.
func (cr *CollisionResolver) Reserve(path, owner string) {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	key := fold(path)
	if _, exists := cr.owners[key]; !exists {
		cr.owners[key] = owner
	}
}

// Renamed returns how many outputs received a dup suffix.
func (cr *CollisionResolver) Renamed() int {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	return cr.renamed
}

func fold(path string) string { return strings.ToLower(path) }
