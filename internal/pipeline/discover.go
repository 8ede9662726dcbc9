package pipeline

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/backmassage/audioconvert/internal/config"
)

// Discover walks root, collects regular files with a supported audio
// extension, and returns them sorted lexicographically. Symlinked
// directories are not followed; symlinks to regular files are kept.
// Directories in exclude (typically the output directory when it sits
// inside root) are pruned.
func Discover(root string, exclude ...string) ([]string, error) {
	walkRoot := root
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		walkRoot = resolved
	}
	pruned := prunedDirs(walkRoot, exclude)

	var files []string
	err := filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != walkRoot && pruned[path] {
				return filepath.SkipDir
			}
			return nil
		}
		if !config.IsAudioExt(strings.ToLower(filepath.Ext(path))) {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			fi, err := os.Stat(path)
			if err != nil || !fi.Mode().IsRegular() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if walkRoot != root {
		for i, f := range files {
			if rel, err := filepath.Rel(walkRoot, f); err == nil {
				files[i] = filepath.Join(root, rel)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// prunedDirs maps each exclude directory located under walkRoot to its
// path as WalkDir will report it.
func prunedDirs(walkRoot string, exclude []string) map[string]bool {
	pruned := make(map[string]bool, len(exclude))
	absRoot, err := filepath.Abs(walkRoot)
	if err != nil {
		return pruned
	}
	for _, dir := range exclude {
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			dir = resolved
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(absRoot, abs)
		if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		pruned[filepath.Join(walkRoot, rel)] = true
	}
	return pruned
}
