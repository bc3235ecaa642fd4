package mocap

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrNoSnapshots is returned when a directory holds no matching snapshot files.
var ErrNoSnapshots = errors.New("no snapshot files found")

// ProgressFunc is called after each snapshot is loaded.
type ProgressFunc func(done, total int, path string)

// ListSnapshots returns the snapshot files directly inside dir, sorted by name.
// An empty pattern matches every supported extension.
func ListSnapshots(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read snapshot dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if !isRegularFile(dir, e) {
			continue
		}
		name := e.Name()
		if pattern != "" {
			ok, err := filepath.Match(pattern, name)
			if err != nil {
				return nil, fmt.Errorf("match %q: %w", pattern, err)
			}
			if !ok {
				continue
			}
		} else if _, err := FormatFromPath(name); err != nil {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}

	sort.Strings(paths)
	return paths, nil
}

// isRegularFile follows symlinks so a linked directory is never taken for a snapshot.
func isRegularFile(dir string, e os.DirEntry) bool {
	if e.Type()&os.ModeSymlink == 0 {
		return e.Type().IsRegular()
	}
	info, err := os.Stat(filepath.Join(dir, e.Name()))
	return err == nil && info.Mode().IsRegular()
}

// Frame is one replay step derived from a snapshot file.
type Frame struct {
	Path string
	// Offset is wrist minus shoulder in control space.
	Offset r3.Vec
}

// LoadFrames loads every snapshot in dir and converts it to a control-space offset.
func LoadFrames(dir, pattern string, progress ProgressFunc) ([]Frame, error) {
	paths, err := ListSnapshots(dir, pattern)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoSnapshots)
	}

	frames := make([]Frame, 0, len(paths))
	for i, path := range paths {
		s, err := LoadSnapshot(path)
		if err != nil {
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
		offset, err := s.Offset()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		frames = append(frames, Frame{
			Path:   path,
			Offset: ToControlSpace(offset),
		})
		if progress != nil {
			progress(i+1, len(paths), path)
		}
	}

	return frames, nil
}

// LoadPositions is LoadFrames without file names.
func LoadPositions(dir, pattern string, progress ProgressFunc) ([]r3.Vec, error) {
	frames, err := LoadFrames(dir, pattern, progress)
	if err != nil {
		return nil, err
	}
	positions := make([]r3.Vec, len(frames))
	for i, f := range frames {
		positions[i] = f.Offset
	}
	return positions, nil
}
