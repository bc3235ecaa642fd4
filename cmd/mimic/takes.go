package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"

	"github.com/gwillem/mimic/pkg/mocap"
)

// listTakes returns the subdirectories of dir that hold snapshots.
func listTakes(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read recording dir: %w", err)
	}

	var takes []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		paths, err := mocap.ListSnapshots(filepath.Join(dir, e.Name()), pattern)
		if err != nil || len(paths) == 0 {
			continue
		}
		takes = append(takes, e.Name())
	}
	return takes, nil
}

// resolveTake returns dir itself when it holds snapshots. Otherwise it asks
// which take to use.
func resolveTake(dir, pattern string) (string, error) {
	paths, err := mocap.ListSnapshots(dir, pattern)
	if err != nil {
		return "", err
	}
	if len(paths) > 0 {
		return dir, nil
	}

	takes, err := listTakes(dir, pattern)
	if err != nil {
		return "", err
	}
	switch len(takes) {
	case 0:
		return "", fmt.Errorf("%s: %w", dir, mocap.ErrNoSnapshots)
	case 1:
		return filepath.Join(dir, takes[0]), nil
	}

	options := make([]huh.Option[string], 0, len(takes))
	for _, take := range takes {
		options = append(options, huh.NewOption(take, take))
	}

	var take string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("Which take in %s?", dir)).
				Description("Each take is a directory of snapshots").
				Options(options...).
				Value(&take),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}

	return filepath.Join(dir, take), nil
}
