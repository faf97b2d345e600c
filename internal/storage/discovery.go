package storage

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// ErrNoPairedFiles means discovery found nothing to load.
var ErrNoPairedFiles = errors.New("no paired layout files found")

// LatestPaired finds the most recently modified *_paired.csv under
// root/*/ or directly under root.
func LatestPaired(root string) (string, error) {
	var candidates []string

	nested, _ := filepath.Glob(filepath.Join(root, "*", "*_paired.csv"))
	candidates = append(candidates, nested...)
	flat, _ := filepath.Glob(filepath.Join(root, "*_paired.csv"))
	candidates = append(candidates, flat...)

	if len(candidates) == 0 {
		return "", ErrNoPairedFiles
	}

	sort.Slice(candidates, func(i, j int) bool {
		return modTime(candidates[i]).After(modTime(candidates[j]))
	})
	return candidates[0], nil
}

func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
