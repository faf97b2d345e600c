package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestPairedEmptyRoot(t *testing.T) {
	_, err := LatestPaired(t.TempDir())
	assert.ErrorIs(t, err, ErrNoPairedFiles)
}

func TestLatestPairedPicksNewest(t *testing.T) {
	root := t.TempDir()

	older := filepath.Join(root, "Bingos_100_20260101")
	newer := filepath.Join(root, "Bingos_100_20260202")
	require.NoError(t, os.MkdirAll(older, 0755))
	require.NoError(t, os.MkdirAll(newer, 0755))

	oldFile := filepath.Join(older, "Bingos_100_20260101_paired.csv")
	newFile := filepath.Join(newer, "Bingos_100_20260202_paired.csv")
	require.NoError(t, os.WriteFile(oldFile, []byte("x"), 0644))
	require.NoError(t, os.WriteFile(newFile, []byte("x"), 0644))

	// Filesystem timestamps can be coarse; set them explicitly.
	now := time.Now()
	require.NoError(t, os.Chtimes(oldFile, now.Add(-time.Hour), now.Add(-time.Hour)))
	require.NoError(t, os.Chtimes(newFile, now, now))

	found, err := LatestPaired(root)
	require.NoError(t, err)
	assert.Equal(t, newFile, found)
}

func TestLatestPairedFindsFlatFiles(t *testing.T) {
	root := t.TempDir()
	flat := filepath.Join(root, "set_paired.csv")
	require.NoError(t, os.WriteFile(flat, []byte("x"), 0644))

	found, err := LatestPaired(root)
	require.NoError(t, err)
	assert.Equal(t, flat, found)
}

func TestLatestPairedIgnoresOtherFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "set_simple.csv"), []byte("x"), 0644))

	_, err := LatestPaired(root)
	assert.ErrorIs(t, err, ErrNoPairedFiles)
}
