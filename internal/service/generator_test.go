package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diogomix/bingopress/internal/bingo"
	"github.com/diogomix/bingopress/internal/storage"
	"github.com/diogomix/bingopress/pkg/kvstore"
)

func testGenConfig() bingo.GenerationConfig {
	return bingo.GenerationConfig{
		Seed:           42,
		SheetCount:     4,
		NumbersPerCard: 5,
		MaxNumber:      20,
		CardsPerSheet:  3,
		SheetsPerRow:   2,
		BaseName:       "Test",
	}
}

func TestGeneratePipeline(t *testing.T) {
	root := t.TempDir()
	svc := &Generator{OutputRoot: root}

	result, err := svc.Generate(testGenConfig(), nil)
	require.NoError(t, err)

	assert.Equal(t, 12, result.Combinations)
	assert.True(t, result.Audit.Passed)
	assert.DirExists(t, result.Dir)
	assert.FileExists(t, result.SimpleFile)
	assert.FileExists(t, result.PairedFile)
	assert.FileExists(t, result.InfoFile)

	// The written layouts load back and agree with each other.
	simple, err := storage.ReadSimple(result.SimpleFile)
	require.NoError(t, err)
	assert.Len(t, simple.Rows, 12)

	paired, err := storage.ReadPaired(result.PairedFile)
	require.NoError(t, err)
	assert.Len(t, paired.Cards(), 12)

	info, err := os.ReadFile(result.InfoFile)
	require.NoError(t, err)
	assert.Contains(t, string(info), "Seed:                 42")
}

func TestGenerateRejectsInvalidConfig(t *testing.T) {
	svc := &Generator{OutputRoot: t.TempDir()}

	cfg := testGenConfig()
	cfg.SheetCount = 7

	_, err := svc.Generate(cfg, nil)
	require.Error(t, err)

	var cfgErr *bingo.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestGenerateIndexesHistory(t *testing.T) {
	index, err := kvstore.NewBadgerStore(t.TempDir(), "bingopress", kvstore.JSON)
	require.NoError(t, err)
	defer index.Close()

	svc := &Generator{OutputRoot: t.TempDir(), Index: index}

	result, err := svc.Generate(testGenConfig(), nil)
	require.NoError(t, err)

	records, err := svc.Generations()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, result.Name, records[0].Name)
	assert.Equal(t, int64(42), records[0].Seed)
	assert.Equal(t, 12, records[0].Combinations)
	assert.True(t, records[0].AuditPassed)
}

func TestGenerateDirNaming(t *testing.T) {
	root := t.TempDir()
	svc := &Generator{OutputRoot: root}

	result, err := svc.Generate(testGenConfig(), nil)
	require.NoError(t, err)

	rel, err := filepath.Rel(root, result.Dir)
	require.NoError(t, err)
	assert.Regexp(t, `^Test_4_\d{8}$`, rel)
}
