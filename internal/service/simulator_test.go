package service

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diogomix/bingopress/internal/storage"
	"github.com/diogomix/bingopress/pkg/kvstore"
)

// generateLayout produces a real paired layout file to simulate against.
func generateLayout(t *testing.T, root string) string {
	t.Helper()
	gen := &Generator{OutputRoot: root}
	result, err := gen.Generate(testGenConfig(), nil)
	require.NoError(t, err)
	return result.PairedFile
}

func TestSimulatePipeline(t *testing.T) {
	layoutsRoot := t.TempDir()
	pairedFile := generateLayout(t, layoutsRoot)

	svc := &Simulator{
		OutputRoot:  t.TempDir(),
		LayoutsRoot: layoutsRoot,
		MaxNumber:   20,
	}

	result, err := svc.Simulate(pairedFile, 30, 7, nil)
	require.NoError(t, err)

	assert.Equal(t, pairedFile, result.SourceFile)
	assert.Equal(t, int64(7), result.Seed)
	assert.Equal(t, 30, result.Stats.Trials)
	assert.GreaterOrEqual(t, result.Stats.Balls.Min, 5)
	assert.LessOrEqual(t, result.Stats.Balls.Max, 20)
	assert.FileExists(t, result.ResultsFile)
	assert.FileExists(t, result.SummaryFile)

	summary, err := os.ReadFile(result.SummaryFile)
	require.NoError(t, err)
	assert.Contains(t, string(summary), "BINGO SIMULATION SUMMARY")
	assert.Contains(t, string(summary), "Trials:               30")
}

func TestSimulateDiscoversLatestLayout(t *testing.T) {
	layoutsRoot := t.TempDir()
	pairedFile := generateLayout(t, layoutsRoot)

	svc := &Simulator{
		OutputRoot:  t.TempDir(),
		LayoutsRoot: layoutsRoot,
		MaxNumber:   20,
	}

	result, err := svc.Simulate("", 10, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, pairedFile, result.SourceFile)
}

func TestSimulateNoLayouts(t *testing.T) {
	svc := &Simulator{
		OutputRoot:  t.TempDir(),
		LayoutsRoot: t.TempDir(),
		MaxNumber:   20,
	}

	_, err := svc.Simulate("", 10, 1, nil)
	assert.ErrorIs(t, err, storage.ErrNoPairedFiles)
}

func TestSimulateRejectsNonPositiveTrials(t *testing.T) {
	svc := &Simulator{OutputRoot: t.TempDir(), LayoutsRoot: t.TempDir(), MaxNumber: 20}

	_, err := svc.Simulate("", 0, 1, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trials must be greater than 0")
}

func TestSimulateIsReproducible(t *testing.T) {
	layoutsRoot := t.TempDir()
	pairedFile := generateLayout(t, layoutsRoot)

	svc := &Simulator{OutputRoot: t.TempDir(), LayoutsRoot: layoutsRoot, MaxNumber: 20}

	a, err := svc.Simulate(pairedFile, 20, 99, nil)
	require.NoError(t, err)
	b, err := svc.Simulate(pairedFile, 20, 99, nil)
	require.NoError(t, err)

	assert.Equal(t, a.Stats.Balls, b.Stats.Balls)
	assert.Equal(t, a.Stats.SheetWins, b.Stats.SheetWins)
}

func TestSimulateIndexesHistory(t *testing.T) {
	layoutsRoot := t.TempDir()
	pairedFile := generateLayout(t, layoutsRoot)

	index, err := kvstore.NewBadgerStore(t.TempDir(), "bingopress", kvstore.JSON)
	require.NoError(t, err)
	defer index.Close()

	svc := &Simulator{
		OutputRoot:  t.TempDir(),
		LayoutsRoot: layoutsRoot,
		MaxNumber:   20,
		Index:       index,
	}

	result, err := svc.Simulate(pairedFile, 15, 3, nil)
	require.NoError(t, err)

	records, err := svc.Simulations()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, result.Name, records[0].Name)
	assert.Equal(t, 15, records[0].Trials)
	assert.Equal(t, int64(3), records[0].Seed)
}
