package service

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/diogomix/bingopress/internal/simulator"
	"github.com/diogomix/bingopress/internal/storage"
	"github.com/diogomix/bingopress/pkg/kvstore"
	"github.com/diogomix/bingopress/pkg/logger"
)

const simulationKeyPrefix = "simulation"

// Simulator loads a paired layout and runs batch trials over it.
type Simulator struct {
	OutputRoot  string          // where simulation results land
	LayoutsRoot string          // where paired layouts are discovered
	MaxNumber   int             // balls in the cage
	Index       kvstore.KVStore // optional history index
}

type SimulateResult struct {
	Name        string               `json:"name"`
	Dir         string               `json:"dir"`
	SourceFile  string               `json:"source_file"`
	ResultsFile string               `json:"results_file"`
	SummaryFile string               `json:"summary_file"`
	Seed        int64                `json:"seed"`
	Stats       simulator.Statistics `json:"stats"`
	Elapsed     time.Duration        `json:"elapsed_ns"`
}

// SimulationRecord is the indexed history entry for one batch run.
type SimulationRecord struct {
	Name       string    `json:"name"`
	Dir        string    `json:"dir"`
	SourceFile string    `json:"source_file"`
	Trials     int       `json:"trials"`
	Seed       int64     `json:"seed"`
	MeanBalls  float64   `json:"mean_balls"`
	CreatedAt  time.Time `json:"created_at"`
}

// Simulate runs trials games against sourceFile (or the newest paired layout
// when empty). A zero seed picks a time-based one; the chosen seed is echoed
// in the result so any run can be reproduced.
func (s *Simulator) Simulate(sourceFile string, trials int, seed int64, progress simulator.ProgressFunc) (*SimulateResult, error) {
	if trials <= 0 {
		return nil, fmt.Errorf("trials must be greater than 0, got %d", trials)
	}

	if sourceFile == "" {
		found, err := storage.LatestPaired(s.LayoutsRoot)
		if err != nil {
			return nil, err
		}
		sourceFile = found
	}

	layout, err := storage.ReadPaired(sourceFile)
	if err != nil {
		return nil, err
	}
	cards := layout.Cards()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	start := time.Now()
	logger.Info("Running simulation",
		"source", sourceFile,
		"cards", len(cards),
		"trials", trials,
		"seed", seed)

	results := simulator.Run(cards, s.MaxNumber, trials, seed, progress)
	stats := simulator.Aggregate(results)

	name := fmt.Sprintf("Simulation_%d_%s", trials, start.Format("20060102"))
	dir := filepath.Join(s.OutputRoot, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	out := &SimulateResult{
		Name:        name,
		Dir:         dir,
		SourceFile:  sourceFile,
		ResultsFile: filepath.Join(dir, name+"_results.csv"),
		SummaryFile: filepath.Join(dir, name+"_summary.txt"),
		Seed:        seed,
		Stats:       stats,
	}

	if err := writeTrialResults(out.ResultsFile, results); err != nil {
		return nil, fmt.Errorf("write trial results: %w", err)
	}
	if err := os.WriteFile(out.SummaryFile, []byte(renderSummary(out)), 0644); err != nil {
		return nil, fmt.Errorf("write summary: %w", err)
	}

	out.Elapsed = time.Since(start)

	if s.Index != nil {
		record := SimulationRecord{
			Name:       name,
			Dir:        dir,
			SourceFile: sourceFile,
			Trials:     trials,
			Seed:       seed,
			MeanBalls:  stats.Balls.Mean,
			CreatedAt:  start.UTC(),
		}
		if err := s.Index.SetAny(simulationKeyPrefix+"/"+name, record); err != nil {
			logger.Warn("Indexing simulation failed", "name", name, "err", err)
		}
	}

	logger.Info("Simulation complete",
		"name", name,
		"trials", trials,
		"mean_balls", stats.Balls.Mean,
		"elapsed", out.Elapsed)
	return out, nil
}

// Simulations lists indexed simulation records.
func (s *Simulator) Simulations() ([]SimulationRecord, error) {
	if s.Index == nil {
		return nil, nil
	}
	pairs, err := s.Index.List(simulationKeyPrefix + "/")
	if err != nil {
		return nil, err
	}

	records := make([]SimulationRecord, 0, len(pairs))
	for _, pair := range pairs {
		var record SimulationRecord
		if err := kvstore.JSON.Unmarshal(pair.Value, &record); err != nil {
			logger.Warn("Skipping unreadable simulation record", "key", pair.Key, "err", err)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func writeTrialResults(path string, trials []simulator.Trial) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = storage.Separator

	header := []string{"Trial", "Balls_To_Winner", "Winner_Count", "Winners", "Balls_Called"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, trial := range trials {
		winners := make([]string, len(trial.Winners))
		for i, id := range trial.Winners {
			winners[i] = id.String()
		}
		order := make([]string, len(trial.Order))
		for i, n := range trial.Order {
			order[i] = strconv.Itoa(n)
		}

		record := []string{
			strconv.Itoa(trial.Trial),
			strconv.Itoa(trial.BallsDrawn),
			strconv.Itoa(len(trial.Winners)),
			strings.Join(winners, ", "),
			strings.Join(order, ", "),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func renderSummary(r *SimulateResult) string {
	stats := r.Stats

	var b strings.Builder
	line := strings.Repeat("=", 44)
	fmt.Fprintln(&b, line)
	fmt.Fprintln(&b, "          BINGO SIMULATION SUMMARY")
	fmt.Fprintln(&b, line)
	fmt.Fprintf(&b, "Source layout:        %s\n", r.SourceFile)
	fmt.Fprintf(&b, "Trials:               %d\n", stats.Trials)
	fmt.Fprintf(&b, "Seed:                 %d\n", r.Seed)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Balls until first winner:")
	fmt.Fprintf(&b, "  Min:                %d\n", stats.Balls.Min)
	fmt.Fprintf(&b, "  Max:                %d\n", stats.Balls.Max)
	fmt.Fprintf(&b, "  Mean:               %.2f\n", stats.Balls.Mean)
	fmt.Fprintf(&b, "  Median:             %.1f\n", stats.Balls.Median)
	fmt.Fprintf(&b, "  Std deviation:      %.2f\n", stats.Balls.StdDev)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Winners per trial:")
	fmt.Fprintf(&b, "  Mean:               %.2f\n", stats.Simultaneous.Mean)
	fmt.Fprintf(&b, "  Max simultaneous:   %d\n", stats.Simultaneous.Max)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Ranking:")
	fmt.Fprintf(&b, "  Top sheet:          %s (%d wins)\n", orNA(stats.TopSheet), stats.TopSheetWins)
	fmt.Fprintf(&b, "  Top slot:           %s (%d wins)\n", orNA(stats.TopSlot), stats.TopSlotWins)
	fmt.Fprintln(&b, line)
	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
