package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogomix/bingopress/internal/service"
	"github.com/diogomix/bingopress/pkg/logger"
)

var simulateFlags struct {
	trials      int
	file        string
	seed        int64
	maxNumber   int
	layoutsRoot string
	out         string
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run batch draw simulations against a paired layout",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := &service.Simulator{
			OutputRoot:  simulateFlags.out,
			LayoutsRoot: simulateFlags.layoutsRoot,
			MaxNumber:   simulateFlags.maxNumber,
		}

		result, err := svc.Simulate(simulateFlags.file, simulateFlags.trials, simulateFlags.seed,
			func(done, total int) {
				logger.Info("Simulation progress", "done", done, "total", total)
			})
		if err != nil {
			return err
		}

		fmt.Printf("Simulated %d trials over %s\n", result.Stats.Trials, result.SourceFile)
		fmt.Printf("Mean balls to first winner: %.2f (min %d, max %d)\n",
			result.Stats.Balls.Mean, result.Stats.Balls.Min, result.Stats.Balls.Max)
		fmt.Printf("Results in %s\n", result.Dir)
		return nil
	},
}

func init() {
	simulateCmd.Flags().IntVar(&simulateFlags.trials, "trials", 50, "number of games to simulate")
	simulateCmd.Flags().StringVar(&simulateFlags.file, "file", "", "paired layout CSV (empty = newest under layouts root)")
	simulateCmd.Flags().Int64Var(&simulateFlags.seed, "seed", 0, "simulation seed (0 = time-based)")
	simulateCmd.Flags().IntVar(&simulateFlags.maxNumber, "max-number", 60, "highest ball number")
	simulateCmd.Flags().StringVar(&simulateFlags.layoutsRoot, "layouts-root", "bingos", "root directory searched for paired layouts")
	simulateCmd.Flags().StringVar(&simulateFlags.out, "out", "simulations", "output root directory")
}
