package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/diogomix/bingopress/pkg/events"
	"github.com/diogomix/bingopress/pkg/logger"
)

var watchFlags struct {
	natsURL string
	subject string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Subscribe to live game events and print them",
	RunE: func(cmd *cobra.Command, args []string) error {
		nc, err := events.GetNATSConnection(watchFlags.natsURL)
		if err != nil {
			return fmt.Errorf("connect to NATS: %w", err)
		}
		defer nc.Close()

		sub, err := nc.Subscribe(watchFlags.subject, func(msg *nats.Msg) {
			var event events.LiveEvent
			if err := json.Unmarshal(msg.Data, &event); err != nil {
				logger.Warn("Unreadable event payload", "err", err)
				return
			}
			logger.Info("Live event",
				"type", event.Type,
				"game", event.GameID,
				"data", event.Data)
		})
		if err != nil {
			return fmt.Errorf("subscribe: %w", err)
		}
		defer sub.Unsubscribe()

		logger.Info("Watching live events", "subject", watchFlags.subject)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		return nil
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchFlags.natsURL, "nats-url", nats.DefaultURL, "NATS server URL")
	watchCmd.Flags().StringVar(&watchFlags.subject, "subject", "bingo.live.events", "subject to subscribe to")
}
