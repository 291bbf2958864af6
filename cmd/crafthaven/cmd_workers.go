package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/crafthaven/app/jobs"
	"github.com/shashiranjanraj/crafthaven/pkg/cache"
	"github.com/shashiranjanraj/crafthaven/pkg/database"
	"github.com/shashiranjanraj/crafthaven/pkg/logger"
	"github.com/shashiranjanraj/crafthaven/pkg/queue"
	"github.com/shashiranjanraj/crafthaven/pkg/ws"
)

var queueWorkersFlag int

// crafthaven queue:work — run queue workers without the HTTP server.
var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Start standalone queue workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		if err := cache.Connect(); err != nil {
			logger.Warn("cache unavailable, using the in-memory queue", "error", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if cache.RDB != nil {
			queue.SetDriver(queue.NewRedisDriver(cache.RDB))
		}
		queue.UseDB(database.DB)

		hub := ws.NewHub()
		go hub.Run()
		jobs.Boot(hub)

		workers := queueWorkersFlag
		if workers < 1 {
			workers = 5
		}

		fmt.Printf("Queue worker started (%d workers). Press Ctrl+C to stop.\n", workers)
		queue.StartWorkers(ctx, workers)

		<-ctx.Done()
		fmt.Println("Queue worker stopped.")
		return nil
	},
}

func init() {
	queueWorkCmd.Flags().IntVarP(&queueWorkersFlag, "workers", "w", 5, "Number of concurrent workers")
}
