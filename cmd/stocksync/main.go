package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/vpsdeals/vpsdeals/app/repository"
	"github.com/vpsdeals/vpsdeals/internal/pkg/cache"
	"github.com/vpsdeals/vpsdeals/internal/pkg/database"
	"github.com/vpsdeals/vpsdeals/internal/pkg/env"
	"github.com/vpsdeals/vpsdeals/internal/pkg/stocksync"
)

// Scheduler entry point: runs one synchronous stock reconciliation and
// prints a one-line summary. The process exits 0 on any completed
// attempt; feed or config failures are reported in the summary text so a
// cron wrapper never has to interpret exit codes.
func main() {
	dryRun := flag.Bool("dry-run", false, "preview matches without writing anything")
	limit := flag.Int("limit", -1, "cap on processed feed items, -1 uses the configured default")
	flag.Parse()

	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()
	repository.InitializeFactory(database.GetDB())
	repos := repository.GetGlobalRepositories()

	opts, err := stocksync.LoadRunDefaults(repos.Setting)
	if err != nil {
		log.Printf("reading run defaults failed, using zero defaults: %v", err)
	}
	if *dryRun {
		opts.DryRun = true
	}
	if *limit >= 0 {
		opts.Limit = *limit
	}

	svc := stocksync.NewService(repos)
	res := svc.Run(context.Background(), opts)

	line := fmt.Sprintf("[%s] code=%d updated=%d unknown=%d skipped=%d msg=%s",
		time.Now().Format("2006-01-02 15:04:05"),
		res.Code, res.Updated, res.Unknown, res.Skipped, res.Message)
	log.Print(line)
	fmt.Println(line)
}
