package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NamanBalaji/pulse/internal/config"
	"github.com/NamanBalaji/pulse/internal/logger"
	"github.com/NamanBalaji/pulse/internal/monitor"
	"github.com/NamanBalaji/pulse/internal/repository"
	"github.com/NamanBalaji/pulse/internal/tracker"
	"github.com/NamanBalaji/pulse/internal/tui"
)

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	historyFlag := flag.Bool("history", false, "Print past runs from the journal and exit")
	flag.Parse()

	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.InitLogging(*debugFlag || cfg.Debug.Enabled, cfg.Debug.LogPath)
	if err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logger.Close()

	logger.Infof("Starting pulse")

	err = os.MkdirAll(filepath.Dir(cfg.Demo.JournalPath), 0o755)
	if err != nil {
		log.Fatalf("Failed to create journal directory: %v", err)
	}

	journal, err := repository.NewBboltJournal(cfg.Demo.JournalPath)
	if err != nil {
		log.Fatalf("Failed to open run journal: %v", err)
	}
	defer journal.Close()

	if *historyFlag {
		printHistory(journal)

		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Infof("Received shutdown signal")
		cancel()
	}()

	mon := monitor.New(128)
	mon.Start(ctx)

	trackers := make([]*tracker.Tracker, 0, cfg.Demo.Jobs+1)
	for i := range cfg.Demo.Jobs {
		trackers = append(trackers, tracker.New(fmt.Sprintf("job-%d", i+1), int64(cfg.Demo.UnitsPerJob)))
	}

	// One indefinite job so the marquee path gets exercised too.
	trackers = append(trackers, tracker.New("background-scan", 0))

	g, gctx := errgroup.WithContext(ctx)
	for _, t := range trackers {
		g.Go(func() error {
			return runJob(gctx, t, mon, journal, cfg.TickInterval)
		})
	}

	err = tui.Run(ctx, mon, trackers)
	if err != nil {
		logger.Errorf("TUI exited with error: %v", err)
	}

	cancel()

	err = g.Wait()
	if err != nil {
		logger.Errorf("Job error: %v", err)
	}

	mon.Stop()
	logger.Infof("Shutdown complete")
}

// runJob drives one tracker with simulated work until it completes or ctx is
// cancelled. Finished determinate runs are summarized into the journal.
func runJob(ctx context.Context, t *tracker.Tracker, mon *monitor.Monitor, journal *repository.BboltJournal, interval time.Duration) error {
	for !t.Done() {
		// Jitter keeps the jobs from marching in lockstep.
		delay := interval + time.Duration(rand.Int64N(int64(interval)))

		select {
		case <-ctx.Done():
			t.Stop()
			mon.Publish(t.Snapshot())

			return nil
		case <-time.After(delay):
			t.Tick()
			mon.Publish(t.Snapshot())
		}
	}

	logger.Infof("Job %s completed after %s", t.Name(), t.Elapsed())

	err := journal.Save(repository.RecordOf(t))
	if err != nil {
		logger.Errorf("Failed to journal run %s: %v", t.Name(), err)
	}

	return nil
}

func printHistory(journal *repository.BboltJournal) {
	records, err := journal.FindAll()
	if err != nil {
		log.Fatalf("Failed to read run journal: %v", err)
	}

	if len(records) == 0 {
		fmt.Println("No recorded runs.")

		return
	}

	for _, rec := range records {
		fmt.Printf("%s  %-20s  %6d units  %8dms elapsed  tick mean %.1fms  (%d samples)\n",
			rec.FinishedAt.Format(time.RFC3339),
			rec.Name,
			rec.Total,
			rec.ElapsedMs,
			rec.TickMeanMs,
			rec.Samples)
	}
}
