package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NamanBalaji/pulse/internal/config"
	"github.com/NamanBalaji/pulse/internal/render"
	"github.com/NamanBalaji/pulse/internal/tracker"
)

// A minimal console demo: one determinate bar redrawn in place, then an
// indefinite one, without the TUI layer.
func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	job := tracker.New("Download", int64(cfg.Demo.UnitsPerJob))
	bar := render.New(os.Stdout, job.Name(), cfg.Bar.ProgressChar, cfg.Bar.EmptySpaceChar)
	bar.WatchResize(ctx)

	for !job.Done() && ctx.Err() == nil {
		time.Sleep(cfg.TickInterval)
		job.Tick()
		bar.Draw(job.Snapshot())
	}

	bar.Finish()

	// No total: the marker walks the bar until we stop it.
	scan := tracker.New("Scanning", 0)
	spinner := render.New(os.Stdout, scan.Name(), cfg.Bar.ProgressChar, cfg.Bar.EmptySpaceChar)
	spinner.WatchResize(ctx)

	for i := 0; i < 100 && ctx.Err() == nil; i++ {
		time.Sleep(cfg.TickInterval / 2)
		scan.Tick()
		spinner.Draw(scan.Snapshot())
	}

	scan.Stop()
	spinner.Draw(scan.Snapshot())
	spinner.Finish()
}
