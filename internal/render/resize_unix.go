//go:build !windows

package render

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WatchResize recomputes the bar geometry whenever the terminal is resized.
// The watcher exits when ctx is cancelled.
func (r *Renderer) WatchResize(ctx context.Context) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGWINCH)

	go func() {
		defer signal.Stop(ch)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ch:
				r.recalculate()
			}
		}
	}()
}
