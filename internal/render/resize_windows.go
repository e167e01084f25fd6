//go:build windows

package render

import "context"

// WatchResize is a no-op on windows; the bar keeps the geometry computed at
// construction.
func (r *Renderer) WatchResize(_ context.Context) {}
