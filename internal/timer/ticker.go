package timer

import (
	"context"
	"time"
)

// Run calls onTick once per interval while active reports true. It returns as
// soon as ctx is done or active turns false, and stops its ticker on return.
// onTick runs on the calling goroutine, so ticks never overlap.
func Run(ctx context.Context, interval time.Duration, active func() bool, onTick func(time.Time)) {
	if !active() {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if !active() {
				return
			}
			onTick(now)
		}
	}
}
