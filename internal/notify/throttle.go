package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/berkasflow/berkasflow/internal/common"
	"github.com/berkasflow/berkasflow/internal/service"
)

// DefaultThrottleWindow is the minimum gap between repeated messages to
// the same recipient.
const DefaultThrottleWindow = time.Minute

// Throttled wraps a notifier so repeated sends to the same recipient
// within the window are dropped instead of spamming the admin.
type Throttled struct {
	inner  service.Notifier
	window time.Duration
	now    func() time.Time

	mu       sync.Mutex
	lastSent map[string]time.Time
}

// NewThrottled wraps inner with a per-recipient rate limit. A
// non-positive window falls back to DefaultThrottleWindow.
func NewThrottled(inner service.Notifier, window time.Duration) *Throttled {
	return newThrottled(inner, window, time.Now)
}

func newThrottled(inner service.Notifier, window time.Duration, now func() time.Time) *Throttled {
	if window <= 0 {
		window = DefaultThrottleWindow
	}
	return &Throttled{
		inner:    inner,
		window:   window,
		now:      now,
		lastSent: make(map[string]time.Time),
	}
}

// Send forwards to the inner notifier unless the recipient was messaged
// within the window, in which case ErrNotifyThrottled is returned. The
// timestamp only advances on successful sends so a failed delivery can
// be retried immediately.
func (t *Throttled) Send(ctx context.Context, recipient, message string) error {
	t.mu.Lock()
	last, seen := t.lastSent[recipient]
	now := t.now()
	if seen && now.Sub(last) < t.window {
		t.mu.Unlock()
		// Marked non-retryable: retrying inside the window cannot succeed.
		return common.NewRetryableError(fmt.Errorf("%w: %s last notified %s ago",
			common.ErrNotifyThrottled, recipient, now.Sub(last).Round(time.Second)), false)
	}
	t.mu.Unlock()

	if err := t.inner.Send(ctx, recipient, message); err != nil {
		return err
	}

	t.mu.Lock()
	t.lastSent[recipient] = now
	t.mu.Unlock()
	return nil
}
