package notify

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Notifier is a single shared "added to cart" flag that hides itself after a
// fixed window. Showing it again restarts the window instead of queueing.
type Notifier struct {
	clock clock.Clock
	ttl   time.Duration

	mutex   sync.Mutex
	visible bool
	timer   *clock.Timer
	gen     uint64
}

func NewNotifier(clk clock.Clock, ttl time.Duration) *Notifier {
	return &Notifier{clock: clk, ttl: ttl}
}

func (n *Notifier) Show() {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}

	n.visible = true
	n.gen++
	gen := n.gen
	n.timer = n.clock.AfterFunc(n.ttl, func() {
		n.mutex.Lock()
		defer n.mutex.Unlock()
		// A stopped timer may already have fired; only the latest one may hide.
		if n.gen == gen {
			n.visible = false
			n.timer = nil
		}
	})
}

func (n *Notifier) Visible() bool {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	return n.visible
}

// Stop cancels a pending dismissal and hides the flag
func (n *Notifier) Stop() {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.gen++
	n.visible = false
}
