package view

import (
	"sync"
	"time"

	"github.com/idilsaglam/smartlist/internal/list"
)

// AnnounceDelay is how long an announcement stays visible.
const AnnounceDelay = time.Second

// LiveRegion holds a short status message that clears itself. Timers are
// never cancelled; a timer only clears the message it was started for.
type LiveRegion struct {
	mu    sync.Mutex
	text  string
	seq   uint64
	delay time.Duration
}

// NewLiveRegion returns a region clearing messages after delay
// (AnnounceDelay when delay <= 0).
func NewLiveRegion(delay time.Duration) *LiveRegion {
	if delay <= 0 {
		delay = AnnounceDelay
	}
	return &LiveRegion{delay: delay}
}

// Announce shows msg until the delay elapses. Empty messages are ignored.
func (r *LiveRegion) Announce(msg string) {
	if msg == "" {
		return
	}
	r.mu.Lock()
	r.seq++
	seq := r.seq
	r.text = msg
	r.mu.Unlock()

	time.AfterFunc(r.delay, func() {
		r.mu.Lock()
		if r.seq == seq {
			r.text = ""
		}
		r.mu.Unlock()
	})
}

func (r *LiveRegion) Text() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.text
}

// Delay is the configured clear delay.
func (r *LiveRegion) Delay() time.Duration { return r.delay }

// Announcement is the status text for a list event, "" when the event is
// not announced.
func Announcement(ev list.Event) string {
	switch ev.Op {
	case list.OpAdd:
		return "Item added"
	case list.OpRemove:
		return "Item removed"
	case list.OpToggle:
		if ev.Item.Completed {
			return "Marked item complete"
		}
		return "Marked item incomplete"
	case list.OpSetDiscount:
		return "Discount updated"
	}
	return ""
}
