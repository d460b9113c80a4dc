// Package notify is the studio's transient status surface. At most one
// notification is visible at a time; a new one replaces whatever is on
// screen immediately. Notifications live for 3s, then slide out over
// 300ms and are removed.
package notify

import (
	"sync"
	"time"
)

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

const (
	displayDuration  = 3000 * time.Millisecond
	slideOutDuration = 300 * time.Millisecond
)

// Notification is one visible status message.
type Notification struct {
	Message string    `json:"message"`
	Kind    Kind      `json:"kind"`
	Sliding bool      `json:"sliding"` // in its slide-out phase
	ShownAt time.Time `json:"shownAt"`
}

// Notifier owns the single notification slot and its timers.
type Notifier struct {
	mu      sync.Mutex
	current *Notification
	seq     uint64
	timer   *time.Timer
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

// Notify replaces any visible notification with a new one and arms its
// display/slide-out timers. It never fails.
func (n *Notifier) Notify(message string, kind Kind) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}
	n.seq++
	seq := n.seq
	n.current = &Notification{Message: message, Kind: kind, ShownAt: time.Now()}

	n.timer = time.AfterFunc(displayDuration, func() {
		n.beginSlideOut(seq)
	})
}

// beginSlideOut flips the notification into its slide-out phase, then
// removes it after the slide completes. A newer notification cancels
// the whole lifecycle of the old one via the sequence check.
func (n *Notifier) beginSlideOut(seq uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.seq != seq || n.current == nil {
		return
	}
	n.current.Sliding = true
	n.timer = time.AfterFunc(slideOutDuration, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if n.seq == seq {
			n.current = nil
		}
	})
}

// Current returns the visible notification, or nil.
func (n *Notifier) Current() *Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return nil
	}
	c := *n.current
	return &c
}

// Dismiss clears the surface immediately.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
	}
	n.seq++
	n.current = nil
}
