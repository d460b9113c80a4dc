package studio

import (
	"sync"
	"time"

	"fuel-backend/internal/models"
)

// DefaultTransitionDelay is how long a changed display slot fades
// before its text swaps.
const DefaultTransitionDelay = 100 * time.Millisecond

// Preview mirrors the form into a read-only set of display slots, one
// per registry field. Changed slots swap their text after a short
// transition; unchanged slots are untouched. A whole-receipt pulse
// counter retriggers on every sync regardless of per-slot diffs.
type Preview struct {
	mu         sync.Mutex
	slots      map[string]string
	pending    map[string]*time.Timer
	pulse      uint64
	transition time.Duration
}

func NewPreview() *Preview {
	return NewPreviewWithDelay(DefaultTransitionDelay)
}

// NewPreviewWithDelay builds a preview with a custom transition delay.
// A non-positive delay commits changed slots synchronously, which tests
// rely on.
func NewPreviewWithDelay(delay time.Duration) *Preview {
	return &Preview{
		slots:      make(map[string]string),
		pending:    make(map[string]*time.Timer),
		transition: delay,
	}
}

// Sync re-renders every registry field from the given form state and
// updates the display slots. Idempotent: syncing the same state twice
// schedules no transitions the second time.
func (p *Preview) Sync(fields *models.ReceiptFields) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, field := range Registry {
		name := field.Name
		rendered := field.Render(field.Get(fields))

		if p.slots[name] == rendered {
			// Unchanged: drop any in-flight transition for a stale value.
			if t, ok := p.pending[name]; ok {
				t.Stop()
				delete(p.pending, name)
			}
			continue
		}

		if p.transition <= 0 {
			p.slots[name] = rendered
			continue
		}

		// Changed: replace any pending transition with a fresh one.
		if t, ok := p.pending[name]; ok {
			t.Stop()
		}
		value := rendered
		p.pending[name] = time.AfterFunc(p.transition, func() {
			p.commit(name, value)
		})
	}

	p.pulse++
}

func (p *Preview) commit(name, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.slots[name] = value
	delete(p.pending, name)
}

// Slots returns a copy of the committed display text per field.
func (p *Preview) Slots() map[string]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]string, len(p.slots))
	for k, v := range p.slots {
		out[k] = v
	}
	return out
}

// Pulse returns the whole-receipt pulse counter.
func (p *Preview) Pulse() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pulse
}
