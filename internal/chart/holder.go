package chart

import (
	"sync"

	"statcalc/domain/core"
)

// Handle is one rendered chart. Once disposed it is never shown again.
type Handle struct {
	Spec Spec

	mu       sync.Mutex
	disposed bool
}

// ID returns the chart identifier
func (h *Handle) ID() core.ChartID {
	return h.Spec.ID
}

// Dispose releases the handle; calling it more than once is harmless
func (h *Handle) Dispose() {
	h.mu.Lock()
	h.disposed = true
	h.mu.Unlock()
}

// Disposed reports whether the handle was released
func (h *Handle) Disposed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.disposed
}

// Holder keeps at most one active chart. Installing a new chart disposes the
// previous one first.
type Holder struct {
	mu     sync.Mutex
	active *Handle
}

// NewHolder creates an empty holder
func NewHolder() *Holder {
	return &Holder{}
}

// Replace disposes the active chart, if any, and installs spec
func (h *Holder) Replace(spec Spec) *Handle {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.active != nil {
		h.active.Dispose()
	}
	h.active = &Handle{Spec: spec}
	return h.active
}

// Active returns the current chart
func (h *Holder) Active() (*Handle, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active, h.active != nil
}

// Get returns the active chart when its ID matches
func (h *Holder) Get(id core.ChartID) (*Handle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active == nil || h.active.ID() != id {
		return nil, core.ErrChartNotFound
	}
	return h.active, nil
}

// Clear disposes the active chart and leaves the holder empty
func (h *Holder) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.active != nil {
		h.active.Dispose()
		h.active = nil
	}
}
