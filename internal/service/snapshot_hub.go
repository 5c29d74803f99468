package service

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Abd-ElghanyMohammed/myflash/internal/model"
)

// SnapshotHub fans the full per-tenant unit collection out to
// subscribers. Every mutation re-delivers the entire current set —
// observers never have to merge diffs. A slow subscriber only ever
// lags by whole snapshots: when its buffer is full the stale snapshot
// is dropped and replaced by the newer one.
type SnapshotHub struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]map[chan []model.Unit]struct{}
}

func NewSnapshotHub() *SnapshotHub {
	return &SnapshotHub{subs: make(map[uuid.UUID]map[chan []model.Unit]struct{})}
}

// Subscribe registers an observer for one tenant's unit collection.
// The returned cancel func must be called when the observer goes away.
func (h *SnapshotHub) Subscribe(tenantID uuid.UUID) (<-chan []model.Unit, func()) {
	ch := make(chan []model.Unit, 1)

	h.mu.Lock()
	if h.subs[tenantID] == nil {
		h.subs[tenantID] = make(map[chan []model.Unit]struct{})
	}
	h.subs[tenantID][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[tenantID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, tenantID)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers a fresh snapshot to every subscriber of the tenant.
func (h *SnapshotHub) Publish(tenantID uuid.UUID, units []model.Unit) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[tenantID] {
		select {
		case ch <- units:
		default:
			// Drop the stale buffered snapshot, keep the newest.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- units:
			default:
			}
		}
	}
}

// SubscriberCount reports active observers for a tenant (health/tests).
func (h *SnapshotHub) SubscriberCount(tenantID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[tenantID])
}
