package routedetails

import (
	"sync"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/trashtrack/trashtrack/pkg/wcdf"
)

// RouteDetails is a single immutable snapshot of the assembled route state.
// It is replaced wholesale on every update, never mutated in place.
type RouteDetails struct {
	Loading bool   `groups:"basic"`
	Error   string `groups:"basic" json:",omitempty"`

	Schedule *wcdf.Schedule `groups:"basic" json:",omitempty"`
	Driver   *wcdf.User     `groups:"basic" json:",omitempty"`

	TPSList    []wcdf.TPS  `groups:"detailed"`
	RouteSteps []RouteStep `groups:"basic"`
}

// StateHolder is an observable value cell with exactly one writer (the
// assembler) and any number of subscribers.
type StateHolder struct {
	mutex       sync.RWMutex
	current     RouteDetails
	subscribers map[chan RouteDetails]struct{}
}

func NewStateHolder() *StateHolder {
	return &StateHolder{
		subscribers: map[chan RouteDetails]struct{}{},
	}
}

func (h *StateHolder) Current() RouteDetails {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return h.current
}

// Subscribe returns a channel receiving every published snapshot from now
// on. Delivery is best effort - a subscriber that stops draining its channel
// misses updates instead of blocking the writer.
func (h *StateHolder) Subscribe() chan RouteDetails {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	subscriber := make(chan RouteDetails, 16)
	h.subscribers[subscriber] = struct{}{}

	return subscriber
}

func (h *StateHolder) Unsubscribe(subscriber chan RouteDetails) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.subscribers[subscriber]; ok {
		delete(h.subscribers, subscriber)
		close(subscriber)
	}
}

func (h *StateHolder) publish(snapshot RouteDetails) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.current = snapshot

	for subscriber := range h.subscribers {
		select {
		case subscriber <- snapshot:
		default:
			log.Debug().Msg("Dropping route details update for slow subscriber")
		}
	}
}

// snapshotCopy returns a copy of the current snapshot for partial updates
// (loading/error transitions keep the previous substantive fields).
func (h *StateHolder) snapshotCopy() RouteDetails {
	current := h.Current()

	var snapshot RouteDetails
	if err := copier.Copy(&snapshot, &current); err != nil {
		log.Error().Err(err).Msg("Failed to copy route details snapshot")
		return current
	}

	return snapshot
}
