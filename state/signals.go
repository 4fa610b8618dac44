package state

import (
	"sync"

	"chat-core/domain"

	"github.com/google/uuid"
)

// mailbox is one user's pending signal queue, oldest first.
type mailbox struct {
	mu      sync.Mutex
	signals []domain.WebRTCSignal
}

// SignalMailbox relays WebRTC negotiation payloads between call parties.
// It is deliberately permissive: neither users nor call ids are validated,
// it only queues what it is told to. Each signal gets a stable id at
// enqueue time and is removed by that id, so an acknowledgment can never
// hit the wrong element even when sends and acks race.
type SignalMailbox struct {
	mu    sync.RWMutex
	boxes map[string]*mailbox
}

func NewSignalMailbox() *SignalMailbox {
	return &SignalMailbox{boxes: make(map[string]*mailbox)}
}

func (m *SignalMailbox) box(userID string) *mailbox {
	m.mu.RLock()
	b, ok := m.boxes[userID]
	m.mu.RUnlock()
	if ok {
		return b
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok = m.boxes[userID]; ok {
		return b
	}
	b = &mailbox{}
	m.boxes[userID] = b
	return b
}

// Send queues a signal for toUserID and returns it with its id assigned.
// Offers and answers carry the payload as SDP, ICE candidates as Candidate.
func (m *SignalMailbox) Send(callID, fromUserID, toUserID string, signalType domain.SignalType, payload string) domain.WebRTCSignal {
	signal := domain.WebRTCSignal{
		ID:         uuid.NewString(),
		CallID:     callID,
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Type:       signalType,
	}
	if signalType == domain.SignalIceCandidate {
		signal.Candidate = payload
	} else {
		signal.SDP = payload
	}

	b := m.box(toUserID)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.signals = append(b.signals, signal)
	return signal
}

// Pending returns a non-destructive snapshot of the user's queue, oldest
// first.
func (m *SignalMailbox) Pending(userID string) []domain.WebRTCSignal {
	m.mu.RLock()
	b, ok := m.boxes[userID]
	m.mu.RUnlock()
	if !ok {
		return []domain.WebRTCSignal{}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.WebRTCSignal, len(b.signals))
	copy(out, b.signals)
	return out
}

// Acknowledge removes one signal from the user's queue by its id. The call
// id must match the signal's; an id that matches nothing is a silent no-op,
// so acknowledging an already-removed signal is harmless.
func (m *SignalMailbox) Acknowledge(callID, userID, signalID string) {
	m.mu.RLock()
	b, ok := m.boxes[userID]
	m.mu.RUnlock()
	if !ok {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, signal := range b.signals {
		if signal.ID == signalID && signal.CallID == callID {
			b.signals = append(b.signals[:i], b.signals[i+1:]...)
			return
		}
	}
}
