// Package live fans layout frames out to stream subscribers, one stream per
// layout session.
package live

import (
	"errors"
	"strings"
	"sync"

	"github.com/guardian-io/guardian/internal/graph/layout"
)

const (
	// DefaultBacklog bounds how many recent frames a late subscriber
	// catches up with.
	DefaultBacklog = 30

	DefaultSubscriberBuffer = 16
)

var ErrInvalidSession = errors.New("invalid_session_id")

type Hub struct {
	mu               sync.RWMutex
	streams          map[string]*stream
	backlog          int
	subscriberBuffer int
}

type stream struct {
	mu     sync.Mutex
	frames []layout.Frame
	subs   map[uint64]chan layout.Frame
	nextID uint64
	closed bool
}

type Subscription struct {
	hub       *Hub
	sessionID string
	id        uint64
	ch        chan layout.Frame
	once      sync.Once
}

func NewHub() *Hub {
	return &Hub{
		streams:          make(map[string]*stream),
		backlog:          DefaultBacklog,
		subscriberBuffer: DefaultSubscriberBuffer,
	}
}

// Publish appends a frame to the session backlog and fans it out. Slow
// subscribers miss frames rather than stall the simulation.
func (h *Hub) Publish(sessionID string, frame layout.Frame) {
	id := strings.TrimSpace(sessionID)
	if id == "" {
		return
	}
	st := h.ensureStream(id)

	st.mu.Lock()
	if st.closed {
		st.mu.Unlock()
		return
	}
	st.frames = append(st.frames, frame)
	if len(st.frames) > h.backlog {
		st.frames = st.frames[len(st.frames)-h.backlog:]
	}
	subs := make([]chan layout.Frame, 0, len(st.subs))
	for _, ch := range st.subs {
		subs = append(subs, ch)
	}
	st.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- frame:
		default:
		}
	}
}

// Subscribe attaches to a session stream and returns the buffered backlog so
// the caller can replay the frames it missed.
func (h *Hub) Subscribe(sessionID string) (*Subscription, []layout.Frame, error) {
	id := strings.TrimSpace(sessionID)
	if id == "" {
		return nil, nil, ErrInvalidSession
	}

	st := h.ensureStream(id)
	st.mu.Lock()
	if st.closed {
		st.mu.Unlock()
		return nil, nil, ErrInvalidSession
	}
	subID := st.nextID
	st.nextID++
	ch := make(chan layout.Frame, h.subscriberBuffer)
	st.subs[subID] = ch
	backlog := append([]layout.Frame(nil), st.frames...)
	st.mu.Unlock()

	return &Subscription{
		hub:       h,
		sessionID: id,
		id:        subID,
		ch:        ch,
	}, backlog, nil
}

// Close tears a session stream down, ending every subscriber's channel.
func (h *Hub) Close(sessionID string) {
	id := strings.TrimSpace(sessionID)
	if id == "" {
		return
	}

	h.mu.Lock()
	st := h.streams[id]
	delete(h.streams, id)
	h.mu.Unlock()
	if st == nil {
		return
	}

	st.mu.Lock()
	st.closed = true
	for subID, ch := range st.subs {
		delete(st.subs, subID)
		close(ch)
	}
	st.mu.Unlock()
}

func (h *Hub) ensureStream(sessionID string) *stream {
	h.mu.RLock()
	current := h.streams[sessionID]
	h.mu.RUnlock()
	if current != nil {
		return current
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	current = h.streams[sessionID]
	if current == nil {
		current = &stream{subs: make(map[uint64]chan layout.Frame)}
		h.streams[sessionID] = current
	}
	return current
}

func (h *Hub) unsubscribe(sessionID string, id uint64) {
	h.mu.RLock()
	st := h.streams[sessionID]
	h.mu.RUnlock()
	if st == nil {
		return
	}

	st.mu.Lock()
	if ch, ok := st.subs[id]; ok {
		delete(st.subs, id)
		close(ch)
	}
	st.mu.Unlock()
}

// Frames is the subscriber's channel; it closes when the subscription or the
// whole session stream closes.
func (s *Subscription) Frames() <-chan layout.Frame {
	if s == nil {
		return nil
	}
	return s.ch
}

func (s *Subscription) Close() {
	if s == nil || s.hub == nil {
		return
	}
	s.once.Do(func() {
		s.hub.unsubscribe(s.sessionID, s.id)
	})
}
