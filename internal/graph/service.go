// Package graph manages server-side force-layout sessions over the
// supply-chain topology.
package graph

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/guardian-io/guardian/internal/config"
	"github.com/guardian-io/guardian/internal/graph/layout"
	"github.com/guardian-io/guardian/internal/graph/live"
	obsmetrics "github.com/guardian-io/guardian/internal/observability/metrics"
	"github.com/guardian-io/guardian/internal/seed"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound = errors.New("layout_session_not_found")
	ErrInvalidTopology = errors.New("invalid_topology")
)

// Topology is the renderable graph: nodes plus the links between them.
type Topology struct {
	Nodes []layout.Node `json:"nodes"`
	Links []layout.Link `json:"links"`
}

type StartSessionRequest struct {
	// SessionID restarts an existing session in place when supplied;
	// the prior run is stopped first.
	SessionID string `json:"sessionId,omitempty"`

	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Custom topology; the seeded supply-chain graph when omitted.
	Nodes []layout.Node `json:"nodes,omitempty"`
	Links []layout.Link `json:"links,omitempty"`
}

// Session describes a layout run to API clients.
type Session struct {
	ID     string       `json:"id"`
	Phase  layout.Phase `json:"phase"`
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
}

type Params struct {
	fx.In

	Config config.Config
	Hub    *live.Hub
	Log    *zap.Logger
}

// Manager owns every running simulation and the hub their frames flow
// through.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session

	hub      *live.Hub
	interval time.Duration
	width    float64
	height   float64
	log      *zap.Logger
	metrics  *obsmetrics.LayoutMetrics

	baseCtx context.Context
	stop    context.CancelFunc
}

type session struct {
	sim    *layout.Simulation
	width  float64
	height float64
}

func NewManager(p Params) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	interval := p.Config.LayoutFrameInterval
	if interval <= 0 {
		interval = 33 * time.Millisecond
	}
	return &Manager{
		sessions: make(map[string]*session),
		hub:      p.Hub,
		interval: interval,
		width:    p.Config.CanvasWidth,
		height:   p.Config.CanvasHeight,
		log:      p.Log.Named("graph.layout"),
		metrics:  obsmetrics.Layout(),
		baseCtx:  ctx,
		stop:     cancel,
	}
}

// Topology returns the seeded supply-chain graph.
func (m *Manager) Topology() Topology {
	return Topology{Nodes: seed.GraphNodes(), Links: seed.GraphLinks()}
}

// StartSession builds and starts a simulation. Re-using a session id stops
// the run already holding it.
func (m *Manager) StartSession(req StartSessionRequest) (Session, error) {
	id := strings.TrimSpace(req.SessionID)
	if id == "" {
		id = uuid.NewString()
	}

	width, height := req.Width, req.Height
	if width <= 0 {
		width = m.width
	}
	if height <= 0 {
		height = m.height
	}

	nodes, links := req.Nodes, req.Links
	if len(nodes) == 0 {
		nodes, links = seed.GraphNodes(), seed.GraphLinks()
	}

	cfg := layout.DefaultConfig(width, height)
	sim, err := layout.NewSimulation(nodes, links, cfg, m.interval, func(frame layout.Frame) {
		m.hub.Publish(id, frame)
		m.metrics.IncTick(string(frame.Phase))
	})
	if err != nil {
		return Session{}, errors.Join(ErrInvalidTopology, err)
	}

	m.mu.Lock()
	if prior, ok := m.sessions[id]; ok {
		delete(m.sessions, id)
		m.mu.Unlock()
		m.teardown(id, prior)
		m.mu.Lock()
	}
	m.sessions[id] = &session{sim: sim, width: width, height: height}
	m.mu.Unlock()

	if err := sim.Start(m.baseCtx); err != nil {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		return Session{}, err
	}
	m.metrics.SessionStarted()
	m.log.Info("layout session started",
		zap.String("session_id", id),
		zap.Int("nodes", len(nodes)),
		zap.Int("links", len(links)),
	)
	return Session{ID: id, Phase: sim.Phase(), Width: width, Height: height}, nil
}

// Drag pins a node in a running session to the pointer position.
func (m *Manager) Drag(sessionID, nodeID string, x, y float64) error {
	sess, err := m.lookup(sessionID)
	if err != nil {
		return err
	}
	return sess.sim.Drag(nodeID, x, y)
}

// Release lets a dragged node rejoin the forces.
func (m *Manager) Release(sessionID, nodeID string) error {
	sess, err := m.lookup(sessionID)
	if err != nil {
		return err
	}
	return sess.sim.Release(nodeID)
}

// Snapshot returns the session's latest frame.
func (m *Manager) Snapshot(sessionID string) (layout.Frame, error) {
	sess, err := m.lookup(sessionID)
	if err != nil {
		return layout.Frame{}, err
	}
	return sess.sim.Snapshot(), nil
}

// Subscribe attaches to the session's frame stream.
func (m *Manager) Subscribe(sessionID string) (*live.Subscription, []layout.Frame, error) {
	if _, err := m.lookup(sessionID); err != nil {
		return nil, nil, err
	}
	return m.hub.Subscribe(strings.TrimSpace(sessionID))
}

// StopSession terminates a run and closes its stream.
func (m *Manager) StopSession(sessionID string) error {
	id := strings.TrimSpace(sessionID)
	m.mu.Lock()
	sess, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	m.teardown(id, sess)
	m.log.Info("layout session stopped", zap.String("session_id", id))
	return nil
}

// Shutdown stops every session; used by the fx lifecycle hook.
func (m *Manager) Shutdown() {
	m.stop()
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*session)
	m.mu.Unlock()
	for id, sess := range sessions {
		m.teardown(id, sess)
	}
}

func (m *Manager) lookup(sessionID string) (*session, error) {
	id := strings.TrimSpace(sessionID)
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (m *Manager) teardown(id string, sess *session) {
	sess.sim.Stop()
	m.hub.Close(id)
	m.metrics.SessionStopped()
}
