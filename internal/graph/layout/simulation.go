package layout

import (
	"context"
	"errors"
	"sync"
	"time"
)

type Phase string

const (
	PhaseUninitialized Phase = "uninitialized"
	PhaseRunning       Phase = "running"
	PhaseSettling      Phase = "settling"
	PhaseStopped       Phase = "stopped"
)

var (
	ErrAlreadyStarted = errors.New("simulation_already_started")
	ErrStopped        = errors.New("simulation_stopped")
	ErrUnknownNode    = errors.New("unknown_node")
)

// reheatTarget is the alpha target applied while a drag gesture is active.
const reheatTarget = 0.3

// Frame is one published position snapshot.
type Frame struct {
	Tick  int     `json:"tick"`
	Alpha float64 `json:"alpha"`
	Phase Phase   `json:"phase"`
	Nodes []Node  `json:"nodes"`
}

// Simulation drives a State on a ticker and hands each frame to a sink.
// Phases move Uninitialized → Running → Settling → Stopped; a drag reheats
// a settling run back to Running, Stop is terminal.
type Simulation struct {
	mu       sync.Mutex
	state    *State
	phase    Phase
	tick     int
	dragging map[string]bool

	interval time.Duration
	onFrame  func(Frame)

	wake   chan struct{}
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSimulation validates the topology and prepares a run. onFrame is called
// outside the simulation lock, once per tick, in tick order.
func NewSimulation(nodes []Node, links []Link, cfg Config, interval time.Duration, onFrame func(Frame)) (*Simulation, error) {
	state, err := NewState(nodes, links, cfg)
	if err != nil {
		return nil, err
	}
	if onFrame == nil {
		onFrame = func(Frame) {}
	}
	return &Simulation{
		state:    state,
		phase:    PhaseUninitialized,
		dragging: make(map[string]bool),
		interval: interval,
		onFrame:  onFrame,
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}, nil
}

func (s *Simulation) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Snapshot returns the current frame without advancing the simulation.
func (s *Simulation) Snapshot() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frameLocked()
}

// Start launches the tick loop. A simulation starts once; restarting a
// layout means building a new simulation.
func (s *Simulation) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.phase {
	case PhaseUninitialized:
	case PhaseStopped:
		return ErrStopped
	default:
		return ErrAlreadyStarted
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.phase = PhaseRunning
	go s.run(ctx)
	return nil
}

// Drag pins a node under the pointer. The first active gesture reheats the
// simulation; repeated calls move the pin.
func (s *Simulation) Drag(id string, x, y float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseStopped || s.phase == PhaseUninitialized {
		return ErrStopped
	}
	if !s.state.Pin(id, x, y) {
		return ErrUnknownNode
	}
	if !s.dragging[id] && len(s.dragging) == 0 {
		s.state.AlphaTarget = reheatTarget
	}
	s.dragging[id] = true
	if s.phase == PhaseSettling {
		s.phase = PhaseRunning
		select {
		case s.wake <- struct{}{}:
		default:
		}
	}
	return nil
}

// Release unpins a node; ending the last gesture lets alpha decay again.
func (s *Simulation) Release(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseStopped || s.phase == PhaseUninitialized {
		return ErrStopped
	}
	if !s.state.Unpin(id) {
		return ErrUnknownNode
	}
	delete(s.dragging, id)
	if len(s.dragging) == 0 {
		s.state.AlphaTarget = 0
	}
	return nil
}

// Stop terminates the run and waits for the loop to exit. Safe to call more
// than once, and before Start.
func (s *Simulation) Stop() {
	s.mu.Lock()
	if s.phase == PhaseStopped {
		s.mu.Unlock()
		return
	}
	started := s.phase != PhaseUninitialized
	s.phase = PhaseStopped
	if s.cancel != nil {
		s.cancel()
	}
	select {
	case s.wake <- struct{}{}:
	default:
	}
	s.mu.Unlock()
	if started {
		<-s.done
	}
}

// Done is closed once the tick loop has exited.
func (s *Simulation) Done() <-chan struct{} {
	return s.done
}

func (s *Simulation) run(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			s.phase = PhaseStopped
			s.mu.Unlock()
			return
		case <-ticker.C:
		}

		s.mu.Lock()
		if s.phase == PhaseStopped {
			s.mu.Unlock()
			return
		}
		s.state.Step()
		s.tick++
		settled := s.state.Settled() && len(s.dragging) == 0
		if settled {
			s.phase = PhaseSettling
		}
		frame := s.frameLocked()
		s.mu.Unlock()

		s.onFrame(frame)

		if settled {
			// parked until a drag reheats the run or it is stopped
			select {
			case <-ctx.Done():
				s.mu.Lock()
				s.phase = PhaseStopped
				s.mu.Unlock()
				return
			case <-s.wake:
				if s.Phase() == PhaseStopped {
					return
				}
				ticker.Reset(s.interval)
			}
		}
	}
}

func (s *Simulation) frameLocked() Frame {
	return Frame{
		Tick:  s.tick,
		Alpha: s.state.Alpha,
		Phase: s.phase,
		Nodes: append([]Node(nil), s.state.Nodes...),
	}
}
