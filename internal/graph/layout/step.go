package layout

import (
	"fmt"
	"math"
	"math/rand"
)

const (
	initialRadius = 10

	// squared distance floor for the charge force
	distanceMin2 = 1
)

// golden-angle spacing for the spiral start positions
var initialAngle = math.Pi * (3 - math.Sqrt(5))

// State is the complete simulation state for one layout run. Step advances
// it by exactly one tick with no side effects beyond the state itself, so a
// run is reproducible from its inputs.
type State struct {
	Nodes       []Node
	Links       []Link
	Alpha       float64
	AlphaTarget float64

	cfg   Config
	index map[string]int

	// per-link data derived from endpoint degrees, d3-force style
	source   []int
	target   []int
	bias     []float64
	strength []float64

	rnd *rand.Rand
}

// NewState copies the topology, resolves link endpoints and places nodes
// without coordinates on a phyllotaxis spiral around the canvas center.
func NewState(nodes []Node, links []Link, cfg Config) (*State, error) {
	s := &State{
		Nodes: append([]Node(nil), nodes...),
		Links: append([]Link(nil), links...),
		Alpha: 1,
		cfg:   cfg,
		index: make(map[string]int, len(nodes)),
		rnd:   rand.New(rand.NewSource(42)),
	}
	for i := range s.Nodes {
		node := &s.Nodes[i]
		if node.ID == "" {
			return nil, fmt.Errorf("node %d: missing id", i)
		}
		if _, dup := s.index[node.ID]; dup {
			return nil, fmt.Errorf("duplicate node id %q", node.ID)
		}
		s.index[node.ID] = i
		if node.X == 0 && node.Y == 0 {
			radius := initialRadius * math.Sqrt(0.5+float64(i))
			angle := float64(i) * initialAngle
			node.X = cfg.CenterX() + radius*math.Cos(angle)
			node.Y = cfg.CenterY() + radius*math.Sin(angle)
		}
	}

	count := make([]int, len(s.Nodes))
	s.source = make([]int, len(s.Links))
	s.target = make([]int, len(s.Links))
	for i, link := range s.Links {
		src, ok := s.index[link.Source]
		if !ok {
			return nil, fmt.Errorf("link %d: unknown source %q", i, link.Source)
		}
		dst, ok := s.index[link.Target]
		if !ok {
			return nil, fmt.Errorf("link %d: unknown target %q", i, link.Target)
		}
		s.source[i] = src
		s.target[i] = dst
		count[src]++
		count[dst]++
	}
	s.bias = make([]float64, len(s.Links))
	s.strength = make([]float64, len(s.Links))
	for i := range s.Links {
		cs, ct := count[s.source[i]], count[s.target[i]]
		s.bias[i] = float64(cs) / float64(cs+ct)
		s.strength[i] = 1 / float64(min(cs, ct))
	}
	return s, nil
}

// Node returns a copy of the node with the given id.
func (s *State) Node(id string) (Node, bool) {
	i, ok := s.index[id]
	if !ok {
		return Node{}, false
	}
	return s.Nodes[i], true
}

// Pin fixes a node at (x, y); it snaps there on the next tick.
func (s *State) Pin(id string, x, y float64) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.Nodes[i].FX = &x
	s.Nodes[i].FY = &y
	return true
}

// Unpin releases a pinned node back to the forces.
func (s *State) Unpin(id string) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.Nodes[i].FX = nil
	s.Nodes[i].FY = nil
	return true
}

// Settled reports whether alpha has decayed past the cutoff with no reheat
// pending.
func (s *State) Settled() bool {
	return s.Alpha < s.cfg.AlphaMin && s.AlphaTarget < s.cfg.AlphaMin
}

// Step advances the simulation one tick: decay alpha toward its target,
// apply the four forces, then integrate velocities with decay. Pinned nodes
// snap to their pin and drop all velocity.
func (s *State) Step() {
	s.Alpha += (s.AlphaTarget - s.Alpha) * s.cfg.AlphaDecay

	for i := 0; i < s.cfg.LinkIterations; i++ {
		s.applyLinks()
	}
	s.applyCharge()
	s.applyCenter()
	s.applyAxes()

	for i := range s.Nodes {
		node := &s.Nodes[i]
		if node.FX != nil {
			node.X = *node.FX
			node.VX = 0
		} else {
			node.VX *= 1 - s.cfg.VelocityDecay
			node.X += node.VX
		}
		if node.FY != nil {
			node.Y = *node.FY
			node.VY = 0
		} else {
			node.VY *= 1 - s.cfg.VelocityDecay
			node.Y += node.VY
		}
	}
}

// applyLinks is a spring toward LinkDistance. Each endpoint absorbs a share
// of the correction proportional to the other endpoint's degree.
func (s *State) applyLinks() {
	for i := range s.Links {
		src := &s.Nodes[s.source[i]]
		dst := &s.Nodes[s.target[i]]
		x := dst.X + dst.VX - src.X - src.VX
		if x == 0 {
			x = s.jiggle()
		}
		y := dst.Y + dst.VY - src.Y - src.VY
		if y == 0 {
			y = s.jiggle()
		}
		l := math.Sqrt(x*x + y*y)
		l = (l - s.cfg.LinkDistance) / l * s.Alpha * s.strength[i]
		x *= l
		y *= l
		b := s.bias[i]
		dst.VX -= x * b
		dst.VY -= y * b
		src.VX += x * (1 - b)
		src.VY += y * (1 - b)
	}
}

// applyCharge repels every pair, inverse to squared distance. Exact O(n²)
// evaluation; the graphs here are far too small to warrant Barnes-Hut.
func (s *State) applyCharge() {
	for i := range s.Nodes {
		a := &s.Nodes[i]
		for j := range s.Nodes {
			if i == j {
				continue
			}
			b := &s.Nodes[j]
			x := b.X - a.X
			if x == 0 {
				x = s.jiggle()
			}
			y := b.Y - a.Y
			if y == 0 {
				y = s.jiggle()
			}
			l := x*x + y*y
			if l < distanceMin2 {
				l = math.Sqrt(distanceMin2 * l)
			}
			w := s.cfg.ChargeStrength * s.Alpha / l
			a.VX += x * w
			a.VY += y * w
		}
	}
}

// applyCenter translates the whole layout so its centroid sits on the canvas
// center. Positional, not velocity-based, and independent of alpha.
func (s *State) applyCenter() {
	if len(s.Nodes) == 0 {
		return
	}
	var sx, sy float64
	for i := range s.Nodes {
		sx += s.Nodes[i].X
		sy += s.Nodes[i].Y
	}
	n := float64(len(s.Nodes))
	dx := (sx/n - s.cfg.CenterX()) * s.cfg.CenterStrength
	dy := (sy/n - s.cfg.CenterY()) * s.cfg.CenterStrength
	for i := range s.Nodes {
		s.Nodes[i].X -= dx
		s.Nodes[i].Y -= dy
	}
}

// applyAxes pulls every node gently toward the canvas center on each axis.
func (s *State) applyAxes() {
	for i := range s.Nodes {
		node := &s.Nodes[i]
		node.VX += (s.cfg.CenterX() - node.X) * s.cfg.AxisStrength * s.Alpha
		node.VY += (s.cfg.CenterY() - node.Y) * s.cfg.AxisStrength * s.Alpha
	}
}

// jiggle breaks exact coincidence so distances never divide by zero.
func (s *State) jiggle() float64 {
	return (s.rnd.Float64() - 0.5) * 1e-6
}
