package layout

import "math"

// Node is a positioned vertex in the supply-chain graph. FX/FY, when set,
// pin the node: each tick snaps position to them and zeroes velocity.
type Node struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	Country   string   `json:"country"`
	RiskScore int      `json:"riskScore"`
	Group     int      `json:"group"`
	X         float64  `json:"x"`
	Y         float64  `json:"y"`
	VX        float64  `json:"vx"`
	VY        float64  `json:"vy"`
	FX        *float64 `json:"fx,omitempty"`
	FY        *float64 `json:"fy,omitempty"`
}

// Link connects two nodes by id; Value scales its rendered width.
type Link struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Value  float64 `json:"value"`
}

// Width is the stroke width for a link, sqrt of its value.
func (l Link) Width() float64 {
	return math.Sqrt(l.Value)
}

// RiskColor maps a risk score to the band color shown on the graph.
func RiskColor(score int) string {
	switch {
	case score >= 80:
		return "#ea384c"
	case score >= 60:
		return "#F97316"
	case score >= 30:
		return "#0EA5E9"
	default:
		return "#10B981"
	}
}
