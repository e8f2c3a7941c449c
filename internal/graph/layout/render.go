package layout

// Segment is a positioned link ready to draw.
type Segment struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	X1     float64 `json:"x1"`
	Y1     float64 `json:"y1"`
	X2     float64 `json:"x2"`
	Y2     float64 `json:"y2"`
	Width  float64 `json:"width"`
}

// LinkEndpoints resolves each link against the node positions in a frame.
// Links referencing nodes absent from the frame are skipped.
func LinkEndpoints(nodes []Node, links []Link) []Segment {
	byID := make(map[string]*Node, len(nodes))
	for i := range nodes {
		byID[nodes[i].ID] = &nodes[i]
	}
	segments := make([]Segment, 0, len(links))
	for _, link := range links {
		src, ok := byID[link.Source]
		if !ok {
			continue
		}
		dst, ok := byID[link.Target]
		if !ok {
			continue
		}
		segments = append(segments, Segment{
			Source: link.Source,
			Target: link.Target,
			X1:     src.X,
			Y1:     src.Y,
			X2:     dst.X,
			Y2:     dst.Y,
			Width:  link.Width(),
		})
	}
	return segments
}

// RiskBand names the severity band a risk score falls in.
func RiskBand(score int) string {
	switch {
	case score >= 80:
		return "severe"
	case score >= 60:
		return "elevated"
	case score >= 30:
		return "moderate"
	default:
		return "nominal"
	}
}
