package model

// EdgeStyle carries the display-only stroke decoration of an edge.
type EdgeStyle struct {
	Stroke      string `json:"stroke,omitempty" yaml:"stroke,omitempty"`
	StrokeWidth int    `json:"strokeWidth,omitempty" yaml:"strokeWidth,omitempty"`
}

// Marker carries the display-only arrowhead decoration of an edge.
type Marker struct {
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// Edge represents a directed connection between two nodes. Both endpoints
// must reference nodes present in the same stack and must differ.
type Edge struct {
	ID        string     `json:"id" yaml:"id"`
	Source    string     `json:"source" yaml:"source"`
	Target    string     `json:"target" yaml:"target"`
	Animated  bool       `json:"animated,omitempty" yaml:"animated,omitempty"`
	Style     *EdgeStyle `json:"style,omitempty" yaml:"style,omitempty"`
	MarkerEnd *Marker    `json:"markerEnd,omitempty" yaml:"markerEnd,omitempty"`
}

// Clone creates a deep copy of the edge.
func (e *Edge) Clone() *Edge {
	if e == nil {
		return nil
	}
	clone := &Edge{
		ID:       e.ID,
		Source:   e.Source,
		Target:   e.Target,
		Animated: e.Animated,
	}
	if e.Style != nil {
		style := *e.Style
		clone.Style = &style
	}
	if e.MarkerEnd != nil {
		marker := *e.MarkerEnd
		clone.MarkerEnd = &marker
	}
	return clone
}
