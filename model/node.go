package model

import (
	"github.com/stackforge/genstack/model/kind"
)

// Position holds the canvas coordinates of a node. It is used only for
// rendering and dragging and is never interpreted semantically.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// NodeData holds the display label and the open configuration bag of a node.
type NodeData struct {
	Label  string                 `json:"label,omitempty" yaml:"label,omitempty"`
	Config map[string]interface{} `json:"config" yaml:"config"`
}

// Node represents one placed pipeline component. A node always carries a
// complete configuration bag initialised from its kind's defaults; values may
// be empty but keys are never missing.
type Node struct {
	ID       string    `json:"id" yaml:"id"`
	Type     kind.Kind `json:"type" yaml:"type"`
	Position Position  `json:"position" yaml:"position"`
	Data     NodeData  `json:"data" yaml:"data"`
}

// Clone creates a deep copy of the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	clone := &Node{
		ID:       n.ID,
		Type:     n.Type,
		Position: n.Position,
		Data:     NodeData{Label: n.Data.Label},
	}
	if n.Data.Config != nil {
		clone.Data.Config = make(map[string]interface{}, len(n.Data.Config))
		for k, v := range n.Data.Config {
			clone.Data.Config[k] = v
		}
	}
	return clone
}
