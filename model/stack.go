package model

import (
	"github.com/stackforge/genstack/model/kind"
)

// Stack is a snapshot of one workflow: the placed nodes and the directed
// edges between them, both in insertion order. A stack returned by the
// editor is a deep copy; mutating it never affects the source of truth.
type Stack struct {
	Name  string  `json:"name,omitempty" yaml:"name,omitempty"`
	Nodes []*Node `json:"nodes" yaml:"nodes"`
	Edges []*Edge `json:"edges" yaml:"edges"`
}

// NewStack creates a new empty stack with the given name.
func NewStack(name string) *Stack {
	return &Stack{Name: name}
}

// FindNode returns the node with the supplied id, or nil when absent.
func (s *Stack) FindNode(id string) *Node {
	for _, node := range s.Nodes {
		if node.ID == id {
			return node
		}
	}
	return nil
}

// NodesOfKind returns all nodes of the supplied kind in insertion order.
func (s *Stack) NodesOfKind(aKind kind.Kind) []*Node {
	var result []*Node
	for _, node := range s.Nodes {
		if node.Type == aKind {
			result = append(result, node)
		}
	}
	return result
}

// HasKind reports whether at least one node of the supplied kind is present.
func (s *Stack) HasKind(aKind kind.Kind) bool {
	for _, node := range s.Nodes {
		if node.Type == aKind {
			return true
		}
	}
	return false
}

// Clone creates a deep copy of the stack.
func (s *Stack) Clone() *Stack {
	if s == nil {
		return nil
	}
	clone := &Stack{Name: s.Name}
	if s.Nodes != nil {
		clone.Nodes = make([]*Node, 0, len(s.Nodes))
		for _, node := range s.Nodes {
			clone.Nodes = append(clone.Nodes, node.Clone())
		}
	}
	if s.Edges != nil {
		clone.Edges = make([]*Edge, 0, len(s.Edges))
		for _, edge := range s.Edges {
			clone.Edges = append(clone.Edges, edge.Clone())
		}
	}
	return clone
}
