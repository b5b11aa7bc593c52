// Package editor owns the mutable node and edge set of one stack under
// construction. All mutations are synchronous commands issued by a single
// presentation layer; the service serialises them with a mutex so that a
// snapshot never observes a half-applied operation.
package editor

import (
	"fmt"
	"sync"

	"github.com/stackforge/genstack/internal/idgen"
	"github.com/stackforge/genstack/model"
	"github.com/stackforge/genstack/model/kind"
)

// Edge decoration applied on connect, matching the canvas rendering.
const (
	edgeStroke      = "#4CAF50"
	edgeStrokeWidth = 2
	edgeMarkerType  = "arrowclosed"
)

// Mutation describes one applied editor command; listeners receive it after
// the command has been committed.
type Mutation struct {
	Op     string
	NodeID string
	EdgeID string
}

// Mutation operations.
const (
	OpAddNode    = "addNode"
	OpMoveNode   = "moveNode"
	OpConnect    = "connect"
	OpConfigure  = "configure"
	OpRemoveNode = "removeNode"
)

// Listener is invoked after every committed mutation. Listeners are called
// outside the service mutex and MUST NOT mutate the editor re-entrantly
// from the callback.
type Listener func(mutation Mutation)

// Service owns all nodes and edges of one stack. It is the single source of
// truth: collaborators hold node identifiers, never copies of node data.
type Service struct {
	mu        sync.RWMutex
	name      string
	nodes     []*model.Node
	edges     []*model.Edge
	index     map[string]*model.Node
	listeners []Listener
}

// New creates an empty editor for a stack with the given name.
func New(name string) *Service {
	return &Service{
		name:  name,
		index: make(map[string]*model.Node),
	}
}

// RegisterListeners attaches callbacks invoked after every mutation.
func (s *Service) RegisterListeners(fn ...Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn...)
}

// AddNode places a new node of the supplied kind at the given canvas
// position and returns its identifier. The node's configuration is
// initialised from the kind's defaults so that every key is present from the
// start, even when values are empty.
func (s *Service) AddNode(aKind kind.Kind, position model.Position) (string, error) {
	descriptor, err := kind.Describe(aKind)
	if err != nil {
		return "", err
	}
	config, _ := kind.DefaultConfig(aKind)
	node := &model.Node{
		ID:       fmt.Sprintf("%s-%s", aKind, idgen.New()),
		Type:     aKind,
		Position: position,
		Data: model.NodeData{
			Label:  descriptor.Label,
			Config: config,
		},
	}
	s.mu.Lock()
	s.nodes = append(s.nodes, node)
	s.index[node.ID] = node
	s.mu.Unlock()
	s.notify(Mutation{Op: OpAddNode, NodeID: node.ID})
	return node.ID, nil
}

// MoveNode updates a node's canvas position. Positions are never validated
// against canvas bounds.
func (s *Service) MoveNode(id string, position model.Position) error {
	s.mu.Lock()
	node, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	node.Position = position
	s.mu.Unlock()
	s.notify(Mutation{Op: OpMoveNode, NodeID: id})
	return nil
}

// Connect appends a directed edge between two existing nodes and returns the
// edge identifier. Connecting the same pair twice yields two edges; only
// self-loops and connections violating a kind's capabilities are rejected.
func (s *Service) Connect(sourceID, targetID string) (string, error) {
	s.mu.Lock()
	source, ok := s.index[sourceID]
	if !ok {
		s.mu.Unlock()
		return "", fmt.Errorf("%w: %s", ErrNodeNotFound, sourceID)
	}
	target, ok := s.index[targetID]
	if !ok {
		s.mu.Unlock()
		return "", fmt.Errorf("%w: %s", ErrNodeNotFound, targetID)
	}
	if sourceID == targetID {
		s.mu.Unlock()
		return "", fmt.Errorf("%w: self loop on %s", ErrInvalidEndpoints, sourceID)
	}
	sourceDescriptor, _ := kind.Describe(source.Type)
	targetDescriptor, _ := kind.Describe(target.Type)
	if !sourceDescriptor.ProducesOutgoing {
		s.mu.Unlock()
		return "", fmt.Errorf("%w: %s does not produce outgoing edges", ErrInvalidEndpoints, source.Type)
	}
	if !targetDescriptor.AcceptsIncoming {
		s.mu.Unlock()
		return "", fmt.Errorf("%w: %s does not accept incoming edges", ErrInvalidEndpoints, target.Type)
	}
	edge := &model.Edge{
		ID:       "edge-" + idgen.New(),
		Source:   sourceID,
		Target:   targetID,
		Animated: true,
		Style:    &model.EdgeStyle{Stroke: edgeStroke, StrokeWidth: edgeStrokeWidth},
		MarkerEnd: &model.Marker{
			Type:  edgeMarkerType,
			Color: edgeStroke,
		},
	}
	s.edges = append(s.edges, edge)
	s.mu.Unlock()
	s.notify(Mutation{Op: OpConnect, EdgeID: edge.ID})
	return edge.ID, nil
}

// Configure merges a single key/value pair into a node's configuration bag.
// Keys outside the kind's known schema are stored as-is; schema enforcement
// belongs to the configuration window rendering layer, not the store.
func (s *Service) Configure(id string, key string, value interface{}) error {
	s.mu.Lock()
	node, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	if node.Data.Config == nil {
		node.Data.Config = make(map[string]interface{})
	}
	node.Data.Config[key] = value
	s.mu.Unlock()
	s.notify(Mutation{Op: OpConfigure, NodeID: id})
	return nil
}

// Config returns a copy of a node's configuration bag.
func (s *Service) Config(id string) (map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	node, ok := s.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	config := make(map[string]interface{}, len(node.Data.Config))
	for k, v := range node.Data.Config {
		config[k] = v
	}
	return config, nil
}

// Node returns a copy of the node with the supplied id.
func (s *Service) Node(id string) (*model.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	node, ok := s.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return node.Clone(), nil
}

// RemoveNode removes a node and cascades removal of every edge referencing
// it as source or target.
func (s *Service) RemoveNode(id string) error {
	s.mu.Lock()
	if _, ok := s.index[id]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	delete(s.index, id)
	nodes := s.nodes[:0]
	for _, node := range s.nodes {
		if node.ID != id {
			nodes = append(nodes, node)
		}
	}
	s.nodes = nodes
	edges := s.edges[:0]
	for _, edge := range s.edges {
		if edge.Source != id && edge.Target != id {
			edges = append(edges, edge)
		}
	}
	s.edges = edges
	s.mu.Unlock()
	s.notify(Mutation{Op: OpRemoveNode, NodeID: id})
	return nil
}

// Snapshot returns a deep copy of the stack in insertion order. Repeated
// calls with no intervening mutation yield identical snapshots.
func (s *Service) Snapshot() *model.Stack {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stack := &model.Stack{
		Name:  s.name,
		Nodes: make([]*model.Node, 0, len(s.nodes)),
		Edges: make([]*model.Edge, 0, len(s.edges)),
	}
	for _, node := range s.nodes {
		stack.Nodes = append(stack.Nodes, node.Clone())
	}
	for _, edge := range s.edges {
		stack.Edges = append(stack.Edges, edge.Clone())
	}
	return stack
}

func (s *Service) notify(mutation Mutation) {
	s.mu.RLock()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.RUnlock()
	for _, fn := range listeners {
		fn(mutation)
	}
}
