// Package window tracks the floating configuration windows of a stack
// editor: which nodes have one open, where each window sits on screen and
// their front-to-back stacking order.
package window

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/stackforge/genstack/model"
	"github.com/stackforge/genstack/service/editor"
)

// A freshly opened window is offset from its node's canvas position so it
// does not cover the node it configures.
const (
	openOffsetX = 200
	openOffsetY = -20
)

// initialZOrder matches the stacking base the canvas renders windows above.
const initialZOrder = 1000

var (
	// ErrWindowNotFound is returned when no window is open for the node.
	ErrWindowNotFound = errors.New("window: not found")

	// ErrNotDragging is returned when Drag is called without an active drag
	// gesture on the window.
	ErrNotDragging = errors.New("window: no active drag")
)

// Region identifies where inside a window a pointer-down landed.
type Region int

const (
	// RegionBody is the form area of the window.
	RegionBody Region = iota
	// RegionHeader is the draggable title bar.
	RegionHeader
	// RegionClose is the close control inside the header.
	RegionClose
)

// Window is the ephemeral state of one open configuration window. Higher
// ZOrder means more recently raised, rendered on top.
type Window struct {
	NodeID   string
	Position model.Position
	ZOrder   int
}

// Service manages all open configuration windows of one editing surface.
// The zOrder counter is owned by the instance, not the package, so that
// independent editing sessions never interfere.
type Service struct {
	mu       sync.RWMutex
	editor   *editor.Service
	windows  map[string]*Window
	dragging map[string]bool
	nextZ    int
}

// New creates a window manager bound to the supplied editor.
func New(editorService *editor.Service) *Service {
	return &Service{
		editor:   editorService,
		windows:  make(map[string]*Window),
		dragging: make(map[string]bool),
		nextZ:    initialZOrder,
	}
}

// Open creates a window for the node, or raises the existing one. A new
// window opens next to the node's canvas position; raising only bumps the
// zOrder, the screen position stays where the user left it. The counter
// advances on every call so no two windows ever tie.
func (s *Service) Open(nodeID string) error {
	node, err := s.editor.Node(nodeID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.windows[nodeID]; ok {
		existing.ZOrder = s.nextZ
		s.nextZ++
		return nil
	}
	s.windows[nodeID] = &Window{
		NodeID: nodeID,
		Position: model.Position{
			X: node.Position.X + openOffsetX,
			Y: node.Position.Y + openOffsetY,
		},
		ZOrder: s.nextZ,
	}
	s.nextZ++
	return nil
}

// Close removes the window for the node. Closing a window that is not open
// is not an error.
func (s *Service) Close(nodeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.windows, nodeID)
	delete(s.dragging, nodeID)
}

// BeginDrag starts a drag gesture for the node's window. Only a pointer-down
// on the header region starts a drag; the close control and the body do not.
func (s *Service) BeginDrag(nodeID string, region Region) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.windows[nodeID]; !ok {
		return fmt.Errorf("%w: %s", ErrWindowNotFound, nodeID)
	}
	if region != RegionHeader {
		return nil
	}
	s.dragging[nodeID] = true
	return nil
}

// Drag moves the window by the pointer delta. It is only legal while a drag
// gesture begun by BeginDrag is active; other open windows are unaffected.
func (s *Service) Drag(nodeID string, deltaX, deltaY float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	aWindow, ok := s.windows[nodeID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrWindowNotFound, nodeID)
	}
	if !s.dragging[nodeID] {
		return fmt.Errorf("%w: %s", ErrNotDragging, nodeID)
	}
	aWindow.Position.X += deltaX
	aWindow.Position.Y += deltaY
	return nil
}

// EndDrag finishes the drag gesture for the node's window, if any.
func (s *Service) EndDrag(nodeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.dragging, nodeID)
}

// Config returns the configuration displayed by the window. Window state
// never caches node data; every read goes back through the editor so the
// view cannot drift from the source of truth.
func (s *Service) Config(nodeID string) (map[string]interface{}, error) {
	s.mu.RLock()
	_, ok := s.windows[nodeID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWindowNotFound, nodeID)
	}
	return s.editor.Config(nodeID)
}

// List returns copies of all open windows sorted back-to-front (ascending
// zOrder) for rendering. Listing never advances the zOrder counter.
func (s *Service) List() []*Window {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*Window, 0, len(s.windows))
	for _, aWindow := range s.windows {
		clone := *aWindow
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ZOrder < result[j].ZOrder
	})
	return result
}
