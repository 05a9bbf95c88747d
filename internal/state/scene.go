package state

import (
	"slices"
	"sync"
)

type ChangeKind int

const (
	Added ChangeKind = iota
	Removed
	Cleared
)

// Change describes one mutation of a Scene. Shape is only set for Added.
type Change struct {
	Kind   ChangeKind
	Handle Handle
	Shape  Shape
}

// Scene is the canvas model: the shapes currently drawn, in paint order.
type Scene struct {
	mu        sync.RWMutex
	next      Handle
	order     []Handle
	shapes    map[Handle]Shape
	listeners []func(Change)
}

func NewScene() *Scene {
	return &Scene{shapes: make(map[Handle]Shape)}
}

// Subscribe registers fn to be called after every change. Listeners run on
// the goroutine that mutated the scene.
func (s *Scene) Subscribe(fn func(Change)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Scene) Draw(shape Shape) Handle {
	s.mu.Lock()
	s.next++
	h := s.next
	s.order = append(s.order, h)
	s.shapes[h] = shape
	s.mu.Unlock()

	s.notify(Change{Kind: Added, Handle: h, Shape: shape})
	return h
}

// Erase removes a shape. Unknown handles are ignored.
func (s *Scene) Erase(h Handle) {
	s.mu.Lock()
	if _, ok := s.shapes[h]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.shapes, h)
	if i := slices.Index(s.order, h); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	s.mu.Unlock()

	s.notify(Change{Kind: Removed, Handle: h})
}

func (s *Scene) EraseAll() {
	s.mu.Lock()
	s.order = nil
	s.shapes = make(map[Handle]Shape)
	s.mu.Unlock()

	s.notify(Change{Kind: Cleared})
}

func (s *Scene) Has(h Handle) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.shapes[h]
	return ok
}

func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Shapes returns a copy of the drawn shapes in paint order.
func (s *Scene) Shapes() []Shape {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Shape, 0, len(s.order))
	for _, h := range s.order {
		out = append(out, s.shapes[h])
	}
	return out
}

// Each calls fn for every drawn shape in paint order. fn must not mutate the
// scene.
func (s *Scene) Each(fn func(Handle, Shape)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.order {
		fn(h, s.shapes[h])
	}
}

// Bounds covers every drawn shape.
func (s *Scene) Bounds() Rect {
	var r Rect
	for _, shape := range s.Shapes() {
		r = r.Union(shape.Bounds())
	}
	return r
}

func (s *Scene) notify(c Change) {
	s.mu.RLock()
	listeners := slices.Clone(s.listeners)
	s.mu.RUnlock()
	for _, fn := range listeners {
		fn(c)
	}
}
