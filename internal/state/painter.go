package state

import (
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrNothingToUndo = errors.New("nothing to undo")

// Surface is where shapes are rendered. Scene implements it.
type Surface interface {
	Draw(Shape) Handle
	Erase(Handle)
	EraseAll()
}

// Painter turns pointer gestures into shapes on a Surface and keeps the
// per-stroke undo stack. It is not safe for concurrent use: all calls are
// expected on the UI goroutine.
type Painter struct {
	surface Surface
	sel     *Selection
	clock   *Clock
	log     zerolog.Logger

	undo    []*Stroke
	live    []*Stroke
	remote  map[string]*Stroke
	current *Stroke
	prev    Point

	// OnOp receives every local mutation, already stamped by the clock.
	OnOp func(Op)
}

func NewPainter(surface Surface, sel *Selection, clock *Clock, log zerolog.Logger) *Painter {
	return &Painter{
		surface: surface,
		sel:     sel,
		clock:   clock,
		log:     log,
		remote:  make(map[string]*Stroke),
	}
}

func (p *Painter) Selection() *Selection { return p.sel }

// Drawing reports whether a gesture is in progress.
func (p *Painter) Drawing() bool { return p.current != nil }

func (p *Painter) UndoDepth() int { return len(p.undo) }

// Press starts a new empty stroke at pt. A gesture still in progress is
// released first so its shapes stay undoable.
func (p *Painter) Press(pt Point) {
	p.Release()
	p.current = &Stroke{
		ID:    uuid.NewString(),
		Owner: p.clock.Site(),
		Time:  time.Now(),
	}
	p.prev = pt
}

// Drag draws the shape between the previous pointer position and pt. It does
// nothing unless a stroke was started with Press.
func (p *Painter) Drag(pt Point) {
	if p.current == nil {
		return
	}
	shape := ShapeFor(p.sel, p.prev, pt)
	p.current.Handles = append(p.current.Handles, p.surface.Draw(shape))
	p.current.Shapes = append(p.current.Shapes, shape)
	p.prev = pt
}

// Release ends the gesture. A stroke with at least one primitive is pushed on
// the undo stack; empty strokes are dropped.
func (p *Painter) Release() {
	s := p.current
	p.current = nil
	if s == nil || len(s.Handles) == 0 {
		return
	}
	p.undo = append(p.undo, s)
	p.live = append(p.live, s)
	p.log.Debug().Str("stroke", s.ID).Int("shapes", len(s.Handles)).Msg("stroke committed")
	p.emit(Op{Type: OpStroke, StrokeID: s.ID, Shapes: s.Shapes})
}

// Undo erases every primitive of the most recent local stroke.
func (p *Painter) Undo() error {
	if len(p.undo) == 0 {
		return ErrNothingToUndo
	}
	s := p.undo[len(p.undo)-1]
	p.undo = p.undo[:len(p.undo)-1]
	p.eraseStroke(s)
	p.log.Debug().Str("stroke", s.ID).Int("remaining", len(p.undo)).Msg("stroke undone")
	p.emit(Op{Type: OpUndo, StrokeID: s.ID})
	return nil
}

// Clear erases the whole canvas and empties the undo stack. It cannot be
// undone.
func (p *Painter) Clear() {
	p.reset()
	p.log.Debug().Msg("canvas cleared")
	p.emit(Op{Type: OpClear})
}

// Apply replays an op produced by another site. Ops from the local site are
// ignored. Remote strokes are drawn but never enter the local undo stack.
func (p *Painter) Apply(op Op) {
	if op.Site == p.clock.Site() {
		return
	}
	p.clock.Witness(op.Lamport)

	switch op.Type {
	case OpStroke:
		if _, dup := p.remote[op.StrokeID]; dup {
			return
		}
		s := &Stroke{ID: op.StrokeID, Owner: op.Site, Shapes: op.Shapes, Time: time.Now()}
		for _, shape := range op.Shapes {
			s.Handles = append(s.Handles, p.surface.Draw(shape))
		}
		p.remote[s.ID] = s
		p.live = append(p.live, s)
	case OpUndo:
		s, ok := p.remote[op.StrokeID]
		if !ok {
			return
		}
		delete(p.remote, op.StrokeID)
		p.eraseStroke(s)
	case OpClear:
		p.reset()
	default:
		p.log.Warn().Str("type", string(op.Type)).Str("site", op.Site).Msg("unknown op")
		return
	}
	p.log.Debug().Str("type", string(op.Type)).Str("site", op.Site).Uint64("lamport", op.Lamport).Msg("remote op applied")
}

// Snapshot returns the ops that rebuild the current canvas on an empty one,
// in paint order.
func (p *Painter) Snapshot() []Op {
	ops := make([]Op, 0, len(p.live))
	for _, s := range p.live {
		ops = append(ops, Op{
			Type:     OpStroke,
			StrokeID: s.ID,
			Shapes:   slices.Clone(s.Shapes),
			Lamport:  p.clock.Now(),
			Site:     s.Owner,
		})
	}
	return ops
}

func (p *Painter) eraseStroke(s *Stroke) {
	for _, h := range s.Handles {
		p.surface.Erase(h)
	}
	if i := slices.Index(p.live, s); i >= 0 {
		p.live = slices.Delete(p.live, i, i+1)
	}
}

func (p *Painter) reset() {
	p.surface.EraseAll()
	p.undo = nil
	p.live = nil
	p.remote = make(map[string]*Stroke)
	if p.current != nil {
		p.current.Handles = nil
		p.current.Shapes = nil
	}
}

func (p *Painter) emit(op Op) {
	if p.OnOp == nil {
		return
	}
	p.OnOp(p.clock.Stamp(op))
}
