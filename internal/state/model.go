package state

import (
	"time"
)

type Point struct{ X, Y float32 }

type ShapeKind string

const (
	ShapeLine    ShapeKind = "line"
	ShapeArrow   ShapeKind = "arrow"
	ShapeOval    ShapeKind = "oval"
	ShapeRect    ShapeKind = "rect"
	ShapePolygon ShapeKind = "polygon"
)

// Shape is a single rendered primitive. Lines and arrows use Points[0] and
// Points[1] as endpoints, ovals and rects use them as opposite corners of the
// bounding box, polygons list every vertex.
type Shape struct {
	Kind     ShapeKind `json:"kind"`
	Points   []Point   `json:"points"`
	Color    string    `json:"color"`
	Width    float32   `json:"width,omitempty"`
	Fill     bool      `json:"fill,omitempty"`
	RoundCap bool      `json:"round_cap,omitempty"`
}

// Handle identifies a shape drawn on a Scene.
type Handle uint64

// Stroke is everything drawn during one press-drag-release gesture.
type Stroke struct {
	ID      string
	Owner   string
	Handles []Handle
	Shapes  []Shape
	Time    time.Time
}

type OpType string

const (
	OpStroke OpType = "stroke"
	OpUndo   OpType = "undo"
	OpClear  OpType = "clear"
)

// Op is a canvas mutation exchanged with other sites in a shared session.
type Op struct {
	Type     OpType  `json:"type"`
	StrokeID string  `json:"stroke_id,omitempty"`
	Shapes   []Shape `json:"shapes,omitempty"`
	Lamport  uint64  `json:"lamport"`
	Site     string  `json:"site"`
}
