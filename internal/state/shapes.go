package state

import "math"

// ShapeFor computes the primitive for one drag step from prev to cur using
// the current selection.
func ShapeFor(sel *Selection, prev, cur Point) Shape {
	size := float32(sel.Size())
	color := sel.Color()

	if sel.Tool() == ToolEraser {
		return Shape{
			Kind:     ShapeLine,
			Points:   []Point{prev, cur},
			Color:    color,
			Width:    size,
			RoundCap: true,
		}
	}

	switch sel.PenType() {
	case PenRound:
		return Shape{
			Kind:   ShapeOval,
			Points: []Point{{cur.X - size, cur.Y - size}, {cur.X + size, cur.Y + size}},
			Color:  color,
			Fill:   true,
		}
	case PenSquare:
		return Shape{
			Kind:   ShapeRect,
			Points: []Point{{cur.X - size, cur.Y - size}, {cur.X + size, cur.Y + size}},
			Color:  color,
			Fill:   true,
		}
	case PenArrow:
		return Shape{
			Kind:   ShapeArrow,
			Points: []Point{prev, cur},
			Color:  color,
			Width:  size,
		}
	case PenDiamond:
		return Shape{
			Kind: ShapePolygon,
			Points: []Point{
				{cur.X, cur.Y - size},
				{cur.X + size, cur.Y},
				{cur.X, cur.Y + size},
				{cur.X - size, cur.Y},
			},
			Color: color,
			Fill:  true,
		}
	default:
		return Shape{
			Kind:   ShapeLine,
			Points: []Point{prev, cur},
			Color:  color,
			Width:  size,
		}
	}
}

// ArrowHead returns the triangle drawn at the end of an arrow shape: the tip
// followed by the two trailing corners.
func ArrowHead(from, to Point, width float32) [3]Point {
	length := 10 + width
	half := 3 + width/2

	dx, dy := to.X-from.X, to.Y-from.Y
	n := float32(math.Hypot(float64(dx), float64(dy)))
	if n == 0 {
		dx, dy, n = 1, 0, 1
	}
	ux, uy := dx/n, dy/n
	bx, by := to.X-ux*length, to.Y-uy*length

	return [3]Point{
		to,
		{bx - uy*half, by + ux*half},
		{bx + uy*half, by - ux*half},
	}
}

// Outline returns the filled outline of a polygon-like shape: the polygon
// vertices, or the head of an arrow. Other kinds have no outline.
func (s Shape) Outline() []Point {
	switch s.Kind {
	case ShapePolygon:
		return s.Points
	case ShapeArrow:
		if len(s.Points) < 2 {
			return nil
		}
		head := ArrowHead(s.Points[0], s.Points[1], s.Width)
		return head[:]
	}
	return nil
}

// InPolygon reports whether p lies inside the polygon using the even-odd rule.
func InPolygon(p Point, poly []Point) bool {
	in := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}
