package state

// Rect is an axis aligned area on the canvas.
type Rect struct {
	X      float32
	Y      float32
	Width  float32
	Height float32
}

func (r Rect) Empty() bool { return r.Width <= 0 && r.Height <= 0 }

func (r Rect) Right() float32  { return r.X + r.Width }
func (r Rect) Bottom() float32 { return r.Y + r.Height }

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() &&
		p.Y >= r.Y && p.Y <= r.Bottom()
}

func (r Rect) Overlaps(o Rect) bool {
	return !(r.Right() < o.X || o.Right() < r.X ||
		r.Bottom() < o.Y || o.Bottom() < r.Y)
}

// Union returns the smallest rect covering both. An empty rect is ignored.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	minX := min(r.X, o.X)
	minY := min(r.Y, o.Y)
	maxX := max(r.Right(), o.Right())
	maxY := max(r.Bottom(), o.Bottom())
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// BoundsOf returns the bounding box of points padded on every side.
func BoundsOf(points []Point, padding float32) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := points[0].X, points[0].Y
	for _, p := range points[1:] {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	return Rect{
		X:      minX - padding,
		Y:      minY - padding,
		Width:  maxX - minX + 2*padding,
		Height: maxY - minY + 2*padding,
	}
}

// Bounds covers everything the shape paints, including line width and the
// arrow head.
func (s Shape) Bounds() Rect {
	pts := s.Points
	if s.Kind == ShapeArrow {
		pts = append(append([]Point{}, s.Points...), s.Outline()...)
	}
	return BoundsOf(pts, s.Width/2)
}
