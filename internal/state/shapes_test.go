package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeForPenTypes(t *testing.T) {
	prev, cur := Point{10, 10}, Point{20, 30}

	tests := []struct {
		pen    PenType
		kind   ShapeKind
		points []Point
		fill   bool
		width  float32
	}{
		{PenLine, ShapeLine, []Point{prev, cur}, false, 4},
		{PenRound, ShapeOval, []Point{{16, 26}, {24, 34}}, true, 0},
		{PenSquare, ShapeRect, []Point{{16, 26}, {24, 34}}, true, 0},
		{PenArrow, ShapeArrow, []Point{prev, cur}, false, 4},
		{PenDiamond, ShapePolygon, []Point{{20, 26}, {24, 30}, {20, 34}, {16, 30}}, true, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.pen), func(t *testing.T) {
			sel := DefaultSelection()
			require.NoError(t, sel.SetSize(4))
			require.NoError(t, sel.SetColor("orange"))
			require.NoError(t, sel.SetPenType(tt.pen))

			s := ShapeFor(sel, prev, cur)

			assert.Equal(t, tt.kind, s.Kind)
			assert.Equal(t, tt.points, s.Points)
			assert.Equal(t, tt.fill, s.Fill)
			assert.Equal(t, tt.width, s.Width)
			assert.Equal(t, "orange", s.Color)
		})
	}
}

func TestArrowHeadPointsAlongLine(t *testing.T) {
	head := ArrowHead(Point{0, 0}, Point{100, 0}, 2)

	assert.Equal(t, Point{100, 0}, head[0])
	assert.InDelta(t, 88, head[1].X, 0.001)
	assert.InDelta(t, 88, head[2].X, 0.001)
	assert.InDelta(t, 4, head[1].Y, 0.001)
	assert.InDelta(t, -4, head[2].Y, 0.001)
}

func TestArrowHeadZeroLength(t *testing.T) {
	head := ArrowHead(Point{5, 5}, Point{5, 5}, 2)
	assert.Equal(t, Point{5, 5}, head[0])
	assert.NotEqual(t, head[1], head[2])
}

func TestInPolygon(t *testing.T) {
	diamond := []Point{{10, 0}, {20, 10}, {10, 20}, {0, 10}}

	assert.True(t, InPolygon(Point{10, 10}, diamond))
	assert.True(t, InPolygon(Point{14, 10}, diamond))
	assert.False(t, InPolygon(Point{1, 1}, diamond))
	assert.False(t, InPolygon(Point{19, 19}, diamond))
}

func TestShapeBounds(t *testing.T) {
	line := Shape{Kind: ShapeLine, Points: []Point{{10, 10}, {20, 40}}, Width: 4}
	assert.Equal(t, Rect{X: 8, Y: 8, Width: 14, Height: 34}, line.Bounds())

	arrow := Shape{Kind: ShapeArrow, Points: []Point{{0, 0}, {100, 0}}, Width: 2}
	b := arrow.Bounds()
	assert.InDelta(t, -5, b.Y, 0.001)
	assert.InDelta(t, 10, b.Height, 0.001)
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 5, Y: -5, Width: 20, Height: 5}

	assert.Equal(t, Rect{X: 0, Y: -5, Width: 25, Height: 15}, a.Union(b))
	assert.Equal(t, a, Rect{}.Union(a))
	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(Rect{X: 50, Y: 50, Width: 1, Height: 1}))
	assert.True(t, a.Contains(Point{10, 10}))
}
