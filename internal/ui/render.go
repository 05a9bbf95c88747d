package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"PaintBoard/internal/state"
)

// objectsFor converts a shape into the Fyne primitives that draw it.
func objectsFor(s state.Shape) []fyne.CanvasObject {
	c := state.RGBA(s.Color)

	switch s.Kind {
	case state.ShapeLine, state.ShapeArrow:
		if len(s.Points) < 2 {
			return nil
		}
		line := canvas.NewLine(c)
		line.StrokeWidth = s.Width
		line.Position1 = pos(s.Points[0])
		line.Position2 = pos(s.Points[1])
		objs := []fyne.CanvasObject{line}
		if s.RoundCap {
			objs = append(objs, dot(s.Points[0], s.Width, c), dot(s.Points[1], s.Width, c))
		}
		if s.Kind == state.ShapeArrow {
			objs = append(objs, polygon(s.Outline(), c))
		}
		return objs
	case state.ShapeOval:
		r := state.BoundsOf(s.Points, 0)
		circle := canvas.NewCircle(fillColor(s, c))
		circle.StrokeColor = c
		circle.StrokeWidth = 1
		circle.Position1 = fyne.NewPos(r.X, r.Y)
		circle.Position2 = fyne.NewPos(r.Right(), r.Bottom())
		return []fyne.CanvasObject{circle}
	case state.ShapeRect:
		r := state.BoundsOf(s.Points, 0)
		rect := canvas.NewRectangle(fillColor(s, c))
		rect.StrokeColor = c
		rect.StrokeWidth = 1
		rect.Move(fyne.NewPos(r.X, r.Y))
		rect.Resize(fyne.NewSize(r.Width, r.Height))
		return []fyne.CanvasObject{rect}
	case state.ShapePolygon:
		return []fyne.CanvasObject{polygon(s.Points, c)}
	}
	return nil
}

func fillColor(s state.Shape, c color.Color) color.Color {
	if s.Fill {
		return c
	}
	return color.Transparent
}

func pos(p state.Point) fyne.Position { return fyne.NewPos(p.X, p.Y) }

func dot(center state.Point, diameter float32, c color.Color) fyne.CanvasObject {
	r := diameter / 2
	d := canvas.NewCircle(c)
	d.Position1 = fyne.NewPos(center.X-r, center.Y-r)
	d.Position2 = fyne.NewPos(center.X+r, center.Y+r)
	return d
}

// polygon fills pts with a raster sized to their bounding box. Fyne has no
// polygon primitive.
func polygon(pts []state.Point, c color.Color) fyne.CanvasObject {
	r := state.BoundsOf(pts, 0)
	raster := canvas.NewRasterWithPixels(func(x, y, w, h int) color.Color {
		if w == 0 || h == 0 {
			return color.Transparent
		}
		p := state.Point{
			X: r.X + (float32(x)+0.5)*r.Width/float32(w),
			Y: r.Y + (float32(y)+0.5)*r.Height/float32(h),
		}
		if state.InPolygon(p, pts) {
			return c
		}
		return color.Transparent
	})
	raster.Move(fyne.NewPos(r.X, r.Y))
	raster.Resize(fyne.NewSize(r.Width, r.Height))
	return raster
}
