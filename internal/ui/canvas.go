package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"PaintBoard/internal/state"
)

// CanvasWidget mirrors a Scene as Fyne canvas objects and feeds primary button
// gestures to a Painter.
type CanvasWidget struct {
	widget.BaseWidget
	painter    *state.Painter
	background *canvas.Rectangle
	layer      *fyne.Container
	objects    map[state.Handle][]fyne.CanvasObject
}

var _ fyne.Widget = (*CanvasWidget)(nil)
var _ fyne.Draggable = (*CanvasWidget)(nil)
var _ desktop.Mouseable = (*CanvasWidget)(nil)
var _ desktop.Cursorable = (*CanvasWidget)(nil)

func NewCanvasWidget(scene *state.Scene, painter *state.Painter, size fyne.Size) *CanvasWidget {
	c := &CanvasWidget{
		painter:    painter,
		background: canvas.NewRectangle(state.RGBA(state.Background)),
		layer:      container.NewWithoutLayout(),
		objects:    make(map[state.Handle][]fyne.CanvasObject),
	}
	c.background.SetMinSize(size)
	c.ExtendBaseWidget(c)

	scene.Each(func(h state.Handle, shape state.Shape) {
		objs := objectsFor(shape)
		c.objects[h] = objs
		c.layer.Objects = append(c.layer.Objects, objs...)
	})
	scene.Subscribe(c.apply)
	return c
}

// ObjectCount is the number of Fyne primitives currently on the canvas.
func (c *CanvasWidget) ObjectCount() int { return len(c.layer.Objects) }

func (c *CanvasWidget) apply(ch state.Change) {
	switch ch.Kind {
	case state.Added:
		objs := objectsFor(ch.Shape)
		c.objects[ch.Handle] = objs
		for _, o := range objs {
			c.layer.Add(o)
		}
	case state.Removed:
		for _, o := range c.objects[ch.Handle] {
			c.layer.Remove(o)
		}
		delete(c.objects, ch.Handle)
	case state.Cleared:
		c.layer.RemoveAll()
		c.objects = make(map[state.Handle][]fyne.CanvasObject)
	}
	c.layer.Refresh()
}

func (c *CanvasWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		c.painter.Press(point(e.Position))
	}
}

func (c *CanvasWidget) Dragged(e *fyne.DragEvent) {
	c.painter.Drag(point(e.Position))
}

func (c *CanvasWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		c.painter.Release()
	}
}

// DragEnd can arrive without MouseUp when the pointer leaves the window.
func (c *CanvasWidget) DragEnd() {
	c.painter.Release()
}

func (c *CanvasWidget) Cursor() desktop.Cursor { return desktop.CrosshairCursor }

func (c *CanvasWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(c.background, c.layer))
}

func point(p fyne.Position) state.Point { return state.Point{X: p.X, Y: p.Y} }
