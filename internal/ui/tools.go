package ui

import (
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"PaintBoard/internal/state"
)

// ToolPanel is the "Tools" column: tool buttons, the three option lists and
// Clear Canvas.
type ToolPanel struct {
	sel *state.Selection
	log zerolog.Logger

	pen     *widget.Button
	eraser  *widget.Button
	size    *widget.Select
	color   *widget.Select
	penType *widget.Select
	clear   *widget.Button
	swatch  *canvas.Rectangle

	content fyne.CanvasObject
}

// NewToolPanel builds the panel with its controls showing sel.
func NewToolPanel(sel *state.Selection, actions *Actions, log zerolog.Logger) *ToolPanel {
	t := &ToolPanel{sel: sel, log: log}

	t.pen = widget.NewButtonWithIcon("Pen", theme.DocumentCreateIcon(), t.selectPen)
	t.eraser = widget.NewButtonWithIcon("Eraser", theme.ContentClearIcon(), t.selectEraser)

	sizes := make([]string, len(state.BrushSizes))
	for i, s := range state.BrushSizes {
		sizes[i] = strconv.Itoa(s)
	}
	t.size = widget.NewSelect(sizes, func(v string) {
		n, err := strconv.Atoi(v)
		if err == nil {
			err = sel.SetSize(n)
		}
		t.report(err, "size", v)
	})

	t.color = widget.NewSelect(state.Colors, func(v string) {
		t.report(sel.SetColor(v), "color", v)
		t.refreshSwatch()
	})

	pens := make([]string, len(state.PenTypes))
	for i, p := range state.PenTypes {
		pens[i] = string(p)
	}
	t.penType = widget.NewSelect(pens, func(v string) {
		t.report(sel.SetPenType(state.PenType(v)), "pen type", v)
	})

	t.size.SetSelected(strconv.Itoa(sel.Size()))
	t.color.SetSelected(sel.Ink())
	t.penType.SetSelected(string(sel.PenType()))

	t.clear = widget.NewButtonWithIcon("Clear Canvas", theme.DeleteIcon(), actions.ClearCanvas)

	t.swatch = canvas.NewRectangle(color.Transparent)
	t.swatch.SetMinSize(fyne.NewSize(24, 24))
	t.swatch.StrokeColor = color.Gray{Y: 150}
	t.swatch.StrokeWidth = 1
	t.refreshSwatch()

	t.content = widget.NewCard("Tools", "", container.NewVBox(
		t.pen,
		t.eraser,
		widget.NewLabel("Brush Size:"),
		t.size,
		widget.NewLabel("Color:"),
		container.NewBorder(nil, nil, nil, t.swatch, t.color),
		widget.NewLabel("Pen Type:"),
		t.penType,
		widget.NewSeparator(),
		t.clear,
	))
	t.refreshTool()
	return t
}

func (t *ToolPanel) Object() fyne.CanvasObject { return t.content }

func (t *ToolPanel) selectPen() {
	t.sel.SelectPen()
	t.refreshTool()
	t.refreshSwatch()
}

func (t *ToolPanel) selectEraser() {
	t.sel.SelectEraser()
	t.refreshTool()
	t.refreshSwatch()
}

// refreshTool highlights the active tool button.
func (t *ToolPanel) refreshTool() {
	t.pen.Importance = widget.MediumImportance
	t.eraser.Importance = widget.MediumImportance
	if t.sel.Tool() == state.ToolEraser {
		t.eraser.Importance = widget.HighImportance
	} else {
		t.pen.Importance = widget.HighImportance
	}
	t.pen.Refresh()
	t.eraser.Refresh()
}

// refreshSwatch shows the color the next stroke will actually use.
func (t *ToolPanel) refreshSwatch() {
	if t.swatch == nil {
		return
	}
	t.swatch.FillColor = state.RGBA(t.sel.Color())
	t.swatch.Refresh()
}

func (t *ToolPanel) report(err error, option, value string) {
	if err != nil {
		t.log.Warn().Err(err).Str("option", option).Msg("selection rejected")
		return
	}
	t.log.Debug().Str("option", option).Str("value", value).Msg("selection changed")
}
