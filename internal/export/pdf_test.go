package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PaintBoard/internal/state"
)

func everyShape() []state.Shape {
	sel := state.DefaultSelection()
	var shapes []state.Shape
	for _, pen := range state.PenTypes {
		_ = sel.SetPenType(pen)
		shapes = append(shapes, state.ShapeFor(sel, state.Point{X: 10, Y: 10}, state.Point{X: 40, Y: 60}))
	}
	sel.SelectEraser()
	shapes = append(shapes, state.ShapeFor(sel, state.Point{X: 0, Y: 0}, state.Point{X: 30, Y: 30}))
	return shapes
}

func TestExportPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.pdf")

	require.NoError(t, ExportPDF(path, everyShape(), 500, 300))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, len(data) > 100)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestExportEmptyCanvas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	require.NoError(t, ExportPDF(path, nil, 500, 300))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestExportShapesOutsideCanvas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.pdf")
	shapes := []state.Shape{
		{Kind: state.ShapeRect, Points: []state.Point{{X: -50, Y: -50}, {X: 900, Y: 20}}, Color: "red", Fill: true},
	}

	assert.NoError(t, ExportPDF(path, shapes, 500, 300))
}

func TestExportUnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "snapshot.pdf")

	err := ExportPDF(path, everyShape(), 500, 300)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "snapshot.pdf")
}
