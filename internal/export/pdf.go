package export

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"PaintBoard/internal/state"
)

// ExportPDF writes the shapes as a single page vector PDF. The page covers
// the canvas and grows to fit drawings that extend past it. Units are points,
// one per canvas unit.
func ExportPDF(path string, shapes []state.Shape, width, height float32) error {
	area := state.Rect{Width: width, Height: height}
	for _, s := range shapes {
		area = area.Union(s.Bounds())
	}

	p := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: float64(area.Width), Ht: float64(area.Height)},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()

	// Shift so that shapes drawn at negative coordinates stay on the page.
	dx, dy := -float64(area.X), -float64(area.Y)

	setFill(p, state.Background)
	p.Rect(0, 0, float64(area.Width), float64(area.Height), "F")

	for _, s := range shapes {
		drawShape(p, s, dx, dy)
	}

	if err := p.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}

func drawShape(p *gofpdf.Fpdf, s state.Shape, dx, dy float64) {
	setDraw(p, s.Color)
	setFill(p, s.Color)

	switch s.Kind {
	case state.ShapeLine, state.ShapeArrow:
		if len(s.Points) < 2 {
			return
		}
		if s.RoundCap {
			p.SetLineCapStyle("round")
		} else {
			p.SetLineCapStyle("butt")
		}
		p.SetLineWidth(float64(s.Width))
		a, b := s.Points[0], s.Points[1]
		p.Line(float64(a.X)+dx, float64(a.Y)+dy, float64(b.X)+dx, float64(b.Y)+dy)
		if s.Kind == state.ShapeArrow {
			polygon(p, s.Outline(), dx, dy)
		}
	case state.ShapeOval:
		r := state.BoundsOf(s.Points, 0)
		rx, ry := float64(r.Width)/2, float64(r.Height)/2
		p.Ellipse(float64(r.X)+dx+rx, float64(r.Y)+dy+ry, rx, ry, 0, style(s))
	case state.ShapeRect:
		r := state.BoundsOf(s.Points, 0)
		p.Rect(float64(r.X)+dx, float64(r.Y)+dy, float64(r.Width), float64(r.Height), style(s))
	case state.ShapePolygon:
		polygon(p, s.Points, dx, dy)
	}
}

func polygon(p *gofpdf.Fpdf, pts []state.Point, dx, dy float64) {
	if len(pts) < 3 {
		return
	}
	out := make([]gofpdf.PointType, 0, len(pts))
	for _, pt := range pts {
		out = append(out, gofpdf.PointType{X: float64(pt.X) + dx, Y: float64(pt.Y) + dy})
	}
	p.Polygon(out, "F")
}

func style(s state.Shape) string {
	if s.Fill {
		return "F"
	}
	return "D"
}

func setDraw(p *gofpdf.Fpdf, name string) {
	r, g, b := rgb(name)
	p.SetDrawColor(r, g, b)
}

func setFill(p *gofpdf.Fpdf, name string) {
	r, g, b := rgb(name)
	p.SetFillColor(r, g, b)
}

func rgb(name string) (int, int, int) {
	c := state.RGBA(name)
	return int(c.R), int(c.G), int(c.B)
}
