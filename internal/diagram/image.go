package diagram

import (
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/alexiusacademia/gocross/internal/cross"
)

// ExportMomentDiagram exports the bending moment diagram to an image file.
// The supported formats follow the extension (.png, .svg, .pdf); anything
// else gets ".png" appended. Hogging moments are drawn upward.
func ExportMomentDiagram(data BeamData, filename string) error {
	p := plot.New()
	p.Title.Text = "Bending Moment Diagram"
	p.X.Label.Text = "Position (m)"
	p.Y.Label.Text = "Moment (kN-m, hogging up)"

	const perSpan = 40

	// Moment curve across all spans.
	var curve plotter.XYs
	var offset float64
	for _, m := range data.Members {
		for j := 0; j <= perSpan; j++ {
			x := m.L * float64(j) / float64(perSpan)
			curve = append(curve, plotter.XY{X: offset + x, Y: -MomentAt(m, x)})
		}
		offset += m.L
	}

	momentLine, err := plotter.NewLine(curve)
	if err != nil {
		return err
	}
	momentLine.LineStyle.Width = vg.Points(2)
	momentLine.LineStyle.Color = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	p.Add(momentLine)

	// Beam axis.
	axis, err := plotter.NewLine(plotter.XYs{
		{X: 0, Y: 0},
		{X: data.TotalLength(), Y: 0},
	})
	if err != nil {
		return err
	}
	axis.LineStyle.Width = vg.Points(2)
	axis.LineStyle.Color = color.Black
	p.Add(axis)

	// Support glyphs along the axis. Free outer ends get no glyph.
	var supportPts plotter.XYs
	var run float64
	for i := 0; i <= len(data.Members); i++ {
		outerFree := (i == 0 && data.Left == cross.Free) ||
			(i == len(data.Members) && data.Right == cross.Free)
		if !outerFree {
			supportPts = append(supportPts, plotter.XY{X: run, Y: 0})
		}
		if i < len(data.Members) {
			run += data.Members[i].L
		}
	}
	supports, err := plotter.NewScatter(supportPts)
	if err != nil {
		return err
	}
	supports.GlyphStyle.Color = color.RGBA{R: 178, G: 34, B: 34, A: 255}
	supports.GlyphStyle.Radius = vg.Points(5)
	supports.GlyphStyle.Shape = draw.PyramidGlyph{}
	p.Add(supports)

	width := 10 * vg.Inch
	height := 4 * vg.Inch

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		os.MkdirAll(dir, 0755)
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
