package diagram

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/gocross/internal/cross"
)

const sketchWidth = 60 // characters across the beam line

// DrawASCIIBeam sketches the beam elevation: the spans to scale, the
// support symbols at each joint, and the span loads and lengths.
func DrawASCIIBeam(data BeamData) string {
	var sb strings.Builder

	total := data.TotalLength()
	if total <= 0 || len(data.Members) == 0 {
		return ""
	}

	// Column position of every support, spans scaled to sketchWidth.
	cols := make([]int, len(data.Members)+1)
	var run float64
	for i, m := range data.Members {
		run += m.L
		cols[i+1] = int(run / total * sketchWidth)
	}

	// Load labels centered over each span.
	loads := make([]rune, sketchWidth+1)
	for i := range loads {
		loads[i] = ' '
	}
	for i, m := range data.Members {
		label := fmt.Sprintf("q=%g", m.Q)
		mid := (cols[i] + cols[i+1] - len(label)) / 2
		if mid < 0 {
			mid = 0
		}
		for j, r := range label {
			if mid+j <= sketchWidth {
				loads[mid+j] = r
			}
		}
	}

	// Beam line with a tick at every support.
	beam := make([]rune, sketchWidth+1)
	for i := range beam {
		beam[i] = '━'
	}
	supports := make([]rune, sketchWidth+1)
	for i := range supports {
		supports[i] = ' '
	}
	for i, c := range cols {
		beam[c] = '┯'
		switch {
		case i == 0 && data.Left == cross.Fixed:
			supports[c] = '▓'
		case i == 0 && data.Left == cross.Free:
			beam[c] = '━'
		case i == len(cols)-1 && data.Right == cross.Fixed:
			supports[c] = '▓'
		case i == len(cols)-1 && data.Right == cross.Free:
			beam[c] = '━'
		default:
			supports[c] = '△'
		}
	}

	sb.WriteString("  " + string(loads) + "\n")
	sb.WriteString("  " + string(beam) + "\n")
	sb.WriteString("  " + string(supports) + "\n")

	// Span lengths.
	var dims strings.Builder
	for i, m := range data.Members {
		width := cols[i+1] - cols[i]
		label := fmt.Sprintf("%g", m.L)
		if width > len(label)+2 {
			pad := width - len(label) - 2
			dims.WriteString("|" + strings.Repeat("-", pad/2) + label + strings.Repeat("-", pad-pad/2) + "-")
		} else {
			dims.WriteString("|" + label)
		}
	}
	dims.WriteString("|")
	sb.WriteString("  " + dims.String() + "\n")

	return sb.String()
}

// DrawASCIIMomentDiagram plots the bending moment curve along the beam.
// The plot is flipped so hogging (negative sagging) moments appear above
// the axis, the usual structural drawing convention.
func DrawASCIIMomentDiagram(data BeamData) string {
	samples := data.SampleMoments(20)
	flipped := make([]float64, len(samples))
	for i, v := range samples {
		flipped[i] = -v
	}

	graph := asciigraph.Plot(flipped,
		asciigraph.Height(12),
		asciigraph.Width(sketchWidth),
		asciigraph.Caption("Bending moment diagram (hogging up, kN-m)"),
	)

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(graph)
	sb.WriteString("\n")
	return sb.String()
}
