// Package export renders a generated layout as a standalone SVG document,
// for inspecting compositions without opening a window.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/kyra-dean/rosette/internal/layout"
	"github.com/kyra-dean/rosette/internal/particle"
)

// palette assigns each color group a stroke color. Groups beyond the palette
// wrap around.
var palette = []string{"#e8c547", "#4fb0c6", "#c94f6d", "#7bb661", "#9b6bc9", "#d98e4a"}

func groupColor(group int) string {
	return palette[((group%len(palette))+len(palette))%len(palette)]
}

// LayoutToSVG draws every connector and wheel of a layout onto a width x
// height canvas. Wheels are rendered as the full motif: rim, spokes on the
// inner ring, and dots on the outer ring.
func LayoutToSVG(wheels []layout.Wheel, conns []layout.Connector, width, height float64) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	// Connectors first so wheels draw over them.
	for _, c := range conns {
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1" stroke-opacity="0.35"/>
`, c.From.X, c.From.Y, c.To.X, c.To.Y, groupColor(c.ColorGroup)))
	}

	for _, w := range wheels {
		color := groupColor(w.ColorGroup)
		cx, cy, r := w.Center.X, w.Center.Y, w.BaseRadius

		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-width="2"/>
`, cx, cy, r, color))

		for i := 0; i < particle.SpokesPerWheel; i++ {
			angle := 2 * math.Pi * float64(i) / particle.SpokesPerWheel
			x1 := cx + math.Cos(angle)*r*0.25
			y1 := cy + math.Sin(angle)*r*0.25
			x2 := cx + math.Cos(angle)*r*0.78
			y2 := cy + math.Sin(angle)*r*0.78
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>
`, x1, y1, x2, y2, color))
		}

		for i := 0; i < particle.DotsPerWheel; i++ {
			angle := 2 * math.Pi * float64(i) / particle.DotsPerWheel
			x := cx + math.Cos(angle)*r*0.88
			y := cy + math.Sin(angle)*r*0.88
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="1.6" fill="%s"/>
`, x, y, color))
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}
