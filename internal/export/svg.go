// Package export writes trails and recorded frames to SVG, GIF and PNG.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/gleam/internal/intro"
	"github.com/san-kum/gleam/internal/render"
	"github.com/san-kum/gleam/internal/sim"
)

// BrailleToSVG draws every lit braille dot as a circle in its cell's color.
func BrailleToSVG(s *render.BrailleSurface, scale float64) string {
	if s == nil {
		return ""
	}
	cols, rows := s.Cells()

	width := float64(cols) * scale * 2
	height := float64(rows) * scale * 4

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#000000"/>
`, width, height, width, height)

	bits := [4][2]rune{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}
	dotRadius := scale * 0.4

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			pattern := s.Rune(col, row) - 0x2800
			if pattern == 0 {
				continue
			}
			fill := s.CellColor(col, row).Hex()

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&bits[dy][dx] == 0 {
						continue
					}
					cx := baseX + float64(dx)*scale + scale/2
					cy := baseY + float64(dy)*scale + scale/2
					fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"/>\n", cx, cy, dotRadius, fill)
				}
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// FrameToSVG renders one frame's rails and vignette as vector graphics in
// logical pixels. Motion-blur history is not representable and is dropped.
func FrameToSVG(f intro.Frame, style render.Style) string {
	w, h := f.Viewport.W, f.Viewport.H
	v := render.VignetteFor(f.Viewport, style.VignetteAlpha)
	color := f.Color.Hex()

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<defs>
<filter id="glow-core"><feGaussianBlur stdDeviation="%.1f"/></filter>
<filter id="glow-wide"><feGaussianBlur stdDeviation="%.1f"/></filter>
<radialGradient id="vignette" gradientUnits="userSpaceOnUse" cx="%.1f" cy="%.1f" r="%.1f" fx="%.1f" fy="%.1f" fr="%.1f">
<stop offset="0" stop-color="#000000" stop-opacity="0"/>
<stop offset="1" stop-color="#000000" stop-opacity="%.2f"/>
</radialGradient>
</defs>
<rect width="100%%" height="100%%" fill="#000000"/>
<g style="mix-blend-mode:screen" fill="none" stroke="%s" stroke-linecap="round" stroke-linejoin="round">
`, w, h, w, h,
		style.Core.Blur/2, style.Glow.Blur/2,
		v.Outer.X, v.Outer.Y, v.R1, v.Inner.X, v.Inner.Y, v.R0, v.Alpha,
		color)

	if len(f.Trail) >= 3 {
		layers := []struct {
			l      render.Layer
			filter string
		}{
			{style.Core, "glow-core"},
			{style.Glow, "glow-wide"},
		}
		for _, layer := range layers {
			for _, side := range []float64{-1, 1} {
				pts := render.RailPath(f.Trail, style.RailGap, side)
				fmt.Fprintf(&sb, `<polyline stroke-width="%.1f" stroke-opacity="%.2f" filter="url(#%s)" points="`,
					layer.l.Width, layer.l.Alpha, layer.filter)
				for i, p := range pts {
					if i > 0 {
						sb.WriteByte(' ')
					}
					fmt.Fprintf(&sb, "%.1f,%.1f", p.X, p.Y)
				}
				sb.WriteString("\"/>\n")
			}
		}
	}

	sb.WriteString("</g>\n<rect width=\"100%\" height=\"100%\" fill=\"url(#vignette)\"/>\n</svg>")
	return sb.String()
}

// PathToSVG plots the head path of a trace in screen coordinates, one
// polyline per run so the restart jump is not drawn.
func PathToSVG(samples []sim.Sample, width, height int, strokeColor string) string {
	if len(samples) < 2 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="none" stroke="%s" stroke-width="1.5">
`, width, height, width, height, strokeColor)

	run := -1
	open := false
	for _, s := range samples {
		if s.Phase == intro.Clear {
			continue
		}
		if s.Run != run {
			if open {
				sb.WriteString("\"/>\n")
			}
			fmt.Fprintf(&sb, `<path data-run="%d" d="M%.1f,%.1f`, s.Run, s.HeadX, s.HeadY)
			run, open = s.Run, true
			continue
		}
		fmt.Fprintf(&sb, " L%.1f,%.1f", s.HeadX, s.HeadY)
	}
	if open {
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
