package export

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/squish/internal/scene"
	"github.com/san-kum/squish/internal/sim"
	"github.com/san-kum/squish/internal/viz"
)

var palette = []string{"#ff77ff", "#00ffff", "#88ff44", "#ffcc00", "#ff6b6b"}

func bodyColor(i int) string { return palette[i%len(palette)] }

// frame maps world coordinates inside the scene box onto an SVG viewport.
type frame struct {
	half          r2.Vec
	width, height int
}

func (f frame) xy(p r2.Vec) (float64, float64) {
	x := (p.X + f.half.X) / (2 * f.half.X) * float64(f.width)
	y := (f.half.Y - p.Y) / (2 * f.half.Y) * float64(f.height)
	return x, y
}

func header(sb *strings.Builder, width, height int) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a" stroke="#444466" stroke-width="2"/>
`, width, height, width, height))
}

func writePath(sb *strings.Builder, f frame, pts []r2.Vec, closed bool, attrs string) {
	if len(pts) == 0 {
		return
	}
	sb.WriteString(`<path ` + attrs + ` d="`)
	for i, p := range pts {
		x, y := f.xy(p)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	if closed {
		sb.WriteString(" Z")
	}
	sb.WriteString("\"/>\n")
}

// OutlineSVG draws every body of the scene as a closed spline through its
// border points.
func OutlineSVG(sc *scene.Scene, width, height, samples int) string {
	f := frame{half: sc.HalfExtent, width: width, height: height}

	var sb strings.Builder
	header(&sb, width, height)
	for i, b := range sc.Bodies {
		pts := viz.CatmullRom(b.OutlinePoints(), samples, viz.CentripetalAlpha)
		attrs := fmt.Sprintf(`fill="%s" fill-opacity="0.25" stroke="%s" stroke-width="3"`, bodyColor(i), bodyColor(i))
		writePath(&sb, f, pts, true, attrs)
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// TrajectorySVG draws the centroid path of each body across the frames.
func TrajectorySVG(frames []sim.Frame, halfExtent r2.Vec, width, height int) string {
	if len(frames) < 2 {
		return ""
	}
	f := frame{half: halfExtent, width: width, height: height}

	var sb strings.Builder
	header(&sb, width, height)
	for b := range frames[0].Centroids {
		path := make([]r2.Vec, 0, len(frames))
		for _, fr := range frames {
			if b < len(fr.Centroids) {
				path = append(path, fr.Centroids[b])
			}
		}
		attrs := fmt.Sprintf(`fill="none" stroke="%s" stroke-width="1.5"`, bodyColor(b))
		writePath(&sb, f, path, false, attrs)
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	w, h := canvas.PixelSize()
	width := float64(w) * scale
	height := float64(h) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, width, height, width, height))

	dotRadius := scale * 0.4
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
