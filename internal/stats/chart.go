package stats

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html"
	"math"
)

// DefaultPalette colors slices in order
var DefaultPalette = []string{"#8c564b", "#1f77b4", "#2ca02c", "#d62728", "#9467bd", "#7f7f7f"}

// SVGCharter draws pie charts as base64 SVG data URIs
type SVGCharter struct {
	Size    int
	Palette []string
}

// NewSVGCharter returns a charter drawing size x size pies
func NewSVGCharter(size int) *SVGCharter {
	if size <= 0 {
		size = 240
	}
	return &SVGCharter{Size: size, Palette: DefaultPalette}
}

// Render draws slices with a legend and returns a data:image/svg+xml URI
func (c *SVGCharter) Render(title string, slices []Slice) (string, error) {
	total := 0
	for _, s := range slices {
		if s.Count < 0 {
			return "", fmt.Errorf("negative count for %q", s.Label)
		}
		total += s.Count
	}

	r := float64(c.Size) / 2
	legendHeight := 18 * len(slices)
	height := c.Size + 30 + legendHeight

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		c.Size, height, c.Size, height)
	fmt.Fprintf(&buf, `<text x="%g" y="18" text-anchor="middle" font-family="sans-serif" font-size="14">%s</text>`,
		r, html.EscapeString(title))
	fmt.Fprintf(&buf, `<g transform="translate(0,26)">`)

	if total == 0 {
		fmt.Fprintf(&buf, `<circle cx="%g" cy="%g" r="%g" fill="#dddddd"/>`, r, r, r)
	}

	angle := -math.Pi / 2
	for i, s := range slices {
		if s.Count == 0 || total == 0 {
			continue
		}
		color := c.color(i)
		if s.Count == total {
			fmt.Fprintf(&buf, `<circle cx="%g" cy="%g" r="%g" fill="%s"/>`, r, r, r, color)
			continue
		}
		sweep := 2 * math.Pi * float64(s.Count) / float64(total)
		x1, y1 := r+r*math.Cos(angle), r+r*math.Sin(angle)
		angle += sweep
		x2, y2 := r+r*math.Cos(angle), r+r*math.Sin(angle)
		large := 0
		if sweep > math.Pi {
			large = 1
		}
		fmt.Fprintf(&buf, `<path d="M%g,%g L%.3f,%.3f A%g,%g 0 %d 1 %.3f,%.3f Z" fill="%s"/>`,
			r, r, x1, y1, r, r, large, x2, y2, color)
	}
	buf.WriteString(`</g>`)

	for i, s := range slices {
		y := c.Size + 34 + 18*i
		fmt.Fprintf(&buf, `<rect x="4" y="%d" width="12" height="12" fill="%s"/>`, y, c.color(i))
		fmt.Fprintf(&buf, `<text x="22" y="%d" font-family="sans-serif" font-size="12">%s %.1f%%</text>`,
			y+11, html.EscapeString(s.Label), s.Percent)
	}
	buf.WriteString(`</svg>`)

	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func (c *SVGCharter) color(i int) string {
	palette := c.Palette
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	return palette[i%len(palette)]
}
