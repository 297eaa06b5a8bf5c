// Package render is the terminal preview viewer: an external collaborator
// that blits a rendered Canvas to a terminal screen using half-block
// cells, entirely outside the rasterization core. It never appears on
// the path from Configuration to a finished Canvas — pkg/scene is what
// drives pkg/canvas and pkg/shade; this package only reads the result.
package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/rasterkit/pkg/canvas"
)

// Draw blits c into scr's area using one terminal row per two canvas
// rows: the ▀ (upper half block) glyph's foreground paints the top pixel
// and its background paints the bottom one, doubling the effective
// vertical resolution a terminal can show.
func Draw(c *canvas.Canvas, scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1
		if botY >= c.Height() {
			break
		}

		for col := area.Min.X; col < area.Max.X && col < c.Width(); col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(c.Pixel(col, topY)),
					Bg: rgbaToColor(c.Pixel(col, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}

// Rows returns the terminal row count needed to display a canvas of the
// given pixel height (two canvas rows per terminal row, per Draw above).
func Rows(canvasHeight int) int {
	return (canvasHeight + 1) / 2
}
