// Package canvas implements the rasterizer's core: a color+depth
// framebuffer, the programmable two-phase shader contract, triangle
// rasterization by bounding-box and barycentric coordinates, and the
// screen-space ambient-occlusion post-process.
package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/taigrr/rasterkit/pkg/math3d"
	"github.com/taigrr/rasterkit/pkg/models"
)

// DepthSentinel is the initial (and "nothing written here yet") depth value.
var DepthSentinel = math.Inf(-1)

// aoSkipThreshold is the depth below which a pixel is treated as background
// and skipped by ambient occlusion.
const aoSkipThreshold = -1e5

// Vertex is a single assembled, pre-transform triangle vertex: a model-space
// position plus its UV and normal, as handed to a shader's Vertex callback.
type Vertex struct {
	Position math3d.Vec3
	UV       math3d.Vec2
	Normal   math3d.Vec3
}

// Canvas owns the color buffer and depth buffer for one render. Both have
// length Width*Height, indexed row-major (y*Width+x).
type Canvas struct {
	width, height int
	pixels        []color.RGBA
	depth         []float64
}

// New allocates a canvas with a zeroed color buffer and a depth buffer
// initialized to the sentinel (negative infinity).
func New(width, height int) *Canvas {
	depth := make([]float64, width*height)
	for i := range depth {
		depth[i] = DepthSentinel
	}
	return &Canvas{
		width:  width,
		height: height,
		pixels: make([]color.RGBA, width*height),
		depth:  depth,
	}
}

// Width returns the canvas's width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas's height in pixels.
func (c *Canvas) Height() int { return c.height }

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// Pixel returns the color at (x, y), or the zero color if out of bounds.
func (c *Canvas) Pixel(x, y int) color.RGBA {
	if !c.inBounds(x, y) {
		return color.RGBA{}
	}
	return c.pixels[y*c.width+x]
}

// SetPixel writes the color at (x, y); out-of-bounds writes are silently
// ignored rather than surfaced as an error.
func (c *Canvas) SetPixel(x, y int, col color.RGBA) {
	if !c.inBounds(x, y) {
		return
	}
	c.pixels[y*c.width+x] = col
}

// Depth returns the depth value at (x, y), or the sentinel if out of bounds.
func (c *Canvas) Depth(x, y int) float64 {
	if !c.inBounds(x, y) {
		return DepthSentinel
	}
	return c.depth[y*c.width+x]
}

// SetDepth writes the depth value at (x, y); out-of-bounds writes are
// silently ignored.
func (c *Canvas) SetDepth(x, y int, z float64) {
	if !c.inBounds(x, y) {
		return
	}
	c.depth[y*c.width+x] = z
}

// Pixels exposes the raw color buffer, row-major.
func (c *Canvas) Pixels() []color.RGBA { return c.pixels }

// Clone returns a deep copy of the canvas, used to build a shadow buffer
// from a fresh Depth-shader pass without disturbing the main canvas.
func (c *Canvas) Clone() *Canvas {
	clone := &Canvas{
		width:  c.width,
		height: c.height,
		pixels: make([]color.RGBA, len(c.pixels)),
		depth:  make([]float64, len(c.depth)),
	}
	copy(clone.pixels, c.pixels)
	copy(clone.depth, c.depth)
	return clone
}

// FlipY swaps row y with row height-1-y for all y < height/2. Applying it
// twice is the identity.
func (c *Canvas) FlipY() {
	for y := 0; y < c.height/2; y++ {
		top := y * c.width
		bottom := (c.height - 1 - y) * c.width
		for x := range c.width {
			c.pixels[top+x], c.pixels[bottom+x] = c.pixels[bottom+x], c.pixels[top+x]
		}
	}
}

// ReplaceWithDepthVisualization overwrites the color buffer with a
// grayscale image of the depth buffer, normalized against math3d.DepthMax.
func (c *Canvas) ReplaceWithDepthVisualization() {
	for i, d := range c.depth {
		v := d * 255.0 / math3d.DepthMax
		v = math.Max(0, math.Min(255, v))
		g := uint8(v)
		c.pixels[i] = color.RGBA{R: g, G: g, B: g, A: 255}
	}
}

// SavePNG encodes the canvas's color buffer as an RGB(A) 8-bit PNG.
func (c *Canvas) SavePNG(path string) error {
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	for y := range c.height {
		for x := range c.width {
			img.SetRGBA(x, y, c.Pixel(x, y))
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output %q: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode PNG %q: %w", path, err)
	}
	return nil
}

// assembleVertex builds a canvas.Vertex for face point fp of model m.
func assembleVertex(m *models.Model, fp models.FacePoint) Vertex {
	return Vertex{
		Position: m.Vertices[fp.VertexIndex].Pos,
		UV:       m.TextureCoords[fp.UVIndex],
		Normal:   m.VertexNormals[fp.NormalIndex],
	}
}

// FaceVertices returns the three assembled Vertex values for face i of m.
func FaceVertices(m *models.Model, faceIndex int) [3]Vertex {
	face := m.Faces[faceIndex]
	var tri [3]Vertex
	for j := range 3 {
		tri[j] = assembleVertex(m, face.Points[j])
	}
	return tri
}
