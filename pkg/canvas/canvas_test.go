package canvas

import (
	"image/color"
	"math"
	"testing"

	"github.com/taigrr/rasterkit/pkg/math3d"
	"github.com/taigrr/rasterkit/pkg/models"
)

func TestNewBufferLengthsMatch(t *testing.T) {
	c := New(37, 19)
	if len(c.Pixels()) != 37*19 {
		t.Errorf("len(Pixels()) = %d, want %d", len(c.Pixels()), 37*19)
	}
	if len(c.depth) != 37*19 {
		t.Errorf("len(depth) = %d, want %d", len(c.depth), 37*19)
	}
}

func TestNewDepthInitializedToSentinel(t *testing.T) {
	c := New(10, 10)
	for y := range 10 {
		for x := range 10 {
			if c.Depth(x, y) != DepthSentinel {
				t.Fatalf("Depth(%d,%d) = %v, want sentinel", x, y, c.Depth(x, y))
			}
		}
	}
}

func TestPixelSetGetOutOfBounds(t *testing.T) {
	c := New(5, 5)
	c.SetPixel(-1, 0, color.RGBA{R: 255, A: 255}) // should not panic
	c.SetPixel(5, 5, color.RGBA{R: 255, A: 255})
	if got := c.Pixel(-1, 0); got != (color.RGBA{}) {
		t.Errorf("Pixel out of bounds = %v, want zero value", got)
	}
}

func TestFlipYIsInvolution(t *testing.T) {
	c := New(4, 5)
	for y := range 5 {
		for x := range 4 {
			c.SetPixel(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	snapshot := append([]color.RGBA(nil), c.Pixels()...)

	c.FlipY()
	c.FlipY()

	for i, px := range c.Pixels() {
		if px != snapshot[i] {
			t.Fatalf("pixel %d after double FlipY = %v, want %v", i, px, snapshot[i])
		}
	}
}

func TestFlipYSwapsRows(t *testing.T) {
	c := New(2, 4)
	c.SetPixel(0, 0, color.RGBA{R: 1, A: 255})
	c.SetPixel(0, 3, color.RGBA{R: 2, A: 255})

	c.FlipY()

	if c.Pixel(0, 0).R != 2 || c.Pixel(0, 3).R != 1 {
		t.Errorf("FlipY did not swap row 0 and row height-1")
	}
}

// TestBarycentricKnownPoints exercises spec S3: Barycentric of (0,0),(10,0),
// (0,10) at P=(2,3) should be approximately (0.5, 0.2, 0.3); at P=(-1,-1) one
// component should be negative.
func TestBarycentricKnownPoints(t *testing.T) {
	a := math3d.V2(0, 0)
	b := math3d.V2(10, 0)
	c := math3d.V2(0, 10)

	bary := Barycentric(a, b, c, math3d.V2(2, 3))
	want := math3d.V3(0.5, 0.2, 0.3)
	if math.Abs(bary.X-want.X) > 1e-9 || math.Abs(bary.Y-want.Y) > 1e-9 || math.Abs(bary.Z-want.Z) > 1e-9 {
		t.Errorf("Barycentric(2,3) = %v, want %v", bary, want)
	}

	outside := Barycentric(a, b, c, math3d.V2(-1, -1))
	if outside.X >= 0 && outside.Y >= 0 && outside.Z >= 0 {
		t.Errorf("Barycentric(-1,-1) = %v, want at least one negative component", outside)
	}
}

// TestBarycentricSumsToOne checks invariant 4: for a non-degenerate triangle
// the three barycentric components always sum to 1.
func TestBarycentricSumsToOne(t *testing.T) {
	a := math3d.V2(10, 70)
	b := math3d.V2(50, 160)
	c := math3d.V2(70, 80)

	for _, p := range []math3d.Vec2{
		math3d.V2(40, 100), math3d.V2(10, 70), math3d.V2(0, 0), math3d.V2(55, 95),
	} {
		bary := Barycentric(a, b, c, p)
		sum := bary.X + bary.Y + bary.Z
		if math.Abs(sum-1) > 1e-4 {
			t.Errorf("Barycentric(%v) sums to %v, want 1", p, sum)
		}
	}
}

func TestBarycentricDegenerateSentinel(t *testing.T) {
	a := math3d.V2(0, 0)
	b := math3d.V2(1, 0)
	c := math3d.V2(2, 0) // collinear: degenerate triangle
	bary := Barycentric(a, b, c, math3d.V2(0.5, 0))
	if bary != (math3d.Vec3{X: -1, Y: 1, Z: 1}) {
		t.Errorf("Barycentric of degenerate triangle = %v, want (-1,1,1)", bary)
	}
}

// flatShader is a minimal canvas.Shader[struct{}] double used by the
// rasterization tests below, mirroring the teacher's mockMesh pattern.
type flatShader struct{ Color color.RGBA }

func (s flatShader) Vertex(_ [3]Vertex) (math3d.Mat3, struct{}) { return math3d.Mat3{}, struct{}{} }
func (s flatShader) Fragment(_ math3d.Vec3, _ *struct{}) (color.RGBA, bool) {
	return s.Color, true
}

// TestDrawTriangleShaderFillsInterior exercises spec S2: a filled triangle
// paints its interior and leaves the rest of the canvas untouched.
func TestDrawTriangleShaderFillsInterior(t *testing.T) {
	c := New(200, 200)
	pts := math3d.Mat3FromCols(
		math3d.V3(10, 70, 50),
		math3d.V3(50, 160, 50),
		math3d.V3(70, 80, 50),
	)
	red := color.RGBA{R: 255, A: 255}
	DrawTriangleShader(c, pts, flatShader{Color: red}, struct{}{})

	if got := c.Pixel(40, 100); got != red {
		t.Errorf("Pixel(40,100) = %v, want %v", got, red)
	}
	if got := c.Pixel(0, 0); got != (color.RGBA{}) {
		t.Errorf("Pixel(0,0) = %v, want zero value (outside triangle)", got)
	}
}

// TestDrawTriangleShaderOutsideCanvasLeavesCanvasUnchanged exercises
// invariant 9: a triangle entirely outside the framebuffer leaves it
// unchanged.
func TestDrawTriangleShaderOutsideCanvasLeavesCanvasUnchanged(t *testing.T) {
	c := New(50, 50)
	pts := math3d.Mat3FromCols(
		math3d.V3(1000, 1000, 1),
		math3d.V3(1010, 1000, 1),
		math3d.V3(1005, 1010, 1),
	)
	DrawTriangleShader(c, pts, flatShader{Color: color.RGBA{R: 255, A: 255}}, struct{}{})
	for _, px := range c.Pixels() {
		if px != (color.RGBA{}) {
			t.Fatalf("canvas mutated by an off-screen triangle: %v", px)
		}
	}
}

// TestDrawTriangleShaderDepthTestStrictGreater exercises invariants 2 and 7:
// the depth buffer only ever increases, and a second draw at an equal or
// lower depth changes nothing.
func TestDrawTriangleShaderDepthTestStrictGreater(t *testing.T) {
	c := New(20, 20)
	front := math3d.Mat3FromCols(
		math3d.V3(0, 0, 10),
		math3d.V3(19, 0, 10),
		math3d.V3(0, 19, 10),
	)
	back := math3d.Mat3FromCols(
		math3d.V3(0, 0, 1),
		math3d.V3(19, 0, 1),
		math3d.V3(0, 19, 1),
	)

	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}

	DrawTriangleShader(c, front, flatShader{Color: red}, struct{}{})
	depthAfterFront := c.Depth(5, 5)

	DrawTriangleShader(c, back, flatShader{Color: blue}, struct{}{})
	if c.Pixel(5, 5) != red {
		t.Errorf("a lower-depth triangle overwrote a nearer fragment: %v", c.Pixel(5, 5))
	}
	if c.Depth(5, 5) != depthAfterFront {
		t.Errorf("depth buffer decreased: %v -> %v", depthAfterFront, c.Depth(5, 5))
	}

	// redrawing the same (equal-depth) triangle must not change anything,
	// since the strict '>' test rejects ties.
	DrawTriangleShader(c, front, flatShader{Color: blue}, struct{}{})
	if c.Pixel(5, 5) != red {
		t.Errorf("an equal-depth fragment overwrote the first writer: %v", c.Pixel(5, 5))
	}
}

// discardShader always discards, used to verify the depth buffer is
// untouched when the fragment stage returns no color.
type discardShader struct{}

func (discardShader) Vertex(_ [3]Vertex) (math3d.Mat3, struct{}) { return math3d.Mat3{}, struct{}{} }
func (discardShader) Fragment(_ math3d.Vec3, _ *struct{}) (color.RGBA, bool) {
	return color.RGBA{}, false
}

func TestFragmentDiscardLeavesDepthUntouched(t *testing.T) {
	c := New(10, 10)
	pts := math3d.Mat3FromCols(
		math3d.V3(0, 0, 5),
		math3d.V3(9, 0, 5),
		math3d.V3(0, 9, 5),
	)
	DrawTriangleShader(c, pts, discardShader{}, struct{}{})
	if c.Depth(3, 3) != DepthSentinel {
		t.Errorf("Depth(3,3) = %v after discard, want sentinel", c.Depth(3, 3))
	}
	if c.Pixel(3, 3) != (color.RGBA{}) {
		t.Errorf("Pixel(3,3) = %v after discard, want zero value", c.Pixel(3, 3))
	}
}

// TestAmbientOcclusionFlatDepthIsNoOp exercises spec S4: an all-flat depth
// buffer produces a uniform AO multiplier of 1.0, leaving pixels unchanged.
func TestAmbientOcclusionFlatDepthIsNoOp(t *testing.T) {
	c := New(20, 20)
	for i := range c.depth {
		c.depth[i] = 100
	}
	grey := color.RGBA{R: 128, G: 128, B: 128, A: 255}
	for y := range 20 {
		for x := range 20 {
			c.SetPixel(x, y, grey)
		}
	}

	c.ApplyAmbientOcclusion(1.0, 8)

	for y := range 20 {
		for x := range 20 {
			if got := c.Pixel(x, y); got != grey {
				t.Fatalf("Pixel(%d,%d) = %v after AO over flat depth, want unchanged %v", x, y, got, grey)
			}
		}
	}
}

func TestAmbientOcclusionSkipsBackground(t *testing.T) {
	c := New(5, 5)
	// depth stays at the sentinel (background): AO must not touch it.
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	c.SetPixel(2, 2, white)
	c.ApplyAmbientOcclusion(2.0, 4)
	if got := c.Pixel(2, 2); got != white {
		t.Errorf("background pixel changed by AO: %v", got)
	}
}

func TestReplaceWithDepthVisualization(t *testing.T) {
	c := New(2, 1)
	c.SetDepth(0, 0, math3d.DepthMax)
	c.SetDepth(1, 0, 0)
	c.ReplaceWithDepthVisualization()

	white := c.Pixel(0, 0)
	black := c.Pixel(1, 0)
	if white.R != 255 || white.G != 255 || white.B != 255 {
		t.Errorf("pixel at DepthMax = %v, want white", white)
	}
	if black.R != 0 || black.G != 0 || black.B != 0 {
		t.Errorf("pixel at depth 0 = %v, want black", black)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c := New(4, 4)
	c.SetPixel(1, 1, color.RGBA{R: 9, A: 255})
	c.SetDepth(1, 1, 42)

	clone := c.Clone()
	clone.SetPixel(1, 1, color.RGBA{R: 200, A: 255})
	clone.SetDepth(1, 1, 7)

	if c.Pixel(1, 1).R != 9 {
		t.Errorf("mutating clone mutated original pixel: %v", c.Pixel(1, 1))
	}
	if c.Depth(1, 1) != 42 {
		t.Errorf("mutating clone mutated original depth: %v", c.Depth(1, 1))
	}
}

// TestDrawLineEndpointsAndCount exercises spec S1: a line from (13,20) to
// (80,40) lights its start pixel and exactly max(|dx|,|dy|) total pixels.
func TestDrawLineEndpointsAndCount(t *testing.T) {
	c := New(100, 100)
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	c.DrawLine(13, 20, 80, 40, white)

	if c.Pixel(13, 20) != white {
		t.Errorf("start pixel (13,20) not lit")
	}

	count := 0
	for _, px := range c.Pixels() {
		if px == white {
			count++
		}
	}
	want := 67 // max(|80-13|, |40-20|)
	if count != want {
		t.Errorf("lit pixel count = %d, want %d", count, want)
	}
}

// TestDrawLineSwappedEndpointsMatch exercises invariant 11: drawing with
// x0 > x1 lights the same pixels as the reversed call.
func TestDrawLineSwappedEndpointsMatch(t *testing.T) {
	forward := New(100, 100)
	backward := New(100, 100)
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	forward.DrawLine(13, 20, 80, 40, white)
	backward.DrawLine(80, 40, 13, 20, white)

	for i := range forward.Pixels() {
		if forward.Pixels()[i] != backward.Pixels()[i] {
			t.Fatalf("pixel %d differs between forward and swapped-endpoint draw", i)
		}
	}
}

func TestFaceVerticesAssemblesByIndex(t *testing.T) {
	m := &models.Model{
		Vertices:      []models.Vertex{{Pos: math3d.V3(0, 0, 0)}, {Pos: math3d.V3(1, 0, 0)}, {Pos: math3d.V3(0, 1, 0)}},
		VertexNormals: []math3d.Vec3{math3d.V3(0, 0, 1)},
		TextureCoords: []math3d.Vec2{math3d.V2(0.25, 0.75)},
		Faces: []models.Face{{Points: [3]models.FacePoint{
			{VertexIndex: 2, UVIndex: 0, NormalIndex: 0},
			{VertexIndex: 0, UVIndex: 0, NormalIndex: 0},
			{VertexIndex: 1, UVIndex: 0, NormalIndex: 0},
		}}},
	}

	tri := FaceVertices(m, 0)
	if tri[0].Position != math3d.V3(0, 1, 0) {
		t.Errorf("tri[0].Position = %v, want vertex 2's position", tri[0].Position)
	}
	if tri[1].Position != math3d.V3(0, 0, 0) {
		t.Errorf("tri[1].Position = %v, want vertex 0's position", tri[1].Position)
	}
	if tri[0].UV != math3d.V2(0.25, 0.75) {
		t.Errorf("tri[0].UV = %v, want the shared UV", tri[0].UV)
	}
}
