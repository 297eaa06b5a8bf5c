package models

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/rasterkit/pkg/math3d"
)

func TestValidateRejectsNonOBJExtension(t *testing.T) {
	if _, err := Validate("model.stl"); err == nil {
		t.Error("Validate should reject a non-.obj path")
	}
}

func TestValidateRequiresEverySidecarButGlow(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "thing.obj")
	writeFile(t, modelPath, "")

	if _, err := Validate(modelPath); err == nil {
		t.Fatal("Validate should fail when no sidecar textures exist")
	}

	writePNG(t, filepath.Join(dir, "thing.diffuse.png"))
	writePNG(t, filepath.Join(dir, "thing.normals_global.png"))
	writePNG(t, filepath.Join(dir, "thing.normals_darboux.png"))
	writePNG(t, filepath.Join(dir, "thing.specular.png"))

	input, err := Validate(modelPath)
	if err != nil {
		t.Fatalf("Validate failed with all required sidecars present: %v", err)
	}
	if input.GlowPath != "" {
		t.Errorf("GlowPath = %q, want empty when no glow sidecar exists", input.GlowPath)
	}

	writePNG(t, filepath.Join(dir, "thing.glow.png"))
	input, err = Validate(modelPath)
	if err != nil {
		t.Fatalf("Validate failed with a glow sidecar present: %v", err)
	}
	if input.GlowPath == "" {
		t.Error("GlowPath should be populated once the optional glow sidecar exists")
	}
}

func TestLoadParsesOBJGrammar(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "tri.obj")
	obj := `# a triangle
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
vt 0 0
vt 1 0
vt 0 1

f 1/1/1 2/2/1 3/3/1
`
	writeFile(t, modelPath, obj)
	for _, suffix := range []string{"diffuse", "normals_global", "normals_darboux", "specular"} {
		writePNG(t, filepath.Join(dir, "tri."+suffix+".png"))
	}

	m, err := LoadOBJ(modelPath)
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}
	if len(m.Vertices) != 3 {
		t.Fatalf("got %d vertices, want 3", len(m.Vertices))
	}
	if len(m.Faces) != 1 {
		t.Fatalf("got %d faces, want 1", len(m.Faces))
	}
	want := FacePoint{VertexIndex: 0, UVIndex: 0, NormalIndex: 0}
	if m.Faces[0].Points[0] != want {
		t.Errorf("face point 0 = %+v, want %+v (1-based indices converted to 0-based)", m.Faces[0].Points[0], want)
	}
	if m.Vertices[1].Pos != math3d.V3(1, 0, 0) {
		t.Errorf("vertex 1 position = %v, want (1,0,0)", m.Vertices[1].Pos)
	}
}

func TestParseFaceRejectsNonTriangles(t *testing.T) {
	if _, err := parseFace([]string{"1/1/1", "2/2/1"}); err == nil {
		t.Error("parseFace should reject a face with only two points")
	}
}

func TestParseFaceRejectsZeroAndNegativeIndices(t *testing.T) {
	if _, err := parseFace([]string{"0/1/1", "2/2/1", "3/3/1"}); err == nil {
		t.Error("parseFace should reject a zero vertex index")
	}
	if _, err := parseFace([]string{"-1/1/1", "2/2/1", "3/3/1"}); err == nil {
		t.Error("parseFace should reject a negative vertex index")
	}
}

func TestCheckerTextureAlternates(t *testing.T) {
	c1 := color.RGBA{R: 255, A: 255}
	c2 := color.RGBA{B: 255, A: 255}
	tex := NewCheckerTexture(4, 4, 1, c1, c2)

	if got := tex.Pixels[0]; got != c1 {
		t.Errorf("pixel (0,0) = %v, want %v", got, c1)
	}
	if got := tex.Pixels[1]; got != c2 {
		t.Errorf("pixel (1,0) = %v, want %v", got, c2)
	}
}

func TestGradientTextureInterpolatesEndpoints(t *testing.T) {
	left := color.RGBA{R: 0, A: 255}
	right := color.RGBA{R: 255, A: 255}
	tex := NewGradientTexture(3, 1, left, right)

	if got := tex.Pixels[0]; got.R != 0 {
		t.Errorf("leftmost pixel R = %d, want 0", got.R)
	}
	if got := tex.Pixels[2]; got.R != 255 {
		t.Errorf("rightmost pixel R = %d, want 255", got.R)
	}
}

func TestSampleNearestFlipsV(t *testing.T) {
	tex := &Texture{Width: 2, Height: 2, Pixels: []color.RGBA{
		{R: 1}, {R: 2}, // row 0 (top)
		{R: 3}, {R: 4}, // row 1 (bottom)
	}}
	// uv=(0,0) should hit the bottom-left texel (row flipped: height-1-0=1).
	if got := tex.Sample(math3d.V2(0, 0)); got.R != 3 {
		t.Errorf("Sample(0,0).R = %d, want 3 (bottom-left after v-flip)", got.R)
	}
	// uv=(0,0.9) should hit the top-left texel (row height-1-1=0).
	if got := tex.Sample(math3d.V2(0, 0.9)); got.R != 1 {
		t.Errorf("Sample(0,0.9).R = %d, want 1 (top-left after v-flip)", got.R)
	}
}

func TestNormalDecodesChannelsToUnitRange(t *testing.T) {
	tex := &Texture{Width: 1, Height: 1, Pixels: []color.RGBA{{R: 255, G: 0, B: 128, A: 255}}}
	n := tex.Normal(math3d.V2(0.5, 0.5))
	if n.X != 1 {
		t.Errorf("decoded X = %v, want 1 for channel value 255", n.X)
	}
	if n.Y != -1 {
		t.Errorf("decoded Y = %v, want -1 for channel value 0", n.Y)
	}
}

func TestSpecularReadsRedChannel(t *testing.T) {
	tex := &Texture{Width: 1, Height: 1, Pixels: []color.RGBA{{R: 42}}}
	if got := tex.Specular(math3d.V2(0, 0)); got != 42 {
		t.Errorf("Specular = %v, want 42", got)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %q: %v", path, err)
	}
}

// writePNG writes a minimal valid 1x1 PNG so LoadTexture/os.Stat both
// succeed against it.
func writePNG(t *testing.T, path string) {
	t.Helper()
	const onePixelPNG = "\x89PNG\r\n\x1a\n" +
		"\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89" +
		"\x00\x00\x00\rIDATx\x9cc\xfc\xcf\xc0\xf0\x1f\x00\x05\x05\x02\x00\x80\x96\xe3\xc2" +
		"\x00\x00\x00\x00IEND\xaeB`\x82"
	if err := os.WriteFile(path, []byte(onePixelPNG), 0o644); err != nil {
		t.Fatalf("writing %q: %v", path, err)
	}
}
