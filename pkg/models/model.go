package models

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/rasterkit/pkg/math3d"
)

// Vertex is a single model-space vertex position, before any per-face
// attribute (UV, normal) is attached. Positions are expected to be roughly
// normalized to [-1, 1]; nothing checks this at load or render time.
type Vertex struct {
	Pos math3d.Vec3
}

// FacePoint references one vertex position, one UV, and one normal by
// index, matching the OBJ face grammar "v/uv/n" rather than a single unified
// per-vertex index (contrast with Mesh/MeshVertex, the glTF-oriented
// unified-index representation in mesh.go).
type FacePoint struct {
	VertexIndex int
	UVIndex     int
	NormalIndex int
}

// Face is a triangle: exactly three face points. Faces with any other
// point count are a load-time error.
type Face struct {
	Points [3]FacePoint
}

// Texture is an 8-bit RGBA pixel grid loaded from PNG. It backs diffuse,
// normal (global and tangent-space), specular, and glow maps.
type Texture struct {
	Width, Height int
	Pixels        []color.RGBA
	FilterMode    FilterMode
}

// FilterMode selects how Sample interpolates between texels.
type FilterMode int

const (
	FilterNearest FilterMode = iota
	FilterBilinear
)

// LoadTexture decodes a PNG (or JPEG) file into a Texture.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", path, err)
	}
	return textureFromImage(img), nil
}

func textureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]color.RGBA, w*h)
	for y := range h {
		for x := range w {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			pixels[y*w+x] = color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
		}
	}
	return &Texture{Width: w, Height: h, Pixels: pixels}
}

// NewCheckerTexture builds a procedural checkerboard texture, useful for
// debug scenes that have no diffuse PNG bound.
func NewCheckerTexture(width, height, checkSize int, c1, c2 color.RGBA) *Texture {
	pixels := make([]color.RGBA, width*height)
	for y := range height {
		for x := range width {
			if ((x/checkSize)+(y/checkSize))%2 == 0 {
				pixels[y*width+x] = c1
			} else {
				pixels[y*width+x] = c2
			}
		}
	}
	return &Texture{Width: width, Height: height, Pixels: pixels}
}

// NewGradientTexture builds a procedural horizontal-gradient texture.
func NewGradientTexture(width, height int, left, right color.RGBA) *Texture {
	pixels := make([]color.RGBA, width*height)
	for y := range height {
		for x := range width {
			t := float64(x) / float64(width-1)
			pixels[y*width+x] = lerpColor(left, right, t)
		}
	}
	return &Texture{Width: width, Height: height, Pixels: pixels}
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	lerp := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
}

// Sample reads the texel at uv (in [0,1]^2), flipping v (pixel row =
// height - 1 - y). FilterMode selects nearest or bilinear interpolation.
func (t *Texture) Sample(uv math3d.Vec2) color.RGBA {
	if t.FilterMode == FilterBilinear {
		return t.sampleBilinear(uv)
	}
	return t.sampleNearest(uv)
}

func (t *Texture) sampleNearest(uv math3d.Vec2) color.RGBA {
	x := int(uv.X * float64(t.Width))
	y := int(uv.Y * float64(t.Height))
	x = clampInt(x, 0, t.Width-1)
	y = clampInt(y, 0, t.Height-1)
	row := t.Height - 1 - y
	return t.Pixels[row*t.Width+x]
}

func (t *Texture) sampleBilinear(uv math3d.Vec2) color.RGBA {
	fx := uv.X*float64(t.Width) - 0.5
	fy := (1 - uv.Y) * float64(t.Height) - 0.5

	x0 := clampInt(int(fx), 0, t.Width-1)
	y0 := clampInt(int(fy), 0, t.Height-1)
	x1 := clampInt(x0+1, 0, t.Width-1)
	y1 := clampInt(y0+1, 0, t.Height-1)
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	top := lerpColor(t.Pixels[y0*t.Width+x0], t.Pixels[y0*t.Width+x1], tx)
	bot := lerpColor(t.Pixels[y1*t.Width+x0], t.Pixels[y1*t.Width+x1], tx)
	return lerpColor(top, bot, ty)
}

// Normal decodes the sampled pixel as a tangent- or global-space normal:
// each channel maps from [0,255] to [-1,1].
func (t *Texture) Normal(uv math3d.Vec2) math3d.Vec3 {
	c := t.Sample(uv)
	decode := func(v uint8) float64 { return float64(v)/255.0*2.0 - 1.0 }
	return math3d.V3(decode(c.R), decode(c.G), decode(c.B))
}

// Specular reads the red channel as a shininess exponent.
func (t *Texture) Specular(uv math3d.Vec2) float64 {
	return float64(t.Sample(uv).R)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Model is an in-memory triangulated mesh plus its bound textures: vertex
// positions, vertex normals, and UVs in separate arrays, referenced by
// index triplets per face point (the OBJ index model) rather than Mesh's
// single unified index.
type Model struct {
	Vertices      []Vertex
	VertexNormals []math3d.Vec3
	TextureCoords []math3d.Vec2
	Faces         []Face

	Diffuse       *Texture
	NormalGlobal  *Texture
	NormalDarboux *Texture
	Specular      *Texture
	Glow          *Texture // optional, nil if no sidecar was present
}

// Input is the validated, load-ready form of a model path: its extension
// and every sidecar texture's existence have already been checked (the
// model file itself is first opened by the loader). Non-existence of an optional sidecar (glow) is recorded as an
// empty path rather than failing validation.
type Input struct {
	ModelPath         string
	DiffusePath       string
	NormalGlobalPath  string
	NormalDarbouxPath string
	SpecularPath      string
	GlowPath          string
}

func sidecar(modelPath, suffix string) string {
	ext := filepath.Ext(modelPath)
	base := strings.TrimSuffix(modelPath, ext)
	return base + "." + suffix
}

// Validate checks that modelPath has a ".obj" extension and that every
// required sidecar texture (diffuse, normals_global, normals_darboux,
// specular) exists next to it. It runs at the edge, before any render
// starts, and returns a diagnostic rather than panicking.
func Validate(modelPath string) (Input, error) {
	if filepath.Ext(modelPath) != ".obj" {
		return Input{}, fmt.Errorf("model file %q must be an .obj file", modelPath)
	}

	diffuse := sidecar(modelPath, "diffuse.png")
	if _, err := os.Stat(diffuse); err != nil {
		return Input{}, fmt.Errorf("validating diffuse texture: %w", err)
	}
	normalGlobal := sidecar(modelPath, "normals_global.png")
	if _, err := os.Stat(normalGlobal); err != nil {
		return Input{}, fmt.Errorf("validating global-space normal texture: %w", err)
	}
	normalDarboux := sidecar(modelPath, "normals_darboux.png")
	if _, err := os.Stat(normalDarboux); err != nil {
		return Input{}, fmt.Errorf("validating darboux-frame normal texture: %w", err)
	}
	specular := sidecar(modelPath, "specular.png")
	if _, err := os.Stat(specular); err != nil {
		return Input{}, fmt.Errorf("validating specular texture: %w", err)
	}

	input := Input{
		ModelPath:         modelPath,
		DiffusePath:       diffuse,
		NormalGlobalPath:  normalGlobal,
		NormalDarbouxPath: normalDarboux,
		SpecularPath:      specular,
	}
	glow := sidecar(modelPath, "glow.png")
	if _, err := os.Stat(glow); err == nil {
		input.GlowPath = glow
	}
	return input, nil
}

// Load parses the OBJ file named by input and loads its bound textures.
// The OBJ grammar recognizes "v", "vt", "vn", and "f v/uv/n ..." lines;
// blank lines and unrecognized prefixes are ignored, and face indices are
// 1-based with negative indices unsupported.
func Load(input Input) (*Model, error) {
	f, err := os.Open(input.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("open model %q: %w", input.ModelPath, err)
	}
	defer f.Close()

	var (
		vertices      []Vertex
		vertexNormals []math3d.Vec3
		textureCoords []math3d.Vec2
		faces         []Face
	)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("parsing vertex: %w", err)
			}
			vertices = append(vertices, Vertex{Pos: v})
		case "vn":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("parsing vertex normal: %w", err)
			}
			vertexNormals = append(vertexNormals, v)
		case "vt":
			// "vt u v [w]" - w, if present, is ignored.
			if len(fields) < 3 {
				return nil, fmt.Errorf("parsing texture coordinate: need u and v, got %q", line)
			}
			u, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("parsing texture coordinate u: %w", err)
			}
			v, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, fmt.Errorf("parsing texture coordinate v: %w", err)
			}
			textureCoords = append(textureCoords, math3d.V2(u, v))
		case "f":
			face, err := parseFace(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("parsing face: %w", err)
			}
			faces = append(faces, face)
		default:
			// unrecognized line type: ignored.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading model %q: %w", input.ModelPath, err)
	}

	diffuse, err := LoadTexture(input.DiffusePath)
	if err != nil {
		return nil, fmt.Errorf("loading diffuse texture: %w", err)
	}
	normalGlobal, err := LoadTexture(input.NormalGlobalPath)
	if err != nil {
		return nil, fmt.Errorf("loading global-space normal texture: %w", err)
	}
	normalDarboux, err := LoadTexture(input.NormalDarbouxPath)
	if err != nil {
		return nil, fmt.Errorf("loading darboux-frame normal texture: %w", err)
	}
	specular, err := LoadTexture(input.SpecularPath)
	if err != nil {
		return nil, fmt.Errorf("loading specular texture: %w", err)
	}
	var glow *Texture
	if input.GlowPath != "" {
		glow, err = LoadTexture(input.GlowPath)
		if err != nil {
			return nil, fmt.Errorf("loading glow texture: %w", err)
		}
	}

	return &Model{
		Vertices:      vertices,
		VertexNormals: vertexNormals,
		TextureCoords: textureCoords,
		Faces:         faces,
		Diffuse:       diffuse,
		NormalGlobal:  normalGlobal,
		NormalDarboux: normalDarboux,
		Specular:      specular,
		Glow:          glow,
	}, nil
}

// LoadOBJ validates and loads an OBJ model in one step; the batch CLI driver
// and the preview viewer both use this as their single entry point.
func LoadOBJ(path string) (*Model, error) {
	input, err := Validate(path)
	if err != nil {
		return nil, err
	}
	return Load(input)
}

func parseVec3(fields []string) (math3d.Vec3, error) {
	if len(fields) < 3 {
		return math3d.Vec3{}, fmt.Errorf("need 3 components, got %d", len(fields))
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return math3d.Vec3{}, err
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return math3d.Vec3{}, err
	}
	z, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return math3d.Vec3{}, err
	}
	return math3d.V3(x, y, z), nil
}

func parseFace(fields []string) (Face, error) {
	if len(fields) != 3 {
		return Face{}, fmt.Errorf("only faces with exactly 3 vertices are supported; found %d", len(fields))
	}
	var face Face
	for i, token := range fields {
		parts := strings.Split(token, "/")
		if len(parts) != 3 {
			return Face{}, fmt.Errorf("face point %q must have vertex/uv/normal indices", token)
		}
		vIdx, err := strconv.Atoi(parts[0])
		if err != nil || vIdx <= 0 {
			return Face{}, fmt.Errorf("only positive 1-based vertex indices are supported, got %q", parts[0])
		}
		uvIdx, err := strconv.Atoi(parts[1])
		if err != nil || uvIdx <= 0 {
			return Face{}, fmt.Errorf("only positive 1-based uv indices are supported, got %q", parts[1])
		}
		nIdx, err := strconv.Atoi(parts[2])
		if err != nil || nIdx <= 0 {
			return Face{}, fmt.Errorf("only positive 1-based normal indices are supported, got %q", parts[2])
		}
		face.Points[i] = FacePoint{
			VertexIndex: vIdx - 1,
			UVIndex:     uvIdx - 1,
			NormalIndex: nIdx - 1,
		}
	}
	return face, nil
}
