// rasterkit renders a single frame of a triangulated mesh to a PNG file
// using the software rasterization core in pkg/canvas, pkg/shade and
// pkg/scene. It accepts a fresh Configuration snapshot per invocation —
// there is no interactive input handling, matching the core's Non-goals.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/taigrr/rasterkit/pkg/config"
	"github.com/taigrr/rasterkit/pkg/models"
	"github.com/taigrr/rasterkit/pkg/scene"
)

var (
	configPath = flag.String("config", "", "Path to a JSON configuration file (optional; flags below override it)")
	modelPath  = flag.String("model", "", "Path to the .obj or .gltf/.glb model to render (required)")
	sceneName  = flag.String("scene", "", "Scene tag to render (overrides -config)")
	outPath    = flag.String("out", "out.png", "Path to write the rendered PNG")
	width      = flag.Int("width", 0, "Canvas width in pixels (overrides -config)")
	height     = flag.Int("height", 0, "Canvas height in pixels (overrides -config)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "rasterkit - software 3D rasterizer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: rasterkit -model <model.obj> [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *modelPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *sceneName != "" {
		cfg.Scene = *sceneName
	}
	if *width > 0 {
		cfg.Width = *width
	}
	if *height > 0 {
		cfg.Height = *height
	}

	input, err := config.Validate(cfg)
	if err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	model, err := loadModel(*modelPath)
	if err != nil {
		return fmt.Errorf("loading model: %w", err)
	}
	fmt.Fprintf(os.Stderr, "loaded model %q: %d vertices, %d faces\n", *modelPath, len(model.Vertices), len(model.Faces))

	out, err := scene.Render(input, model)
	if err != nil {
		return fmt.Errorf("rendering scene %q: %w", cfg.Scene, err)
	}
	fmt.Fprintf(os.Stderr, "rendered scene %q at %dx%d\n", cfg.Scene, cfg.Width, cfg.Height)

	if err := out.SavePNG(*outPath); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", *outPath)
	return nil
}

// loadModel dispatches on the model file's extension: ".obj" goes through
// the OBJ loader (with its sidecar PNG textures), anything else through
// the glTF/GLB loader, converting its unified-index Mesh into the same
// Model the Canvas/shader core consumes.
func loadModel(path string) (*models.Model, error) {
	if filepath.Ext(path) == ".obj" {
		return models.LoadOBJ(path)
	}

	loader := models.NewGLTFLoader()
	mesh, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	diffuse := sidecarOrChecker(path, "diffuse.png")
	normalGlobal := sidecarOrChecker(path, "normals_global.png")
	normalDarboux := sidecarOrChecker(path, "normals_darboux.png")
	specular := sidecarOrChecker(path, "specular.png")
	glow, _ := models.LoadTexture(sidecarPath(path, "glow.png"))
	return mesh.ToModel(diffuse, normalGlobal, normalDarboux, specular, glow), nil
}

func sidecarPath(modelPath, suffix string) string {
	ext := filepath.Ext(modelPath)
	base := modelPath[:len(modelPath)-len(ext)]
	return base + "." + suffix
}

// sidecarOrChecker loads the named sidecar texture next to a glTF model,
// falling back to a procedural checkerboard when a glTF model is loaded
// without matching sidecar PNGs, so every shader still has something to
// sample.
func sidecarOrChecker(modelPath, suffix string) *models.Texture {
	tex, err := models.LoadTexture(sidecarPath(modelPath, suffix))
	if err != nil {
		return models.NewCheckerTexture(64, 64, 8, gray(200), gray(120))
	}
	return tex
}

func gray(v uint8) color.RGBA {
	return color.RGBA{R: v, G: v, B: v, A: 255}
}
