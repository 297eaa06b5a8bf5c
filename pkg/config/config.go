// Package config holds the per-render Configuration the Scene Dispatcher
// consumes, and its edge Validate step. A Configuration is a plain struct,
// JSON-decodable via stdlib encoding/json, that a caller fills in once per
// render; Validate classifies malformed input as a configuration error and
// never panics on it.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/taigrr/rasterkit/pkg/math3d"
)

// SceneNames is the closed set of scene tags the Scene Dispatcher
// recognizes. It lives here (rather than in pkg/scene) so Validate can
// reject an unknown scene tag without pkg/config importing pkg/scene,
// which would be a cycle (pkg/scene imports pkg/config, since the
// dispatcher takes a config.Input).
var SceneNames = map[string]bool{
	"five-pixel":         true,
	"lines":              true,
	"wireframe":          true,
	"triangles-compare":  true,
	"colored-triangles":  true,
	"flat":               true,
	"depth-visual":       true,
	"textured":           true,
	"perspective":        true,
	"gouraud":            true,
	"gouraud-bucketed":   true,
	"movable-camera":     true,
	"normal":             true,
	"phong":              true,
	"shadow-buffer":      true,
	"shadowed":           true,
	"ao":                 true,
	"shadowed-ao":        true,
}

// Weights are the ambient/diffuse/specular blend weights for the Phong
// shader, read directly off the configuration.
type Weights struct {
	Ambient  float64 `json:"ambient"`
	Diffuse  float64 `json:"diffuse"`
	Specular float64 `json:"specular"`
}

// Configuration is the closed set of options recognized by the core,
// passed in fresh for every render — there is no interactive input
// handling beyond accepting a new snapshot.
type Configuration struct {
	Scene  string `json:"scene"`
	Width  int    `json:"width"`
	Height int    `json:"height"`

	LightDir math3d.Vec3 `json:"light_dir"`

	CameraDistance float64     `json:"camera_distance"`
	CameraLookFrom math3d.Vec3 `json:"camera_look_from"`
	CameraLookAt   math3d.Vec3 `json:"camera_look_at"`
	CameraUp       math3d.Vec3 `json:"camera_up"`

	PhongLightingWeights     Weights `json:"phong_lighting_weights"`
	UseTangentSpaceNormalMap bool    `json:"use_tangent_space_normal_map"`

	ShadowDarkness float64 `json:"shadow_darkness"`
	ShadowZFix     float64 `json:"shadow_z_fix"`

	AmbientOcclusionPasses   int     `json:"ambient_occlusion_passes"`
	AmbientOcclusionStrength float64 `json:"ambient_occlusion_strength"`

	EnableGlowMap bool    `json:"enable_glow_map"`
	BaseShininess float64 `json:"base_shininess"`
}

// Default returns a Configuration with sensible defaults, used by the
// batch CLI driver when a flag or config field is left unset: a camera
// distance and light direction that produce a recognizable three-quarter
// view, and the "flat" scene, which runs no shadow or AO pass.
func Default() Configuration {
	return Configuration{
		Scene:          "flat",
		Width:          800,
		Height:         800,
		LightDir:       math3d.V3(1, 1, 1).Normalize(),
		CameraDistance: 3,
		CameraLookFrom: math3d.V3(1, 1, 3),
		CameraLookAt:   math3d.V3(0, 0, 0),
		CameraUp:       math3d.V3(0, 1, 0),
		PhongLightingWeights: Weights{
			Ambient:  0.3,
			Diffuse:  0.6,
			Specular: 0.3,
		},
		ShadowDarkness:           0.3,
		ShadowZFix:               0.5,
		AmbientOcclusionPasses:   8,
		AmbientOcclusionStrength: 1.0,
		BaseShininess:            5,
	}
}

// Load reads and decodes a Configuration from a JSON file, starting from
// Default() so an omitted field keeps its default rather than zeroing out.
func Load(path string) (Configuration, error) {
	f, err := os.Open(path)
	if err != nil {
		return Configuration{}, fmt.Errorf("open config %q: %w", path, err)
	}
	defer f.Close()

	cfg := Default()
	dec := json.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Configuration{}, fmt.Errorf("decode config %q: %w", path, err)
	}
	return cfg, nil
}

// Input is the validated, render-ready form of a Configuration: every
// field Validate checked has already been checked, so the Scene
// Dispatcher never needs to re-derive a diagnostic from it.
type Input struct {
	Configuration
}

// Validate checks every configuration error case: canvas size bounds, a
// non-degenerate camera, and in-range shadow/weight parameters. It runs
// once at the edge, before any render starts, and returns a diagnostic
// error rather than letting a malformed value reach the rasterizer.
func Validate(cfg Configuration) (Input, error) {
	if cfg.Width < 200 || cfg.Width > 5000 {
		return Input{}, fmt.Errorf("width %d out of range [200, 5000]", cfg.Width)
	}
	if cfg.Height < 200 || cfg.Height > 5000 {
		return Input{}, fmt.Errorf("height %d out of range [200, 5000]", cfg.Height)
	}
	if cfg.CameraLookFrom == cfg.CameraLookAt {
		return Input{}, fmt.Errorf("camera_look_from must differ from camera_look_at")
	}
	if cfg.CameraDistance == 0 {
		return Input{}, fmt.Errorf("camera_distance must be nonzero")
	}
	if cfg.LightDir.LenSq() == 0 {
		return Input{}, fmt.Errorf("light_dir must be nonzero")
	}
	if cfg.ShadowDarkness < 0 || cfg.ShadowDarkness > 1 {
		return Input{}, fmt.Errorf("shadow_darkness %v out of range [0, 1]", cfg.ShadowDarkness)
	}
	if cfg.ShadowZFix < 0 {
		return Input{}, fmt.Errorf("shadow_z_fix must be non-negative, got %v", cfg.ShadowZFix)
	}
	if cfg.AmbientOcclusionPasses < 0 {
		return Input{}, fmt.Errorf("ambient_occlusion_passes must be non-negative, got %d", cfg.AmbientOcclusionPasses)
	}
	w := cfg.PhongLightingWeights
	if w.Ambient < 0 || w.Diffuse < 0 || w.Specular < 0 {
		return Input{}, fmt.Errorf("phong_lighting_weights must be non-negative, got %+v", w)
	}
	if _, ok := SceneNames[cfg.Scene]; !ok {
		return Input{}, fmt.Errorf("unrecognized scene %q", cfg.Scene)
	}

	out := cfg
	out.LightDir = cfg.LightDir.Normalize()
	return Input{Configuration: out}, nil
}
