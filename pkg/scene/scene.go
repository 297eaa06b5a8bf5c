// Package scene is the Scene Dispatcher: a pure function of a validated
// Configuration and a loaded Model that composes
// the viewport/projection/model-view transforms, instantiates the chosen
// shader or shader pair, drives an optional shadow pre-pass, runs the main
// pass, optionally applies ambient occlusion, and flips the canvas
// vertically before returning it. Any determinism bug must therefore be
// attributable to the rasterizer or a shader, never to this package.
package scene

import (
	"fmt"
	"image/color"

	"github.com/taigrr/rasterkit/pkg/canvas"
	"github.com/taigrr/rasterkit/pkg/config"
	"github.com/taigrr/rasterkit/pkg/math3d"
	"github.com/taigrr/rasterkit/pkg/models"
	"github.com/taigrr/rasterkit/pkg/shade"
)

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	green = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	blue  = color.RGBA{R: 0, G: 0, B: 255, A: 255}
)

// transforms holds the three matrices every shader-based scene composes:
// uniform_m = projection * model_view, plus the viewport.
type transforms struct {
	Projection math3d.Mat4
	ModelView  math3d.Mat4
	Viewport   math3d.Mat4
}

func composeTransforms(cfg config.Configuration) transforms {
	return transforms{
		Projection: math3d.Projection(cfg.CameraDistance),
		ModelView:  math3d.ModelView(cfg.CameraLookFrom, cfg.CameraLookAt, cfg.CameraUp),
		Viewport:   math3d.Viewport(0, 0, float64(cfg.Width), float64(cfg.Height)),
	}
}

func (t transforms) uniforms() shade.Uniforms {
	return shade.Uniforms{UniformM: t.Projection.Mul(t.ModelView), ViewportM: t.Viewport}
}

// Render dispatches cfg.Scene to its implementation, driving model (which
// may be nil for the scenes that don't need one: five-pixel, lines,
// triangles-compare, colored-triangles) through the Canvas/shader core,
// and returns the finished, vertically-flipped Canvas.
func Render(cfg config.Input, model *models.Model) (*canvas.Canvas, error) {
	c := canvas.New(cfg.Width, cfg.Height)
	t := composeTransforms(cfg.Configuration)

	switch cfg.Scene {
	case "five-pixel":
		renderFivePixel(c)
	case "lines":
		renderLines(c)
	case "triangles-compare":
		renderTrianglesCompare(c)
	case "colored-triangles":
		renderColoredTriangles(c)
	case "wireframe":
		if model == nil {
			return nil, fmt.Errorf("scene %q requires a model", cfg.Scene)
		}
		renderWireframe(c, model, t)
	case "flat":
		if model == nil {
			return nil, fmt.Errorf("scene %q requires a model", cfg.Scene)
		}
		canvas.DrawModelShader(c, model, shade.Flat{Uniforms: t.uniforms(), Color: white})
	case "depth-visual":
		if model == nil {
			return nil, fmt.Errorf("scene %q requires a model", cfg.Scene)
		}
		canvas.DrawModelShader(c, model, shade.Depth{Uniforms: t.uniforms()})
		c.ReplaceWithDepthVisualization()
	case "textured", "perspective":
		if model == nil {
			return nil, fmt.Errorf("scene %q requires a model", cfg.Scene)
		}
		canvas.DrawModelShader(c, model, shade.Unlit{Uniforms: t.uniforms(), Texture: model.Diffuse})
	case "gouraud", "gouraud-bucketed":
		if model == nil {
			return nil, fmt.Errorf("scene %q requires a model", cfg.Scene)
		}
		canvas.DrawModelShader(c, model, shade.Gouraud{
			Uniforms: t.uniforms(),
			Light:    cfg.LightDir,
			Diffuse:  model.Diffuse,
			Bucketed: cfg.Scene == "gouraud-bucketed",
		})
	case "movable-camera":
		if model == nil {
			return nil, fmt.Errorf("scene %q requires a model", cfg.Scene)
		}
		renderMovableCamera(c, model, t)
	case "normal":
		if model == nil {
			return nil, fmt.Errorf("scene %q requires a model", cfg.Scene)
		}
		canvas.DrawModelShader(c, model, shade.Normal{
			Uniforms:  t.uniforms(),
			Light:     cfg.LightDir,
			Diffuse:   model.Diffuse,
			NormalMap: model.NormalGlobal,
		})
	case "phong":
		if model == nil {
			return nil, fmt.Errorf("scene %q requires a model", cfg.Scene)
		}
		canvas.DrawModelShader(c, model, phongShader(cfg.Configuration, model, t, nil))
	case "shadow-buffer":
		if model == nil {
			return nil, fmt.Errorf("scene %q requires a model", cfg.Scene)
		}
		shadowCanvas, _ := shadowPrePass(model, cfg.Width, cfg.Height, cfg.LightDir, cfg.CameraUp)
		c = shadowCanvas
	case "shadowed":
		if model == nil {
			return nil, fmt.Errorf("scene %q requires a model", cfg.Scene)
		}
		shadowCanvas, shadowT := shadowPrePass(model, cfg.Width, cfg.Height, cfg.LightDir, cfg.CameraUp)
		shadow := &shade.ShadowInput{
			Buffer: shadowCanvas, UniformM: shadowT.UniformM, ViewportM: shadowT.ViewportM,
			Darkness: cfg.ShadowDarkness, ZFix: cfg.ShadowZFix,
		}
		canvas.DrawModelShader(c, model, phongShader(cfg.Configuration, model, t, shadow))
	case "ao":
		if model == nil {
			return nil, fmt.Errorf("scene %q requires a model", cfg.Scene)
		}
		canvas.DrawModelShader(c, model, shade.PureColor{Uniforms: t.uniforms()})
		c.ApplyAmbientOcclusion(cfg.AmbientOcclusionStrength, cfg.AmbientOcclusionPasses)
	case "shadowed-ao":
		if model == nil {
			return nil, fmt.Errorf("scene %q requires a model", cfg.Scene)
		}
		shadowCanvas, shadowT := shadowPrePass(model, cfg.Width, cfg.Height, cfg.LightDir, cfg.CameraUp)
		shadow := &shade.ShadowInput{
			Buffer: shadowCanvas, UniformM: shadowT.UniformM, ViewportM: shadowT.ViewportM,
			Darkness: cfg.ShadowDarkness, ZFix: cfg.ShadowZFix,
		}
		canvas.DrawModelShader(c, model, phongShader(cfg.Configuration, model, t, shadow))
		c.ApplyAmbientOcclusion(cfg.AmbientOcclusionStrength, cfg.AmbientOcclusionPasses)
	default:
		return nil, fmt.Errorf("unrecognized scene %q", cfg.Scene)
	}

	c.FlipY()
	return c, nil
}

func phongShader(cfg config.Configuration, model *models.Model, t transforms, shadow *shade.ShadowInput) shade.Phong {
	glow := model.Glow
	if !cfg.EnableGlowMap {
		glow = nil
	}
	return shade.Phong{
		Uniforms:        t.uniforms(),
		Light:           cfg.LightDir,
		Diffuse:         model.Diffuse,
		NormalGlobal:    model.NormalGlobal,
		NormalDarboux:   model.NormalDarboux,
		Specular:        model.Specular,
		Glow:            glow,
		UseTangentSpace: cfg.UseTangentSpaceNormalMap,
		Weights: shade.Weights{
			Ambient:  cfg.PhongLightingWeights.Ambient,
			Diffuse:  cfg.PhongLightingWeights.Diffuse,
			Specular: cfg.PhongLightingWeights.Specular,
		},
		BaseShininess: cfg.BaseShininess,
		Shadow:        shadow,
	}
}

// shadowPrePass renders the Depth shader into a fresh Canvas from the
// light's point of view (a look-at build from an eye placed along the
// light direction, looking at the origin) with an identity projection,
// feeding the shadowed and shadowed+AO scenes below.
func shadowPrePass(model *models.Model, width, height int, lightDir, up math3d.Vec3) (*canvas.Canvas, shade.Uniforms) {
	c := canvas.New(width, height)
	t := transforms{
		Projection: math3d.Identity(),
		ModelView:  math3d.ModelView(lightDir.Scale(3), math3d.Zero3(), up),
		Viewport:   math3d.Viewport(0, 0, float64(width), float64(height)),
	}
	canvas.DrawModelShader(c, model, shade.Depth{Uniforms: t.uniforms()})
	return c, t.uniforms()
}

// renderMovableCamera renders the flat-shaded model after frustum-culling
// its faces against the composed view-projection matrix — the one scene
// where culling is applied, since its camera can be steered arbitrarily by
// an interactive caller rather than the fixed cameras the other,
// bit-stability-sensitive scenes rely on.
func renderMovableCamera(c *canvas.Canvas, model *models.Model, t transforms) {
	vp := t.Projection.Mul(t.ModelView)
	shader := shade.Flat{Uniforms: t.uniforms(), Color: white}
	for _, i := range visibleFaces(model, vp) {
		tri := canvas.FaceVertices(model, i)
		screenPts, state := shader.Vertex(tri)
		canvas.DrawTriangleShader(c, screenPts, shader, state)
	}
}

func renderFivePixel(c *canvas.Canvas) {
	w, h := c.Width(), c.Height()
	pts := [5][2]int{
		{w / 2, h / 2},
		{0, 0},
		{w - 1, 0},
		{0, h - 1},
		{w - 1, h - 1},
	}
	for _, p := range pts {
		c.SetPixel(p[0], p[1], red)
	}
}

func renderLines(c *canvas.Canvas) {
	c.DrawLine(13, 20, 80, 40, green)
	c.DrawLine(20, 13, 40, 80, red)
	c.DrawLine(80, 40, 13, 20, blue)
	c.DrawLine(0, 0, 50, 50, green)
}

func renderWireframe(c *canvas.Canvas, model *models.Model, t transforms) {
	overall := t.Viewport.Mul(t.Projection).Mul(t.ModelView)
	for i := range model.Faces {
		tri := canvas.FaceVertices(model, i)
		p0 := overall.ProjectPoint3(tri[0].Position)
		p1 := overall.ProjectPoint3(tri[1].Position)
		p2 := overall.ProjectPoint3(tri[2].Position)
		c.DrawLine(int(p0.X), int(p0.Y), int(p1.X), int(p1.Y), white)
		c.DrawLine(int(p1.X), int(p1.Y), int(p2.X), int(p2.Y), white)
		c.DrawLine(int(p2.X), int(p2.Y), int(p0.X), int(p0.Y), white)
	}
}

// renderTrianglesCompare draws the same triangle shape three times, once
// per fill algorithm (the two line-sweep variants and the barycentric
// flood), at three screen offsets so the results can be eyeballed
// side-by-side.
func renderTrianglesCompare(c *canvas.Canvas) {
	tri := [3]canvas.IVec2{{X: 10, Y: 70}, {X: 50, Y: 160}, {X: 70, Y: 80}}
	offset := func(t canvas.IVec2, dx int) canvas.IVec2 { return canvas.IVec2{X: t.X + dx, Y: t.Y} }

	c.FillTriangleLineSweepVerbose(tri[0], tri[1], tri[2], red)
	c.FillTriangleLineSweepCompact(offset(tri[0], 100), offset(tri[1], 100), offset(tri[2], 100), green)
	c.FillTriangleBarycentricFlat(offset(tri[0], 200), offset(tri[1], 200), offset(tri[2], 200), blue)
}

func renderColoredTriangles(c *canvas.Canvas) {
	c.FillTriangleBarycentricFlat(canvas.IVec2{X: 10, Y: 70}, canvas.IVec2{X: 50, Y: 160}, canvas.IVec2{X: 70, Y: 80}, red)
	c.FillTriangleBarycentricFlat(canvas.IVec2{X: 180, Y: 50}, canvas.IVec2{X: 150, Y: 1}, canvas.IVec2{X: 70, Y: 180}, white)
	c.FillTriangleBarycentricFlat(canvas.IVec2{X: 180, Y: 150}, canvas.IVec2{X: 120, Y: 160}, canvas.IVec2{X: 130, Y: 180}, green)
}
