// rasterkit-preview is a terminal 3D model viewer: it spins a loaded mesh
// in real time using the software rasterizer in pkg/canvas/pkg/shade via
// the "movable-camera" scene, and blits the result to the terminal with
// pkg/render's half-block drawer. Unlike cmd/rasterkit, this binary never
// reads a Configuration file; rotation is driven entirely by input.
//
// Controls:
//
//	Mouse drag  - Rotate model (yaw/pitch)
//	Scroll      - Zoom in/out
//	W/S         - Pitch up/down
//	A/D         - Yaw left/right
//	Q/E         - Roll left/right
//	Space       - Apply random impulse
//	R           - Reset rotation and zoom
//	Esc/Ctrl+C  - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/rasterkit/pkg/config"
	"github.com/taigrr/rasterkit/pkg/math3d"
	"github.com/taigrr/rasterkit/pkg/models"
	"github.com/taigrr/rasterkit/pkg/render"
	"github.com/taigrr/rasterkit/pkg/scene"
)

var targetFPS = flag.Int("fps", 30, "Target FPS")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "rasterkit-preview - terminal 3D model viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: rasterkit-preview [options] <model.obj|model.glb>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// rotationAxis tracks position and velocity for one rotation axis, using a
// critically-damped harmonica spring to bleed velocity back to zero so a
// flick of the mouse settles instead of spinning forever.
type rotationAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64
}

func newRotationAxis(fps int) rotationAxis {
	return rotationAxis{velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0)}
}

func (a *rotationAxis) update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

type rotationState struct {
	Pitch, Yaw, Roll rotationAxis
	fps              int
}

func newRotationState(fps int) *rotationState {
	return &rotationState{Pitch: newRotationAxis(fps), Yaw: newRotationAxis(fps), Roll: newRotationAxis(fps), fps: fps}
}

func (r *rotationState) update() {
	r.Pitch.update()
	r.Yaw.update()
	r.Roll.update()
}

func (r *rotationState) applyImpulse(pitch, yaw, roll float64) {
	r.Pitch.Velocity += pitch
	r.Yaw.Velocity += yaw
	r.Roll.Velocity += roll
}

func (r *rotationState) reset() {
	*r = *newRotationState(r.fps)
}

func run(modelPath string) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	fmt.Fprint(os.Stdout, "\x1b[?1003h\x1b[?1006h") // any-event + SGR mouse tracking

	model, err := loadModel(modelPath)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	fmt.Fprintf(os.Stderr, "loaded %s: %d vertices, %d faces\n", filepath.Base(modelPath), len(model.Vertices), len(model.Faces))

	cfg := config.Default()
	cfg.Scene = "movable-camera"
	cfg.Width = width
	cfg.Height = height * 2

	cameraZ := cfg.CameraLookFrom.Len()
	rotation := newRotationState(*targetFPS)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() { <-sigChan; cancel() }()

	var inputTorque struct{ pitch, yaw, roll float64 }
	const torqueStrength = 3.0
	var mouseDown bool
	var lastMouseX, lastMouseY int

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				cfg.Width, cfg.Height = width, height*2

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("q"):
					inputTorque.roll = -torqueStrength
				case ev.MatchString("e"):
					inputTorque.roll = torqueStrength
				case ev.MatchString("r"):
					rotation.reset()
					cameraZ = config.Default().CameraLookFrom.Len()
				case ev.MatchString("w", "up"):
					inputTorque.pitch = -torqueStrength
				case ev.MatchString("s", "down"):
					inputTorque.pitch = torqueStrength
				case ev.MatchString("a", "left"):
					inputTorque.yaw = -torqueStrength
				case ev.MatchString("d", "right"):
					inputTorque.yaw = torqueStrength
				case ev.MatchString("space"):
					rotation.applyImpulse((rand.Float64()-0.5)*1.5, (rand.Float64()-0.5)*1.5, (rand.Float64()-0.5)*1.5)
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("w"), ev.MatchString("up"), ev.MatchString("s"), ev.MatchString("down"):
					inputTorque.pitch = 0
				case ev.MatchString("a"), ev.MatchString("left"), ev.MatchString("d"), ev.MatchString("right"):
					inputTorque.yaw = 0
				case ev.MatchString("q"), ev.MatchString("e"):
					inputTorque.roll = 0
				}

			case uv.MouseClickEvent:
				mouseDown = true
				lastMouseX, lastMouseY = ev.X, ev.Y

			case uv.MouseReleaseEvent:
				mouseDown = false

			case uv.MouseMotionEvent:
				if mouseDown {
					dx, dy := ev.X-lastMouseX, ev.Y-lastMouseY
					rotation.applyImpulse(float64(dy)*0.03, float64(dx)*0.03, 0)
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					cameraZ = math.Max(1, cameraZ-0.5)
				case uv.MouseWheelDown:
					cameraZ = math.Min(20, cameraZ+0.5)
				}
			}
		}
	}()

	targetDuration := time.Second / time.Duration(*targetFPS)
	lastFrame := time.Now()

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now
		if dt > 0.1 {
			dt = 0.1
		}

		rotation.applyImpulse(inputTorque.pitch*dt, inputTorque.yaw*dt, inputTorque.roll*dt)
		inputTorque.pitch *= 0.9
		inputTorque.yaw *= 0.9
		inputTorque.roll *= 0.9
		rotation.update()

		spin := math3d.RotateX(rotation.Pitch.Position).
			Mul(math3d.RotateY(rotation.Yaw.Position)).
			Mul(math3d.RotateZ(rotation.Roll.Position))
		cfg.CameraLookFrom = spin.MulVec3(math3d.V3(0, 0, cameraZ))
		cfg.CameraDistance = cameraZ

		input, err := config.Validate(cfg)
		if err != nil {
			cleanup()
			return fmt.Errorf("configuration: %w", err)
		}
		out, err := scene.Render(input, model)
		if err != nil {
			cleanup()
			return fmt.Errorf("render: %w", err)
		}

		render.Draw(out, term, uv.Rectangle{Max: uv.Pos{X: width, Y: render.Rows(out.Height())}})
		term.Display()

		if elapsed := time.Since(now); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// loadModel mirrors cmd/rasterkit's loader: OBJ models go through the
// sidecar-texture loader, glTF/GLB through the unified-index Mesh bridge
// with a procedural checker fallback for each missing diffuse, normal or
// specular sidecar texture. No glow map is loaded for glTF/GLB models.
func loadModel(path string) (*models.Model, error) {
	if filepath.Ext(path) == ".obj" {
		return models.LoadOBJ(path)
	}

	mesh, err := models.NewGLTFLoader().Load(path)
	if err != nil {
		return nil, err
	}
	return mesh.ToModel(
		fallbackTexture(path, "diffuse.png"),
		fallbackTexture(path, "normals_global.png"),
		fallbackTexture(path, "normals_darboux.png"),
		fallbackTexture(path, "specular.png"),
		nil,
	), nil
}

func fallbackTexture(modelPath, suffix string) *models.Texture {
	ext := filepath.Ext(modelPath)
	sidecar := modelPath[:len(modelPath)-len(ext)] + "." + suffix
	if tex, err := models.LoadTexture(sidecar); err == nil {
		return tex
	}
	return models.NewCheckerTexture(64, 64, 8, color.RGBA{R: 200, G: 200, B: 200, A: 255}, color.RGBA{R: 120, G: 120, B: 120, A: 255})
}
