package scene

import (
	"context"
	"math"
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/DangerosoDavo/sigecs"
)

// Resource names shared between the scene systems.
const (
	ResourceCamera = "scene.camera"
	ResourceLights = "scene.lights"
	ResourceDrawn  = "scene.drawn"
)

// MaxLights caps how many lights the lighting system collects per frame.
const MaxLights = 256

// CameraSnapshot is the view state the camera system publishes each frame.
type CameraSnapshot struct {
	Position Vec3
	Front    Vec3
	Right    Vec3
	Up       Vec3
	Yaw      float32
	FOV      float32
	Near     float32
	Far      float32
}

// CameraSystem updates the first camera entity and publishes a CameraSnapshot.
type CameraSystem struct{}

func (CameraSystem) Descriptor() ecs.SystemDescriptor {
	return ecs.SystemDescriptor{
		Name:     "camera",
		Tags:     []string{"scene"},
		RunEvery: ecs.TickInterval{Every: 1},
	}
}

func (CameraSystem) Run(ctx context.Context, exec ecs.ExecutionContext) ecs.SystemResult {
	w := exec.World()
	cameras := ecs.Query1[CameraComponent](w)
	if len(cameras) == 0 {
		return ecs.SystemResult{Skipped: true}
	}
	e := cameras[0]
	cam, err := ecs.GetComponent[CameraComponent](w, e)
	if err != nil {
		return ecs.SystemResult{Err: err}
	}

	pos := cam.Position
	if t, err := ecs.GetComponent[Transform](w, e); err == nil {
		pos = t.Position
	}

	yaw, pitch := radians(cam.Yaw), radians(cam.Pitch)
	front := Vec3{
		X: float32(math.Sin(yaw) * math.Cos(pitch)),
		Y: float32(math.Sin(pitch)),
		Z: float32(-math.Cos(yaw) * math.Cos(pitch)),
	}.Normalize()
	right := front.Cross(cam.WorldUp).Normalize()
	if right.Length() < 1e-8 {
		right = front.Cross(Vec3{0, 0, -1}).Normalize()
	}
	up := right.Cross(front).Normalize()
	cam.Front, cam.Up = front, up

	w.Resources().Set(ResourceCamera, CameraSnapshot{
		Position: pos,
		Front:    front,
		Right:    right,
		Up:       up,
		Yaw:      cam.Yaw,
		FOV:      cam.FOV,
		Near:     cam.Near,
		Far:      cam.Far,
	})
	return ecs.SystemResult{}
}

// LightData is the per-light record the lighting system publishes.
type LightData struct {
	Color     Vec3
	Intensity float32
	Position  Vec3
	Range     float32
	Direction Vec3
	SpotAngle float32
	Type      LightType
}

// LightSceneData is the light list for one frame.
type LightSceneData struct {
	Lights []LightData
}

// LightingSystem collects every positioned light, up to MaxLights, into a
// LightSceneData resource.
type LightingSystem struct{}

func (LightingSystem) Descriptor() ecs.SystemDescriptor {
	return ecs.SystemDescriptor{
		Name:     "lighting",
		Tags:     []string{"scene"},
		RunEvery: ecs.TickInterval{Every: 1},
	}
}

func (LightingSystem) Run(ctx context.Context, exec ecs.ExecutionContext) ecs.SystemResult {
	w := exec.World()
	entities := ecs.Query2[Transform, LightComponent](w)
	data := LightSceneData{Lights: make([]LightData, 0, min(len(entities), MaxLights))}
	for _, e := range entities {
		if len(data.Lights) >= MaxLights {
			exec.Logger().Info("light limit reached", "max", MaxLights, "lights", len(entities))
			break
		}
		t, err := ecs.GetComponent[Transform](w, e)
		if err != nil {
			return ecs.SystemResult{Err: err}
		}
		light, err := ecs.GetComponent[LightComponent](w, e)
		if err != nil {
			return ecs.SystemResult{Err: err}
		}
		ld := LightData{
			Color:     light.Color,
			Intensity: light.Intensity,
			Position:  t.Position,
			Range:     light.Range,
			Direction: t.Position.Normalize(),
			Type:      light.Type,
		}
		if light.Type == LightSpot {
			if spot, err := ecs.GetComponent[SpotLightComponent](w, e); err == nil {
				ld.SpotAngle = spot.OuterAngle
			}
		}
		data.Lights = append(data.Lights, ld)
	}
	w.Resources().Set(ResourceLights, data)
	return ecs.SystemResult{}
}

// Canvas is the drawing surface of the render system. tcell.Screen satisfies it.
type Canvas interface {
	Clear()
	Size() (int, int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// RenderSystem draws every Renderable with a Transform as a glyph on a top-down view
// centred on the camera. World X maps to columns and Z to rows, rotated by camera yaw.
type RenderSystem struct {
	Canvas Canvas
	// ColumnsPerUnit and RowsPerUnit scale world units to cells. Zero means 2 and 1.
	ColumnsPerUnit float32
	RowsPerUnit    float32
}

func (RenderSystem) Descriptor() ecs.SystemDescriptor {
	return ecs.SystemDescriptor{
		Name:     "render",
		Tags:     []string{"scene"},
		RunEvery: ecs.TickInterval{Every: 1},
	}
}

type drawItem struct {
	x, y   int
	height float32
	glyph  string
	style  tcell.Style
}

func (r RenderSystem) Run(ctx context.Context, exec ecs.ExecutionContext) ecs.SystemResult {
	if r.Canvas == nil {
		return ecs.SystemResult{Skipped: true}
	}
	w := exec.World()
	cam, ok := ecs.Resource[CameraSnapshot](w, ResourceCamera)
	if !ok {
		cam = CameraSnapshot{Front: Vec3{0, 0, -1}, Right: Vec3{1, 0, 0}, Far: 100}
	}
	lights, _ := ecs.Resource[LightSceneData](w, ResourceLights)

	colScale, rowScale := r.ColumnsPerUnit, r.RowsPerUnit
	if colScale == 0 {
		colScale = 2
	}
	if rowScale == 0 {
		rowScale = 1
	}

	r.Canvas.Clear()
	width, height := r.Canvas.Size()
	cx, cy := width/2, height/2

	// Flatten the view onto the ground plane.
	right := Vec3{cam.Right.X, 0, cam.Right.Z}.Normalize()
	front := Vec3{cam.Front.X, 0, cam.Front.Z}.Normalize()

	var items []drawItem
	for _, e := range ecs.Query2[Renderable, Transform](w) {
		rend, err := ecs.GetComponent[Renderable](w, e)
		if err != nil {
			return ecs.SystemResult{Err: err}
		}
		t, err := ecs.GetComponent[Transform](w, e)
		if err != nil {
			return ecs.SystemResult{Err: err}
		}
		d := t.Position.Sub(cam.Position)
		planar := Vec3{d.X, 0, d.Z}
		if cam.Far > 0 && planar.Length() > cam.Far {
			continue
		}
		x := cx + int(math.Round(float64(planar.Dot(right)*colScale)))
		y := cy - int(math.Round(float64(planar.Dot(front)*rowScale)))
		if x < 0 || y < 0 || x >= width || y >= height {
			continue
		}
		style := tcell.StyleDefault.Foreground(rend.Color)
		if len(lights.Lights) == 0 {
			style = style.Dim(true)
		}
		items = append(items, drawItem{x: x, y: y, height: t.Position.Y, glyph: rend.Glyph, style: style})
	}

	// Higher objects are drawn last so they cover what is below them.
	slices.SortStableFunc(items, func(a, b drawItem) int {
		switch {
		case a.height < b.height:
			return -1
		case a.height > b.height:
			return 1
		}
		return 0
	})
	for _, it := range items {
		putGlyph(r.Canvas, it.x, it.y, it.glyph, it.style)
	}
	w.Resources().Set(ResourceDrawn, len(items))
	return ecs.SystemResult{}
}

// putGlyph draws a glyph, which may be a multi-rune emoji, at (x, y). Wide glyphs also
// blank the following cell.
func putGlyph(c Canvas, x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	var comb []rune
	if len(runes) > 1 {
		comb = runes[1:]
	}
	c.SetContent(x, y, runes[0], comb, style)
	if runewidth.StringWidth(glyph) == 2 {
		c.SetContent(x+1, y, ' ', nil, style)
	}
}

var (
	_ ecs.System = CameraSystem{}
	_ ecs.System = LightingSystem{}
	_ ecs.System = RenderSystem{}
)
