// Package scene is a small 3D scene toolkit built on the ecs package. It loads V0.1.0
// world files, spawns their entities and provides camera, lighting and terminal render
// systems.
package scene

import (
	"math"

	"github.com/gdamore/tcell/v2"
)

// Vec3 is a three component float vector.
type Vec3 struct {
	X, Y, Z float32
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(o Vec3) float32 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.Dot(v))))
}

// Normalize returns the unit vector in v's direction, or the zero vector for a
// zero-length input.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Transform places an entity in the world. Rotation is Euler degrees.
type Transform struct {
	Position Vec3
	Rotation Vec3
	Scale    Vec3
}

// NewTransform returns a transform at pos with unit scale.
func NewTransform(pos Vec3) Transform {
	return Transform{Position: pos, Scale: Vec3{1, 1, 1}}
}

// Renderable marks an entity as drawable. Glyph may be a multi-rune emoji.
type Renderable struct {
	Mesh     string
	Glyph    string
	Color    tcell.Color
	Textures []string
}

// CameraComponent holds view parameters. Angles are in degrees.
type CameraComponent struct {
	FOV      float32
	Aspect   float32
	Near     float32
	Far      float32
	Position Vec3
	Front    Vec3
	Up       Vec3
	WorldUp  Vec3
	Yaw      float32
	Pitch    float32
}

// DefaultCamera returns a camera at the origin looking down -Z.
func DefaultCamera() CameraComponent {
	return CameraComponent{
		FOV:     75,
		Aspect:  0.75,
		Near:    0.01,
		Far:     100,
		Front:   Vec3{0, 0, -1},
		Up:      Vec3{0, 1, 0},
		WorldUp: Vec3{0, 1, 0},
	}
}

// LightType selects how a light is evaluated.
type LightType int

const (
	LightDirectional LightType = iota
	LightPoint
	LightSpot
)

func (t LightType) String() string {
	switch t {
	case LightDirectional:
		return "directional"
	case LightPoint:
		return "point"
	case LightSpot:
		return "spot"
	default:
		return "unknown"
	}
}

// LightComponent describes a light source positioned by the entity's Transform.
type LightComponent struct {
	Color     Vec3
	Intensity float32
	Range     float32
	Type      LightType
}

// DefaultLight returns a white directional light.
func DefaultLight() LightComponent {
	return LightComponent{Color: Vec3{1, 1, 1}, Intensity: 1, Range: 10}
}

// SpotLightComponent is only attached to spot lights. Angles are stored as cosines.
type SpotLightComponent struct {
	InnerAngle float32
	OuterAngle float32
}

func radians(deg float32) float64 {
	return float64(deg) * math.Pi / 180
}
