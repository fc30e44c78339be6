package scene

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/DangerosoDavo/sigecs"
)

// FormatVersion is the only world file version Parse accepts.
const FormatVersion = "V0.1.0"

var (
	ErrUnsupportedVersion = errors.New("scene: unsupported world file version")
	ErrUnknownAsset       = errors.New("scene: unknown asset")
	ErrInvalidValue       = errors.New("scene: invalid value")
)

const (
	keyShaderBegin = "BEGINSHADER"
	keyShaderVert  = "SHADERVERT"
	keyShaderFrag  = "SHADERFRAG"
	keyShaderEnd   = "ENDSHADER"
	keyMeshBegin   = "BEGINMESH"
	keyMeshPath    = "MESH"
	keyMeshEnd     = "ENDMESH"
	keyTexBegin    = "BEGINTEX"
	keyTexPath     = "TEX"
	keyTexEnd      = "ENDTEX"
	keyEntityBegin = "BEGINENTITY"
	keyEntityEnd   = "ENDENTITY"
)

// Blueprint keys recognised by Spawn.
const (
	FieldPosition   = "POS"
	FieldRotation   = "ROT"
	FieldScale      = "SCALE"
	FieldMesh       = "MESH"
	FieldGlyph      = "GLYPH"
	FieldColor      = "COLOR"
	FieldTextures   = "TEX"
	FieldLight      = "LIGHT"
	FieldLightColor = "LIGHTCOLOR"
	FieldIntensity  = "INTENSITY"
	FieldRange      = "RANGE"
	FieldSpot       = "SPOT"
	FieldCamera     = "CAMERA"
	FieldYaw        = "YAW"
	FieldPitch      = "PITCH"
)

const defaultGlyph = "#"

// Blueprint is one BEGINENTITY block: a name and its "KEY: value" lines.
type Blueprint struct {
	Name string
	Data map[string]string
}

// Scene is the parsed content of a world file.
type Scene struct {
	Shaders  map[string][]string
	Meshes   map[string]string
	Textures map[string]string
	Entities []Blueprint
}

type readPhase int

const (
	phaseFind readPhase = iota
	phaseShader
	phaseMesh
	phaseTexture
	phaseEntity
)

// Load opens and parses a world file.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene: open world file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a world file. The first line must be the version. Blank lines and lines
// starting with '#' are ignored, as are unknown lines inside blocks.
func Parse(r io.Reader) (*Scene, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("scene: read version: %w", err)
		}
		return nil, fmt.Errorf("%w: empty file", ErrUnsupportedVersion)
	}
	if version := strings.TrimSpace(sc.Text()); version != FormatVersion {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, version)
	}

	s := &Scene{
		Shaders:  make(map[string][]string),
		Meshes:   make(map[string]string),
		Textures: make(map[string]string),
	}
	phase := phaseFind
	var name string
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch phase {
		case phaseFind:
			switch {
			case strings.HasPrefix(line, keyShaderBegin):
				name, phase = argument(line, keyShaderBegin), phaseShader
			case strings.HasPrefix(line, keyMeshBegin):
				name, phase = argument(line, keyMeshBegin), phaseMesh
			case strings.HasPrefix(line, keyTexBegin):
				name, phase = argument(line, keyTexBegin), phaseTexture
			case strings.HasPrefix(line, keyEntityBegin):
				name, phase = argument(line, keyEntityBegin), phaseEntity
				s.Entities = append(s.Entities, Blueprint{Name: name, Data: make(map[string]string)})
			}
		case phaseShader:
			switch {
			case line == keyShaderEnd:
				phase = phaseFind
			case strings.HasPrefix(line, keyShaderVert):
				s.Shaders[name] = append(s.Shaders[name], argument(line, keyShaderVert))
			case strings.HasPrefix(line, keyShaderFrag):
				s.Shaders[name] = append(s.Shaders[name], argument(line, keyShaderFrag))
			}
		case phaseMesh:
			switch {
			case line == keyMeshEnd:
				phase = phaseFind
			case strings.HasPrefix(line, keyMeshPath):
				s.Meshes[name] = argument(line, keyMeshPath)
			}
		case phaseTexture:
			switch {
			case line == keyTexEnd:
				phase = phaseFind
			case strings.HasPrefix(line, keyTexPath):
				s.Textures[name] = argument(line, keyTexPath)
			}
		case phaseEntity:
			if line == keyEntityEnd {
				phase = phaseFind
				continue
			}
			if key, value, ok := strings.Cut(line, ": "); ok {
				s.Entities[len(s.Entities)-1].Data[strings.TrimSpace(key)] = strings.TrimSpace(value)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scene: read world file: %w", err)
	}
	return s, nil
}

func argument(line, keyword string) string {
	return strings.TrimSpace(line[len(keyword):])
}

// Spawn creates one entity per blueprint and attaches the components its fields
// describe. On error the entities spawned so far are returned with it.
func Spawn(w *ecs.World, s *Scene) ([]ecs.Entity, error) {
	spawned := make([]ecs.Entity, 0, len(s.Entities))
	for _, bp := range s.Entities {
		e, err := w.TryCreateEntity()
		if err != nil {
			return spawned, err
		}
		spawned = append(spawned, e)
		if err := spawnBlueprint(w, s, e, bp); err != nil {
			return spawned, fmt.Errorf("scene: entity %q: %w", bp.Name, err)
		}
	}
	w.Logger().Info("scene spawned", "entities", len(spawned))
	return spawned, nil
}

func spawnBlueprint(w *ecs.World, s *Scene, e ecs.Entity, bp Blueprint) error {
	if pos, ok := bp.Data[FieldPosition]; ok {
		t := NewTransform(Vec3{})
		var err error
		if t.Position, err = parseVec3(FieldPosition, pos); err != nil {
			return err
		}
		if rot, ok := bp.Data[FieldRotation]; ok {
			if t.Rotation, err = parseVec3(FieldRotation, rot); err != nil {
				return err
			}
		}
		if scale, ok := bp.Data[FieldScale]; ok {
			if t.Scale, err = parseVec3(FieldScale, scale); err != nil {
				return err
			}
		}
		if err := ecs.AddComponent(w, e, t); err != nil {
			return err
		}
	}

	if mesh, ok := bp.Data[FieldMesh]; ok {
		r, err := renderableFor(s, bp, mesh)
		if err != nil {
			return err
		}
		if err := ecs.AddComponent(w, e, r); err != nil {
			return err
		}
	}

	if kind, ok := bp.Data[FieldLight]; ok {
		if err := spawnLight(w, e, bp, kind); err != nil {
			return err
		}
	}

	if cam, ok := bp.Data[FieldCamera]; ok {
		c, err := cameraFor(bp, cam)
		if err != nil {
			return err
		}
		if err := ecs.AddComponent(w, e, c); err != nil {
			return err
		}
	}
	return nil
}

func renderableFor(s *Scene, bp Blueprint, mesh string) (Renderable, error) {
	path, ok := s.Meshes[mesh]
	if !ok {
		return Renderable{}, fmt.Errorf("%w: mesh %q", ErrUnknownAsset, mesh)
	}
	r := Renderable{Mesh: path, Glyph: defaultGlyph, Color: tcell.ColorWhite}
	if glyph := bp.Data[FieldGlyph]; glyph != "" {
		r.Glyph = glyph
	}
	if name, ok := bp.Data[FieldColor]; ok {
		c := tcell.GetColor(name)
		if c == tcell.ColorDefault {
			return Renderable{}, fmt.Errorf("%w: %s: %q", ErrInvalidValue, FieldColor, name)
		}
		r.Color = c
	}
	if list, ok := bp.Data[FieldTextures]; ok {
		for _, tex := range strings.Split(list, ",") {
			tex = strings.TrimSpace(tex)
			texPath, ok := s.Textures[tex]
			if !ok {
				return Renderable{}, fmt.Errorf("%w: texture %q", ErrUnknownAsset, tex)
			}
			r.Textures = append(r.Textures, texPath)
		}
	}
	return r, nil
}

func spawnLight(w *ecs.World, e ecs.Entity, bp Blueprint, kind string) error {
	light := DefaultLight()
	switch strings.ToLower(kind) {
	case "directional":
		light.Type = LightDirectional
	case "point":
		light.Type = LightPoint
	case "spot":
		light.Type = LightSpot
	default:
		return fmt.Errorf("%w: %s: %q", ErrInvalidValue, FieldLight, kind)
	}
	var err error
	if v, ok := bp.Data[FieldLightColor]; ok {
		if light.Color, err = parseVec3(FieldLightColor, v); err != nil {
			return err
		}
	}
	if v, ok := bp.Data[FieldIntensity]; ok {
		if light.Intensity, err = parseFloat(FieldIntensity, v); err != nil {
			return err
		}
	}
	if v, ok := bp.Data[FieldRange]; ok {
		if light.Range, err = parseFloat(FieldRange, v); err != nil {
			return err
		}
	}
	if err := ecs.AddComponent(w, e, light); err != nil {
		return err
	}

	if light.Type != LightSpot {
		return nil
	}
	spot := SpotLightComponent{InnerAngle: 0.9, OuterAngle: 0.8}
	if v, ok := bp.Data[FieldSpot]; ok {
		vals, err := parseFloats(FieldSpot, v, 2)
		if err != nil {
			return err
		}
		spot.InnerAngle, spot.OuterAngle = vals[0], vals[1]
	}
	return ecs.AddComponent(w, e, spot)
}

// cameraFor reads "CAMERA: fov,near,far" plus optional YAW and PITCH.
func cameraFor(bp Blueprint, value string) (CameraComponent, error) {
	c := DefaultCamera()
	vals, err := parseFloats(FieldCamera, value, 3)
	if err != nil {
		return c, err
	}
	c.FOV, c.Near, c.Far = vals[0], vals[1], vals[2]
	if pos, ok := bp.Data[FieldPosition]; ok {
		if c.Position, err = parseVec3(FieldPosition, pos); err != nil {
			return c, err
		}
	}
	if v, ok := bp.Data[FieldYaw]; ok {
		if c.Yaw, err = parseFloat(FieldYaw, v); err != nil {
			return c, err
		}
	}
	if v, ok := bp.Data[FieldPitch]; ok {
		if c.Pitch, err = parseFloat(FieldPitch, v); err != nil {
			return c, err
		}
	}
	return c, nil
}

func parseVec3(field, value string) (Vec3, error) {
	vals, err := parseFloats(field, value, 3)
	if err != nil {
		return Vec3{}, err
	}
	return Vec3{vals[0], vals[1], vals[2]}, nil
}

// parseFloats reads the first n comma separated floats of value. Extra values are
// ignored.
func parseFloats(field, value string, n int) ([]float32, error) {
	parts := strings.Split(value, ",")
	if len(parts) < n {
		return nil, fmt.Errorf("%w: %s: want %d components, got %d", ErrInvalidValue, field, n, len(parts))
	}
	out := make([]float32, n)
	for i := range out {
		f, err := parseFloat(field, parts[i])
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func parseFloat(field, value string) (float32, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q", ErrInvalidValue, field, value)
	}
	return float32(f), nil
}
