package scene

import (
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/DangerosoDavo/sigecs"
)

func TestLoadDemoWorld(t *testing.T) {
	s, err := Load("testdata/demo.world")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := s.Shaders["basic"]; len(got) != 2 || got[0] != "shaders/basic.vert" || got[1] != "shaders/basic.frag" {
		t.Fatalf("unexpected shader entry: %v", got)
	}
	if s.Meshes["cube"] != "meshes/cube.obj" || s.Textures["bark"] != "textures/bark.png" {
		t.Fatalf("unexpected assets: %v %v", s.Meshes, s.Textures)
	}
	if len(s.Entities) != 5 {
		t.Fatalf("expected 5 blueprints, got %d", len(s.Entities))
	}
	crate := s.Entities[1]
	if crate.Name != "crate" || crate.Data[FieldPosition] != "2,0,-3" || crate.Data[FieldMesh] != "cube" {
		t.Fatalf("unexpected crate blueprint: %+v", crate)
	}
}

func TestParseRejectsUnknownVersion(t *testing.T) {
	_, err := Parse(strings.NewReader("V9.9.9\nBEGINENTITY a\nENDENTITY\n"))
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
	if _, err := Parse(strings.NewReader("")); !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion for empty input, got %v", err)
	}
}

func TestParseIgnoresCommentsAndMalformedLines(t *testing.T) {
	input := "V0.1.0\n# comment\n\nBEGINENTITY thing\n# inside\nPOS: 1,2,3\nno delimiter here\nENDENTITY\n"
	s, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(s.Entities) != 1 || len(s.Entities[0].Data) != 1 {
		t.Fatalf("unexpected blueprints: %+v", s.Entities)
	}
}

func TestSpawnDemoWorld(t *testing.T) {
	s, err := Load("testdata/demo.world")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	w := ecs.NewWorld()
	entities, err := Spawn(w, s)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if len(entities) != 5 {
		t.Fatalf("expected 5 entities, got %d", len(entities))
	}

	if got := ecs.Query1[Transform](w); len(got) != 5 {
		t.Fatalf("every blueprint has a position, got %v", got)
	}
	if got := ecs.Query2[Renderable, Transform](w); len(got) != 2 {
		t.Fatalf("expected 2 renderables, got %v", got)
	}
	if got := ecs.Query2[Transform, LightComponent](w); len(got) != 2 {
		t.Fatalf("expected 2 lights, got %v", got)
	}
	if got := ecs.Query1[SpotLightComponent](w); len(got) != 1 || got[0] != entities[4] {
		t.Fatalf("expected only the lamp to be a spot light, got %v", got)
	}

	crate, err := ecs.GetComponent[Transform](w, entities[1])
	if err != nil {
		t.Fatalf("crate transform: %v", err)
	}
	if crate.Rotation != (Vec3{0, 45, 0}) || crate.Scale != (Vec3{1, 1, 1}) {
		t.Fatalf("unexpected crate transform: %+v", *crate)
	}

	oak, err := ecs.GetComponent[Renderable](w, entities[2])
	if err != nil {
		t.Fatalf("oak renderable: %v", err)
	}
	if oak.Mesh != "meshes/tree.obj" || oak.Glyph != "🌲" || oak.Color != tcell.ColorGreen {
		t.Fatalf("unexpected oak renderable: %+v", *oak)
	}
	if len(oak.Textures) != 1 || oak.Textures[0] != "textures/bark.png" {
		t.Fatalf("unexpected oak textures: %v", oak.Textures)
	}

	cam, err := ecs.GetComponent[CameraComponent](w, entities[0])
	if err != nil {
		t.Fatalf("camera: %v", err)
	}
	if cam.FOV != 75 || cam.Far != 100 || cam.Position != (Vec3{0, 1, 0}) {
		t.Fatalf("unexpected camera: %+v", *cam)
	}

	lamp, _ := ecs.GetComponent[LightComponent](w, entities[4])
	spot, _ := ecs.GetComponent[SpotLightComponent](w, entities[4])
	if lamp.Type != LightSpot || lamp.Range != 6 || spot.InnerAngle != 0.95 || spot.OuterAngle != 0.85 {
		t.Fatalf("unexpected lamp: %+v %+v", *lamp, *spot)
	}
}

func TestSpawnReportsBadField(t *testing.T) {
	input := "V0.1.0\nBEGINENTITY broken\nPOS: 1,two,3\nENDENTITY\n"
	s, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	w := ecs.NewWorld()
	spawned, err := Spawn(w, s)
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	if !strings.Contains(err.Error(), FieldPosition) || !strings.Contains(err.Error(), "broken") {
		t.Fatalf("error should name the field and entity: %v", err)
	}
	if len(spawned) != 1 {
		t.Fatalf("expected the partially spawned entity to be returned, got %v", spawned)
	}
}

func TestSpawnReportsUnknownMesh(t *testing.T) {
	input := "V0.1.0\nBEGINENTITY ghost\nPOS: 0,0,0\nMESH: missing\nENDENTITY\n"
	s, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := Spawn(ecs.NewWorld(), s); !errors.Is(err, ErrUnknownAsset) {
		t.Fatalf("expected ErrUnknownAsset, got %v", err)
	}
}
