package scene

import (
	goerrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/wombatlabs/worldbridge/errors"
	"github.com/wombatlabs/worldbridge/world"
)

const sampleScene = `
name = "arena"

[[entities]]
label = "Ground"

[entities.transform]
scale = [100.0, 1.0, 100.0]

[[entities]]
label = "Player"
parent = "Ground"

[entities.transform]
position = [0.0, 1.0, 0.0]
rotation = [0.0, 0.0, 0.0, 1.0]

[entities.properties.health]
type = "int"
value = 100

[entities.properties.name]
type = "string"
value = "Adventurer"

[entities.properties.speed]
type = "double"
value = 4.5

[entities.properties.alive]
type = "bool"
value = true

[entities.properties.velocity]
type = "vec3"
value = [1.0, 2.0, 3.0]

[[cameras]]
label = "main"
entity = "Player"
eye = [0.0, 5.0, 10.0]
target = [0.0, 0.0, 0.0]
up = [0.0, 1.0, 0.0]
aspect = 1.777
fovy = 60.0
znear = 0.1
zfar = 1000.0
`

func populate(t *testing.T, src string) (*world.World, error) {
	t.Helper()
	s, md, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	w := world.NewWorld()
	return w, Populate(w, s, md)
}

func sceneKind(t *testing.T, err error) errors.Kind {
	t.Helper()
	var be *errors.Error
	if !goerrors.As(err, &be) {
		t.Fatalf("not a boundary error: %v", err)
	}
	return be.Kind
}

func TestPopulate(t *testing.T) {
	w, err := populate(t, sampleScene)
	if err != nil {
		t.Fatalf("populate: %v", err)
	}

	ground, okv := w.Resolve("Ground")
	if !okv {
		t.Fatal("Ground missing")
	}
	player, okv := w.Resolve("Player")
	if !okv {
		t.Fatal("Player missing")
	}

	// Player sits one unit above a root scaled 100x in the ground
	// plane, so its world transform inherits that scale.
	tr, _ := w.Transform(player)
	if tr.Position[1] != 1 {
		t.Errorf("player world y = %v", tr.Position[1])
	}
	if tr.Scale[0] != 100 {
		t.Errorf("player world scale x = %v", tr.Scale[0])
	}

	local, _ := w.LocalTransform(player)
	if local.Scale[0] != 1 {
		t.Errorf("player local scale x = %v", local.Scale[0])
	}

	gt, _ := w.Transform(ground)
	if gt.Scale != (world.Vec3{100, 1, 100}) {
		t.Errorf("ground scale = %v", gt.Scale)
	}
}

func TestPopulateProperties(t *testing.T) {
	w, err := populate(t, sampleScene)
	if err != nil {
		t.Fatalf("populate: %v", err)
	}
	h, _ := w.Resolve("Player")

	cases := []struct {
		label string
		typ   world.ValueType
	}{
		{"health", world.TypeInt},
		{"name", world.TypeString},
		{"speed", world.TypeDouble},
		{"alive", world.TypeBool},
		{"velocity", world.TypeVec3},
	}
	for _, tc := range cases {
		v, okv := w.Property(h, tc.label)
		if !okv {
			t.Errorf("%s missing", tc.label)
			continue
		}
		if v.Type() != tc.typ {
			t.Errorf("%s type = %v, want %v", tc.label, v.Type(), tc.typ)
		}
	}

	v, _ := w.Property(h, "health")
	if n, okv := v.AsInt(); !okv || n != 100 {
		t.Errorf("health = %+v", v)
	}
	v, _ = w.Property(h, "velocity")
	if xyz, okv := v.AsVec3(); !okv || xyz != [3]float32{1, 2, 3} {
		t.Errorf("velocity = %+v", v)
	}
}

func TestPopulateCamera(t *testing.T) {
	w, err := populate(t, sampleScene)
	if err != nil {
		t.Fatalf("populate: %v", err)
	}

	cam, okv := w.CameraByLabel("main")
	if !okv {
		t.Fatal("camera missing")
	}
	player, _ := w.Resolve("Player")
	if cam.Attached != player {
		t.Errorf("attached = %v, want %v", cam.Attached, player)
	}
	if cam.Eye != [3]float32{0, 5, 10} {
		t.Errorf("eye = %v", cam.Eye)
	}
	if cam.FovY != 60 {
		t.Errorf("fovy = %v", cam.FovY)
	}
}

func TestParentMustBeDeclaredEarlier(t *testing.T) {
	_, err := populate(t, `
[[entities]]
label = "Child"
parent = "Parent"

[[entities]]
label = "Parent"
`)
	if sceneKind(t, err) != errors.KindNotFound {
		t.Errorf("kind = %v", sceneKind(t, err))
	}
}

func TestUnknownPropertyType(t *testing.T) {
	_, err := populate(t, `
[[entities]]
label = "E"

[entities.properties.p]
type = "quaternion"
value = 1
`)
	if sceneKind(t, err) != errors.KindTypeMismatch {
		t.Errorf("kind = %v", sceneKind(t, err))
	}
}

func TestPropertyValueTypeMismatch(t *testing.T) {
	_, err := populate(t, `
[[entities]]
label = "E"

[entities.properties.p]
type = "int"
value = "not a number"
`)
	if sceneKind(t, err) != errors.KindTypeMismatch {
		t.Errorf("kind = %v", sceneKind(t, err))
	}
}

func TestCameraNeedsEntity(t *testing.T) {
	_, err := populate(t, `
[[entities]]
label = "E"

[[cameras]]
label = "orphan"
`)
	if sceneKind(t, err) != errors.KindInvalidInput {
		t.Errorf("kind = %v", sceneKind(t, err))
	}
}

func TestCameraUndeclaredEntity(t *testing.T) {
	_, err := populate(t, `
[[cameras]]
label = "main"
entity = "Nobody"
`)
	if sceneKind(t, err) != errors.KindNotFound {
		t.Errorf("kind = %v", sceneKind(t, err))
	}
}

func TestEntityNeedsLabel(t *testing.T) {
	_, err := populate(t, `
[[entities]]
parent = "X"
`)
	if sceneKind(t, err) != errors.KindInvalidInput {
		t.Errorf("kind = %v", sceneKind(t, err))
	}
}

func TestBadTransformArity(t *testing.T) {
	_, err := populate(t, `
[[entities]]
label = "E"

[entities.transform]
position = [1.0, 2.0]
`)
	if sceneKind(t, err) != errors.KindInvalidInput {
		t.Errorf("kind = %v", sceneKind(t, err))
	}
}

func TestDuplicateLabelFirstWins(t *testing.T) {
	w, err := populate(t, `
[[entities]]
label = "Twin"

[entities.properties.order]
type = "int"
value = 1

[[entities]]
label = "Twin"

[entities.properties.order]
type = "int"
value = 2
`)
	if err != nil {
		t.Fatalf("populate: %v", err)
	}
	if w.Len() != 2 {
		t.Errorf("len = %d", w.Len())
	}
	h, _ := w.Resolve("Twin")
	v, _ := w.Property(h, "order")
	if n, okv := v.AsInt(); !okv || n != 1 {
		t.Errorf("resolved twin order = %+v", v)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.toml")
	if err := os.WriteFile(path, []byte(sampleScene), 0o644); err != nil {
		t.Fatal(err)
	}

	s, md, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Name != "arena" {
		t.Errorf("name = %q", s.Name)
	}
	w := world.NewWorld()
	if err := Populate(w, s, md); err != nil {
		t.Fatalf("populate: %v", err)
	}

	if _, _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("missing file loaded")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	_, _, err := Parse([]byte("label = = ="))
	if sceneKind(t, err) != errors.KindInvalidInput {
		t.Errorf("kind = %v", sceneKind(t, err))
	}
}
