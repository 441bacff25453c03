package scene

import (
	"os"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/wombatlabs/worldbridge/bridge"
	"github.com/wombatlabs/worldbridge/errors"
	"github.com/wombatlabs/worldbridge/world"
)

// Scene is the on-disk description of a world.
type Scene struct {
	Name     string   `toml:"name"`
	Entities []Entity `toml:"entities"`
	Cameras  []Camera `toml:"cameras"`
}

// Entity declares one entity. Parent refers to another entity's label
// and must appear earlier in the file.
type Entity struct {
	Label      string              `toml:"label"`
	Parent     string              `toml:"parent"`
	Transform  *TransformSpec      `toml:"transform"`
	Properties map[string]Property `toml:"properties"`
}

// TransformSpec is a local transform. Omitted fields keep identity
// values.
type TransformSpec struct {
	Position []float64 `toml:"position"`
	Rotation []float64 `toml:"rotation"`
	Scale    []float64 `toml:"scale"`
}

// Property is a typed property value. Type selects which field of
// Value is read.
type Property struct {
	Type  string         `toml:"type"`
	Value toml.Primitive `toml:"value"`
}

// Camera declares a camera attached to an entity by label.
type Camera struct {
	Label       string    `toml:"label"`
	Entity      string    `toml:"entity"`
	Eye         []float64 `toml:"eye"`
	Target      []float64 `toml:"target"`
	Up          []float64 `toml:"up"`
	Aspect      float64   `toml:"aspect"`
	FovY        float64   `toml:"fovy"`
	ZNear       float64   `toml:"znear"`
	ZFar        float64   `toml:"zfar"`
	Yaw         float64   `toml:"yaw"`
	Pitch       float64   `toml:"pitch"`
	Speed       float64   `toml:"speed"`
	Sensitivity float64   `toml:"sensitivity"`
}

// Load parses a scene file.
func Load(path string) (*Scene, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, toml.MetaData{}, errors.New(errors.PhaseScene, errors.KindNotFound).
			Path(path).Cause(err).Build()
	}
	return Parse(data)
}

// Parse decodes scene TOML. The metadata is needed later to decode
// property primitives.
func Parse(data []byte) (*Scene, toml.MetaData, error) {
	var s Scene
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, md, errors.Wrap(errors.PhaseScene, errors.KindInvalidInput, err, "decode scene")
	}
	return &s, md, nil
}

// Populate spawns the scene's entities and cameras into a world.
// Entities spawn in file order so duplicate labels resolve to the
// first declaration, matching lookup order.
func Populate(w *world.World, s *Scene, md toml.MetaData) error {
	log := bridge.Logger()
	byLabel := make(map[string]world.Handle, len(s.Entities))

	for _, ent := range s.Entities {
		if ent.Label == "" {
			return errors.New(errors.PhaseScene, errors.KindInvalidInput).
				Detail("entity without label").Build()
		}
		h := w.Spawn(ent.Label)
		if _, dup := byLabel[ent.Label]; !dup {
			byLabel[ent.Label] = h
		} else {
			log.Warn("duplicate entity label in scene", zap.String("label", ent.Label))
		}

		if ent.Transform != nil {
			t, err := ent.Transform.resolve()
			if err != nil {
				return err
			}
			w.SetTransform(h, t)
		}
		if ent.Parent != "" {
			parent, okp := byLabel[ent.Parent]
			if !okp {
				return errors.New(errors.PhaseScene, errors.KindNotFound).
					Detail("%s", "parent "+ent.Parent+" of "+ent.Label+" not declared earlier").Build()
			}
			if !w.SetParent(h, parent) {
				return errors.New(errors.PhaseScene, errors.KindInvalidInput).
					Detail("%s", "cannot parent "+ent.Label+" to "+ent.Parent).Build()
			}
		}
		for name, prop := range ent.Properties {
			v, err := prop.resolve(md)
			if err != nil {
				return errors.New(errors.PhaseScene, errors.KindTypeMismatch).
					Detail("%s", "property "+name+" of "+ent.Label).Cause(err).Build()
			}
			w.SetProperty(h, name, v)
		}
	}

	for _, cam := range s.Cameras {
		if cam.Entity == "" {
			return errors.New(errors.PhaseScene, errors.KindInvalidInput).
				Detail("%s", "camera "+cam.Label+" needs an entity").Build()
		}
		h, okc := byLabel[cam.Entity]
		if !okc {
			return errors.New(errors.PhaseScene, errors.KindNotFound).
				Detail("%s", "camera "+cam.Label+" targets undeclared entity "+cam.Entity).Build()
		}
		c := world.Camera{
			Label:       cam.Label,
			Eye:         f32Triple(cam.Eye),
			Target:      f32Triple(cam.Target),
			Up:          f32Triple(cam.Up),
			Aspect:      cam.Aspect,
			FovY:        cam.FovY,
			ZNear:       cam.ZNear,
			ZFar:        cam.ZFar,
			Yaw:         cam.Yaw,
			Pitch:       cam.Pitch,
			Speed:       cam.Speed,
			Sensitivity: cam.Sensitivity,
		}
		if !w.AttachCamera(h, c) {
			return errors.New(errors.PhaseScene, errors.KindInvalidHandle).
				Detail("%s", "attach camera "+cam.Label).Build()
		}
	}

	log.Info("scene populated",
		zap.String("scene", s.Name),
		zap.Int("entities", len(s.Entities)),
		zap.Int("cameras", len(s.Cameras)))
	return nil
}

func (t *TransformSpec) resolve() (world.Transform, error) {
	out := world.IdentityTransform()
	if t.Position != nil {
		if len(t.Position) != 3 {
			return out, errors.New(errors.PhaseScene, errors.KindInvalidInput).
				Detail("position needs 3 components").Build()
		}
		copy(out.Position[:], t.Position)
	}
	if t.Rotation != nil {
		if len(t.Rotation) != 4 {
			return out, errors.New(errors.PhaseScene, errors.KindInvalidInput).
				Detail("rotation needs 4 components").Build()
		}
		copy(out.Rotation[:], t.Rotation)
	}
	if t.Scale != nil {
		if len(t.Scale) != 3 {
			return out, errors.New(errors.PhaseScene, errors.KindInvalidInput).
				Detail("scale needs 3 components").Build()
		}
		copy(out.Scale[:], t.Scale)
	}
	return out, nil
}

func (p Property) resolve(md toml.MetaData) (world.Value, error) {
	switch p.Type {
	case "string":
		var v string
		if err := md.PrimitiveDecode(p.Value, &v); err != nil {
			return world.Value{}, err
		}
		return world.String(v), nil
	case "int":
		var v int32
		if err := md.PrimitiveDecode(p.Value, &v); err != nil {
			return world.Value{}, err
		}
		return world.Int(v), nil
	case "long":
		var v int64
		if err := md.PrimitiveDecode(p.Value, &v); err != nil {
			return world.Value{}, err
		}
		return world.Long(v), nil
	case "float":
		var v float32
		if err := md.PrimitiveDecode(p.Value, &v); err != nil {
			return world.Value{}, err
		}
		return world.Float(v), nil
	case "double":
		var v float64
		if err := md.PrimitiveDecode(p.Value, &v); err != nil {
			return world.Value{}, err
		}
		return world.Double(v), nil
	case "bool":
		var v bool
		if err := md.PrimitiveDecode(p.Value, &v); err != nil {
			return world.Value{}, err
		}
		return world.Bool(v), nil
	case "vec3":
		var v []float64
		if err := md.PrimitiveDecode(p.Value, &v); err != nil {
			return world.Value{}, err
		}
		if len(v) != 3 {
			return world.Value{}, errors.New(errors.PhaseScene, errors.KindInvalidInput).
				Detail("vec3 needs 3 components").Build()
		}
		return world.Vec3Value(float32(v[0]), float32(v[1]), float32(v[2])), nil
	default:
		return world.Value{}, errors.New(errors.PhaseScene, errors.KindTypeMismatch).
			Detail("%s", "unknown property type "+p.Type).Build()
	}
}

func f32Triple(v []float64) [3]float32 {
	var out [3]float32
	for i := 0; i < len(v) && i < 3; i++ {
		out[i] = float32(v[i])
	}
	return out
}
