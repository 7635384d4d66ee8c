package engine

import (
	"fmt"

	"Tekka/internal/behaviour"
	"Tekka/internal/config"
	"Tekka/internal/loader"
	"Tekka/internal/logger"
	"Tekka/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

func (e *Engine) buildScene(objects []config.Object) error {
	for _, o := range objects {
		d, err := e.buildObject(o)
		if err != nil {
			return fmt.Errorf("object %q: %w", o.Name, err)
		}
		e.Scene.Add(d)

		if o.Behaviour != nil {
			b, err := behaviour.CreateScript(o.Behaviour.Name, d.GetTransform(), behaviourParams(o.Behaviour))
			if err != nil {
				return fmt.Errorf("object %q: %w", o.Name, err)
			}
			e.Behaviours.Add(b)
		}
		logger.Log.Debug("Scene object added",
			zap.String("name", o.Name),
			zap.String("kind", o.Kind),
			zap.Bool("light", o.Light))
	}
	return nil
}

// sharedShader builds a program the first time an object needs it and hands
// it to the scene.
func (e *Engine) sharedShader(s *shaderSource) (*renderer.Shader, error) {
	if s.shader != nil {
		return s.shader, nil
	}
	if err := s.build(e.device); err != nil {
		return nil, err
	}
	return e.Scene.Share(s.shader), nil
}

func (e *Engine) buildObject(o config.Object) (renderer.Drawable, error) {
	var (
		d    renderer.Drawable
		base *renderer.Base
	)

	switch o.Kind {
	case config.KindCube:
		shader, err := e.sharedShader(e.lit)
		if err != nil {
			return nil, err
		}
		cube := renderer.NewCube(e.device, o.Name, shader)
		d, base = cube, &cube.Base

	case config.KindTexturedCube, config.KindQuad:
		shader, err := e.sharedShader(e.textured)
		if err != nil {
			return nil, err
		}
		tex, err := e.texture(o.Texture)
		if err != nil {
			return nil, err
		}
		data := renderer.CubeMeshData()
		if o.Kind == config.KindQuad {
			data = renderer.QuadMeshData()
		}
		mesh, err := renderer.NewMesh(e.device, o.Name, data, tex, shader)
		if err != nil {
			tex.Delete()
			return nil, err
		}
		d, base = mesh, &mesh.Base

	case config.KindModel:
		shader, err := e.sharedShader(e.textured)
		if err != nil {
			return nil, err
		}
		model, err := loader.LoadModel(e.device, e.Textures, o.Name, o.Model, o.Texture, shader,
			loader.Options{RecalculateNormals: o.RecalculateNormals})
		if err != nil {
			return nil, err
		}
		d, base = model, &model.Base

	default:
		return nil, fmt.Errorf("unknown kind %q", o.Kind)
	}

	base.Transform.Position = o.Position
	base.Transform.Rotation = mgl32.Vec3{
		mgl32.DegToRad(o.Rotation.X()),
		mgl32.DegToRad(o.Rotation.Y()),
		mgl32.DegToRad(o.Rotation.Z()),
	}
	base.Transform.Scale = o.Scale
	if o.Material != nil {
		base.Material = renderer.Material{
			Ambient:   o.Material.Ambient,
			Diffuse:   o.Material.Diffuse,
			Specular:  o.Material.Specular,
			Shininess: o.Material.Shininess,
		}
	}
	if o.Light {
		base.MakeLight(o.LightColor)
	}
	return d, nil
}

func (e *Engine) texture(path string) (*renderer.Texture, error) {
	if path == "" {
		return e.Textures.Default(), nil
	}
	return e.Textures.LoadTexture(path)
}

func behaviourParams(b *config.Behaviour) behaviour.Params {
	return behaviour.Params{
		Speed:     b.Speed,
		Axis:      b.Axis,
		Center:    b.Center,
		Radius:    b.Radius,
		Amplitude: b.Amplitude,
		Seed:      b.Seed,
	}
}
