package sceneio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/corvidlabs/rtrace/internal/camera"
	"github.com/corvidlabs/rtrace/internal/light"
	"github.com/corvidlabs/rtrace/internal/material"
	"github.com/corvidlabs/rtrace/internal/primitive"
	"github.com/corvidlabs/rtrace/internal/scene"
	"github.com/corvidlabs/rtrace/internal/vecmath"
	"github.com/corvidlabs/rtrace/internal/xform"
)

func (v vec3JSON) toVec3() vecmath.Vec3 { return vecmath.NewVec3(v[0], v[1], v[2]) }

// MeshSource supplies the triangle soup for a mesh object's filename.
// Loading and ASCII/binary STL detection is out of scope for the core
// (spec.md §9); cmd/rtrace wires internal/stl as the concrete MeshSource.
type MeshSource interface {
	Load(filename string) ([]primitive.Triangle, error)
}

// Decode parses a scene document from r.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, &scene.InvalidSceneError{Reason: "malformed scene document", Err: err}
	}
	return &doc, nil
}

// Build converts a parsed Document into a scene.Scene, resolving mesh
// filenames through meshes (nil is fine for documents with no mesh
// objects).
func Build(doc *Document, meshes MeshSource) (*scene.Scene, error) {
	cam, err := buildCamera(&doc.Camera)
	if err != nil {
		return nil, err
	}

	prims := make([]*primitive.Primitive, 0, len(doc.Objects))
	for i := range doc.Objects {
		p, err := buildObject(&doc.Objects[i], meshes)
		if err != nil {
			return nil, fmt.Errorf("object[%d]: %w", i, err)
		}
		prims = append(prims, p)
	}

	lights := make([]*light.Light, 0, len(doc.Lights))
	for i := range doc.Lights {
		l, err := buildLight(&doc.Lights[i])
		if err != nil {
			return nil, fmt.Errorf("light[%d]: %w", i, err)
		}
		lights = append(lights, l)
	}

	settings, err := buildSettings(&doc.SceneSettings)
	if err != nil {
		return nil, err
	}

	return scene.NewScene(cam, prims, lights, settings)
}

func buildCamera(d *CameraDoc) (*camera.Camera, error) {
	pos, target, up := d.Position.toVec3(), d.Target.toVec3(), d.Up.toVec3()
	switch d.Kind {
	case "ortho":
		var grid *camera.Grid
		if d.Grid != nil {
			color, err := parseColor(d.Grid.Color)
			if err != nil {
				return nil, err
			}
			grid = &camera.Grid{Pitch: d.Grid.Pitch, Color: color, Thickness: d.Grid.Thickness}
		}
		cam, err := camera.NewOrthoCamera(pos, target, up, d.Width, d.Height, grid)
		if err != nil {
			return nil, &scene.InvalidSceneError{Reason: "camera", Err: err}
		}
		return cam, nil
	case "perspective":
		cam, err := camera.NewPerspectiveCamera(pos, target, up, d.Width, d.Height, d.FovDegrees)
		if err != nil {
			return nil, &scene.InvalidSceneError{Reason: "camera", Err: err}
		}
		return cam, nil
	default:
		return nil, &scene.InvalidSceneError{Reason: fmt.Sprintf("unknown camera kind %q", d.Kind)}
	}
}

func buildObject(d *ObjectDoc, meshes MeshSource) (*primitive.Primitive, error) {
	mat, err := buildMaterial(&d.Material)
	if err != nil {
		return nil, err
	}

	var p *primitive.Primitive
	switch d.Kind {
	case "sphere":
		p, err = primitive.NewSpherePrimitive(d.Center.toVec3(), d.Radius, mat)
	case "plane":
		p, err = primitive.NewPlanePrimitive(d.Point.toVec3(), d.Normal.toVec3(), mat)
	case "cube":
		p, err = primitive.NewCubePrimitive(d.Center.toVec3(), d.Size.toVec3(), mat)
	case "mesh":
		p, err = buildMesh(d, mat, meshes)
	default:
		return nil, &scene.InvalidSceneError{Reason: fmt.Sprintf("unknown object kind %q", d.Kind)}
	}
	if err != nil {
		return nil, &scene.InvalidSceneError{Reason: "object", Err: err}
	}

	if len(d.Transform) > 0 {
		t, err := xform.Parse(d.Transform)
		if err != nil {
			return nil, &scene.InvalidTransformError{Err: err}
		}
		if err := p.ApplyTransform(t); err != nil {
			return nil, &scene.InvalidTransformError{Err: err}
		}
	}
	return p, nil
}

func buildMesh(d *ObjectDoc, mat material.Material, meshes MeshSource) (*primitive.Primitive, error) {
	if meshes == nil {
		return nil, fmt.Errorf("mesh object references filename %q but no mesh source was supplied", d.Filename)
	}
	tris, err := meshes.Load(d.Filename)
	if err != nil {
		return nil, fmt.Errorf("loading mesh %q: %w", d.Filename, err)
	}
	if len(tris) == 0 {
		return nil, &scene.DegenerateMeshError{Name: d.Filename}
	}
	return primitive.NewMeshPrimitive(tris, d.Smooth, mat)
}

func buildMaterial(d *MaterialDoc) (material.Material, error) {
	color, err := parseColor(d.Color)
	if err != nil {
		return material.Material{}, err
	}
	mat := material.Material{
		Color:        color,
		Ambient:      d.Ambient,
		Diffuse:      d.Diffuse,
		Specular:     d.Specular,
		Shininess:    d.Shininess,
		Reflectivity: d.Reflectivity,
	}
	if d.Texture != nil {
		tex, err := buildTexture(d.Texture)
		if err != nil {
			return material.Material{}, err
		}
		mat.Texture = tex
	}
	return mat, nil
}

func buildTexture(d *TextureDoc) (*material.Texture, error) {
	switch d.Kind {
	case "grid":
		lineColor, err := parseColor(d.LineColor)
		if err != nil {
			return nil, err
		}
		return material.NewGridTexture(lineColor, d.LineWidth, d.CellSize), nil
	case "checkerboard":
		if d.MaterialA == nil || d.MaterialB == nil {
			return nil, fmt.Errorf("checkerboard texture requires material_a and material_b")
		}
		a, err := buildMaterial(d.MaterialA)
		if err != nil {
			return nil, err
		}
		b, err := buildMaterial(d.MaterialB)
		if err != nil {
			return nil, err
		}
		return material.NewCheckerboardTexture(&a, &b), nil
	default:
		return nil, fmt.Errorf("unknown texture kind %q", d.Kind)
	}
}

func buildLight(d *LightDoc) (*light.Light, error) {
	color, err := parseColor(d.Color)
	if err != nil {
		return nil, err
	}
	pos := d.Position.toVec3()
	if d.Diameter == nil || *d.Diameter <= 0 {
		l, err := light.NewPointLight(pos, color, d.Intensity)
		if err != nil {
			return nil, &scene.InvalidSceneError{Reason: "light", Err: err}
		}
		return l, nil
	}
	l, err := light.NewDiskLight(pos, color, d.Intensity, *d.Diameter)
	if err != nil {
		return nil, &scene.InvalidSceneError{Reason: "light", Err: err}
	}
	return l, nil
}

func buildSettings(d *SettingsDoc) (scene.Settings, error) {
	ambientColor, err := parseColor(d.AmbientIllumination.Color)
	if err != nil {
		return scene.Settings{}, err
	}
	bgColor, err := parseColor(d.BackgroundColor)
	if err != nil {
		return scene.Settings{}, err
	}
	settings := scene.Settings{
		Ambient:         scene.AmbientIllumination{Color: ambientColor, Intensity: d.AmbientIllumination.Intensity},
		BackgroundColor: bgColor,
	}

	if d.Fog != nil {
		fogColor, err := parseColor(d.Fog.Color)
		if err != nil {
			return scene.Settings{}, err
		}
		settings.Fog = &scene.Fog{Color: fogColor, Density: d.Fog.Density, Start: d.Fog.Start, End: d.Fog.End}
	}

	if d.Outline != nil {
		outlineColor, err := parseColor(d.Outline.Color)
		if err != nil {
			return scene.Settings{}, err
		}
		settings.Outline = &scene.Outline{
			Enabled:       d.Outline.Enabled,
			DepthWeight:   d.Outline.DepthWeight,
			NormalWeight:  d.Outline.NormalWeight,
			Threshold:     d.Outline.Threshold,
			Color:         outlineColor,
			Thickness:     d.Outline.Thickness,
			Use8Neighbors: d.Outline.Use8Neighbors,
		}
	}

	return settings, nil
}

func parseColor(s string) (vecmath.Color, error) {
	c, err := vecmath.ParseHexColor(s)
	if err != nil {
		return vecmath.Color{}, &scene.InvalidColorError{Err: err}
	}
	return c, nil
}
