package sceneio

import (
	"strings"
	"testing"

	"github.com/corvidlabs/rtrace/internal/primitive"
)

const minimalSceneJSON = `{
  "camera": {
    "kind": "ortho",
    "position": [0, 0, 10],
    "target": [0, 0, 0],
    "up": [0, 1, 0],
    "width": 6,
    "height": 6
  },
  "objects": [
    {
      "kind": "sphere",
      "center": [0, 0, 0],
      "radius": 1.5,
      "material": {"color": "#FF0000", "ambient": 0.1, "diffuse": 0.8, "specular": 0.4, "shininess": 32}
    }
  ],
  "lights": [
    {"position": [3, 3, 5], "color": "#FFFFFF", "intensity": 1.0}
  ],
  "scene_settings": {
    "ambient_illumination": {"color": "#FFFFFF", "intensity": 0.1},
    "background_color": "#000000"
  }
}`

func TestDecode_MinimalScene(t *testing.T) {
	doc, err := Decode(strings.NewReader(minimalSceneJSON))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if doc.Camera.Kind != "ortho" {
		t.Errorf("camera kind = %q, want ortho", doc.Camera.Kind)
	}
	if len(doc.Objects) != 1 || doc.Objects[0].Kind != "sphere" {
		t.Fatalf("objects = %+v", doc.Objects)
	}
}

func TestDecode_RejectsUnknownFields(t *testing.T) {
	bad := strings.Replace(minimalSceneJSON, `"radius": 1.5,`, `"radius": 1.5, "bogus_field": 1,`, 1)
	if _, err := Decode(strings.NewReader(bad)); err == nil {
		t.Fatal("expected an error for an unrecognized field")
	}
}

func TestBuild_MinimalScene(t *testing.T) {
	doc, err := Decode(strings.NewReader(minimalSceneJSON))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	s, err := Build(doc, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if s.Camera == nil {
		t.Fatal("expected a camera")
	}
}

func TestBuild_RejectsBadColor(t *testing.T) {
	doc, err := Decode(strings.NewReader(strings.Replace(minimalSceneJSON, "#FF0000", "not-a-color", 1)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, err := Build(doc, nil); err == nil {
		t.Fatal("expected an InvalidColorError")
	}
}

func TestBuild_RejectsUnknownCameraKind(t *testing.T) {
	doc, err := Decode(strings.NewReader(strings.Replace(minimalSceneJSON, `"kind": "ortho"`, `"kind": "fisheye"`, 1)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, err := Build(doc, nil); err == nil {
		t.Fatal("expected an error for an unknown camera kind")
	}
}

func TestBuild_RejectsMeshWithoutSource(t *testing.T) {
	withMesh := strings.Replace(minimalSceneJSON, `"kind": "sphere",
      "center": [0, 0, 0],
      "radius": 1.5,`, `"kind": "mesh",
      "filename": "teapot.stl",`, 1)
	doc, err := Decode(strings.NewReader(withMesh))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, err := Build(doc, nil); err == nil {
		t.Fatal("expected an error when a mesh object has no mesh source")
	}
}

type stubMeshSource struct {
	triangles []primitive.Triangle
	err       error
}

func (s stubMeshSource) Load(filename string) ([]primitive.Triangle, error) {
	return s.triangles, s.err
}

func TestBuild_RejectsDegenerateMesh(t *testing.T) {
	withMesh := strings.Replace(minimalSceneJSON, `"kind": "sphere",
      "center": [0, 0, 0],
      "radius": 1.5,`, `"kind": "mesh",
      "filename": "empty.stl",`, 1)
	doc, err := Decode(strings.NewReader(withMesh))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, err := Build(doc, stubMeshSource{}); err == nil {
		t.Fatal("expected a DegenerateMeshError for an empty triangle list")
	}
}

func TestBuild_AppliesTransform(t *testing.T) {
	withTransform := strings.Replace(minimalSceneJSON, `"radius": 1.5,`, `"radius": 1.5, "transform": ["translate(1,0,0)"],`, 1)
	doc, err := Decode(strings.NewReader(withTransform))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	s, err := Build(doc, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := s.Primitives[0].Sphere.Center.X; got != 1 {
		t.Errorf("translated sphere center.X = %v, want 1", got)
	}
}
