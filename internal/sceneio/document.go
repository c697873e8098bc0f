// Package sceneio decodes the JSON scene document from spec.md §6 into the
// core's typed scene graph. Parsing uses the standard library's
// encoding/json exclusively (see SPEC_FULL.md's ambient-stack section: the
// retrieval pack shows no third-party JSON library, and the document shape
// here is simple enough that encoding/json's struct tags are a direct fit).
package sceneio

// vec3JSON decodes a "[x, y, z]" JSON array into a fixed-size triple.
type vec3JSON [3]float64

// Document is the top-level scene document (spec.md §6).
type Document struct {
	Camera        CameraDoc   `json:"camera"`
	Objects       []ObjectDoc `json:"objects"`
	Lights        []LightDoc  `json:"lights"`
	SceneSettings SettingsDoc `json:"scene_settings"`
}

// CameraDoc is a tagged variant over ortho/perspective cameras (spec.md §3).
type CameraDoc struct {
	Kind       string   `json:"kind"`
	Position   vec3JSON `json:"position"`
	Target     vec3JSON `json:"target"`
	Up         vec3JSON `json:"up"`
	Width      float64  `json:"width"`
	Height     float64  `json:"height"`
	FovDegrees float64  `json:"fov_degrees,omitempty"`
	Grid       *GridDoc `json:"grid,omitempty"`
}

// GridDoc configures the orthographic world-grid background.
type GridDoc struct {
	Pitch     float64 `json:"pitch"`
	Color     string  `json:"color"`
	Thickness float64 `json:"thickness"`
}

// MaterialDoc is the Phong material plus optional texture and reflectivity.
type MaterialDoc struct {
	Color        string      `json:"color"`
	Ambient      float64     `json:"ambient"`
	Diffuse      float64     `json:"diffuse"`
	Specular     float64     `json:"specular"`
	Shininess    float64     `json:"shininess"`
	Reflectivity float64     `json:"reflectivity,omitempty"`
	Texture      *TextureDoc `json:"texture,omitempty"`
}

// TextureDoc is a tagged variant over the grid/checkerboard textures.
type TextureDoc struct {
	Kind      string       `json:"kind"`
	LineColor string       `json:"line_color,omitempty"`
	LineWidth float64      `json:"line_width,omitempty"`
	CellSize  float64      `json:"cell_size,omitempty"`
	MaterialA *MaterialDoc `json:"material_a,omitempty"`
	MaterialB *MaterialDoc `json:"material_b,omitempty"`
}

// ObjectDoc is a tagged variant over the four primitive kinds. Only the
// fields relevant to Kind are populated in a well-formed document.
type ObjectDoc struct {
	Kind      string      `json:"kind"`
	Material  MaterialDoc `json:"material"`
	Transform []string    `json:"transform,omitempty"`

	Center vec3JSON `json:"center,omitempty"` // sphere, cube
	Radius float64  `json:"radius,omitempty"` // sphere

	Point  vec3JSON `json:"point,omitempty"`  // plane
	Normal vec3JSON `json:"normal,omitempty"` // plane

	Size vec3JSON `json:"size,omitempty"` // cube

	Filename string `json:"filename,omitempty"` // mesh
	Smooth   bool   `json:"smooth,omitempty"`   // mesh
}

// LightDoc describes a point or disk area light (spec.md §3: diameter null
// means point light).
type LightDoc struct {
	Position  vec3JSON `json:"position"`
	Color     string   `json:"color"`
	Intensity float64  `json:"intensity"`
	Diameter  *float64 `json:"diameter,omitempty"`
}

// SettingsDoc is the scene-wide settings block.
type SettingsDoc struct {
	AmbientIllumination AmbientDoc  `json:"ambient_illumination"`
	BackgroundColor     string      `json:"background_color"`
	Fog                 *FogDoc     `json:"fog,omitempty"`
	Outline             *OutlineDoc `json:"outline,omitempty"`
}

// AmbientDoc is the scene's constant ambient term.
type AmbientDoc struct {
	Color     string  `json:"color"`
	Intensity float64 `json:"intensity"`
}

// FogDoc configures distance-based fog blending.
type FogDoc struct {
	Color   string  `json:"color"`
	Density float64 `json:"density"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
}

// OutlineDoc configures the screen-space outline post-pass.
type OutlineDoc struct {
	Enabled       bool    `json:"enabled"`
	DepthWeight   float64 `json:"depth_weight"`
	NormalWeight  float64 `json:"normal_weight"`
	Threshold     float64 `json:"threshold"`
	Color         string  `json:"color"`
	Thickness     float64 `json:"thickness"`
	Use8Neighbors bool    `json:"use_8_neighbors"`
}
