package sceneio

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// File is the YAML document read by Decode.
type File struct {
	Camera    CameraSpec     `yaml:"camera"`
	Lights    []LightSpec    `yaml:"lights"`
	Textures  []TextureSpec  `yaml:"textures"`
	Materials []MaterialSpec `yaml:"materials"`
	Objects   []ObjectSpec   `yaml:"objects"`
}

// CameraSpec places the scene camera. Zero fields keep the camera defaults.
type CameraSpec struct {
	Position *Vec3   `yaml:"position"`
	Target   *Vec3   `yaml:"target"`
	Up       *Vec3   `yaml:"up"`
	Fov      float32 `yaml:"fov"` // degrees
	Near     float32 `yaml:"near"`
	Far      float32 `yaml:"far"`
}

// LightSpec is a directional light. Color defaults to white and intensity
// to 1.
type LightSpec struct {
	Direction Vec3     `yaml:"direction"`
	Color     *Vec3    `yaml:"color"`
	Intensity *float32 `yaml:"intensity"`
}

// TextureSpec names a texture loaded from File, relative to the scene
// file, or generated by Checker. Linear disables the sRGB decode, as needed
// for normal maps.
type TextureSpec struct {
	Name    string       `yaml:"name"`
	File    string       `yaml:"file"`
	Linear  bool         `yaml:"linear"`
	Checker *CheckerSpec `yaml:"checker"`
}

// CheckerSpec describes a procedural checkerboard.
type CheckerSpec struct {
	Size  int  `yaml:"size"`
	Cells int  `yaml:"cells"`
	A     Vec4 `yaml:"a"`
	B     Vec4 `yaml:"b"`
}

// MaterialSpec describes a material. Unset pipeline flags follow the
// defaults of the material's queue.
type MaterialSpec struct {
	Name          string         `yaml:"name"`
	Shader        string         `yaml:"shader"`
	Color         *Vec4          `yaml:"color"`
	AlbedoTexture string         `yaml:"albedo_texture"`
	NormalTexture string         `yaml:"normal_texture"`
	Shininess     *float32       `yaml:"shininess"`
	Alpha         *float32       `yaml:"alpha"`
	Queue         string         `yaml:"queue"`
	Blend         *string        `yaml:"blend"`
	DepthTest     *bool          `yaml:"depth_test"`
	DepthWrite    *bool          `yaml:"depth_write"`
	Cull          *bool          `yaml:"cull"`
	Params        map[string]any `yaml:"params"`
}

// ObjectSpec places a mesh in the scene. Mesh is one of triangle, quad,
// cube and plane, or the path of a Wavefront OBJ file. Rotation holds Euler
// angles in degrees applied about X, then Y, then Z.
type ObjectSpec struct {
	Name      string  `yaml:"name"`
	Mesh      string  `yaml:"mesh"`
	Size      float32 `yaml:"size"`
	Divisions int     `yaml:"divisions"`
	Material  string  `yaml:"material"`
	Position  Vec3    `yaml:"position"`
	Rotation  Vec3    `yaml:"rotation"`
	Scale     *Scale  `yaml:"scale"`
}

// Vec3 reads a three element YAML sequence.
type Vec3 mgl32.Vec3

// UnmarshalYAML implements yaml.Unmarshaler for Vec3.
func (v *Vec3) UnmarshalYAML(value *yaml.Node) error {
	var xs []float32
	if err := value.Decode(&xs); err != nil {
		return err
	}
	if len(xs) != 3 {
		return fmt.Errorf("line %d: want 3 components, got %d", value.Line, len(xs))
	}
	*v = Vec3{xs[0], xs[1], xs[2]}
	return nil
}

// Vec4 reads an RGB or RGBA sequence. A missing alpha is 1.
type Vec4 mgl32.Vec4

// UnmarshalYAML implements yaml.Unmarshaler for Vec4.
func (v *Vec4) UnmarshalYAML(value *yaml.Node) error {
	var xs []float32
	if err := value.Decode(&xs); err != nil {
		return err
	}
	switch len(xs) {
	case 3:
		*v = Vec4{xs[0], xs[1], xs[2], 1}
	case 4:
		*v = Vec4{xs[0], xs[1], xs[2], xs[3]}
	default:
		return fmt.Errorf("line %d: want 3 or 4 components, got %d", value.Line, len(xs))
	}
	return nil
}

// Scale is either a uniform scalar or a per-axis sequence.
type Scale mgl32.Vec3

// UnmarshalYAML implements yaml.Unmarshaler for Scale.
func (s *Scale) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var f float32
		if err := value.Decode(&f); err != nil {
			return err
		}
		*s = Scale{f, f, f}
		return nil
	}
	var v Vec3
	if err := v.UnmarshalYAML(value); err != nil {
		return err
	}
	*s = Scale(v)
	return nil
}
