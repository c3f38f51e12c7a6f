// Package rast3d is a CPU software rasterizer for 3D scenes.
//
// # Overview
//
// Given a snapshot of a scene (meshes, materials, directional lights and a
// camera), a Renderer produces a color image by running a programmable
// vertex/fragment pipeline entirely on the CPU:
//
//   - vertex stage: each Shader maps mesh vertices to Varyings
//   - clipping: triangles are clipped against the six frustum planes in
//     homogeneous clip space and fan-triangulated
//   - binning: surviving triangles become render packets bound to the
//     static screen tiles they overlap
//   - rasterization: a persistent worker pool scans disjoint stripes of tiles,
//     interpolating Varyings perspective-correctly and running the fragment
//     stage
//   - output: the Framebuffer applies depth test, depth write and blending
//
// # Quick Start
//
//	r, err := rast3d.NewRenderer(800, 600)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	sc := rast3d.NewScene(800.0 / 600.0)
//	shader := sc.Resources.AddShader(rast3d.BlinnPhongShader{})
//	mat := rast3d.NewMaterial(shader)
//	mat.AlbedoFactor = mgl32.Vec4{1, 0, 0, 1}
//	sc.AddObject(rast3d.Object{Name: "cube", Transform: mgl32.Ident4(), Mesh: rast3d.NewCubeMesh(), Material: mat})
//	sc.Lights = append(sc.Lights, rast3d.NewDirectionalLight(mgl32.Vec3{-1, -1, -1}))
//
//	r.Render(sc)
//	_ = r.Framebuffer().SavePNG("out.png")
//
// # Coordinate System
//
// Clip space follows the OpenGL convention (mgl32.Perspective): the camera
// looks down -Z and visible NDC coordinates lie in [-1,1] on all axes.
// Screen space has its origin at the bottom-left; the Framebuffer flips rows
// so that Pixels() is stored top row first. Front faces wind
// counter-clockwise on screen.
//
// # Color
//
// Shaders compute linear RGB. The framebuffer stores sRGB-encoded 8-bit
// channels packed as 0xAARRGGBB with linear alpha; blending decodes to linear,
// blends, and re-encodes.
//
// # Shadows
//
// Renderer.EnableShadows adds a depth-only pass from the scene's first light
// before every frame. The lit shaders compare against the resulting
// ShadowMap; other shaders ignore it.
//
// Scenes can also be described in YAML and read with the sceneio package.
package rast3d
