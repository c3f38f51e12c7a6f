// Package demo builds the scene shown by the command line tools when no
// scene file is given, and the orbit camera both tools drive.
package demo

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/rast3d"
)

// Scene returns a checkered floor under a lit cube, a normal-mapped cube
// and a translucent pane, with one directional light.
func Scene(aspect float32) *rast3d.Scene {
	sc := rast3d.NewScene(aspect)
	sc.Camera.LookAt(mgl32.Vec3{0, 3, 7}, mgl32.Vec3{0, 0.5, 0})

	light := rast3d.NewDirectionalLight(mgl32.Vec3{-0.5, -1, -0.4})
	light.Color = mgl32.Vec3{1, 0.95, 0.9}
	sc.Lights = append(sc.Lights, light)

	res := &sc.Resources
	phong := res.AddShader(rast3d.BlinnPhongShader{})
	bumpy := res.AddShader(rast3d.NormalMapShader{})
	unlit := res.AddShader(rast3d.UnlitShader{})

	checker := res.AddTexture(rast3d.NewCheckerTexture(256, 8,
		mgl32.Vec4{0.8, 0.8, 0.8, 1}, mgl32.Vec4{0.15, 0.15, 0.2, 1}))
	ridges := res.AddTexture(rast3d.NewLinearTexture(ridgeNormals(64, 8)))

	floor := rast3d.NewMaterial(phong)
	floor.Name = "floor"
	floor.AlbedoTexture = checker
	floor.Shininess = 8

	red := rast3d.NewMaterial(phong)
	red.Name = "red"
	red.AlbedoFactor = mgl32.Vec4{0.9, 0.2, 0.15, 1}

	stone := rast3d.NewMaterial(bumpy)
	stone.Name = "stone"
	stone.AlbedoFactor = mgl32.Vec4{0.6, 0.65, 0.7, 1}
	stone.NormalTexture = ridges
	stone.Shininess = 16

	glass := rast3d.NewMaterial(unlit)
	glass.Name = "glass"
	glass.AlbedoFactor = mgl32.Vec4{0.3, 0.6, 1, 0.4}
	glass.Queue = rast3d.QueueTransparent
	glass.State = rast3d.TransparentState()

	sc.AddObject(rast3d.Object{Name: "floor", Transform: mgl32.Ident4(), Mesh: rast3d.NewPlaneMesh(8, 4), Material: floor})
	sc.AddObject(rast3d.Object{
		Name:      "cube",
		Transform: mgl32.Translate3D(-1.2, 0.5, 0).Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(30))),
		Mesh:      rast3d.NewCubeMesh(),
		Material:  red,
	})
	sc.AddObject(rast3d.Object{
		Name:      "stone",
		Transform: mgl32.Translate3D(1.2, 0.75, -0.5).Mul4(mgl32.Scale3D(1.5, 1.5, 1.5)),
		Mesh:      rast3d.NewCubeMesh(),
		Material:  stone,
	})
	sc.AddObject(rast3d.Object{
		Name:      "pane",
		Transform: mgl32.Translate3D(0, 1, 1.5).Mul4(mgl32.Scale3D(2, 2, 1)),
		Mesh:      rast3d.NewQuadMesh(),
		Material:  glass,
	})
	sc.SortByQueue()
	return sc
}

// ridgeNormals returns a tangent-space normal map of vertical ridges.
func ridgeNormals(size, ridges int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	period := max(size/ridges, 2)
	for y := range size {
		for x := range size {
			// Slope alternates between the two flanks of a ridge.
			nx := float32(0.5)
			if x%period < period/2 {
				nx = -0.5
			}
			n := mgl32.Vec3{nx, 0, 1}.Normalize()
			i := img.PixOffset(x, y)
			img.Pix[i+0] = uint8((n[0]*0.5 + 0.5) * 255)
			img.Pix[i+1] = uint8((n[1]*0.5 + 0.5) * 255)
			img.Pix[i+2] = uint8((n[2]*0.5 + 0.5) * 255)
			img.Pix[i+3] = 255
		}
	}
	return img
}
