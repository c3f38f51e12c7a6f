package demo

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/rast3d"
)

func TestScene(t *testing.T) {
	sc := Scene(4.0 / 3.0)
	if len(sc.Lights) != 1 {
		t.Errorf("lights = %d, want 1", len(sc.Lights))
	}
	if len(sc.Objects) != 4 {
		t.Fatalf("objects = %d, want 4", len(sc.Objects))
	}
	if last := sc.Objects[len(sc.Objects)-1]; last.Material.Queue != rast3d.QueueTransparent {
		t.Errorf("last object %q is not transparent", last.Name)
	}
	for _, o := range sc.Objects {
		if o.Mesh == nil || o.Material == nil || sc.Resources.Shader(o.Material.Shader) == nil {
			t.Errorf("object %q is incomplete", o.Name)
		}
	}
}

func TestScene_Renders(t *testing.T) {
	r, err := rast3d.NewRenderer(64, 48)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(r.Close)
	if err := r.EnableShadows(128); err != nil {
		t.Fatal(err)
	}

	r.Render(Scene(64.0 / 48.0))
	stats := r.Stats()
	if stats.Skipped != 0 {
		t.Errorf("skipped objects = %d, want 0", stats.Skipped)
	}
	if stats.Packets == 0 {
		t.Error("no packets rendered")
	}
}

func TestRidgeNormals(t *testing.T) {
	img := ridgeNormals(16, 4)
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i+2] < 200 {
			t.Fatalf("texel %d points away from the surface: %v", i/4, img.Pix[i:i+4])
		}
	}
}

// ============================================================================
// Orbit
// ============================================================================

func TestOrbit_RoundTrip(t *testing.T) {
	c := rast3d.NewCamera(1)
	c.LookAt(mgl32.Vec3{3, 2, -4}, mgl32.Vec3{1, 0, 0})

	o := OrbitFrom(c)
	if got := o.Position(); !got.ApproxEqualThreshold(mgl32.Vec3{3, 2, -4}, 1e-4) {
		t.Errorf("Position() = %v, want {3 2 -4}", got)
	}

	o.Apply(c)
	if !c.Position().ApproxEqualThreshold(mgl32.Vec3{3, 2, -4}, 1e-4) || c.Target() != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("Apply moved the camera to %v -> %v", c.Position(), c.Target())
	}
}

// vec3Near compares with an absolute tolerance per component.
func vec3Near(got, want mgl32.Vec3, eps float32) bool {
	for k := range got {
		if math32.Abs(got[k]-want[k]) > eps {
			return false
		}
	}
	return true
}

func TestOrbit_Rotate(t *testing.T) {
	o := Orbit{Distance: 2}
	if got := o.Position(); !vec3Near(got, mgl32.Vec3{0, 0, 2}, 1e-6) {
		t.Errorf("yaw 0: %v, want {0 0 2}", got)
	}

	o.Rotate(math32.Pi/2, 0)
	if got := o.Position(); !vec3Near(got, mgl32.Vec3{2, 0, 0}, 1e-5) {
		t.Errorf("yaw 90: %v, want {2 0 0}", got)
	}

	o.Rotate(0, 10)
	if o.Pitch != maxPitch {
		t.Errorf("pitch = %v, want clamped to %v", o.Pitch, maxPitch)
	}
	o.Rotate(0, -20)
	if o.Pitch != minPitch {
		t.Errorf("pitch = %v, want clamped to %v", o.Pitch, minPitch)
	}
}

func TestOrbit_Zoom(t *testing.T) {
	o := Orbit{Distance: 4}
	o.Zoom(0.5)
	if o.Distance != 2 {
		t.Errorf("distance = %v, want 2", o.Distance)
	}
	o.Zoom(0.01)
	if o.Distance != minDistance {
		t.Errorf("distance = %v, want clamped to %v", o.Distance, minDistance)
	}
}

func TestOrbitFrom_Degenerate(t *testing.T) {
	c := rast3d.NewCamera(1)
	c.LookAt(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 1, 1})
	if o := OrbitFrom(c); o.Distance != minDistance {
		t.Errorf("distance = %v, want %v", o.Distance, minDistance)
	}
}
