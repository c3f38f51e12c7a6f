package sceneio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/rast3d"
)

// LoadOBJ reads a Wavefront OBJ file into a mesh.
func LoadOBJ(path string) (*rast3d.Mesh, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path comes from the scene description
	if err != nil {
		return nil, fmt.Errorf("load obj: %w", err)
	}
	defer f.Close()

	m, err := DecodeOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("load obj %s: %w", path, err)
	}
	return m, nil
}

// objKey identifies one v/vt/vn combination. Missing references are -1.
type objKey struct{ v, vt, vn int }

// DecodeOBJ reads the v, vt, vn and f statements of an OBJ document.
// Polygons are triangulated as fans, vertices that share all three
// references are merged, and faces without normals get their face normal.
// Other statements are ignored.
func DecodeOBJ(r io.Reader) (*rast3d.Mesh, error) {
	var (
		positions []mgl32.Vec3
		uvs       []mgl32.Vec2
		normals   []mgl32.Vec3
		mesh      = &rast3d.Mesh{}
		seen      = make(map[objKey]uint32)
	)

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			positions = append(positions, mgl32.Vec3{v[0], v[1], v[2]})
		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			uvs = append(uvs, mgl32.Vec2{v[0], v[1]})
		case "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			normals = append(normals, mgl32.Vec3{v[0], v[1], v[2]}.Normalize())
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", line)
			}
			keys := make([]objKey, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				k, err := parseFaceRef(ref, len(positions), len(uvs), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				keys = append(keys, k)
			}
			faceNormal := polygonNormal(positions, keys)
			for i := 1; i+1 < len(keys); i++ {
				for _, k := range [3]objKey{keys[0], keys[i], keys[i+1]} {
					mesh.Indices = append(mesh.Indices, vertexIndex(mesh, seen, k, positions, uvs, normals, faceNormal))
				}
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	mesh.ComputeTangents()
	return mesh, nil
}

func vertexIndex(m *rast3d.Mesh, seen map[objKey]uint32, k objKey,
	positions []mgl32.Vec3, uvs []mgl32.Vec2, normals []mgl32.Vec3, faceNormal mgl32.Vec3,
) uint32 {
	// Vertices without an explicit normal take the normal of their face,
	// so they are never shared between faces.
	if k.vn >= 0 {
		if idx, ok := seen[k]; ok {
			return idx
		}
	}
	v := rast3d.Vertex{Position: positions[k.v], Normal: faceNormal}
	if k.vt >= 0 {
		v.UV = uvs[k.vt]
	}
	if k.vn >= 0 {
		v.Normal = normals[k.vn]
	}
	idx := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, v)
	if k.vn >= 0 {
		seen[k] = idx
	}
	return idx
}

// parseFaceRef parses v, v/vt, v//vn or v/vt/vn. Indices are 1-based;
// negative indices count back from the last element read so far.
func parseFaceRef(ref string, nv, nvt, nvn int) (objKey, error) {
	parts := strings.Split(ref, "/")
	if len(parts) > 3 {
		return objKey{}, fmt.Errorf("bad face vertex %q", ref)
	}
	k := objKey{v: -1, vt: -1, vn: -1}
	dst := [3]*int{&k.v, &k.vt, &k.vn}
	counts := [3]int{nv, nvt, nvn}
	for i, p := range parts {
		if p == "" {
			if i == 0 {
				return objKey{}, fmt.Errorf("bad face vertex %q", ref)
			}
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return objKey{}, fmt.Errorf("bad face vertex %q: %w", ref, err)
		}
		if n < 0 {
			n += counts[i]
		} else {
			n--
		}
		if n < 0 || n >= counts[i] {
			return objKey{}, fmt.Errorf("face vertex %q out of range", ref)
		}
		*dst[i] = n
	}
	return k, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d numbers, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := range n {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

// polygonNormal returns the Newell normal of a face.
func polygonNormal(positions []mgl32.Vec3, keys []objKey) mgl32.Vec3 {
	var n mgl32.Vec3
	for i := range keys {
		a := positions[keys[i].v]
		b := positions[keys[(i+1)%len(keys)].v]
		n[0] += (a[1] - b[1]) * (a[2] + b[2])
		n[1] += (a[2] - b[2]) * (a[0] + b[0])
		n[2] += (a[0] - b[0]) * (a[1] + b[1])
	}
	if n.Len() == 0 {
		return mgl32.Vec3{0, 0, 1}
	}
	return n.Normalize()
}
