package render

import (
	"math"
	"sort"

	"github.com/SeamusWaldron/ravenscube"
	"github.com/zyedidia/generic/mapset"
)

// Vec is a 3D vector in view space: x right, y down, z toward the viewer.
type Vec struct {
	X, Y, Z float64
}

// Project applies the widget's view transform, rotateX(pitch) after
// rotateY(yaw), to v. Angles are in degrees.
func Project(v Vec, pitch, yaw float64) Vec {
	a := pitch * math.Pi / 180
	b := yaw * math.Pi / 180

	// rotateY
	x := v.X*math.Cos(b) + v.Z*math.Sin(b)
	z := -v.X*math.Sin(b) + v.Z*math.Cos(b)
	y := v.Y

	// rotateX
	return Vec{
		X: x,
		Y: y*math.Cos(a) - z*math.Sin(a),
		Z: y*math.Sin(a) + z*math.Cos(a),
	}
}

func normal(f ravenscube.Face) Vec {
	n := f.Normal()
	return Vec{float64(n.X), float64(n.Y), float64(n.Z)}
}

// visibleEpsilon hides faces seen exactly edge-on.
const visibleEpsilon = 1e-9

// VisibleFaces returns the faces turned toward the viewer, most directly
// facing first.
func VisibleFaces(pitch, yaw float64) []ravenscube.Face {
	type facing struct {
		face ravenscube.Face
		z    float64
	}
	var seen []facing
	for _, f := range ravenscube.Faces {
		if z := Project(normal(f), pitch, yaw).Z; z > visibleEpsilon {
			seen = append(seen, facing{f, z})
		}
	}
	sort.SliceStable(seen, func(i, j int) bool { return seen[i].z > seen[j].z })

	out := make([]ravenscube.Face, len(seen))
	for i, s := range seen {
		out[i] = s.face
	}
	return out
}

// visibleSet is VisibleFaces as a set for per-sticker lookups.
func visibleSet(pitch, yaw float64) mapset.Set[ravenscube.Face] {
	set := mapset.New[ravenscube.Face]()
	for _, f := range VisibleFaces(pitch, yaw) {
		set.Put(f)
	}
	return set
}
