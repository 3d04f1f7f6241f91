package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

func randomSpheres(count int, seed int64) []Shape {
	random := rand.New(rand.NewSource(seed))
	shapes := make([]Shape, 0, count)
	for i := 0; i < count; i++ {
		center := core.NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10)
		radius := 0.1 + random.Float64()*0.8
		if i%7 == 0 {
			radius = -radius
		}
		shapes = append(shapes, NewSphere(center, radius, nil))
	}
	return shapes
}

func TestBVH_Empty(t *testing.T) {
	bvh := NewBVH(nil)
	if _, isHit := bvh.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, math.MaxFloat64); isHit {
		t.Error("Empty BVH should never report a hit")
	}
}

func TestBVH_Structure(t *testing.T) {
	shapes := randomSpheres(200, 1)
	bvh := NewBVH(shapes)
	stats := bvh.Stats()

	if stats.TotalShapes != len(shapes) {
		t.Errorf("Expected %d shapes in leaves, got %d", len(shapes), stats.TotalShapes)
	}
	if stats.LeafNodes < 2 {
		t.Errorf("Expected the tree to split, got %d leaves", stats.LeafNodes)
	}
	if stats.MaxDepth == 0 || stats.AvgDepth <= 0 {
		t.Errorf("Expected non-trivial depth, got max=%d avg=%f", stats.MaxDepth, stats.AvgDepth)
	}
}

func TestBVH_MatchesShapeList(t *testing.T) {
	shapes := randomSpheres(150, 2)
	list := NewShapeList(shapes...)
	bvh := NewBVH(shapes)
	random := rand.New(rand.NewSource(3))

	for i := 0; i < 2000; i++ {
		origin := core.NewVec3(random.Float64()*30-15, random.Float64()*30-15, random.Float64()*30-15)
		direction := core.NewVec3(random.Float64()*2-1, random.Float64()*2-1, random.Float64()*2-1)
		ray := core.NewRay(origin, direction)

		listHit, listOk := list.Hit(ray, 0.001, math.MaxFloat64)
		bvhHit, bvhOk := bvh.Hit(ray, 0.001, math.MaxFloat64)

		if listOk != bvhOk {
			t.Fatalf("Ray %d: list hit=%t, bvh hit=%t", i, listOk, bvhOk)
		}
		if listOk && math.Abs(listHit.T-bvhHit.T) > 1e-9 {
			t.Fatalf("Ray %d: list t=%f, bvh t=%f", i, listHit.T, bvhHit.T)
		}
	}
}

func TestBVH_DoesNotReorderInput(t *testing.T) {
	shapes := randomSpheres(50, 4)
	before := make([]Shape, len(shapes))
	copy(before, shapes)

	NewBVH(shapes)
	for i := range shapes {
		if shapes[i] != before[i] {
			t.Fatalf("Input slice reordered at index %d", i)
		}
	}
}
