package geometry

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// ShapeList is the scene aggregate: an ordered collection of shapes scanned linearly
type ShapeList struct {
	Shapes []Shape
}

// NewShapeList creates a list from the given shapes
func NewShapeList(shapes ...Shape) *ShapeList {
	return &ShapeList{Shapes: shapes}
}

// Add appends a shape to the list
func (sl *ShapeList) Add(shape Shape) {
	sl.Shapes = append(sl.Shapes, shape)
}

// Len returns the number of shapes in the list
func (sl *ShapeList) Len() int {
	return len(sl.Shapes)
}

// Hit tests every member and returns the closest hit
func (sl *ShapeList) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return closestHit(sl.Shapes, ray, tMin, tMax)
}

// BoundingBox returns the union of all member bounds
func (sl *ShapeList) BoundingBox() core.AABB {
	return unionBounds(sl.Shapes)
}

// closestHit scans shapes with a shrinking upper bound; a later shape only wins when strictly closer
func closestHit(shapes []Shape, ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	closestSoFar := tMax

	for _, shape := range shapes {
		if hit, ok := shape.Hit(ray, tMin, closestSoFar); ok {
			closest = hit
			closestSoFar = hit.T
		}
	}

	return closest, closest != nil
}

func unionBounds(shapes []Shape) core.AABB {
	if len(shapes) == 0 {
		return core.AABB{}
	}
	box := shapes[0].BoundingBox()
	for _, shape := range shapes[1:] {
		box = box.Union(shape.BoundingBox())
	}
	return box
}
