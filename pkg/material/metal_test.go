package material

import (
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

func TestNewMetal_FuzznessClamp(t *testing.T) {
	tests := []struct {
		name             string
		inputFuzzness    float64
		expectedFuzzness float64
	}{
		{"Valid fuzzness 0.0", 0.0, 0.0},
		{"Valid fuzzness 0.5", 0.5, 0.5},
		{"Valid fuzzness 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzzness)
			if metal.Fuzzness != tt.expectedFuzzness {
				t.Errorf("Expected fuzzness %f, got %f", tt.expectedFuzzness, metal.Fuzzness)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)
	sampler := core.NewSeededSampler(42)

	// Ray hitting surface at 45 degrees
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1))
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
	if !didScatter {
		t.Fatal("Metal should scatter")
	}

	// Incident (0, -1, -1) normalized reflects to (0, -0.707, 0.707)
	expected := core.NewVec3(0, -1, 1).Normalize()
	actual := scatter.Scattered.Direction

	if actual.Subtract(expected).Length() > 1e-10 {
		t.Errorf("Perfect reflection failed: expected %v, got %v", expected, actual)
	}
	if !scatter.Attenuation.Equals(albedo) {
		t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
	}
}

func TestMetal_AbsorbsExactlyWhenReflectionEntersSurface(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0)
	sampler := &recordingSampler{Sampler: core.NewSeededSampler(123)}

	// Grazing angle so that heavy fuzz pushes some reflections below the surface
	rayIn := core.NewRay(core.NewVec3(-1, 0, 0.01), core.NewVec3(1, 0, -0.01))
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}
	mirror := reflectVector(rayIn.Direction.Normalize(), hit.Normal)

	absorbed, scattered := 0, 0
	for i := 0; i < 1000; i++ {
		result, didScatter := metal.Scatter(rayIn, hit, sampler)

		perturbed := mirror.Add(core.SamplePointInUnitSphere(sampler.last3D).Multiply(metal.Fuzzness))
		expectScatter := perturbed.Dot(hit.Normal) > 0
		if didScatter != expectScatter {
			t.Fatalf("Iteration %d: scatter=%t but perturbed direction %v has dot %f",
				i, didScatter, perturbed, perturbed.Dot(hit.Normal))
		}

		if didScatter {
			scattered++
			if result.Scattered.Direction.Subtract(perturbed).Length() > 1e-12 {
				t.Errorf("Expected direction %v, got %v", perturbed, result.Scattered.Direction)
			}
		} else {
			absorbed++
		}
	}

	if absorbed == 0 {
		t.Error("Expected some rays to be absorbed with high fuzziness at grazing angle")
	}
	if scattered == 0 {
		t.Error("Expected some rays to be scattered")
	}
}

func TestMetal_InsideSphereIsAbsorbed(t *testing.T) {
	// Normals are not flipped: a ray reaching the outward normal from inside reflects inward
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	rayIn := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	hit := HitRecord{Point: core.NewVec3(0, 0, 1), Normal: core.NewVec3(0, 0, 1)}

	if _, didScatter := metal.Scatter(rayIn, hit, core.NewSeededSampler(1)); didScatter {
		t.Error("Expected a reflection into the surface to be absorbed")
	}
}
