package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/integrator"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Properties   map[string]interface{} `json:"properties"`
	Camera       CameraInfo             `json:"camera"`
}

// CameraInfo describes the camera the inspection ray came from
type CameraInfo struct {
	Center        [3]float64 `json:"center"`
	LookAt        [3]float64 `json:"lookAt"`
	Forward       [3]float64 `json:"forward"`
	VFov          float64    `json:"vfov"`
	Aperture      float64    `json:"aperture"`
	FocusDistance float64    `json:"focusDistance"`
}

// InspectResult contains the closest hit under a pixel and the shape that produced it
type InspectResult struct {
	Hit       bool
	HitRecord *material.HitRecord
	Shape     geometry.Shape
}

func cameraInfo(camera *renderer.Camera) CameraInfo {
	config := camera.GetConfig()
	return CameraInfo{
		Center:        vecArray(config.Center),
		LookAt:        vecArray(config.LookAt),
		Forward:       vecArray(camera.GetCameraForward()),
		VFov:          config.VFov,
		Aperture:      config.Aperture,
		FocusDistance: config.FocusDistance,
	}
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractMaterialInfo extracts material parameters with type assertions
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	case *material.NormalDebug:
		return "normal_debug", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo extracts shape parameters
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		// Negative radii turn the sphere inside out
		properties["inverted"] = geom.Radius < 0
		return "sphere", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts a ray through the center of pixel (x, y), y = 0 being the top row
func inspectPixel(sceneObj *scene.Scene, x, y int) InspectResult {
	width, height := sceneObj.RenderConfig.Width, sceneObj.RenderConfig.Height

	// A fixed seed keeps lens samples repeatable for defocused cameras
	sampler := core.NewSeededSampler(0)
	s := (float64(x) + 0.5) / float64(width)
	t := (float64(height-1-y) + 0.5) / float64(height)
	ray := sceneObj.Camera.GetRay(s, t, sampler)

	// Test every shape so the response can name the one that was hit
	var closest InspectResult
	tMax := math.MaxFloat64
	for _, shape := range sceneObj.World.Shapes {
		if hit, ok := shape.Hit(ray, integrator.ShadowAcneEpsilon, tMax); ok {
			tMax = hit.T
			closest = InspectResult{Hit: true, HitRecord: hit, Shape: shape}
		}
	}
	return closest
}

// handleInspect reports the object under a pixel of the requested scene
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	inspectReq, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	sceneObj, err := s.createScene(inspectReq)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	config := sceneObj.RenderConfig
	if pixelX < 0 || pixelX >= config.Width || pixelY < 0 || pixelY >= config.Height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	result := inspectPixel(sceneObj, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, Camera: cameraInfo(sceneObj.Camera)})
		return
	}

	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := extractGeometryInfo(result.Shape)

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecArray(result.HitRecord.Point),
		Normal:       vecArray(result.HitRecord.Normal),
		Distance:     result.HitRecord.T,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
		Camera: cameraInfo(sceneObj.Camera),
	})
}
