package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

func TestHandleHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	NewServer(0).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body)
	}
}

func TestHandleScenes(t *testing.T) {
	rec := httptest.NewRecorder()
	NewServer(0).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scenes", nil))

	var infos []scene.SceneInfo
	if err := json.NewDecoder(rec.Body).Decode(&infos); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(infos) != len(scene.ListScenes()) {
		t.Fatalf("Expected %d scenes, got %v", len(scene.ListScenes()), infos)
	}
	for _, info := range infos {
		if info.DisplayName == "" {
			t.Errorf("Scene %q has no display name", info.ID)
		}
		if _, err := scene.Create(info.ID); err != nil {
			t.Errorf("Listed scene %q cannot be created: %v", info.ID, err)
		}
	}
}

func TestParseRenderRequest(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr bool
		check   func(t *testing.T, req *RenderRequest)
	}{
		{
			name:  "defaults",
			query: "",
			check: func(t *testing.T, req *RenderRequest) {
				if req.Scene != "default" || req.Width != 400 || !req.Antialias || req.Seed != 42 || req.BVH {
					t.Errorf("Unexpected defaults: %+v", req)
				}
			},
		},
		{
			name:  "explicit values",
			query: "scene=random&width=120&samples=3&depth=7&antialias=false&workers=2&seed=-5&bvh=true",
			check: func(t *testing.T, req *RenderRequest) {
				expected := RenderRequest{Scene: "random", Width: 120, Samples: 3, Depth: 7, Antialias: false, Workers: 2, Seed: -5, BVH: true}
				if *req != expected {
					t.Errorf("Expected %+v, got %+v", expected, *req)
				}
			},
		},
		{name: "width too small", query: "width=2", wantErr: true},
		{name: "width not a number", query: "width=wide", wantErr: true},
		{name: "negative samples", query: "samples=-1", wantErr: true},
		{name: "bad bool", query: "antialias=maybe", wantErr: true},
		{name: "bad seed", query: "seed=x", wantErr: true},
	}

	s := NewServer(0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := s.parseRenderRequest(httptest.NewRequest(http.MethodGet, "/api/render?"+tt.query, nil))
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error, got %+v", req)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			tt.check(t, req)
		})
	}
}

func TestCreateScene(t *testing.T) {
	s := NewServer(0)

	sceneObj, err := s.createScene(&RenderRequest{Scene: "default", Width: 30, Samples: 3, Depth: 4, Workers: 2, Seed: 7})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	config := sceneObj.RenderConfig
	if config.Width != 30 || config.Height != 20 {
		t.Errorf("Expected 30x20, got %dx%d", config.Width, config.Height)
	}
	if config.SamplesPerPixel != 3 || config.MaxDepth != 4 || config.NumWorkers != 2 || config.Seed != 7 || config.Antialias {
		t.Errorf("Request settings not applied: %+v", config)
	}

	// Zero samples and depth keep the scene's recommendation
	sceneObj, err = s.createScene(&RenderRequest{Scene: "debug", Width: 30})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if sceneObj.RenderConfig.SamplesPerPixel != 16 {
		t.Errorf("Expected debug scene samples 16, got %d", sceneObj.RenderConfig.SamplesPerPixel)
	}

	if _, err := s.createScene(&RenderRequest{Scene: "missing", Width: 30}); err == nil {
		t.Error("Expected error for unknown scene")
	}
}

func TestHandleInspect(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		status       int
		hit          bool
		materialType string
	}{
		// The materials scene looks straight at the diffuse sphere
		{"center pixel", "scene=materials&width=30&x=15&y=10", http.StatusOK, true, "lambertian"},
		{"sky", "scene=materials&width=30&x=15&y=0", http.StatusOK, false, ""},
		{"normal debug", "scene=debug&width=30&x=15&y=10", http.StatusOK, true, "normal_debug"},
		{"out of bounds", "scene=materials&width=30&x=30&y=0", http.StatusBadRequest, false, ""},
		{"missing x", "scene=materials&width=30&y=0", http.StatusBadRequest, false, ""},
		{"unknown scene", "scene=nope&width=30&x=1&y=1", http.StatusBadRequest, false, ""},
	}

	handler := NewServer(0).Handler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/inspect?"+tt.query, nil))

			if rec.Code != tt.status {
				t.Fatalf("Expected status %d, got %d: %s", tt.status, rec.Code, strings.TrimSpace(rec.Body.String()))
			}
			if tt.status != http.StatusOK {
				return
			}

			var resp InspectResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("Invalid JSON: %v", err)
			}
			if resp.Hit != tt.hit {
				t.Fatalf("Expected hit=%v, got %+v", tt.hit, resp)
			}
			if tt.hit {
				if resp.MaterialType != tt.materialType || resp.GeometryType != "sphere" {
					t.Errorf("Expected %s sphere, got %s %s", tt.materialType, resp.MaterialType, resp.GeometryType)
				}
				if resp.Distance <= 0 {
					t.Errorf("Expected positive distance, got %f", resp.Distance)
				}
			}
			// Every scene in this table looks down -Z
			if resp.Camera.Forward != [3]float64{0, 0, -1} || resp.Camera.VFov != 90 {
				t.Errorf("Unexpected camera info: %+v", resp.Camera)
			}
		})
	}
}
