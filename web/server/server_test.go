package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/df07/go-sphere-tracer/pkg/config"
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

type pixelRecorder struct {
	pixels []int
}

func (p *pixelRecorder) WriteHeader(width, height, maxValue int) error { return nil }

func (p *pixelRecorder) WritePixel(px core.Pixel) error {
	p.pixels = append(p.pixels, px.R, px.G, px.B)
	return nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := NewServer(config.ServerConfig{MaxPreviewWidth: 64, MaxPreviewSamples: 4}, renderer.NopLogger{})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestNewServer_Defaults(t *testing.T) {
	s := NewServer(config.ServerConfig{}, nil)

	if _, ok := s.logger.(*renderer.DefaultLogger); !ok {
		t.Errorf("Expected the stdout logger by default, got %T", s.logger)
	}
	if s.config.MaxPreviewWidth != config.DefaultMaxPreviewWidth ||
		s.config.MaxPreviewSamples != config.DefaultMaxPreviewSamples ||
		s.config.PingInterval != config.DefaultPingInterval {
		t.Errorf("Expected default limits, got %+v", s.config)
	}
}

func TestHandlers_RejectOtherMethods(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/api/health", "/api/scenes", "/api/render"} {
		t.Run(path, func(t *testing.T) {
			resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader("{}"))
			if err != nil {
				t.Fatalf("POST %s failed: %v", path, err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusMethodNotAllowed {
				t.Errorf("Expected status 405, got %d", resp.StatusCode)
			}
		})
	}
}

func TestHandleHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decoding body failed: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body)
	}
}

func TestHandleScenes(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/scenes")
	if err != nil {
		t.Fatalf("GET /api/scenes failed: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Scenes []scene.SceneInfo         `json:"scenes"`
		Limits map[string]map[string]int `json:"limits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decoding body failed: %v", err)
	}

	if len(body.Scenes) != len(scene.Names()) {
		t.Errorf("Expected %d scenes, got %d", len(scene.Names()), len(body.Scenes))
	}
	if body.Limits["width"]["max"] != 64 || body.Limits["samples"]["max"] != 4 {
		t.Errorf("Unexpected limits %v", body.Limits)
	}
}

func TestHandleRender_InvalidRequests(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"unknown scene", "scene=cornell", "unknown scene"},
		{"width too large", "width=65", "width must be between 1 and 64"},
		{"bad samples", "samples=lots", "invalid samples"},
		{"bad seed", "seed=x", "invalid seed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(ts.URL + "/api/render?" + tt.query)
			if err != nil {
				t.Fatalf("GET failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", resp.StatusCode)
			}
			var body map[string]string
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("Decoding body failed: %v", err)
			}
			if !strings.Contains(body["error"], tt.want) {
				t.Errorf("Expected error containing %q, got %q", tt.want, body["error"])
			}
		})
	}
}

func TestHandleRender_StreamsRows(t *testing.T) {
	ts := newTestServer(t)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/render?scene=quick&width=16&seed=3"

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(30 * time.Second))

	var header Message
	if err := conn.ReadJSON(&header); err != nil {
		t.Fatalf("Reading header failed: %v", err)
	}
	if header.Type != MessageHeader || header.Width != 16 || header.Height != 9 || header.MaxValue != 255 {
		t.Fatalf("Unexpected header %+v", header)
	}

	var streamed []int
	for row := 0; row < header.Height; row++ {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("Reading row %d failed: %v", row, err)
		}
		if msg.Type != MessageRow || msg.Row != row || len(msg.Pixels) != 3*header.Width {
			t.Fatalf("Unexpected row message %d: type %s row %d with %d values", row, msg.Type, msg.Row, len(msg.Pixels))
		}
		streamed = append(streamed, msg.Pixels...)
	}

	var complete Message
	if err := conn.ReadJSON(&complete); err != nil {
		t.Fatalf("Reading completion failed: %v", err)
	}
	if complete.Type != MessageComplete || complete.Stats == nil || complete.Stats.TotalPixels != 16*9 {
		t.Fatalf("Unexpected completion %+v", complete)
	}

	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Errorf("Expected a normal close, got %v", err)
	}

	// The stream must match a direct render with the same seed
	quick := scene.NewQuickScene()
	cameraConfig := quick.CameraConfig
	cameraConfig.Width = 16
	recorder := &pixelRecorder{}
	if _, err := renderer.NewCamera(cameraConfig, core.NewSeededSampler(3)).Render(quick.World, recorder); err != nil {
		t.Fatalf("Direct render failed: %v", err)
	}
	if len(recorder.pixels) != len(streamed) {
		t.Fatalf("Expected %d values, got %d", len(recorder.pixels), len(streamed))
	}
	for i := range streamed {
		if streamed[i] != recorder.pixels[i] {
			t.Fatalf("Value %d differs: streamed %d, direct %d", i, streamed[i], recorder.pixels[i])
		}
	}
}

func TestHandleRender_ClampsSamples(t *testing.T) {
	ts := newTestServer(t)
	// The materials scene asks for 100 samples; the server allows 4
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/render?scene=materials&width=8&depth=2&seed=1"

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(30 * time.Second))

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("Stream ended before completion: %v", err)
		}
		if msg.Type == MessageComplete {
			if msg.Stats.TotalSamples != msg.Stats.TotalPixels*4 {
				t.Errorf("Expected 4 samples per pixel, got %d samples for %d pixels",
					msg.Stats.TotalSamples, msg.Stats.TotalPixels)
			}
			return
		}
		if msg.Type == MessageError {
			t.Fatalf("Render failed: %s", msg.Error)
		}
	}
}
