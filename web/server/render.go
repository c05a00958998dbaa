package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/df07/go-sphere-tracer/pkg/config"
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

const writeWait = 10 * time.Second

// Message types sent to preview clients
const (
	MessageHeader   = "header"
	MessageRow      = "row"
	MessageComplete = "complete"
	MessageError    = "error"
)

// Message is one JSON frame of a render stream: a header, then one row per
// scanline top to bottom, then complete or error
type Message struct {
	Type     string `json:"type"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	MaxValue int    `json:"maxValue,omitempty"`
	Row      int    `json:"row"`
	Pixels   []int  `json:"pixels,omitempty"` // r, g, b triples left to right
	Stats    *Stats `json:"stats,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels  int   `json:"totalPixels"`
	TotalSamples int   `json:"totalSamples"`
	ElapsedMs    int64 `json:"elapsedMs"`
}

var errClientGone = errors.New("preview client disconnected")

// streamSink sends pixels to a WebSocket client a full row at a time
type streamSink struct {
	ctx   context.Context
	conn  *websocket.Conn
	width int
	row   int
	batch []int
}

func newStreamSink(ctx context.Context, conn *websocket.Conn) *streamSink {
	return &streamSink{ctx: ctx, conn: conn}
}

func (s *streamSink) WriteHeader(width, height, maxValue int) error {
	s.width = width
	s.batch = make([]int, 0, 3*width)
	return s.send(Message{Type: MessageHeader, Width: width, Height: height, MaxValue: maxValue})
}

func (s *streamSink) WritePixel(p core.Pixel) error {
	if s.ctx.Err() != nil {
		return errClientGone
	}
	s.batch = append(s.batch, p.R, p.G, p.B)
	if len(s.batch) < 3*s.width {
		return nil
	}

	err := s.send(Message{Type: MessageRow, Row: s.row, Pixels: s.batch})
	s.row++
	s.batch = s.batch[:0]
	return err
}

func (s *streamSink) send(msg Message) error {
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(msg)
}

// handleRender validates the request, upgrades to WebSocket and streams one render
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	cfg := config.Config{Width: req.Width, Samples: req.Samples, Depth: req.Depth, Seed: req.Seed}
	random := cfg.Random()

	selected, err := scene.New(req.Scene, random)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	camera := selected.NewCamera(random)
	cameraConfig := cfg.ApplyTo(camera.Config())
	if cameraConfig.Width > s.config.MaxPreviewWidth {
		cameraConfig.Width = s.config.MaxPreviewWidth
	}
	if cameraConfig.SamplesPerPixel > s.config.MaxPreviewSamples {
		cameraConfig.SamplesPerPixel = s.config.MaxPreviewSamples
	}
	camera.SetConfig(cameraConfig)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("upgrade: %v\n", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Reading is required to process control frames; any read error means the client left
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	go s.keepAlive(ctx, conn)

	s.logger.Printf("Rendering %q at width %d, %d spp for %s\n", selected.Name, cameraConfig.Width, cameraConfig.SamplesPerPixel, r.RemoteAddr)

	sink := newStreamSink(ctx, conn)
	stats, err := camera.Render(selected.World, sink)
	if err != nil {
		if ctx.Err() != nil {
			s.logger.Printf("Render of %q stopped: %v\n", selected.Name, errClientGone)
			return
		}
		s.logger.Printf("Render of %q failed: %v\n", selected.Name, err)
		sink.send(Message{Type: MessageError, Error: err.Error()})
		return
	}

	sink.send(Message{
		Type: MessageComplete,
		Stats: &Stats{
			TotalPixels:  stats.TotalPixels,
			TotalSamples: stats.TotalSamples,
			ElapsedMs:    stats.Elapsed.Milliseconds(),
		},
	})
	s.logger.Printf("Render of %q completed in %v\n", selected.Name, stats.Elapsed)

	conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "render complete"),
		time.Now().Add(writeWait))
}

// keepAlive pings the client until ctx is done
func (s *Server) keepAlive(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(s.config.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
