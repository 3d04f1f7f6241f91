package server

import (
	"log"
	"net/http"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Event is a single message on the render websocket
type Event struct {
	Type     string      `json:"type"` // "console", "rows", "complete", "error"
	RenderID string      `json:"renderId"`
	Data     interface{} `json:"data"`
}

// RowsUpdate carries a finished strip of rows as a PNG
type RowsUpdate struct {
	StartRow  int    `json:"startRow"`
	EndRow    int    `json:"endRow"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`    // Full image height
	ImageData string `json:"imageData"` // Base64 encoded PNG of just these rows
}

// CompleteUpdate summarizes a finished render
type CompleteUpdate struct {
	TotalPixels     int   `json:"totalPixels"`
	TotalSamples    int   `json:"totalSamples"`
	SamplesPerPixel int   `json:"samplesPerPixel"`
	Tasks           int   `json:"tasks"`
	Workers         int   `json:"workers"`
	ElapsedMs       int64 `json:"elapsedMs"`
}

// eventStream serializes all writes to one websocket connection
type eventStream struct {
	conn     *websocket.Conn
	renderID string
	events   chan Event
	stopped  chan struct{} // Closed when the writer exits
}

func newEventStream(conn *websocket.Conn, renderID string) *eventStream {
	stream := &eventStream{
		conn:     conn,
		renderID: renderID,
		events:   make(chan Event, 100),
		stopped:  make(chan struct{}),
	}
	go stream.writeEvents()
	return stream
}

// writeEvents is the only goroutine that writes to the connection
func (es *eventStream) writeEvents() {
	defer close(es.stopped)
	for event := range es.events {
		if err := es.conn.WriteJSON(event); err != nil {
			log.Printf("[%s] Client disconnected: %v", es.renderID, err)
			return
		}
	}
}

// send queues an event, dropping it once the client has gone away
func (es *eventStream) send(eventType string, data interface{}) {
	select {
	case es.events <- Event{Type: eventType, RenderID: es.renderID, Data: data}:
	case <-es.stopped:
	}
}

// close flushes queued events and closes the connection
func (es *eventStream) close() {
	close(es.events)
	<-es.stopped
	es.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	es.conn.Close()
}

// handleRender upgrades to a websocket and streams rows as the render finishes them
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error upgrading websocket: %v", err)
		return
	}

	stream := newEventStream(conn, uuid.NewString())
	defer stream.close()
	go discardIncoming(conn)

	req, err := s.parseRenderRequest(r)
	if err != nil {
		stream.send("error", "Invalid request: "+err.Error())
		return
	}

	// Setup console logging and streaming
	consoleChan := make(chan ConsoleMessage, 50)
	consoleDone := make(chan struct{})
	go streamConsoleMessages(consoleChan, stream, consoleDone)
	webLogger := NewWebLogger(stream.renderID, consoleChan)

	startTime := time.Now()
	stats, err := s.runRender(req, webLogger, stream)

	// The logger is idle once the render has returned
	close(consoleChan)
	<-consoleDone

	if err != nil {
		stream.send("error", "Rendering failed: "+err.Error())
		return
	}

	stream.send("complete", CompleteUpdate{
		TotalPixels:     stats.TotalPixels,
		TotalSamples:    stats.TotalSamples,
		SamplesPerPixel: stats.SamplesPerPixel,
		Tasks:           stats.Tasks,
		Workers:         stats.Workers,
		ElapsedMs:       time.Since(startTime).Milliseconds(),
	})
}

// runRender renders the requested scene, streaming each finished row range
func (s *Server) runRender(req *RenderRequest, logger core.Logger, stream *eventStream) (renderer.RenderStats, error) {
	sceneObj, err := s.createScene(req)
	if err != nil {
		return renderer.RenderStats{}, err
	}
	config := sceneObj.RenderConfig

	raytracer, err := renderer.NewRaytracer(sceneObj, config, logger)
	if err != nil {
		return renderer.RenderStats{}, err
	}

	raytracer.SetRowCallback(func(rows renderer.RowCompletion) {
		imageData, err := imageToBase64PNG(renderer.RowsImage(rows.Pixels, config.Width))
		if err != nil {
			log.Printf("Error encoding rows [%d,%d): %v", rows.StartRow, rows.EndRow, err)
			return
		}
		stream.send("rows", RowsUpdate{
			StartRow:  rows.StartRow,
			EndRow:    rows.EndRow,
			Width:     config.Width,
			Height:    config.Height,
			ImageData: imageData,
		})
	})

	_, stats, err := raytracer.Render()
	return stats, err
}

// streamConsoleMessages forwards logger output to the client until consoleChan is closed
func streamConsoleMessages(consoleChan <-chan ConsoleMessage, stream *eventStream, done chan<- struct{}) {
	defer close(done)
	for msg := range consoleChan {
		stream.send("console", msg)
	}
}

// discardIncoming reads until the connection fails so close frames are handled
func discardIncoming(conn *websocket.Conn) {
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}
