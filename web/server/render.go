package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"strconv"

	"github.com/df07/go-interactive-raytracer/pkg/renderer"
)

// FrameUpdate is one progressive frame sent via SSE
type FrameUpdate struct {
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	ImageData string  `json:"imageData"` // Base64 encoded PNG
	Progress  float64 `json:"progress"`
	Finished  bool    `json:"finished"`
	Samples   int     `json:"samples"`
	FPS       float64 `json:"fps"`
}

// handleFrame advances the session once and returns the image as PNG
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	frame, err := s.session.Frame()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	data, err := encodePNG(frame)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Progress", strconv.FormatFloat(frame.Progress, 'f', 4, 64))
	w.Header().Set("X-Finished", strconv.FormatBool(frame.Finished))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// handleStream sends frames as SSE until the render finishes, the client
// disconnects or the optional "frames" limit is reached. Log lines written
// meanwhile are forwarded as console events.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("streaming not supported"))
		return
	}

	maxFrames := 0
	if value := r.URL.Query().Get("frames"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid frames: %s", value))
			return
		}
		maxFrames = parsed
	}

	setSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	var consoleChan <-chan ConsoleMessage
	if s.console != nil {
		ch, cancel := s.console.Subscribe()
		defer cancel()
		consoleChan = ch
	}

	ctx := r.Context()
	for sent := 0; maxFrames == 0 || sent < maxFrames; sent++ {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frame, err := s.session.Frame()
		if err != nil {
			writeSSEEvent(w, flusher, "error", err.Error())
			return
		}
		update, err := toFrameUpdate(frame)
		if err != nil {
			writeSSEEvent(w, flusher, "error", err.Error())
			return
		}
		if err := writeSSEJSON(w, flusher, "frame", update); err != nil {
			return
		}
		forwardConsole(w, flusher, consoleChan)

		if frame.Finished {
			writeSSEEvent(w, flusher, "complete", "Rendering completed")
			return
		}
	}
}

// forwardConsole writes pending console messages without blocking
func forwardConsole(w http.ResponseWriter, flusher http.Flusher, consoleChan <-chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			if err := writeSSEJSON(w, flusher, "console", msg); err != nil {
				return
			}
		default:
			return
		}
	}
}

func toFrameUpdate(frame renderer.Frame) (FrameUpdate, error) {
	data, err := encodePNG(frame)
	if err != nil {
		return FrameUpdate{}, err
	}
	return FrameUpdate{
		Width:     frame.Width,
		Height:    frame.Height,
		ImageData: base64.StdEncoding.EncodeToString(data),
		Progress:  frame.Progress,
		Finished:  frame.Finished,
		Samples:   frame.Samples,
		FPS:       frame.FPS,
	}, nil
}

// encodePNG wraps the frame's RGBA bytes in an image without copying
func encodePNG(frame renderer.Frame) ([]byte, error) {
	img := &image.RGBA{
		Pix:    frame.Pixels,
		Stride: 4 * frame.Width,
		Rect:   image.Rect(0, 0, frame.Width, frame.Height),
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

func writeSSEJSON(w http.ResponseWriter, flusher http.Flusher, event string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return writeSSEEvent(w, flusher, event, string(data))
}

func writeSSEEvent(w http.ResponseWriter, flusher http.Flusher, event, data string) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}
