package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/df07/go-interactive-raytracer/pkg/camera"
)

// maxMoveDuration caps the frame time a client can report for one move
const maxMoveDuration = time.Second

// MoveRequest is one frame of camera movement input
type MoveRequest struct {
	Input camera.Input `json:"input"`
	DtMs  float64      `json:"dtMs"`
}

// MoveResponse reports whether the camera moved and where it ended up
type MoveResponse struct {
	Moved  bool          `json:"moved"`
	Camera camera.Config `json:"camera"`
}

func (s *Server) handleGetCamera(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Camera())
}

func (s *Server) handleSetCamera(w http.ResponseWriter, r *http.Request) {
	config := s.session.Camera()
	if !decodeJSON(w, r, &config) {
		return
	}
	if !config.Position.IsFinite() {
		writeError(w, http.StatusBadRequest, fmt.Errorf("camera position must be finite"))
		return
	}
	if config.VFov <= 0 || config.VFov >= 180 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("fov must be between 0 and 180, got: %v", config.VFov))
		return
	}
	if config.FocusDistance <= 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("focus_distance must be positive, got: %v", config.FocusDistance))
		return
	}

	s.session.SetCamera(config)
	writeJSON(w, http.StatusOK, s.session.Camera())
}

func (s *Server) handleMoveCamera(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.DtMs < 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("dtMs must not be negative, got: %v", req.DtMs))
		return
	}

	dt := min(time.Duration(req.DtMs*float64(time.Millisecond)), maxMoveDuration)
	moved := s.session.MoveCamera(req.Input, dt)
	writeJSON(w, http.StatusOK, MoveResponse{Moved: moved, Camera: s.session.Camera()})
}
