package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/df07/go-interactive-raytracer/pkg/camera"
	"github.com/df07/go-interactive-raytracer/pkg/log"
	"github.com/df07/go-interactive-raytracer/pkg/renderer"
	"github.com/df07/go-interactive-raytracer/pkg/scene"
	"github.com/df07/go-interactive-raytracer/pkg/tracer"
)

var logger = log.New("web")

// Resolution limits accepted by the resize endpoint
const (
	minDimension = 16
	maxDimension = 2000
)

// Server exposes an interactive render session over HTTP
type Server struct {
	port    int
	session *renderer.Session
	backend tracer.Backend
	console *Console
}

// NewServer creates a web server for session. backend is used when a client
// switches to another preset scene.
func NewServer(port int, session *renderer.Session, backend tracer.Backend, console *Console) *Server {
	return &Server{port: port, session: session, backend: backend, console: console}
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/scenes", s.handleScenes)
	mux.HandleFunc("POST /api/scene", s.handleSetScene)
	mux.HandleFunc("GET /api/frame", s.handleFrame)
	mux.HandleFunc("GET /api/stream", s.handleStream)
	mux.HandleFunc("GET /api/camera", s.handleGetCamera)
	mux.HandleFunc("PUT /api/camera", s.handleSetCamera)
	mux.HandleFunc("POST /api/camera/move", s.handleMoveCamera)
	mux.HandleFunc("POST /api/resize", s.handleResize)
	mux.HandleFunc("GET /api/settings", s.handleGetSettings)
	mux.HandleFunc("POST /api/settings", s.handleSetSettings)
	mux.HandleFunc("GET /api/inspect", s.handleInspect)
	return mux
}

// Start serves until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warningf("Failed to shut down web server: %v", err)
		}
	}()

	logger.Noticef("Starting web server on http://localhost:%d", s.port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// StatusResponse describes the session
type StatusResponse struct {
	Scene    string          `json:"scene"`
	Backend  string          `json:"backend"`
	Settings SettingsRequest `json:"settings"`
	Stats    Stats           `json:"stats"`
	Camera   camera.Config   `json:"camera"`
}

// Stats represents render statistics
type Stats struct {
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	MinSamples     int     `json:"minSamples"`
	MaxSamplesUsed int     `json:"maxSamplesUsed"`
	Progress       float64 `json:"progress"`
}

func toStats(rs renderer.RenderStats) Stats {
	return Stats{
		Width:          rs.Width,
		Height:         rs.Height,
		TotalSamples:   rs.TotalSamples,
		AverageSamples: rs.AverageSamples,
		MinSamples:     rs.MinSamples,
		MaxSamplesUsed: rs.MaxSamplesUsed,
		Progress:       rs.Progress,
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	sc := s.session.Scene()
	writeJSON(w, http.StatusOK, StatusResponse{
		Scene:    sc.Name,
		Backend:  string(sc.Backend),
		Settings: toSettingsRequest(s.session.Settings()),
		Stats:    toStats(s.session.Stats()),
		Camera:   s.session.Camera(),
	})
}

func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"current": s.session.Scene().Name,
		"scenes":  scene.ListScenes(),
	})
}

// SceneRequest selects a preset scene
type SceneRequest struct {
	ID string `json:"id"`
}

func (s *Server) handleSetScene(w http.ResponseWriter, r *http.Request) {
	var req SceneRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	desc, err := scene.LookupPreset(req.ID)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	sc, err := scene.New(desc, s.backend)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.session.SetScene(sc)
	writeJSON(w, http.StatusOK, map[string]string{"scene": sc.Name})
}

// ResizeRequest changes the output resolution
type ResizeRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	var req ResizeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := checkRange("width", req.Width, minDimension, maxDimension); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := checkRange("height", req.Height, minDimension, maxDimension); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.session.Resize(req.Width, req.Height)
	writeJSON(w, http.StatusOK, req)
}

// SettingsRequest is the wire form of renderer.Settings
type SettingsRequest struct {
	SamplesPerPixel int     `json:"samplesPerPixel"`
	MaxDepth        int     `json:"maxDepth"`
	TimeBudgetMs    float64 `json:"timeBudgetMs"`
}

func toSettingsRequest(settings renderer.Settings) SettingsRequest {
	return SettingsRequest{
		SamplesPerPixel: settings.SamplesPerPixel,
		MaxDepth:        settings.MaxDepth,
		TimeBudgetMs:    float64(settings.TimeBudget) / float64(time.Millisecond),
	}
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toSettingsRequest(s.session.Settings()))
}

func (s *Server) handleSetSettings(w http.ResponseWriter, r *http.Request) {
	req := toSettingsRequest(s.session.Settings())
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := checkRange("samplesPerPixel", req.SamplesPerPixel, 1, 10000); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := checkRange("maxDepth", req.MaxDepth, 1, 1000); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.TimeBudgetMs < 0 || req.TimeBudgetMs > 1000 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("timeBudgetMs must be between 0 and 1000, got: %v", req.TimeBudgetMs))
		return
	}

	s.session.SetSettings(renderer.Settings{
		SamplesPerPixel: req.SamplesPerPixel,
		MaxDepth:        req.MaxDepth,
		TimeBudget:      time.Duration(req.TimeBudgetMs * float64(time.Millisecond)),
	})
	writeJSON(w, http.StatusOK, toSettingsRequest(s.session.Settings()))
}

// checkRange validates an integer parameter
func checkRange(key string, value, min, max int) error {
	if value < min || value > max {
		return fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, value)
	}
	return nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warningf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
