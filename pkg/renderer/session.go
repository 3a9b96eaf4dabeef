package renderer

import (
	"math/rand"
	"sync"
	"time"

	"github.com/df07/go-interactive-raytracer/pkg/camera"
	"github.com/df07/go-interactive-raytracer/pkg/core"
	"github.com/df07/go-interactive-raytracer/pkg/geometry"
	"github.com/df07/go-interactive-raytracer/pkg/scene"
)

// Settings are the user-adjustable render parameters
type Settings struct {
	SamplesPerPixel int           `json:"samplesPerPixel"`
	MaxDepth        int           `json:"maxDepth"`
	TimeBudget      time.Duration `json:"timeBudget"` // Per frame; checked between batches
}

// DefaultSettings returns the interactive defaults
func DefaultSettings() Settings {
	return Settings{
		SamplesPerPixel: 5,
		MaxDepth:        10,
		TimeBudget:      10 * time.Millisecond,
	}
}

// normalized clamps settings to usable values
func (s Settings) normalized() Settings {
	s.SamplesPerPixel = max(1, s.SamplesPerPixel)
	s.MaxDepth = max(1, s.MaxDepth)
	s.TimeBudget = max(0, s.TimeBudget)
	return s
}

// Frame is one materialized image
type Frame struct {
	Width    int
	Height   int
	Pixels   []byte // RGBA8, row-major from the top left
	Progress float64
	Finished bool
	Samples  int     // Samples added by this frame
	FPS      float64 // Smoothed frames per second
}

// Session drives a scene interactively: every Frame call advances the
// accumulation within the time budget, and every camera, resolution or
// settings change restarts it. All methods are safe for concurrent use;
// changes are serialized against frames.
type Session struct {
	mu       sync.Mutex
	scene    *scene.Scene
	state    *RenderState
	settings Settings

	lastFrame time.Time
	fps       float64
}

// NewSession creates a session rendering sc at the camera's resolution
func NewSession(sc *scene.Scene, settings Settings, config StateConfig) *Session {
	s := &Session{
		scene:    sc,
		state:    NewRenderState(sc.Width(), sc.Height(), config),
		settings: settings.normalized(),
	}
	s.state.SetSamplesPerPixel(s.settings.SamplesPerPixel)
	return s
}

// Frame advances the accumulation and returns the current image
func (s *Session) Frame() (Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added, err := s.state.Advance(s.scene, s.settings.TimeBudget, s.settings.SamplesPerPixel, s.settings.MaxDepth)
	if err != nil {
		return Frame{}, err
	}
	s.tick()

	return Frame{
		Width:    s.state.Width(),
		Height:   s.state.Height(),
		Pixels:   s.state.Bytes(),
		Progress: s.state.Progress(),
		Finished: s.state.IsFinished(),
		Samples:  added,
		FPS:      s.fps,
	}, nil
}

// tick updates the smoothed frame rate
func (s *Session) tick() {
	now := time.Now()
	if !s.lastFrame.IsZero() {
		if dt := now.Sub(s.lastFrame).Seconds(); dt > 0 {
			instant := 1 / dt
			if s.fps == 0 {
				s.fps = instant
			} else {
				s.fps = 0.9*s.fps + 0.1*instant
			}
		}
	}
	s.lastFrame = now
}

// Resize changes the output resolution and restarts accumulation
func (s *Session) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scene.Resize(width, height)
	s.state.Resize(s.scene.Width(), s.scene.Height())
	logger.Infof("Session resized to %dx%d", s.scene.Width(), s.scene.Height())
}

// MoveCamera applies one frame of movement input. Accumulation restarts only
// when the camera actually moved.
func (s *Session) MoveCamera(in camera.Input, dt time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.scene.Camera.ProcessInput(in, dt.Seconds()) {
		return false
	}
	s.state.Restore()
	return true
}

// Camera returns the current camera parameters
func (s *Session) Camera() camera.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene.Camera.Config()
}

// SetCamera replaces the camera parameters, keeping the resolution
func (s *Session) SetCamera(config camera.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.scene.Camera.Config()
	config.Width, config.Height = current.Width, current.Height
	s.scene.Camera.Reconfigure(config)
	s.state.Restore()
}

// Settings returns the current render settings
func (s *Session) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// SetSettings updates the render settings. Changing the sample count or the
// depth restarts accumulation; the time budget applies from the next frame.
func (s *Session) SetSettings(settings Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings = settings.normalized()
	restart := settings.SamplesPerPixel != s.settings.SamplesPerPixel || settings.MaxDepth != s.settings.MaxDepth
	s.settings = settings
	s.state.SetSamplesPerPixel(settings.SamplesPerPixel)
	if restart {
		s.state.Restore()
	}
}

// Scene returns the scene being rendered
func (s *Session) Scene() *scene.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene
}

// SetScene switches to another scene, keeping the current resolution
func (s *Session) SetScene(sc *scene.Scene) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc.Resize(s.state.Width(), s.state.Height())
	s.scene = sc
	s.state.Restore()
	logger.Infof("Session switched to scene %q (%s backend)", sc.Name, sc.Backend)
}

// Pick traces a primary ray through pixel (x, y) and returns
// the nearest hit and the geometry it belongs to
func (s *Session) Pick(x, y int) (core.TraceResult, geometry.Geometry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Fixed seed so repeated picks report the same point
	ray := s.scene.Camera.GenerateRay(x, y, rand.New(rand.NewSource(0)))
	hit, ok := s.scene.Tracer.Trace(ray, core.RayInterval())
	if !ok {
		return core.TraceResult{}, geometry.Geometry{}, false
	}
	return hit, s.scene.Geometries[hit.GeometryIndex], true
}

// Stats summarizes the current accumulation
func (s *Session) Stats() RenderStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Stats()
}

// Close stops the session's workers
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Close()
}
