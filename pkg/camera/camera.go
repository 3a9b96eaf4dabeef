package camera

import (
	"math"
	"math/rand"

	"github.com/df07/go-interactive-raytracer/pkg/core"
)

// maxPitch keeps the view direction away from the world up axis
const maxPitch = 89.0

var worldUp = core.NewVec3(0, 1, 0)

// Config holds the user-facing camera parameters. Angles are in degrees.
type Config struct {
	Position      core.Vec3 `json:"position"`
	Yaw           float64   `json:"yaw"`            // Rotation around Y; 0 looks down +X
	Pitch         float64   `json:"pitch"`          // Elevation above the XZ plane
	VFov          float64   `json:"fov"`            // Vertical field of view
	FocusDistance float64   `json:"focus_distance"` // Distance to the plane of perfect focus
	DefocusAngle  float64   `json:"defocus_angle"`  // Aperture cone angle; 0 is a pinhole
	Sensitivity   float64   `json:"sensitivity"`    // Degrees turned per unit of yaw/pitch input per second
	Width         int       `json:"-"`
	Height        int       `json:"-"`
}

// DefaultConfig returns the camera used by the random spheres scene
func DefaultConfig() Config {
	return Config{
		Position:      core.NewVec3(-13, 2, 3),
		VFov:          60,
		FocusDistance: 10,
		DefocusAngle:  0.6,
		Sensitivity:   2.0,
		Width:         800,
		Height:        450,
	}
}

// Input is one frame of movement. Right, Up and Forward move the camera
// along its own axes; Yaw and Pitch turn it.
type Input struct {
	Right   float64 `json:"right"`
	Up      float64 `json:"up"`
	Forward float64 `json:"forward"`
	Yaw     float64 `json:"yaw"`
	Pitch   float64 `json:"pitch"`
}

// IsZero reports whether the input would leave the camera unchanged
func (in Input) IsZero() bool {
	return in == Input{}
}

// Camera generates primary rays. The derived fields are rebuilt from Config
// on every change and are read-only while rendering.
type Camera struct {
	config Config

	forward, right, up core.Vec3
	pixel00            core.Vec3 // Center of the top-left pixel
	pixelDeltaU        core.Vec3 // One pixel to the right
	pixelDeltaV        core.Vec3 // One pixel down
	defocusDiskU       core.Vec3
	defocusDiskV       core.Vec3
}

// New creates a camera from the given parameters
func New(config Config) *Camera {
	c := &Camera{}
	c.Reconfigure(config)
	return c
}

// Config returns the current parameters
func (c *Camera) Config() Config {
	return c.config
}

// Width returns the output width in pixels
func (c *Camera) Width() int {
	return c.config.Width
}

// Height returns the output height in pixels
func (c *Camera) Height() int {
	return c.config.Height
}

// Forward returns the unit view direction
func (c *Camera) Forward() core.Vec3 {
	return c.forward
}

// Reconfigure replaces every parameter and recomputes the derived state
func (c *Camera) Reconfigure(config Config) {
	config.Width = max(1, config.Width)
	config.Height = max(1, config.Height)
	config.Pitch = max(-maxPitch, min(maxPitch, config.Pitch))
	c.config = config
	c.recompute()
}

// SetResolution changes the output size and recomputes the derived state
func (c *Camera) SetResolution(width, height int) {
	config := c.config
	config.Width, config.Height = width, height
	c.Reconfigure(config)
}

func (c *Camera) recompute() {
	cfg := c.config

	c.forward = direction(cfg.Yaw, cfg.Pitch)
	c.right = c.forward.Cross(worldUp).Normalize()
	c.up = c.right.Cross(c.forward)

	viewportHeight := 2 * math.Tan(degreesToRadians(cfg.VFov)/2) * cfg.FocusDistance
	viewportWidth := viewportHeight * float64(cfg.Width) / float64(cfg.Height)

	viewportU := c.right.Multiply(viewportWidth)
	viewportV := c.up.Multiply(-viewportHeight)

	c.pixelDeltaU = viewportU.Multiply(1 / float64(cfg.Width))
	c.pixelDeltaV = viewportV.Multiply(1 / float64(cfg.Height))

	upperLeft := cfg.Position.
		Add(c.forward.Multiply(cfg.FocusDistance)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	c.pixel00 = upperLeft.Add(c.pixelDeltaU.Add(c.pixelDeltaV).Multiply(0.5))

	defocusRadius := cfg.FocusDistance * math.Tan(degreesToRadians(cfg.DefocusAngle/2))
	c.defocusDiskU = c.right.Multiply(defocusRadius)
	c.defocusDiskV = c.up.Multiply(defocusRadius)
}

// GenerateRay returns a jittered ray through pixel (x, y), where (0, 0) is the
// top-left pixel. With a non-zero defocus angle the origin is spread over the
// aperture disk.
func (c *Camera) GenerateRay(x, y int, random *rand.Rand) core.Ray {
	pixelSample := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(x) + random.Float64() - 0.5)).
		Add(c.pixelDeltaV.Multiply(float64(y) + random.Float64() - 0.5))

	origin := c.config.Position
	if c.config.DefocusAngle > 0 {
		p := core.RandomInUnitDisk(random)
		origin = origin.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
	}

	return core.NewRay(origin, pixelSample.Subtract(origin).Normalize())
}

// ProcessInput turns and moves the camera for a frame lasting dt seconds.
// It returns false without touching the camera when the input is empty
// or the frame has no duration.
func (c *Camera) ProcessInput(in Input, dt float64) bool {
	if in.IsZero() || dt <= 0 {
		return false
	}

	cfg := c.config
	cfg.Yaw += in.Yaw * cfg.Sensitivity * dt
	cfg.Pitch -= in.Pitch * cfg.Sensitivity * dt
	cfg.Pitch = max(-maxPitch, min(maxPitch, cfg.Pitch))

	forward := direction(cfg.Yaw, cfg.Pitch)
	right := forward.Cross(worldUp).Normalize()
	up := right.Cross(forward)

	move := right.Multiply(in.Right).
		Add(up.Multiply(in.Up)).
		Add(forward.Multiply(in.Forward)).
		Normalize()
	cfg.Position = cfg.Position.Add(move.Multiply(dt))

	c.Reconfigure(cfg)
	return true
}

// direction converts yaw and pitch in degrees to a unit view vector
func direction(yaw, pitch float64) core.Vec3 {
	yawRad := degreesToRadians(yaw)
	pitchRad := degreesToRadians(pitch)
	return core.NewVec3(
		math.Cos(yawRad)*math.Cos(pitchRad),
		math.Sin(pitchRad),
		math.Sin(yawRad)*math.Cos(pitchRad),
	)
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// LookAt returns the yaw and pitch, in degrees, that point a camera at from toward to
func LookAt(from, to core.Vec3) (yaw, pitch float64) {
	d := to.Subtract(from).Normalize()
	yaw = math.Atan2(d.Z, d.X) * 180 / math.Pi
	pitch = math.Asin(max(-1, min(1, d.Y))) * 180 / math.Pi
	return yaw, pitch
}
