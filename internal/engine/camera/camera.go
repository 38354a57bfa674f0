// Package camera provides the scene camera and its control schemes.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
	vk "github.com/vulkan-go/vulkan"

	"github.com/Faultbox/gxengine/pkg/math"
)

// Defaults.
const (
	DefaultFOV  = 45.0 // vertical degrees in landscape
	DefaultNear = 0.1
	DefaultFar  = 1000.0
)

var (
	DefaultUp        = mgl32.Vec3{0, 1, 0}
	VulkanUp         = mgl32.Vec3{0, -1, 0}
	DefaultLookAt    = mgl32.Vec3{0, 0, 0}
	FailsafePosition = mgl32.Vec3{0, 2, 4} // 4 back, 2 up
)

// Config holds camera settings. Zero fields take the defaults.
type Config struct {
	FOV      float32
	Near     float32
	Far      float32
	Position *mgl32.Vec3

	// ModeledForVulkan makes left-handed rendering the default for all models.
	ModeledForVulkan bool
}

// Camera owns the model-view-projection uniform. Its position is the
// translation of the embedded matrix.
type Camera struct {
	math.Matrix

	MVP UBO

	Up     mgl32.Vec3
	LookAt mgl32.Vec3
	FOV    float32
	Near   float32
	Far    float32

	LeftHanded bool

	extent     vk.Extent2D
	prevWidth  uint32
	prevHeight uint32
}

// New creates a camera for a swapchain extent.
func New(extent vk.Extent2D, cfg Config) *Camera {
	c := &Camera{
		Matrix: math.NewMatrix(),
		MVP:    NewUBO(),
		Up:     DefaultUp,
		LookAt: DefaultLookAt,
		FOV:    DefaultFOV,
		Near:   DefaultNear,
		Far:    DefaultFar,
		extent: extent,

		LeftHanded: cfg.ModeledForVulkan,
	}
	if cfg.FOV > 0 {
		c.FOV = cfg.FOV
	}
	if cfg.Near > 0 {
		c.Near = cfg.Near
	}
	if cfg.Far > 0 {
		c.Far = cfg.Far
	}
	pos := FailsafePosition
	if cfg.Position != nil {
		pos = *cfg.Position
	}
	c.SetPosition(pos)
	return c
}

// Init computes the values that rarely change.
func (c *Camera) Init() {
	c.UpdateViewMatrix()
}

// SetExtent records a new swapchain extent. The projection follows on the next Update.
func (c *Camera) SetExtent(extent vk.Extent2D) {
	c.extent = extent
}

// ScreenSize returns the extent the projection was last built for.
func (c *Camera) ScreenSize() (width, height uint32) {
	return c.prevWidth, c.prevHeight
}

// Update rebuilds the projection when the extent has changed.
func (c *Camera) Update(deltaSeconds float32) {
	if c.extent.Width == c.prevWidth && c.extent.Height == c.prevHeight {
		return
	}
	c.prevWidth, c.prevHeight = c.extent.Width, c.extent.Height
	if c.extent.Height == 0 {
		return
	}
	aspect := float32(c.extent.Width) / float32(c.extent.Height)
	c.UpdateProjection(aspect, c.FOV)
}

// UpdateProjection builds a perspective projection with Y flipped for Vulkan clip space.
func (c *Camera) UpdateProjection(aspect, landscapeFOVDegrees float32) {
	fov := AdjustedFOV(mgl32.DegToRad(landscapeFOVDegrees), aspect)
	c.MVP.Proj = mgl32.Perspective(fov, aspect, c.Near, c.Far)
	c.MVP.Proj[5] *= -1
}

// AdjustedFOV widens the vertical FOV in portrait so the horizontal view
// matches what landscape would show.
func AdjustedFOV(landscapeFOV, aspect float32) float32 {
	if aspect < 1 {
		half := gomath.Tan(float64(landscapeFOV) / 2)
		return float32(2 * gomath.Atan(half/float64(aspect)))
	}
	return landscapeFOV
}

// UpdateViewMatrix points the view from the camera position at LookAt.
func (c *Camera) UpdateViewMatrix() {
	c.MVP.View = mgl32.LookAtV(c.Position(), c.LookAt, c.Up)
}

// FitToBounds centers a bounding box at the origin through the model matrix
// and backs the camera off along its current direction until the box's
// bounding sphere fills the vertical field of view.
func (c *Camera) FitToBounds(lo, hi mgl32.Vec3) {
	center := lo.Add(hi).Mul(0.5)
	radius := hi.Sub(lo).Len() / 2
	if radius == 0 {
		return
	}
	c.MVP.Model = mgl32.Translate3D(-center[0], -center[1], -center[2])

	dir := c.Position().Sub(c.LookAt)
	if dir.Len() == 0 {
		dir = FailsafePosition
	}
	halfFOV := float64(mgl32.DegToRad(c.FOV)) / 2
	distance := radius / float32(gomath.Sin(halfFOV)) * 1.1 // margin
	c.SetPosition(c.LookAt.Add(dir.Normalize().Mul(distance)))
	c.UpdateViewMatrix()
}
