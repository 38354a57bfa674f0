// Package app runs the update and draw loop over a swapchain presenter.
package app

import (
	"math"

	vk "github.com/vulkan-go/vulkan"
	"go.uber.org/zap"

	"github.com/Faultbox/gxengine/internal/engine/camera"
	"github.com/Faultbox/gxengine/internal/engine/clock"
)

// Fence and acquire timeouts in nanoseconds.
const (
	FailsafeTimeout uint64 = 100_000_000 // 0.1 s, never risk deadlock on a fence
	NoTimeout       uint64 = math.MaxUint64
)

// Presenter is the GPU side of one frame. Each call maps to the Vulkan
// command of the same purpose on the frame's sync objects.
type Presenter interface {
	WaitForFence(frame int, timeout uint64) vk.Result
	AcquireNextImage(frame int, timeout uint64) (image uint32, res vk.Result)
	ResetFence(frame int) vk.Result
	Record(frame int, image uint32)
	UpdateUniforms(image uint32, ubo camera.UBO)
	Submit(frame int, image uint32) vk.Result
	Present(frame int, image uint32) vk.Result

	// RecreateRenderingResources rebuilds the swapchain and returns its new extent.
	RecreateRenderingResources() (vk.Extent2D, error)
}

// Renderable is anything advanced once per frame.
type Renderable interface {
	Update(deltaSeconds float32)
}

// Config holds frame loop settings.
type Config struct {
	MaxFramesInFlight int
	Extent            vk.Extent2D
	Camera            camera.Config
}

// Option configures an Application.
type Option func(*Application)

// WithLogger sets the logger. The default discards output.
func WithLogger(log *zap.Logger) Option {
	return func(a *Application) { a.log = log }
}

// WithClock replaces the high-resolution game clock.
func WithClock(c *clock.Clock) Option {
	return func(a *Application) { a.clock = c }
}

// Application owns the clock, camera and control scheme and drives a Presenter.
type Application struct {
	presenter   Presenter
	clock       *clock.Clock
	camera      *camera.Camera
	control     *camera.LockedControl
	renderables []Renderable
	log         *zap.Logger

	maxFrames int
	frame     int

	resized   bool
	minimized bool
	quit      bool
}

// New creates an application. It panics on a nil presenter.
func New(p Presenter, cfg Config, opts ...Option) *Application {
	if p == nil {
		panic("app: New called with nil presenter")
	}
	a := &Application{
		presenter: p,
		log:       zap.NewNop(),
		maxFrames: cfg.MaxFramesInFlight,
	}
	if a.maxFrames <= 0 {
		a.maxFrames = 2
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.clock == nil {
		a.clock = clock.New()
	}
	a.camera = camera.New(cfg.Extent, cfg.Camera)
	a.control = camera.NewLockedControl(a.camera, a.clock)
	return a
}

// Init seeds values that rarely change.
func (a *Application) Init() {
	a.camera.Init()
}

// Add registers a renderable for per-frame updates.
func (a *Application) Add(r Renderable) {
	a.renderables = append(a.renderables, r)
}

// Camera returns the scene camera.
func (a *Application) Camera() *camera.Camera { return a.camera }

// Control returns the camera control scheme.
func (a *Application) Control() *camera.LockedControl { return a.control }

// Clock returns the game clock.
func (a *Application) Clock() *clock.Clock { return a.clock }

// Frame returns the index of the in-flight frame drawn next.
func (a *Application) Frame() int { return a.frame }

// UpdateRender advances the clock, updates everything by the frame delta and draws.
func (a *Application) UpdateRender() {
	a.clock.BeginNewFrame()
	a.update()
	a.draw()
}

// ForceUpdateRender redraws from outside the loop, for example during a
// live window resize that blocks event polling.
func (a *Application) ForceUpdateRender() {
	if a.resized {
		a.recreate()
	}
	a.UpdateRender()
}

func (a *Application) update() {
	dt := a.clock.DeltaSeconds()
	for _, r := range a.renderables {
		r.Update(dt)
	}
	a.camera.Update(dt)
}

func (a *Application) draw() {
	a.presenter.WaitForFence(a.frame, FailsafeTimeout)

	image, res := a.presenter.AcquireNextImage(a.frame, NoTimeout)
	called := "acquire next image"
	if a.resized || needsRecreate(res) {
		a.recreate()
	}

	a.presenter.ResetFence(a.frame)

	if res == vk.Success {
		a.presenter.Record(a.frame, image)
		a.presenter.UpdateUniforms(image, a.camera.MVP)

		res = a.presenter.Submit(a.frame, image)
		called = "queue submit"
		if res == vk.Success {
			res = a.presenter.Present(a.frame, image)
			called = "queue present"
		}
		if a.resized || needsRecreate(res) {
			a.recreate()
		}
	}

	switch {
	case res == vk.Success:
	case needsRecreate(res):
		a.log.Debug("swapchain out of date", zap.String("call", called), zap.Int32("result", int32(res)))
	default:
		a.log.Error("draw failed", zap.String("call", called), zap.Int32("result", int32(res)))
	}

	a.frame = (a.frame + 1) % a.maxFrames
}

func needsRecreate(res vk.Result) bool {
	return res == vk.ErrorOutOfDate || res == vk.Suboptimal
}

func (a *Application) recreate() {
	extent, err := a.presenter.RecreateRenderingResources()
	if err != nil {
		a.log.Error("recreating rendering resources failed", zap.Error(err))
		return
	}
	a.resized = false
	a.camera.SetExtent(extent)
}
