package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Press thresholds.
const (
	MinLongPressSeconds = 0.5
	MaxLongPressWiggle  = 3 // pixels on either axis
)

// Timer supplies real time for telling taps from long presses.
type Timer interface {
	SecondsSinceStart() float32
}

// LockedControl orbits a camera around its look-at point. Dragging
// rotates, the wheel and pinch gestures move it closer or farther.
type LockedControl struct {
	camera *Camera
	timer  Timer

	timePressed  float32 // negative while released
	pressX       int
	pressY       int
	priorMoveX   float32
	priorMoveY   float32
	zooming      bool
	shortPressed bool
	longPressed  bool
}

// NewLockedControl creates a control for camera.
func NewLockedControl(camera *Camera, timer Timer) *LockedControl {
	return &LockedControl{camera: camera, timer: timer, timePressed: -1}
}

// PrimaryPressDown starts a press at (x, y).
func (c *LockedControl) PrimaryPressDown(x, y int) {
	c.timePressed = c.timer.SecondsSinceStart()
	c.pressX, c.pressY = x, y
}

// PrimaryPressAndDrag orbits the camera. Horizontal movement in pixels
// rotates about Y by as many degrees, vertical movement about X.
func (c *LockedControl) PrimaryPressAndDrag(x, y int) {
	if c.timePressed < 0 || c.zooming {
		return
	}
	position := c.camera.Position()
	moveX := float32(c.pressX - x)
	moveY := float32(c.pressY - y)

	m := mgl32.HomogRotate3DY(mgl32.DegToRad(c.priorMoveX - moveX))
	m = m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(c.priorMoveY - moveY)))
	c.priorMoveX, c.priorMoveY = moveX, moveY

	c.camera.M = m.Mul4(mgl32.Translate3D(position[0], position[1], position[2]))
	c.camera.UpdateViewMatrix()
}

// PrimaryPressUp ends a press. A release within MinLongPressSeconds counts
// as a short press. A later release that stayed within MaxLongPressWiggle
// counts as a long press. Either kind of long release resets the drag reference.
// A release without a press, such as one started outside the window, is ignored.
func (c *LockedControl) PrimaryPressUp(x, y int) {
	c.zooming = false
	if c.timePressed < 0 {
		return
	}
	released := c.timer.SecondsSinceStart()
	if released-c.timePressed < MinLongPressSeconds {
		c.shortPressed = true
	} else {
		if abs(x-c.pressX) <= MaxLongPressWiggle && abs(y-c.pressY) <= MaxLongPressWiggle {
			c.longPressed = true
		}
		c.priorMoveX, c.priorMoveY = 0, 0
	}
	c.timePressed = -1
}

// MouseWheel zooms by 10% per notch of vertical spin.
func (c *LockedControl) MouseWheel(spunX, spunY int) {
	c.zoom(1 - 0.1*float32(spunY))
}

// PinchSpread zooms by a pinch distance.
func (c *LockedControl) PinchSpread(distance float32) {
	c.zooming = true
	c.zoom(1 - 10*distance)
}

// WasPrimaryShortPressed reports a short press once, then clears it.
func (c *LockedControl) WasPrimaryShortPressed() bool {
	was := c.shortPressed
	c.shortPressed = false
	return was
}

// WasPrimaryLongPressed reports a long press once, then clears it.
func (c *LockedControl) WasPrimaryLongPressed() bool {
	was := c.longPressed
	c.longPressed = false
	return was
}

// zoom scales the camera position toward or away from the origin.
func (c *LockedControl) zoom(factor float32) {
	c.camera.SetPosition(c.camera.Position().Mul(factor))
	c.camera.UpdateViewMatrix()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
