// Package input turns SDL2 events into frame loop events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/gxengine/internal/app"
)

// Input is an app.EventSource reading the SDL event queue. The left mouse
// button is the primary press. Motion while it is held is a drag.
type Input struct {
	pressed bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{}
}

// PollEvent returns the next event the frame loop cares about, skipping
// the rest, or false when the queue is empty.
func (i *Input) PollEvent() (app.Event, bool) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if ev, ok := i.Translate(event); ok {
			return ev, true
		}
	}
	return app.Event{}, false
}

// AwaitEvent blocks until an event the frame loop cares about arrives.
func (i *Input) AwaitEvent() app.Event {
	for {
		event := sdl.WaitEvent()
		if event == nil {
			// SDL reported an error while waiting.
			return app.Event{Kind: app.EventQuit}
		}
		if ev, ok := i.Translate(event); ok {
			return ev
		}
	}
}

// Translate converts one SDL event. It returns false for events with no
// frame loop meaning.
func (i *Input) Translate(event sdl.Event) (app.Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return app.Event{Kind: app.EventQuit}, true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
			return app.Event{Kind: app.EventResized, X: int(e.Data1), Y: int(e.Data2)}, true
		case sdl.WINDOWEVENT_MINIMIZED:
			return app.Event{Kind: app.EventMinimized}, true
		case sdl.WINDOWEVENT_RESTORED:
			return app.Event{Kind: app.EventRestored}, true
		}

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN && e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
			return app.Event{Kind: app.EventQuit}, true
		}

	case *sdl.MouseButtonEvent:
		if e.Button != sdl.BUTTON_LEFT {
			break
		}
		if e.Type == sdl.MOUSEBUTTONDOWN {
			i.pressed = true
			return app.Event{Kind: app.EventPressDown, X: int(e.X), Y: int(e.Y)}, true
		}
		if e.Type == sdl.MOUSEBUTTONUP {
			i.pressed = false
			return app.Event{Kind: app.EventPressUp, X: int(e.X), Y: int(e.Y)}, true
		}

	case *sdl.MouseMotionEvent:
		if i.pressed {
			return app.Event{Kind: app.EventDrag, X: int(e.X), Y: int(e.Y)}, true
		}

	case *sdl.MouseWheelEvent:
		return app.Event{Kind: app.EventWheel, X: int(e.X), Y: int(e.Y)}, true

	case *sdl.MultiGestureEvent:
		if e.NumFingers == 2 {
			return app.Event{Kind: app.EventPinch, Distance: e.DDist}, true
		}
	}
	return app.Event{}, false
}
