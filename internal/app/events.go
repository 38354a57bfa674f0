package app

// EventKind identifies a platform event.
type EventKind int

const (
	EventQuit EventKind = iota
	EventResized
	EventMinimized
	EventRestored
	EventPressDown
	EventPressUp
	EventDrag
	EventWheel
	EventPinch
)

// Event is a platform event. X and Y carry pointer coordinates or wheel
// spin. Distance carries the pinch distance.
type Event struct {
	Kind     EventKind
	X, Y     int
	Distance float32
}

// EventSource delivers platform events.
type EventSource interface {
	// PollEvent returns the next pending event, or false when none is queued.
	PollEvent() (Event, bool)
	// AwaitEvent blocks until an event arrives.
	AwaitEvent() Event
}

// Run polls events and renders frames until a quit event arrives. While
// the window is minimized it blocks on events instead of rendering.
func (a *Application) Run(events EventSource) {
	a.quit = false
	for !a.quit {
		for {
			ev, ok := events.PollEvent()
			if !ok {
				break
			}
			a.HandleEvent(ev)
		}
		for a.minimized && !a.quit {
			a.HandleEvent(events.AwaitEvent())
		}
		if a.quit {
			break
		}
		a.UpdateRender()
	}
}

// HandleEvent applies one event to the window state or the control scheme.
func (a *Application) HandleEvent(ev Event) {
	switch ev.Kind {
	case EventQuit:
		a.quit = true
	case EventResized:
		a.resized = true
	case EventMinimized:
		a.minimized = true
	case EventRestored:
		a.minimized = false
		a.resized = true
	case EventPressDown:
		a.control.PrimaryPressDown(ev.X, ev.Y)
	case EventPressUp:
		a.control.PrimaryPressUp(ev.X, ev.Y)
	case EventDrag:
		a.control.PrimaryPressAndDrag(ev.X, ev.Y)
	case EventWheel:
		a.control.MouseWheel(ev.X, ev.Y)
	case EventPinch:
		a.control.PinchSpread(ev.Distance)
	}
}
