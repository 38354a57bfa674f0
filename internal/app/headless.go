package app

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/Faultbox/gxengine/internal/engine/camera"
)

// Headless is a Presenter without a GPU. It cycles through a fixed number
// of swapchain images and keeps the last uniform bytes written per image,
// which makes the frame loop usable from tools and tests.
type Headless struct {
	extent   vk.Extent2D
	images   uint32
	next     uint32
	uniforms [][]byte

	Frames    int // presented frames
	Recreated int
}

// NewHeadless creates a headless presenter with the given swapchain size.
func NewHeadless(extent vk.Extent2D, images uint32) *Headless {
	if images == 0 {
		images = 3
	}
	return &Headless{extent: extent, images: images, uniforms: make([][]byte, images)}
}

func (h *Headless) WaitForFence(int, uint64) vk.Result { return vk.Success }

func (h *Headless) AcquireNextImage(int, uint64) (uint32, vk.Result) {
	image := h.next
	h.next = (h.next + 1) % h.images
	return image, vk.Success
}

func (h *Headless) ResetFence(int) vk.Result { return vk.Success }

func (h *Headless) Record(int, uint32) {}

func (h *Headless) UpdateUniforms(image uint32, ubo camera.UBO) {
	h.uniforms[image] = ubo.Bytes()
}

func (h *Headless) Submit(int, uint32) vk.Result { return vk.Success }

func (h *Headless) Present(int, uint32) vk.Result {
	h.Frames++
	return vk.Success
}

func (h *Headless) RecreateRenderingResources() (vk.Extent2D, error) {
	h.Recreated++
	return h.extent, nil
}

// Resize changes the extent returned by the next recreation.
func (h *Headless) Resize(extent vk.Extent2D) { h.extent = extent }

// Uniforms returns the bytes last written for image, or nil.
func (h *Headless) Uniforms(image uint32) []byte {
	if image >= h.images {
		return nil
	}
	return h.uniforms[image]
}

// Script is an EventSource replaying a fixed list of events, one batch per
// frame. When the list is exhausted it reports EventQuit.
type Script struct {
	batches [][]Event
	polled  bool
}

// NewScript creates a script. Each batch is delivered before one frame.
func NewScript(batches ...[]Event) *Script {
	return &Script{batches: batches}
}

// Frames creates a script that renders n frames without input and quits.
func Frames(n int) *Script {
	return &Script{batches: make([][]Event, n)}
}

func (s *Script) PollEvent() (Event, bool) {
	if len(s.batches) == 0 {
		if s.polled {
			return Event{}, false
		}
		s.polled = true
		return Event{Kind: EventQuit}, true
	}
	if len(s.batches[0]) == 0 {
		s.batches = s.batches[1:]
		return Event{}, false
	}
	ev := s.batches[0][0]
	s.batches[0] = s.batches[0][1:]
	return ev, true
}

func (s *Script) AwaitEvent() Event {
	for {
		if len(s.batches) == 0 {
			return Event{Kind: EventQuit}
		}
		// Awaiting skips frame boundaries.
		if ev, ok := s.PollEvent(); ok {
			return ev
		}
	}
}
