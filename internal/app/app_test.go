package app

import (
	"testing"
	"time"

	vk "github.com/vulkan-go/vulkan"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/gxengine/internal/engine/camera"
	"github.com/Faultbox/gxengine/internal/engine/clock"
)

var testExtent = vk.Extent2D{Width: 800, Height: 600}

// fakePresenter records calls and returns configurable results.
type fakePresenter struct {
	acquire vk.Result
	submit  vk.Result
	present vk.Result

	calls     []string
	recreated int
}

func newFakePresenter() *fakePresenter {
	return &fakePresenter{acquire: vk.Success, submit: vk.Success, present: vk.Success}
}

func (f *fakePresenter) WaitForFence(_ int, timeout uint64) vk.Result {
	f.calls = append(f.calls, "wait")
	return vk.Success
}

func (f *fakePresenter) AcquireNextImage(int, uint64) (uint32, vk.Result) {
	f.calls = append(f.calls, "acquire")
	return 0, f.acquire
}

func (f *fakePresenter) ResetFence(int) vk.Result {
	f.calls = append(f.calls, "reset")
	return vk.Success
}

func (f *fakePresenter) Record(int, uint32) { f.calls = append(f.calls, "record") }

func (f *fakePresenter) UpdateUniforms(uint32, camera.UBO) {
	f.calls = append(f.calls, "uniforms")
}

func (f *fakePresenter) Submit(int, uint32) vk.Result {
	f.calls = append(f.calls, "submit")
	return f.submit
}

func (f *fakePresenter) Present(int, uint32) vk.Result {
	f.calls = append(f.calls, "present")
	return f.present
}

func (f *fakePresenter) RecreateRenderingResources() (vk.Extent2D, error) {
	f.calls = append(f.calls, "recreate")
	f.recreated++
	return testExtent, nil
}

type stepTime struct{ t time.Duration }

func (s *stepTime) now() time.Duration {
	s.t += 10 * time.Millisecond
	return s.t
}

type countingRenderable struct{ deltas []float32 }

func (c *countingRenderable) Update(dt float32) { c.deltas = append(c.deltas, dt) }

func newTestApp(p Presenter) (*Application, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	st := &stepTime{}
	a := New(p, Config{MaxFramesInFlight: 2, Extent: testExtent},
		WithLogger(zap.New(core)),
		WithClock(clock.NewWithSource(st.now)))
	a.Init()
	return a, logs
}

func equalCalls(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestDraw_CallOrder(t *testing.T) {
	p := newFakePresenter()
	a, logs := newTestApp(p)

	a.UpdateRender()

	want := []string{"wait", "acquire", "reset", "record", "uniforms", "submit", "present"}
	if !equalCalls(p.calls, want) {
		t.Errorf("calls = %v, want %v", p.calls, want)
	}
	if logs.Len() != 0 {
		t.Errorf("unexpected logs: %v", logs.All())
	}
	if a.Frame() != 1 {
		t.Errorf("Frame() = %d, want 1", a.Frame())
	}
}

func TestDraw_FrameIndexWraps(t *testing.T) {
	a, _ := newTestApp(newFakePresenter())
	for i := 0; i < 5; i++ {
		a.UpdateRender()
	}
	if a.Frame() != 1 {
		t.Errorf("Frame() = %d, want 1", a.Frame())
	}
}

func TestDraw_OutOfDateOnAcquire(t *testing.T) {
	p := newFakePresenter()
	p.acquire = vk.ErrorOutOfDate
	a, logs := newTestApp(p)

	a.UpdateRender()

	want := []string{"wait", "acquire", "recreate", "reset"}
	if !equalCalls(p.calls, want) {
		t.Errorf("calls = %v, want %v", p.calls, want)
	}
	if logs.FilterLevelExact(zapcore.ErrorLevel).Len() != 0 {
		t.Error("out of date swapchain logged as an error")
	}
	if logs.FilterMessage("swapchain out of date").Len() != 1 {
		t.Error("expected a debug entry for the out of date swapchain")
	}
	if a.Frame() != 1 {
		t.Error("frame index should advance even when nothing was drawn")
	}
}

func TestDraw_SuboptimalPresentRecreates(t *testing.T) {
	p := newFakePresenter()
	p.present = vk.Suboptimal
	a, _ := newTestApp(p)

	a.UpdateRender()

	if p.recreated != 1 {
		t.Errorf("recreated = %d, want 1", p.recreated)
	}
	if p.calls[len(p.calls)-1] != "recreate" {
		t.Errorf("recreate should follow present: %v", p.calls)
	}
}

func TestDraw_SubmitFailureLogged(t *testing.T) {
	p := newFakePresenter()
	p.submit = vk.ErrorDeviceLost
	a, logs := newTestApp(p)

	a.UpdateRender()

	for _, c := range p.calls {
		if c == "present" {
			t.Fatal("presented after a failed submit")
		}
	}
	errs := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	if len(errs) != 1 {
		t.Fatalf("error entries = %d, want 1", len(errs))
	}
	if got := errs[0].ContextMap()["call"]; got != "queue submit" {
		t.Errorf("call = %v, want queue submit", got)
	}
}

func TestUpdateRender_UpdatesRenderables(t *testing.T) {
	a, _ := newTestApp(newFakePresenter())
	r := &countingRenderable{}
	a.Add(r)

	a.UpdateRender()
	a.UpdateRender()

	if len(r.deltas) != 2 {
		t.Fatalf("updates = %d, want 2", len(r.deltas))
	}
	for i, d := range r.deltas {
		if d < 0.009 || d > 0.011 {
			t.Errorf("delta[%d] = %f, want 0.01", i, d)
		}
	}
	if w, h := a.Camera().ScreenSize(); w != testExtent.Width || h != testExtent.Height {
		t.Errorf("camera extent = %dx%d", w, h)
	}
}

func TestForceUpdateRender_RecreatesWhenResized(t *testing.T) {
	p := newFakePresenter()
	a, _ := newTestApp(p)

	a.HandleEvent(Event{Kind: EventResized})
	a.ForceUpdateRender()

	if p.calls[0] != "recreate" {
		t.Errorf("calls = %v, want recreate first", p.calls)
	}
	if p.recreated != 1 {
		t.Errorf("recreated = %d, want 1", p.recreated)
	}

	p.calls = nil
	a.ForceUpdateRender()
	if p.recreated != 1 {
		t.Error("recreated again without a resize")
	}
}

func TestRun_Frames(t *testing.T) {
	h := NewHeadless(testExtent, 3)
	a, _ := newTestApp(h)

	a.Run(Frames(4))

	if h.Frames != 4 {
		t.Errorf("Frames = %d, want 4", h.Frames)
	}
	if a.Frame() != 0 {
		t.Errorf("Frame() = %d, want 0", a.Frame())
	}
	for image := uint32(0); image < 3; image++ {
		if len(h.Uniforms(image)) != camera.UBOSize {
			t.Errorf("image %d uniforms = %d bytes", image, len(h.Uniforms(image)))
		}
	}
	if h.Uniforms(3) != nil {
		t.Error("out of range image should have no uniforms")
	}
}

func TestRun_ResizeUpdatesCamera(t *testing.T) {
	h := NewHeadless(testExtent, 2)
	a, _ := newTestApp(h)

	h.Resize(vk.Extent2D{Width: 1024, Height: 768})
	a.Run(NewScript([]Event{{Kind: EventResized}}, nil))

	if h.Recreated != 1 {
		t.Errorf("Recreated = %d, want 1", h.Recreated)
	}
	if w, hh := a.Camera().ScreenSize(); w != 1024 || hh != 768 {
		t.Errorf("camera extent = %dx%d, want 1024x768", w, hh)
	}
}

func TestRun_MinimizedDoesNotRender(t *testing.T) {
	h := NewHeadless(testExtent, 2)
	a, _ := newTestApp(h)

	a.Run(NewScript([]Event{{Kind: EventMinimized}}))

	if h.Frames != 0 {
		t.Errorf("Frames = %d, want 0 while minimized", h.Frames)
	}
}

func TestRun_RestoreResumes(t *testing.T) {
	h := NewHeadless(testExtent, 2)
	a, _ := newTestApp(h)

	a.Run(NewScript(
		[]Event{{Kind: EventMinimized}},
		[]Event{{Kind: EventRestored}},
	))

	if h.Frames != 2 {
		t.Errorf("Frames = %d, want 2", h.Frames)
	}
	if h.Recreated != 1 {
		t.Errorf("Recreated = %d, want 1 after restore", h.Recreated)
	}
}

func TestRun_InputMovesCamera(t *testing.T) {
	h := NewHeadless(testExtent, 2)
	a, _ := newTestApp(h)
	start := a.Camera().Position()

	a.Run(NewScript([]Event{
		{Kind: EventPressDown, X: 100, Y: 100},
		{Kind: EventDrag, X: 10, Y: 100},
	}))

	if a.Camera().Position() == start {
		t.Error("drag did not orbit the camera")
	}

	before := a.Camera().Position()
	a.Run(NewScript([]Event{{Kind: EventWheel, Y: 1}}))
	if !a.Camera().Position().ApproxEqualThreshold(before.Mul(0.9), 1e-4) {
		t.Errorf("wheel zoom position = %v", a.Camera().Position())
	}
}

func TestNew_NilPresenterPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	New(nil, Config{})
}
