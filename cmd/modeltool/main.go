// modeltool is a CLI utility for inspecting how OBJ models load into
// deduplicated vertex and index buffers.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	vk "github.com/vulkan-go/vulkan"
	"go.uber.org/zap"

	"github.com/Faultbox/gxengine/internal/app"
	"github.com/Faultbox/gxengine/internal/assets"
	"github.com/Faultbox/gxengine/internal/config"
	"github.com/Faultbox/gxengine/internal/engine/camera"
	"github.com/Faultbox/gxengine/internal/engine/input"
	"github.com/Faultbox/gxengine/internal/engine/model"
	"github.com/Faultbox/gxengine/internal/engine/renderer"
	"github.com/Faultbox/gxengine/internal/engine/window"
	"github.com/Faultbox/gxengine/internal/logger"
	"github.com/Faultbox/gxengine/pkg/vertex"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "info":
		cmdInfo(cfg, args)
	case "dump":
		cmdDump(cfg, args)
	case "layout":
		cmdLayout(cfg, args)
	case "cubes":
		cmdCubes(cfg)
	case "run":
		cmdRun(cfg, args)
	case "view":
		cmdView(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`modeltool - OBJ model loading and vertex deduplication utility

Usage:
  modeltool [global options] <command> [options]

Global options:
  -config <file>   Config file (default ./config.yaml)
  -debug           Debug logging
  -models <dir>    Models directory under the asset root
  -parser <name>   obj, obj-fast or stub
  -width, -height  Swapchain size for run

Commands:
  info <model.obj>            Show attributes, dedup stats, bounds and shaders
  dump <model.obj>            Print unique vertices and indices
  layout <model.obj>          Show the Vulkan vertex input layout and buffer sizes
  cubes                       Load the built-in test cubes
  run <model.obj>             Run the frame loop headless
  view <model.obj>            Open a window and drive the camera with the mouse

Examples:
  modeltool info viking_room.obj
  modeltool -parser obj-fast dump -n 10 viking_room.obj
  modeltool run -frames 120 viking_room.obj`)
}

func newFileSystem(cfg *config.Config) *assets.FileSystem {
	return assets.NewFileSystem(cfg.Assets.Root, assets.Dirs{
		Models:   cfg.Assets.Models,
		Shaders:  cfg.Assets.Shaders,
		Textures: cfg.Assets.Textures,
	})
}

func newLoader(cfg *config.Config, fs *assets.FileSystem) *model.Loader {
	parser, err := model.ParserNamed(cfg.Loader.Parser)
	if err != nil {
		fail(err)
	}
	// The native parser reads through the asset cache.
	if _, ok := parser.(model.FastParser); ok {
		parser = model.FastParser{Read: fs.Read}
	}

	var hasher vertex.Hasher = vertex.ActiveFields{}
	if cfg.Loader.Hash == config.HashAll {
		hasher = vertex.AllFields{}
	}

	return model.NewLoader(fs,
		model.WithParser(parser),
		model.WithHasher(hasher),
		model.WithLogger(logger.Named("model")),
	)
}

func modelArg(fs *flag.FlagSet, usage string) string {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: modeltool "+usage)
		os.Exit(1)
	}
	return fs.Arg(0)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func cmdInfo(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	fs.Parse(args)
	name := modelArg(fs, "info <model.obj>")

	files := newFileSystem(cfg)
	mesh, err := newLoader(cfg, files).LoadMesh(name)
	if err != nil {
		fail(err)
	}

	fmt.Printf("Model:      %s\n", files.ModelFileFullPath(name))
	fmt.Printf("Attributes: %s (stride %d bytes)\n", mesh.Attrs, mesh.Attrs.Stride())
	fmt.Printf("Corners:    %d\n", mesh.Stats.Corners)
	fmt.Printf("Vertices:   %d unique, %d redundant\n", mesh.Stats.Unique, mesh.Stats.Redundant)
	fmt.Printf("Triangles:  %d\n", mesh.Triangles())
	fmt.Printf("Indices:    %d (%s)\n", len(mesh.Indices), mesh.IndexType)
	fmt.Printf("Bounds:     min %v max %v\n", mesh.Bounds.Min, mesh.Bounds.Max)

	if len(mesh.Groups) > 1 || (len(mesh.Groups) == 1 && mesh.Groups[0].Material != "") {
		fmt.Println()
		fmt.Println("Materials:")
		for _, g := range mesh.Groups {
			fmt.Printf("  %-20s start %-8d count %d\n", g.Material, g.StartIndex, g.IndexCount)
		}
	}

	fmt.Println()
	shaders, ok := model.ShadersFor(mesh.Attrs)
	if !ok {
		fmt.Println("Shaders:    none match this vertex format")
		return
	}
	names := make([]string, 0, len(shaders))
	for _, s := range shaders {
		names = append(names, s.File)
	}
	fmt.Printf("Shaders:    %v\n", names)
	if missing := files.Missing(names, nil); len(missing) > 0 {
		fmt.Printf("Missing:    %v\n", missing)
	}
}

func cmdDump(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	limit := fs.Int("n", 0, "Limit output to N vertices and triangles (0 = all)")
	fs.Parse(args)
	name := modelArg(fs, "dump [-n N] <model.obj>")

	files := newFileSystem(cfg)
	mesh, err := newLoader(cfg, files).LoadMesh(name)
	if err != nil {
		fail(err)
	}

	fmt.Printf("# %s %s\n", name, mesh.Attrs)
	for i, v := range mesh.Vertices {
		if *limit > 0 && i >= *limit {
			fmt.Printf("... %d more\n", len(mesh.Vertices)-i)
			break
		}
		fmt.Printf("v%-6d", i)
		if v.Attrs.Has(vertex.Position) {
			fmt.Printf(" pos %v", v.Position)
		}
		if v.Attrs.Has(vertex.Normal) {
			fmt.Printf(" nrm %v", v.Normal)
		}
		if v.Attrs.Has(vertex.TexCoord) {
			fmt.Printf(" uv %v", v.TexCoord)
		}
		if v.Attrs.Has(vertex.Color) {
			fmt.Printf(" rgba %v", v.Color)
		}
		fmt.Println()
	}

	for t := 0; t < mesh.Triangles(); t++ {
		if *limit > 0 && t >= *limit {
			fmt.Printf("... %d more\n", mesh.Triangles()-t)
			break
		}
		i := mesh.Indices[t*3 : t*3+3]
		fmt.Printf("f%-6d %d %d %d\n", t, i[0], i[1], i[2])
	}
}

func cmdLayout(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("layout", flag.ExitOnError)
	compact := fs.Bool("compact", false, "Use 16-bit indices when they fit")
	fs.Parse(args)
	name := modelArg(fs, "layout [-compact] <model.obj>")

	files := newFileSystem(cfg)
	var buffers renderer.Buffers
	if _, err := newLoader(cfg, files).LoadFile(name, &buffers); err != nil {
		fail(err)
	}
	if *compact {
		buffers.Compact()
	}

	layout := buffers.Layout()
	fmt.Printf("Binding %d: stride %d, per vertex\n", layout.Binding.Binding, layout.Stride)
	for _, a := range layout.Attributes {
		fmt.Printf("  location %d  offset %-3d format %s\n", a.Location, a.Offset, formatName(a.Format))
	}
	fmt.Println()
	fmt.Printf("Vertex buffer: %d vertices, %d bytes\n", buffers.VertexCount(), buffers.VertexBufferSize())
	fmt.Printf("Index buffer:  %d indices, %d bytes (%s)\n", buffers.IndexCount(), buffers.IndexBufferSize(), indexTypeName(buffers.IndexType()))
}

func formatName(f vk.Format) string {
	switch f {
	case vk.FormatR32g32Sfloat:
		return "R32G32_SFLOAT"
	case vk.FormatR32g32b32Sfloat:
		return "R32G32B32_SFLOAT"
	case vk.FormatR32g32b32a32Sfloat:
		return "R32G32B32A32_SFLOAT"
	default:
		return fmt.Sprintf("Format(%d)", f)
	}
}

func indexTypeName(t vk.IndexType) string {
	if t == vk.IndexTypeUint16 {
		return "uint16"
	}
	return "uint32"
}

func cmdCubes(cfg *config.Config) {
	loader := newLoader(cfg, newFileSystem(cfg))

	fmt.Printf("%-22s %-28s %8s %8s %9s  %s\n", "Name", "Attributes", "Vertices", "Indices", "Redundant", "Customize")
	for _, c := range model.Cubes() {
		d, err := c.Drawable(loader)
		if err != nil {
			fail(err)
		}
		fmt.Printf("%-22s %-28s %8d %8d %9d  %s\n",
			d.Name, d.Mesh.Attrs, len(d.Mesh.Vertices), len(d.Mesh.Indices), d.Mesh.Stats.Redundant, d.Customize)
	}
}

// spinner turns the model about Y at a fixed rate per second.
type spinner struct {
	cam   *camera.Camera
	base  mgl32.Mat4
	angle float32
}

func newSpinner(cam *camera.Camera) *spinner {
	return &spinner{cam: cam, base: cam.MVP.Model}
}

func (s *spinner) Update(dt float32) {
	s.angle += 30 * dt
	s.cam.MVP.Model = mgl32.HomogRotate3DY(mgl32.DegToRad(s.angle)).Mul4(s.base)
}

// loadBuffers loads name into renderer buffers and returns the bounds of its positions.
func loadBuffers(cfg *config.Config, name string) (*renderer.Buffers, model.Bounds) {
	mesh, err := newLoader(cfg, newFileSystem(cfg)).LoadMesh(name)
	if err != nil {
		fail(err)
	}
	buffers := &renderer.Buffers{}
	mesh.Emit(buffers)
	return buffers, mesh.Bounds
}

func cmdRun(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	frames := fs.Int("frames", 60, "Frames to render")
	fs.Parse(args)
	name := modelArg(fs, "run [-frames N] <model.obj>")

	buffers, bounds := loadBuffers(cfg, name)

	extent := vk.Extent2D{Width: uint32(cfg.Render.Width), Height: uint32(cfg.Render.Height)}
	presenter := app.NewHeadless(extent, 3)

	a := newApplication(cfg, presenter, extent)
	if cfg.Camera.Position == nil {
		a.Camera().FitToBounds(bounds.Min, bounds.Max)
	}
	a.Add(newSpinner(a.Camera()))

	start := a.Clock().SecondsSinceStart()
	a.Run(app.Frames(*frames))
	elapsed := a.Clock().SecondsSinceStart() - start

	logger.Info("frame loop finished",
		zap.String("model", name),
		zap.Uint32("vertices", buffers.VertexCount()),
		zap.Uint32("indices", buffers.IndexCount()),
		zap.Int("frames", presenter.Frames),
		zap.Float32("seconds", elapsed),
	)
	fmt.Printf("Rendered %d frames of %s (%d vertices, %d indices) in %.3fs\n",
		presenter.Frames, name, buffers.VertexCount(), buffers.IndexCount(), elapsed)
}

func newApplication(cfg *config.Config, p app.Presenter, extent vk.Extent2D) *app.Application {
	camCfg := camera.Config{
		FOV:              cfg.Camera.FOV,
		Near:             cfg.Camera.Near,
		Far:              cfg.Camera.Far,
		ModeledForVulkan: cfg.Render.ModeledForVulkan,
	}
	if xyz := cfg.Camera.Position; len(xyz) == 3 {
		pos := mgl32.Vec3{xyz[0], xyz[1], xyz[2]}
		camCfg.Position = &pos
	}

	a := app.New(p, app.Config{
		MaxFramesInFlight: cfg.Render.MaxFramesInFlight,
		Extent:            extent,
		Camera:            camCfg,
	}, app.WithLogger(logger.Named("app")))
	a.Init()
	return a
}

// windowPresenter presents nothing but follows the window size on recreation.
type windowPresenter struct {
	*app.Headless
	win *window.Window
}

func (p windowPresenter) RecreateRenderingResources() (vk.Extent2D, error) {
	extent := p.win.Extent()
	p.Headless.Resize(extent)
	return p.Headless.RecreateRenderingResources()
}

// titleUpdater shows the camera position in the window title twice a second.
type titleUpdater struct {
	win     *window.Window
	cam     *camera.Camera
	name    string
	elapsed float32
}

func (t *titleUpdater) Update(dt float32) {
	t.elapsed += dt
	if t.elapsed < 0.5 {
		return
	}
	t.elapsed = 0
	pos := t.cam.Position()
	t.win.SetTitle(fmt.Sprintf("%s  camera (%.2f, %.2f, %.2f)", t.name, pos[0], pos[1], pos[2]))
}

func cmdView(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fullscreen := fs.Bool("fullscreen", false, "Open fullscreen")
	fs.Parse(args)
	name := modelArg(fs, "view [-fullscreen] <model.obj>")

	buffers, bounds := loadBuffers(cfg, name)

	win, err := window.New(window.Config{
		Title:      name,
		Width:      cfg.Render.Width,
		Height:     cfg.Render.Height,
		Fullscreen: *fullscreen,
	}, logger.Named("window"))
	if err != nil {
		fail(err)
	}
	defer win.Close()

	extent := win.Extent()
	presenter := windowPresenter{Headless: app.NewHeadless(extent, 3), win: win}

	a := newApplication(cfg, presenter, extent)
	if cfg.Camera.Position == nil {
		a.Camera().FitToBounds(bounds.Min, bounds.Max)
	}
	a.Add(&titleUpdater{win: win, cam: a.Camera(), name: name})
	a.Run(input.New())

	logger.Info("viewer closed",
		zap.String("model", name),
		zap.Uint32("vertices", buffers.VertexCount()),
		zap.Int("frames", presenter.Frames),
	)
}
