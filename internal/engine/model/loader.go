package model

import (
	"math"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/gxengine/pkg/formats"
	"github.com/Faultbox/gxengine/pkg/vertex"
)

// PathResolver maps a model name to a full file path.
type PathResolver interface {
	ModelFileFullPath(name string) string
}

// Option configures a Loader.
type Option func(*Loader)

// WithParser sets the mesh file parser. The default is G3NParser.
func WithParser(p Parser) Option {
	return func(l *Loader) { l.parser = p }
}

// WithHasher sets the vertex hashing policy. The default is vertex.ActiveFields.
func WithHasher(h vertex.Hasher) Option {
	return func(l *Loader) { l.hasher = h }
}

// WithLogger sets the diagnostics logger. The default discards output.
func WithLogger(log *zap.Logger) Option {
	return func(l *Loader) { l.log = log }
}

// Loader builds indexed meshes from source meshes, merging face corners
// that resolve to identical vertices.
//
// A Loader reuses its dedup table between loads and must not be shared
// between goroutines.
type Loader struct {
	resolver PathResolver
	parser   Parser
	hasher   vertex.Hasher
	table    *vertex.Table
	log      *zap.Logger
}

// NewLoader creates a loader. It panics when resolver or a configured parser is nil.
func NewLoader(resolver PathResolver, opts ...Option) *Loader {
	l := &Loader{
		resolver: resolver,
		parser:   G3NParser{},
		hasher:   vertex.ActiveFields{},
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.resolver == nil {
		panic("model: NewLoader called with nil resolver")
	}
	if l.parser == nil {
		panic("model: NewLoader called with nil parser")
	}
	if l.hasher == nil {
		l.hasher = vertex.ActiveFields{}
	}
	if l.log == nil {
		l.log = zap.NewNop()
	}
	l.table = vertex.NewTable(l.hasher)
	return l
}

// DetectAttributes returns the attributes whose source arrays are non-empty.
func DetectAttributes(src *formats.OBJ) vertex.Attributes {
	var attrs vertex.Attributes
	if len(src.Positions) > 0 {
		attrs |= vertex.Position
	}
	if len(src.Normals) > 0 {
		attrs |= vertex.Normal
	}
	if len(src.TexCoords) > 0 {
		attrs |= vertex.TexCoord
	}
	if len(src.Colors) > 0 {
		attrs |= vertex.Color
	}
	return attrs
}

// IndexType returns the index width produced by this loader.
func (l *Loader) IndexType() IndexType {
	return LargeIndex
}

// Load deduplicates the corners of src into a mesh. Polygons are fan
// triangulated first. Indices follow the corner order of each face.
// Any corner that references a missing element fails the whole load.
func (l *Loader) Load(src *formats.OBJ) (*Mesh, error) {
	attrs := DetectAttributes(src)
	l.table.Reset()

	tris := src.Triangulate()
	corners := tris.CornerCount()
	if uint64(corners) > math.MaxUint32 {
		return nil, errors.Mark(
			errors.Newf("%d corners exceed the 32-bit index range", corners),
			ErrIndexOutOfRange,
		)
	}

	mesh := &Mesh{
		Attrs:     attrs,
		Indices:   make([]uint32, 0, corners),
		IndexType: l.IndexType(),
	}

	for fi, face := range tris.Faces {
		if n := len(mesh.Groups); n == 0 || mesh.Groups[n-1].Material != face.Material {
			mesh.Groups = append(mesh.Groups, MaterialGroup{
				Material:   face.Material,
				StartIndex: uint32(len(mesh.Indices)),
			})
		}

		for ci, c := range face.Corners {
			r, err := buildRecord(tris, attrs, c, fi, ci)
			if err != nil {
				return nil, err
			}
			idx, added := l.table.Insert(r)
			if added {
				mesh.Vertices = append(mesh.Vertices, r)
			} else {
				mesh.Stats.Redundant++
			}
			mesh.Indices = append(mesh.Indices, idx)
		}
		mesh.Groups[len(mesh.Groups)-1].IndexCount += uint32(len(face.Corners))
	}

	mesh.Stats.Corners = len(mesh.Indices)
	mesh.Stats.Unique = len(mesh.Vertices)
	mesh.Bounds = boundsOf(mesh.Vertices, attrs)
	return mesh, nil
}

// buildRecord reads one corner's attributes. A color corner without its
// own index takes the color of its position.
func buildRecord(src *formats.OBJ, attrs vertex.Attributes, c formats.OBJCorner, face, corner int) (vertex.Record, error) {
	r := vertex.New(attrs)
	var ok bool

	if attrs.Has(vertex.Position) {
		if r.Position, ok = src.Position(c.Position); !ok {
			return r, indexError("position", face, corner, c.Position, src.PositionCount())
		}
	}
	if attrs.Has(vertex.Normal) {
		if r.Normal, ok = src.Normal(c.Normal); !ok {
			return r, indexError("normal", face, corner, c.Normal, src.NormalCount())
		}
	}
	if attrs.Has(vertex.TexCoord) {
		if r.TexCoord, ok = src.TexCoord(c.TexCoord); !ok {
			return r, indexError("texcoord", face, corner, c.TexCoord, src.TexCoordCount())
		}
	}
	if attrs.Has(vertex.Color) {
		ci := c.Color
		if ci == formats.NoIndex {
			ci = c.Position
		}
		if r.Color, ok = src.Color(ci); !ok {
			return r, indexError("color", face, corner, ci, src.ColorCount())
		}
	} else {
		r.Color = vertex.White
	}
	return r, nil
}

// LoadFile resolves name, parses it and hands the deduplicated mesh to sink.
// On failure it returns vertex.None and leaves sink untouched.
func (l *Loader) LoadFile(name string, sink MeshSink) (vertex.Attributes, error) {
	return l.loadInto(l.parser, name, sink)
}

// LoadMesh resolves and parses name and returns the mesh with its stats
// and material groups, which a MeshSink does not receive.
func (l *Loader) LoadMesh(name string) (*Mesh, error) {
	return l.loadWith(l.parser, name)
}

// LoadSpec loads a model definition with the parser its type selects.
func (l *Loader) LoadSpec(spec Spec, sink MeshSink) (vertex.Attributes, error) {
	if !spec.IsRequested() {
		return vertex.None, errors.Mark(errors.Newf("model %q has no spec type", spec.Filename), ErrUnsupportedSpec)
	}
	p, err := ParserFor(spec.Type)
	if err != nil {
		return vertex.None, err
	}
	return l.loadInto(p, spec.Filename, sink)
}

func (l *Loader) loadInto(p Parser, name string, sink MeshSink) (vertex.Attributes, error) {
	mesh, err := l.loadWith(p, name)
	if err != nil {
		return vertex.None, err
	}
	mesh.Emit(sink)
	return mesh.Attrs, nil
}

func (l *Loader) loadWith(p Parser, name string) (*Mesh, error) {
	path := l.resolver.ModelFileFullPath(name)
	l.log.Info("loading model", zap.String("file", path))

	src, err := p.Parse(path)
	if err != nil {
		err = errors.Mark(errors.Wrapf(err, "loading model %s", name), ErrParse)
		l.log.Error("model load failed",
			zap.String("file", path),
			zap.Error(err),
			zap.Strings("warnings", errors.GetAllDetails(err)),
		)
		return nil, err
	}
	for _, w := range src.Warnings {
		l.log.Warn("model parse warning", zap.String("file", path), zap.String("warning", w))
	}

	mesh, err := l.Load(src)
	if err != nil {
		err = errors.Wrapf(err, "loading model %s", name)
		l.log.Error("model load failed", zap.String("file", path), zap.Error(err))
		return nil, err
	}

	l.log.Info("model loaded",
		zap.String("file", path),
		zap.Stringer("attributes", mesh.Attrs),
		zap.Int("vertices", mesh.Stats.Unique),
		zap.Int("redundant", mesh.Stats.Redundant),
	)
	return mesh, nil
}
