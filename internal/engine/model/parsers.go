package model

import (
	"os"

	"github.com/cockroachdb/errors"

	"github.com/Faultbox/gxengine/pkg/formats"
)

// Parser turns a mesh file into an OBJ source mesh.
type Parser interface {
	Parse(path string) (*formats.OBJ, error)
}

// ParserFunc adapts a function to Parser.
type ParserFunc func(path string) (*formats.OBJ, error)

// Parse calls f(path).
func (f ParserFunc) Parse(path string) (*formats.OBJ, error) {
	return f(path)
}

// FastParser reads OBJ files with the native parser.
// Read defaults to os.ReadFile.
type FastParser struct {
	Read func(path string) ([]byte, error)
}

// Parse reads and parses path.
func (p FastParser) Parse(path string) (*formats.OBJ, error) {
	read := p.Read
	if read == nil {
		read = os.ReadFile
	}
	data, err := read(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return formats.ParseOBJ(data)
}

// G3NParser reads OBJ files with the g3n decoder.
type G3NParser struct{}

// Parse decodes path.
func (G3NParser) Parse(path string) (*formats.OBJ, error) {
	return formats.DecodeOBJWithG3N(path)
}

// Messages reported by StubParser.
const (
	stubError   = "The 'Model.OBJ' loader is stubbed-out. Please see 'tiny_obj_loader.h' and download the real one!"
	stubWarning = "So you won't see the model actually display."
)

// StubParser stands in when no OBJ reader is built in. It always fails.
type StubParser struct{}

// Parse returns the stub error with its warning attached as a detail.
func (StubParser) Parse(path string) (*formats.OBJ, error) {
	return nil, errors.WithDetail(errors.New(stubError), stubWarning)
}

// ParserFor returns the parser for a spec type.
func ParserFor(t SpecType) (Parser, error) {
	switch t {
	case OBJFileTiny:
		return G3NParser{}, nil
	case OBJFileFast:
		return FastParser{}, nil
	default:
		return nil, errors.Mark(errors.Newf("no parser for spec type %s", t), ErrUnsupportedSpec)
	}
}

// ParserNamed returns the parser for a config name: "obj", "obj-fast" or "stub".
func ParserNamed(name string) (Parser, error) {
	switch name {
	case "obj", "obj-tiny", "":
		return G3NParser{}, nil
	case "obj-fast":
		return FastParser{}, nil
	case "stub":
		return StubParser{}, nil
	default:
		return nil, errors.Mark(errors.Newf("unknown parser %q", name), ErrUnsupportedSpec)
	}
}
